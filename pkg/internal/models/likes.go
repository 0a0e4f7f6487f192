package models

import "time"

// Like is the toggleable like state of an account on a blog.
type Like struct {
	AccountID uint      `json:"account_id" gorm:"primaryKey"`
	BlogID    uint      `json:"blog_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}
