package models

import "time"

// BaseModel is the common column set of every table. Blogs are removed for
// real on delete, so there is no soft-delete column here.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
