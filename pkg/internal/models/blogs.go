package models

import (
	"time"

	"gorm.io/datatypes"
)

// Blog is the central entity. The slug is assigned once on create and never
// rewritten afterwards; the owning author never changes either.
type Blog struct {
	BaseModel

	Slug        string                      `json:"blog_id" gorm:"uniqueIndex"`
	Title       string                      `json:"title"`
	Banner      string                      `json:"banner"`
	Content     string                      `json:"content"`
	Description string                      `json:"des"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Language    string                      `json:"language"`

	IsDraft     bool       `json:"draft"`
	PublishedAt *time.Time `json:"published_at"`

	TotalViews int64 `json:"total_views"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"-"`

	// Filled at read time, not stored.
	AuthorStamp AuthorStamp `json:"author" gorm:"-"`
	TotalLikes  int64       `json:"total_likes" gorm:"-"`
}

// BlogView records that an account has seen a blog. Views are queued in
// memory and flushed in batches by a timed task.
type BlogView struct {
	AccountID uint      `json:"account_id" gorm:"primaryKey"`
	BlogID    uint      `json:"blog_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
