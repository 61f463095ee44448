package models

import (
	"time"

	"gorm.io/datatypes"
)

type Post struct {
	BaseModel

	Title       string                      `json:"title" gorm:"size:200"`
	Slug        string                      `json:"slug" gorm:"uniqueIndex;size:200"`
	Content     string                      `json:"content" gorm:"type:text"`
	Summary     string                      `json:"summary"`
	CoverImage  *string                     `json:"cover_image"`
	Attachments datatypes.JSONSlice[string] `json:"attachments"`
	Language    string                      `json:"language"`

	IsDraft     bool       `json:"is_draft"`
	PublishedAt *time.Time `json:"published_at"`
	IsFeatured  bool       `json:"is_featured"`

	AllowComments bool  `json:"allow_comments" gorm:"default:true"`
	ViewCount     int64 `json:"view_count" gorm:"default:0"`

	Tags       []Tag      `json:"tags" gorm:"many2many:post_tags"`
	Categories []Category `json:"categories" gorm:"many2many:post_categories"`
	Comments   []Comment  `json:"comments" gorm:"foreignKey:PostID"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`

	CommentCount int64 `json:"comment_count" gorm:"-"`
}

// PostView is one throttled view of a post, logged per viewing session.
// Rows are written in batches by the flush job, not on the request path.
type PostView struct {
	SessionID string    `json:"session_id" gorm:"primaryKey;size:64"`
	PostID    uint      `json:"post_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
