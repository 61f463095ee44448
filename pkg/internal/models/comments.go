package models

type Comment struct {
	BaseModel

	Content    string `json:"content" gorm:"type:text"`
	IsApproved bool   `json:"is_approved"`

	PostID uint `json:"post_id" gorm:"index"`
	Post   Post `json:"post"`

	AuthorID uint    `json:"author_id" gorm:"index"`
	Author   Account `json:"author"`

	// Nil for top-level comments. A parent always belongs to the same post.
	ParentID *uint     `json:"parent_id" gorm:"index"`
	Parent   *Comment  `json:"parent"`
	Replies  []Comment `json:"replies" gorm:"foreignKey:ParentID"`
}
