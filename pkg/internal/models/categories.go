package models

type Tag struct {
	BaseModel

	Slug  string `json:"slug" gorm:"uniqueIndex;size:200" validate:"lowercase"`
	Name  string `json:"name" gorm:"size:50"`
	Posts []Post `json:"posts" gorm:"many2many:post_tags"`
}

type Category struct {
	BaseModel

	Slug        string `json:"slug" gorm:"uniqueIndex;size:200" validate:"lowercase"`
	Name        string `json:"name" gorm:"size:100"`
	Description string `json:"description"`
	Posts       []Post `json:"posts" gorm:"many2many:post_categories"`
}
