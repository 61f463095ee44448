package models

const (
	RoleReader = "reader"
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

type Account struct {
	BaseModel

	Name        string `json:"name" gorm:"uniqueIndex"`
	Nick        string `json:"nick"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"`
	Role        string `json:"role" gorm:"default:reader"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner"`

	Posts    []Post    `json:"posts" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments" gorm:"foreignKey:AuthorID"`
}

func (v Account) IsAdmin() bool {
	return v.Role == RoleAdmin
}

// CanAuthor reports whether the account may create and manage posts.
func (v Account) CanAuthor() bool {
	return v.Role == RoleAuthor || v.Role == RoleAdmin
}
