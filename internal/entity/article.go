package entity

type Article struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Title   string
	Content string `gorm:"type:text"`
}
