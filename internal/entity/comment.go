package entity

import "database/sql"

// Comment belongs to exactly one of an article or a product.
type Comment struct {
	SnowflakeBase

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	ArticleID sql.NullString `gorm:"index"`
	ProductID sql.NullString `gorm:"index"`

	Content string `gorm:"type:text"`
}
