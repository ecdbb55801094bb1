package entity

import "time"

type Like struct {
	UserID    string `gorm:"primaryKey"`
	User      User   `gorm:"foreignKey:UserID"`
	ArticleID string `gorm:"primaryKey"`
	Article   Article `gorm:"foreignKey:ArticleID"`

	CreatedAt time.Time
}
