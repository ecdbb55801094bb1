package entity

import "time"

type Favorite struct {
	UserID    string  `gorm:"primaryKey"`
	User      User    `gorm:"foreignKey:UserID"`
	ProductID string  `gorm:"primaryKey"`
	Product   Product `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time
}
