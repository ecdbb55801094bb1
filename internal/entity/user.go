package entity

type User struct {
	Base

	Email          string `gorm:"uniqueIndex"`
	HashedPassword string
	Nickname       string
	AvatarURL      string
}
