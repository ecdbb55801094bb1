package entity

type Notification struct {
	SnowflakeBase

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Message string
	IsRead  bool
}
