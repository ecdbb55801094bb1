package entity

type Product struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Name        string
	Description string `gorm:"type:text"`
	Price       int64
	Tags        Array[string] `gorm:"type:text"`
	Images      Array[string] `gorm:"type:text"`
}
