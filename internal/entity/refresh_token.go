package entity

import "time"

// RefreshToken tracks one rotation family per login. The counter increases
// on every rotation, so an old token presented again reveals a replay.
type RefreshToken struct {
	Family  string `gorm:"primaryKey"`
	UserID  string `gorm:"index"`
	User    User   `gorm:"foreignKey:UserID"`
	Counter uint64

	Expiration time.Time
}
