package entity

import (
	"context"

	"github.com/pandamarket/backend/pkg/xcontext"
)

func Migrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&RefreshToken{},
		&Article{},
		&Product{},
		&Comment{},
		&Like{},
		&Favorite{},
		&Notification{},
	)
}
