package testutil

import (
	"context"
	"time"

	"github.com/pandamarket/backend/config"
	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/pkg/logger"
	"github.com/pandamarket/backend/pkg/token"
	"github.com/pandamarket/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		ApiServer: config.APIServerConfigs{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access-token",
				Expiration: config.Duration{Duration: time.Minute},
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh-token",
				Expiration: config.Duration{Duration: time.Minute},
			},
		},
		File: config.FileConfigs{
			MaxSize:     2 * 1024 * 1024,
			ImageBucket: "images",
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, token.NewEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.Migrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
