package common

import (
	"context"

	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/xcontext"
)

// Paginate converts one-based page parameters into offset and limit,
// applying the server defaults and cap.
func Paginate(ctx context.Context, page, pageSize int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer

	if page < 0 || pageSize < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Invalid pagination parameters")
	}

	if page == 0 {
		page = 1
	}

	if pageSize == 0 {
		pageSize = cfg.DefaultLimit
	}

	if pageSize > cfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceeded the maximum page size of %d", cfg.MaxLimit)
	}

	return (page - 1) * pageSize, pageSize, nil
}
