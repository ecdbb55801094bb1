package middleware

import (
	"context"

	"github.com/pandamarket/backend/pkg/router"
	"github.com/pandamarket/backend/pkg/xcontext"
)

func Logger(env string) router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if err := xcontext.Error(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("%s %s: %v", req.Method, req.URL.Path, err)
			return
		}

		if env == "local" {
			xcontext.Logger(ctx).Infof("%s %s", req.Method, req.URL.Path)
		}
	}
}
