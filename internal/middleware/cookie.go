package middleware

import (
	"context"
	"net/http"

	"github.com/pandamarket/backend/pkg/router"
	"github.com/pandamarket/backend/pkg/xcontext"
)

// CookieCarrier is implemented by responses that must also set cookies,
// like login and refresh.
type CookieCarrier interface {
	Cookies(ctx context.Context) []*http.Cookie
}

func HandleSetCookie() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		carrier, ok := xcontext.Response(ctx).(CookieCarrier)
		if !ok {
			return nil, nil
		}

		writer := xcontext.HTTPWriter(ctx)
		for _, cookie := range carrier.Cookies(ctx) {
			http.SetCookie(writer, cookie)
		}

		return nil, nil
	}
}
