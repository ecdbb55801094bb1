package router

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/ws"
	"github.com/pandamarket/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	bindBody bool,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := r.befores
	afters := r.afters
	closers := r.closers

	return func(ginCtx *gin.Context) {
		ctx := r.beginRequest(ginCtx)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		var ok bool
		if ctx, ok = runMiddlewares(ctx, ginCtx, befores); !ok {
			return
		}

		var req Request
		if err := bindRequest(ginCtx, bindBody, &req); err != nil {
			bindErr := errorx.New(errorx.BadRequest, "Cannot bind the request")
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			xcontext.SetError(ctx, bindErr)
			writeError(ginCtx, bindErr)
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeError(ginCtx, err)
			return
		}

		xcontext.SetResponse(ctx, resp)
		if ctx, ok = runMiddlewares(ctx, ginCtx, afters); !ok {
			return
		}

		writeData(ginCtx, resp)
	}
}

// Websocket registers a GET route which upgrades the connection and hands a
// ws.Client to the handler through the context. The handler owns the
// connection until it returns.
func Websocket[Request any](r *Router, pattern string, handler WebsocketHandlerFunc[Request]) {
	befores := r.befores
	closers := r.closers

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     func(req *http.Request) bool { return true },
	}

	r.inner.GET(pattern, func(ginCtx *gin.Context) {
		ctx := r.beginRequest(ginCtx)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		var ok bool
		if ctx, ok = runMiddlewares(ctx, ginCtx, befores); !ok {
			return
		}

		var req Request
		if err := ginCtx.ShouldBindQuery(&req); err != nil {
			bindErr := errorx.New(errorx.BadRequest, "Cannot bind the request")
			xcontext.SetError(ctx, bindErr)
			writeError(ginCtx, bindErr)
			return
		}

		conn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot upgrade the connection: %v", err)
			return
		}

		client := ws.NewClient(conn)
		defer client.Close()

		ctx = xcontext.WithWSClient(ctx, client)
		if err := handler(ctx, &req); err != nil {
			xcontext.SetError(ctx, err)
			xcontext.Logger(ctx).Warnf("Websocket handler exited: %v", err)
		}
	})
}

func runMiddlewares(
	ctx context.Context, ginCtx *gin.Context, middlewares []MiddlewareFunc,
) (context.Context, bool) {
	for _, middleware := range middlewares {
		newCtx, err := middleware(ctx)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeError(ginCtx, err)
			return ctx, false
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, true
}

func bindRequest(ginCtx *gin.Context, bindBody bool, req any) error {
	if len(ginCtx.Params) > 0 {
		if err := ginCtx.ShouldBindUri(req); err != nil {
			return err
		}
	}

	if bindBody {
		if err := ginCtx.ShouldBindJSON(req); err != nil && err != io.EOF {
			return err
		}

		return nil
	}

	return ginCtx.ShouldBindQuery(req)
}
