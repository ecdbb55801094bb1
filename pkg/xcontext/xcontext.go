package xcontext

import (
	"context"
	"net/http"

	"github.com/pandamarket/backend/config"
	"github.com/pandamarket/backend/pkg/logger"
	"github.com/pandamarket/backend/pkg/token"
	"github.com/pandamarket/backend/pkg/ws"
	"gorm.io/gorm"
)

type (
	configsCtxKey     struct{}
	loggerCtxKey      struct{}
	dbCtxKey          struct{}
	dbTxCtxKey        struct{}
	httpRequestCtxKey struct{}
	httpWriterCtxKey  struct{}
	requestUserCtxKey struct{}
	tokenEngineCtxKey struct{}
	wsClientCtxKey    struct{}
	errorCtxKey       struct{}
	responseCtxKey    struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsCtxKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsCtxKey{}).(config.Configs)
	if !ok {
		panic("configs is not set up in context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerCtxKey{}).(logger.Logger)
	if !ok {
		panic("logger is not set up in context")
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbCtxKey{}, db)
}

// DB returns the transaction began by WithDBTransaction if any, otherwise the
// root database handle.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTxCtxKey{}).(*gorm.DB); ok {
		return tx
	}

	db, ok := ctx.Value(dbCtxKey{}).(*gorm.DB)
	if !ok {
		panic("database is not set up in context")
	}

	return db.WithContext(ctx)
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxCtxKey{}, DB(ctx).Begin())
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(dbTxCtxKey{}).(*gorm.DB); ok {
		tx.Commit()
	}

	return context.WithValue(ctx, dbTxCtxKey{}, nil)
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(dbTxCtxKey{}).(*gorm.DB); ok {
		tx.Rollback()
	}

	return context.WithValue(ctx, dbTxCtxKey{}, nil)
}

func WithHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestCtxKey{}, req)
}

func HTTPRequest(ctx context.Context) *http.Request {
	req, ok := ctx.Value(httpRequestCtxKey{}).(*http.Request)
	if !ok {
		panic("http request is not set up in context")
	}

	return req
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterCtxKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(httpWriterCtxKey{}).(http.ResponseWriter)
	if !ok {
		panic("http writer is not set up in context")
	}

	return w
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, requestUserCtxKey{}, userID)
}

// RequestUserID returns an empty string if the request is not authenticated.
func RequestUserID(ctx context.Context) string {
	userID, ok := ctx.Value(requestUserCtxKey{}).(string)
	if !ok {
		return ""
	}

	return userID
}

func WithTokenEngine(ctx context.Context, engine token.Engine) context.Context {
	return context.WithValue(ctx, tokenEngineCtxKey{}, engine)
}

func TokenEngine(ctx context.Context) token.Engine {
	engine, ok := ctx.Value(tokenEngineCtxKey{}).(token.Engine)
	if !ok {
		panic("token engine is not set up in context")
	}

	return engine
}

func WithWSClient(ctx context.Context, client *ws.Client) context.Context {
	return context.WithValue(ctx, wsClientCtxKey{}, client)
}

func WSClient(ctx context.Context) *ws.Client {
	client, ok := ctx.Value(wsClientCtxKey{}).(*ws.Client)
	if !ok {
		panic("websocket client is not set up in context")
	}

	return client
}

type errorBox struct {
	err error
}

// WithErrorBox prepares a mutable slot so closers running after the handler
// can observe the error it returned.
func WithErrorBox(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorCtxKey{}, &errorBox{})
}

func SetError(ctx context.Context, err error) {
	if box, ok := ctx.Value(errorCtxKey{}).(*errorBox); ok {
		box.err = err
	}
}

func Error(ctx context.Context) error {
	if box, ok := ctx.Value(errorCtxKey{}).(*errorBox); ok {
		return box.err
	}

	return nil
}

type responseBox struct {
	resp any
}

// WithResponseBox prepares a mutable slot so middlewares running after the
// handler can observe its response.
func WithResponseBox(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseCtxKey{}, &responseBox{})
}

func SetResponse(ctx context.Context, resp any) {
	if box, ok := ctx.Value(responseCtxKey{}).(*responseBox); ok {
		box.resp = resp
	}
}

func Response(ctx context.Context) any {
	if box, ok := ctx.Value(responseCtxKey{}).(*responseBox); ok {
		return box.resp
	}

	return nil
}
