package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pandamarket/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc can derive a new context for the rest of the chain. A nil
// returned context keeps the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type CloserFunc func(ctx context.Context)

type WebsocketHandlerFunc[Request any] func(ctx context.Context, req *Request) error

// Router registers generic handlers on top of a gin engine. The context
// given to New carries the process-wide objects (configs, logger, database,
// token engine) and becomes the base of every request context.
type Router struct {
	ctx   context.Context
	inner gin.IRouter

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{ctx: ctx, inner: gin.New()}
}

// Branch returns a router sharing the same engine but with an independent
// middleware chain, so route sets can differ in authentication rules.
func (r *Router) Branch() *Router {
	clone := &Router{ctx: r.ctx, inner: r.inner}
	clone.befores = append(clone.befores, r.befores...)
	clone.afters = append(clone.afters, r.afters...)
	clone.closers = append(clone.closers, r.closers...)
	return clone
}

func (r *Router) Group(pattern string) *Router {
	branch := r.Branch()
	branch.inner = r.inner.Group(pattern)
	return branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(relativePath, root string) {
	r.inner.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.inner.(*gin.Engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, false, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, true, handler))
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.PUT(pattern, wrapHandler(r, true, handler))
}

func PATCH[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.PATCH(pattern, wrapHandler(r, true, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.DELETE(pattern, wrapHandler(r, false, handler))
}

func (r *Router) beginRequest(ginCtx *gin.Context) context.Context {
	ctx := xcontext.WithHTTPRequest(r.ctx, ginCtx.Request)
	ctx = xcontext.WithHTTPWriter(ctx, ginCtx.Writer)
	ctx = xcontext.WithErrorBox(ctx)
	ctx = xcontext.WithResponseBox(ctx)
	return ctx
}
