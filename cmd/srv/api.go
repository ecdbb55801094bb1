package main

import (
	"net/http"

	"github.com/pandamarket/backend/internal/middleware"
	"github.com/pandamarket/backend/pkg/router"
	"github.com/pandamarket/backend/pkg/xcontext"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) loadRouter() {
	cfg := xcontext.Configs(s.ctx)
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger(cfg.Env))

	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	optionalAuthVerifier := middleware.NewAuthVerifier().WithAccessToken().WithOptional()

	// Credential exchange. No token required, the issued tokens are
	// attached as cookies by the after middleware.
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSetCookie())
	router.POST(authRouter, "/auth/register", s.authDomain.Register)
	router.POST(authRouter, "/auth/login", s.authDomain.Login)
	router.POST(authRouter, "/auth/refresh", s.authDomain.Refresh)
	router.POST(authRouter, "/auth/logout", s.authDomain.Logout)

	// Reads work without a session, but a present token still resolves so
	// isLiked and isFavorited reflect the caller.
	publicRouter := s.router.Branch()
	publicRouter.Before(optionalAuthVerifier.Middleware())
	router.GET(publicRouter, "/articles", s.articleDomain.GetList)
	router.GET(publicRouter, "/articles/:id", s.articleDomain.Get)
	router.GET(publicRouter, "/articles/:id/comments", s.articleDomain.GetComments)
	router.GET(publicRouter, "/products", s.productDomain.GetList)
	router.GET(publicRouter, "/products/:id", s.productDomain.Get)
	router.GET(publicRouter, "/products/:id/comments", s.productDomain.GetComments)

	privateRouter := s.router.Branch()
	privateRouter.Before(authVerifier.Middleware())

	router.GET(privateRouter, "/users/me", s.userDomain.GetMe)
	router.PATCH(privateRouter, "/users/me", s.userDomain.UpdateMe)
	router.PATCH(privateRouter, "/users/me/password", s.userDomain.UpdatePassword)
	router.GET(privateRouter, "/users/me/products", s.userDomain.GetMyProducts)
	router.GET(privateRouter, "/users/me/favorites", s.userDomain.GetMyFavorites)

	router.POST(privateRouter, "/articles", s.articleDomain.Create)
	router.PATCH(privateRouter, "/articles/:id", s.articleDomain.Update)
	router.DELETE(privateRouter, "/articles/:id", s.articleDomain.Delete)
	router.POST(privateRouter, "/articles/:id/like", s.articleDomain.Like)
	router.DELETE(privateRouter, "/articles/:id/like", s.articleDomain.Unlike)
	router.POST(privateRouter, "/articles/:id/comments", s.articleDomain.CreateComment)

	router.POST(privateRouter, "/products", s.productDomain.Create)
	router.PATCH(privateRouter, "/products/:id", s.productDomain.Update)
	router.DELETE(privateRouter, "/products/:id", s.productDomain.Delete)
	router.POST(privateRouter, "/products/:id/favorite", s.productDomain.Favorite)
	router.DELETE(privateRouter, "/products/:id/favorite", s.productDomain.Unfavorite)
	router.POST(privateRouter, "/products/:id/comments", s.productDomain.CreateComment)

	router.PATCH(privateRouter, "/comments/:id", s.commentDomain.Update)
	router.DELETE(privateRouter, "/comments/:id", s.commentDomain.Delete)

	router.GET(privateRouter, "/notifications", s.notificationDomain.GetList)
	router.GET(privateRouter, "/notifications/unread-count", s.notificationDomain.GetUnreadCount)
	router.PATCH(privateRouter, "/notifications/:id/read", s.notificationDomain.MarkRead)
	router.POST(privateRouter, "/notifications/send", s.notificationDomain.Send)
	router.Websocket(privateRouter, "/notifications/ws", s.proxyServer.ServeProxy)

	router.POST(privateRouter, "/images", s.fileDomain.UploadImage)
}

func (s *srv) startApi(cliCtx *cli.Context) error {
	if err := s.loadApi(cliCtx); err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx)
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.ApiServer.AllowCORS,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(s.router.Handler())

	if s.subscriber != nil {
		s.subscriber.Subscribe(s.ctx)
		defer s.subscriber.Stop(s.ctx)
	}

	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: handler,
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on %s", cfg.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	return nil
}
