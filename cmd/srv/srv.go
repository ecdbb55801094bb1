package main

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pandamarket/backend/config"
	"github.com/pandamarket/backend/internal/domain"
	"github.com/pandamarket/backend/internal/domain/notification/engine"
	"github.com/pandamarket/backend/internal/domain/notification/proxy"
	"github.com/pandamarket/backend/internal/domain/search"
	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/kafka"
	"github.com/pandamarket/backend/pkg/logger"
	"github.com/pandamarket/backend/pkg/pubsub"
	"github.com/pandamarket/backend/pkg/router"
	"github.com/pandamarket/backend/pkg/storage"
	"github.com/pandamarket/backend/pkg/token"
	"github.com/pandamarket/backend/pkg/xcontext"
	"github.com/pandamarket/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	articleRepo      repository.ArticleRepository
	productRepo      repository.ProductRepository
	commentRepo      repository.CommentRepository
	likeRepo         repository.LikeRepository
	favoriteRepo     repository.FavoriteRepository
	notificationRepo repository.NotificationRepository

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	articleDomain      domain.ArticleDomain
	productDomain      domain.ProductDomain
	commentDomain      domain.CommentDomain
	notificationDomain domain.NotificationDomain
	fileDomain         domain.FileDomain

	searchIndex search.Index
	registry    *proxy.Registry
	dispatcher  *engine.Dispatcher
	resolver    *engine.Resolver
	notifier    *engine.Notifier
	proxyServer *proxy.ProxyServer

	redisClient xredis.Client
	storage     storage.Storage
	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cliCtx *cli.Context) error {
	cfg, err := config.Load(cliCtx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
	return nil
}

func (s *srv) loadLogger() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(cfg.LogLevel))
}

func (s *srv) loadDatabase() error {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) loadTokenEngine() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithTokenEngine(s.ctx, token.NewEngine(cfg.Auth.TokenSecret))
}

func (s *srv) loadRedis() error {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		return err
	}

	s.redisClient = redisClient
	return nil
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.articleRepo = repository.NewArticleRepository()
	s.productRepo = repository.NewProductRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.likeRepo = repository.NewLikeRepository()
	s.favoriteRepo = repository.NewFavoriteRepository()
	s.notificationRepo = repository.NewNotificationRepository(s.redisClient)
}

func (s *srv) loadSearchIndex() {
	s.searchIndex = search.NewBleveIndex(s.ctx)
}

// loadNotificationEngine assembles the fan-out pipeline. With a kafka
// broker configured, dispatches are published on the broadcast topic and
// every api instance delivers to its own sockets through the subscriber.
// Without one, delivery stays in process.
func (s *srv) loadNotificationEngine() error {
	cfg := xcontext.Configs(s.ctx)

	s.registry = proxy.NewRegistry()
	s.dispatcher = engine.NewDispatcher(s.registry)

	if cfg.Kafka.Addr != "" && cfg.Notification.BroadcastTopic != "" {
		publisher, err := kafka.NewPublisher(uuid.NewString(), []string{cfg.Kafka.Addr})
		if err != nil {
			return err
		}

		subscriber, err := kafka.NewSubscriber(
			uuid.NewString(),
			[]string{cfg.Kafka.Addr},
			[]string{cfg.Notification.BroadcastTopic},
			engine.NewBroadcastHandler(s.ctx, s.registry),
		)
		if err != nil {
			return err
		}

		s.publisher = publisher
		s.subscriber = subscriber
		s.dispatcher.WithBroadcast(publisher, cfg.Notification.BroadcastTopic)
	}

	s.resolver = engine.NewResolver(s.favoriteRepo)
	s.notifier = engine.NewNotifier(s.notificationRepo, s.dispatcher)
	s.proxyServer = proxy.NewProxyServer(s.registry)
	return nil
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.productRepo, s.favoriteRepo)
	s.articleDomain = domain.NewArticleDomain(
		s.articleRepo, s.commentRepo, s.likeRepo, s.userRepo,
		s.searchIndex, s.resolver, s.notifier,
	)
	s.productDomain = domain.NewProductDomain(
		s.productRepo, s.commentRepo, s.favoriteRepo, s.userRepo,
		s.searchIndex, s.resolver, s.notifier,
	)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo, s.userRepo, s.notifier)
	s.fileDomain = domain.NewFileDomain(s.storage)
}

func (s *srv) loadApi(cliCtx *cli.Context) error {
	if err := s.loadConfig(cliCtx); err != nil {
		return err
	}

	s.loadLogger()
	if err := s.loadDatabase(); err != nil {
		return err
	}

	s.loadTokenEngine()
	if err := s.loadRedis(); err != nil {
		return err
	}

	s.loadStorage()
	s.loadRepos()
	s.loadSearchIndex()
	if err := s.loadNotificationEngine(); err != nil {
		return err
	}

	s.loadDomains()
	s.loadRouter()
	return nil
}

func (s *srv) migrate(cliCtx *cli.Context) error {
	if err := s.loadConfig(cliCtx); err != nil {
		return err
	}

	s.loadLogger()
	if err := s.loadDatabase(); err != nil {
		return err
	}

	return entity.Migrate(s.ctx)
}
