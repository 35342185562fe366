package main

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/bootstrap"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/config"
	httptransport "github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/http"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/http/handler"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/http/middleware"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/password"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/repository"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/server"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/service"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/telemetry"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/token"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newMongoClient,
			newDatabase,
			newUserRepository,
			newPostRepository,
			newCommentRepository,
			newHasher,
			newCodec,
			service.NewAuthService,
			service.NewPostService,
			service.NewCommentService,
			handler.NewAuthHandler,
			handler.NewPostHandler,
			handler.NewCommentHandler,
			newAuthMiddleware,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, bootstrap.EnsureIndexes, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newMongoClient(lc fx.Lifecycle, cfg config.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return client, nil
}

func newDatabase(client *mongo.Client, cfg config.Config) *mongo.Database {
	return client.Database(cfg.MongoDatabase)
}

func newUserRepository(db *mongo.Database) repository.UserRepository {
	return repository.NewMongoUserRepo(db)
}

func newPostRepository(db *mongo.Database) repository.PostRepository {
	return repository.NewMongoPostRepo(db)
}

func newCommentRepository(db *mongo.Database) repository.CommentRepository {
	return repository.NewMongoCommentRepo(db)
}

func newHasher() *password.Hasher {
	return password.NewHasher()
}

func newCodec(cfg config.Config) *token.Codec {
	return token.NewCodec(cfg.TokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
}

func newAuthMiddleware(codec *token.Codec, logger *zap.Logger) *middleware.Auth {
	return &middleware.Auth{Codec: codec, Logger: logger}
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
