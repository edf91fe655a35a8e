package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rydeu/LinkShortener/internal/cache"
	"github.com/rydeu/LinkShortener/internal/config"
	"github.com/rydeu/LinkShortener/internal/database"
	"github.com/rydeu/LinkShortener/internal/handlers"
	"github.com/rydeu/LinkShortener/internal/policy"
	"github.com/rydeu/LinkShortener/internal/repositories"
	"github.com/rydeu/LinkShortener/internal/router"
	"github.com/rydeu/LinkShortener/internal/store"
	"github.com/rydeu/LinkShortener/internal/sweeper"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Инициализация конфигурации
	cfg := config.NewConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisCache, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("Не удалось подключиться к Redis", zap.Error(err))
	}
	defer redisCache.Close()

	// БД опциональна: без DSN работаем только на кэше
	var (
		repo   repositories.LinkRepositoryInterface
		dbPing handlers.Pinger
	)
	if cfg.Mode == "database" {
		if err := database.RunMigrations(cfg.DatabaseDSN, cfg.PgMigrationsPath, logger); err != nil {
			logger.Fatal("Ошибка применения миграций", zap.Error(err))
		}
		db, err := database.NewDB(ctx, cfg.DatabaseDSN, logger)
		if err != nil {
			logger.Fatal("Не удалось подключиться к БД", zap.Error(err))
		}
		defer db.Close()

		linkRepo := repositories.NewLinkRepository(db)
		repo = linkRepo
		dbPing = linkRepo
	}

	ttl := policy.NewTTL(cfg.BookingTTLOffset, cfg.DefaultLinkLifetime, cfg.TTLFloor)
	linkStore := store.NewLinkStore(redisCache, repo, ttl, logger)

	sw := sweeper.New(redisCache, linkStore, ttl, cfg.SweepInterval, logger)
	go sw.Run(ctx)

	handler := handlers.NewHandler(linkStore, logger, cfg.BaseURL, cfg.BannerDelay, redisCache, dbPing)
	r := router.NewRouter(handler, logger)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: r,
	}

	go func() {
		logger.Info("Сервер запущен на ", zap.String("address", cfg.ServerAddress))
		var err error
		if cfg.EnableHTTPS {
			err = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка при запуске сервера: ", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Останавливаем сервер")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
}
