package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chepyr/taskboard/internal/cache"
	"github.com/chepyr/taskboard/internal/config"
	"github.com/chepyr/taskboard/internal/db"
	"github.com/chepyr/taskboard/internal/handlers"
	"github.com/chepyr/taskboard/internal/logger"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const serviceName = "taskboard"

func main() {
	cfg := loadConfig()
	log := logger.New(serviceName, cfg.LogLevel)

	dbConn := initDB(cfg, log)
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.WithError(err).Error("error closing database connection")
		}
	}()

	redisClient := initRedis(cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	handler := initHandlers(cfg, dbConn, redisClient, log)
	defer handler.RateLimiter.Close()

	server := initServer(cfg, handler)
	startServer(server, cfg, log)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	return cfg
}

func initDB(cfg *config.Config, log *logrus.Logger) *sql.DB {
	dbConn, err := db.Connect(cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Migrate(ctx, dbConn); err != nil {
		dbConn.Close()
		log.WithError(err).Fatal("failed to migrate database")
	}
	log.WithField("driver", cfg.DB.Driver).Info("database ready")
	return dbConn
}

// initRedis returns nil when caching is disabled or Redis is unreachable.
func initRedis(cfg *config.Config, log *logrus.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, list cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable, list cache disabled")
		client.Close()
		return nil
	}
	log.WithFields(logrus.Fields{"addr": cfg.RedisAddr, "ttl": cfg.CacheTTL.String()}).Info("list cache enabled")
	return client
}

func initHandlers(cfg *config.Config, dbConn *sql.DB, redisClient *redis.Client, log *logrus.Logger) *handlers.Handler {
	var (
		boards db.BoardRepositoryInterface = db.NewBoardRepository(dbConn)
		tasks  db.TaskRepositoryInterface  = db.NewTaskRepository(dbConn)
	)
	if redisClient != nil {
		boards = cache.NewBoardRepository(boards, redisClient, cfg.CacheTTL)
		tasks = cache.NewTaskRepository(tasks, redisClient, cfg.CacheTTL)
	}

	return &handlers.Handler{
		BoardRepo:   boards,
		TaskRepo:    tasks,
		UserRepo:    db.NewUserRepository(dbConn),
		RateLimiter: handlers.NewRateLimiter(cfg.AuthLimit.Limit, cfg.AuthLimit.Window),
		Logger:      log,
		DB:          dbConn,
	}
}

func initServer(cfg *config.Config, handler *handlers.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func startServer(server *http.Server, cfg *config.Config, log *logrus.Logger) {
	log.WithFields(logrus.Fields{"port": cfg.Port, "base_url": cfg.BaseURL}).Info("starting server")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown failed")
		return
	}
	log.Info("server stopped")
}
