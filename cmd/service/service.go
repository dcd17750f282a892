// @title        IPv4 Bazaar API
// @version      1.0
// @description  IPv4 位址交易平台的後端 API：使用者註冊登入、位址申請與管理後台
// @host         localhost:8080
// @BasePath     /api
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"ipv4-bazaar/internal/auth"
	"ipv4-bazaar/internal/backend"
	"ipv4-bazaar/internal/cache"
	"ipv4-bazaar/internal/config"
	"ipv4-bazaar/internal/database"
	"ipv4-bazaar/internal/logging"
	"ipv4-bazaar/internal/mail"
	"ipv4-bazaar/internal/metrics"
	"ipv4-bazaar/internal/middleware"
	"ipv4-bazaar/internal/portal"
	"ipv4-bazaar/internal/router"
	"ipv4-bazaar/internal/security"
	"ipv4-bazaar/internal/service"
	"ipv4-bazaar/internal/session"
	"ipv4-bazaar/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "ipv4-bazaar/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

const mailQueueSize = 64

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	logOutput       = io.Writer(os.Stdout)
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.SetupDefault(logOutput, cfg.LogLevel)

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("關閉 Redis 連線失敗", "error", err)
		}
	}()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	tokens, err := service.NewTokens(cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("無效的 JWT_SECRET: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount, mailQueueSize, logger)
	defer wp.Stop()

	remote := backend.NewPostgres(backend.Options{
		DB:      db,
		Tokens:  tokens,
		Mailer:  mail.NewLogMailer(logger),
		Pool:    wp,
		BaseURL: cfg.BaseURL,
		Logger:  logger,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	svc := portal.New(remote, security.NewTextSanitizer(), collector, logger)

	refresher, err := metrics.NewRefresher(cfg.StatsRefreshSpec, svc, collector, logger)
	if err != nil {
		return fmt.Errorf("無效的 STATS_REFRESH_SPEC: %v", err)
	}
	refresher.Start()
	defer refresher.Stop()

	admin := auth.AdminCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())

	router.Setup(e, router.Deps{
		DB:       db,
		Cache:    rdb,
		Backend:  remote,
		Portal:   svc,
		Recorder: collector,
		Session: middleware.SessionConfig{
			NewStore: func(sid string) session.Store {
				return session.NewRedisStore(rdb, sid, cfg.SessionTTL)
			},
			NewMachine: func(s session.Store) *auth.Machine {
				return auth.New(remote, s, admin, logger)
			},
			TTL:    cfg.SessionTTL,
			Secure: cfg.SecureCookies(),
			Logger: logger,
		},
		AuthRateLimit: cfg.RateLimitAuth,
		Logger:        logger,
	})

	e.GET("/metrics", echo.WrapHandler(metrics.Handler(reg)))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.StaticDir != "" {
		e.Static("/", cfg.StaticDir)
	}

	logger.Info("server starting", "addr", cfg.ServerAddr, "base_url", cfg.BaseURL)
	return startServer(e, cfg.ServerAddr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
