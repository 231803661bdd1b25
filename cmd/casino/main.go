package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Register pprof handlers
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frankieli/casino_engine/internal/config"
	casinoHttp "github.com/frankieli/casino_engine/internal/modules/casino/adapter/http"
	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	casinoDB "github.com/frankieli/casino_engine/internal/modules/casino/repository/db"
	casinoMemory "github.com/frankieli/casino_engine/internal/modules/casino/repository/memory"
	casinoRedis "github.com/frankieli/casino_engine/internal/modules/casino/repository/redis"
	"github.com/frankieli/casino_engine/internal/modules/casino/resolver"
	casinoUseCase "github.com/frankieli/casino_engine/internal/modules/casino/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// demo wallets created when CASINO_SEED_DEMO is on
var demoWallets = []struct {
	userID  int64
	balance int64
}{
	{1001, 100_000},
	{1002, 100_000},
}

func main() {
	// Parse command line flags
	pprofPort := flag.String("pprof-port", "", "Port to run pprof server on (e.g., 6060)")
	background := flag.Bool("d", false, "Run in background mode (disable console logging)")
	flag.Parse()

	cfg := config.LoadCasinoConfig()

	// If background is true, disable console logging (enableConsole = false)
	logger.InitWithFile("logs/casino/casino.log", cfg.Server.LogLevel, "json", !*background)
	defer logger.Flush()

	// Start pprof server if requested
	if *pprofPort != "" {
		go func() {
			addr := "localhost:" + *pprofPort
			logger.InfoGlobal().Str("addr", addr).Msg("📈 Starting pprof server")
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.ErrorGlobal().Err(err).Msg("Failed to start pprof server")
			}
		}()
	}

	fmt.Println("🚀 Starting Casino Engine... Logs are being written to logs/casino/casino.log (rotating)")
	logger.InfoGlobal().Msg("🎰 Starting Casino Engine...")

	// 1. Initialize Store
	var store domain.Store
	switch cfg.RepoType {
	case "db":
		dbConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)

		gdb, err := gorm.Open(postgres.Open(dbConnStr), &gorm.Config{
			Logger: logger.NewGormLogger(),
		})
		if err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to connect to database")
		}

		sqlDB, err := gdb.DB()
		if err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to get database instance")
		}

		// Postgres default max_connections is usually 100. Cap the pool
		// to leave room for other tools.
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to ping database")
		}

		dbStore := casinoDB.NewStore(gdb)
		if err := dbStore.AutoMigrate(); err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to migrate schema")
		}
		if cfg.Settings.SeedDemoData {
			if err := dbStore.SeedDemo(context.Background()); err != nil {
				logger.FatalGlobal().Err(err).Msg("Failed to seed demo catalog")
			}
			for _, w := range demoWallets {
				if err := dbStore.EnsureWallet(context.Background(), w.userID, w.balance); err != nil {
					logger.FatalGlobal().Err(err).Int64("user_id", w.userID).Msg("Failed to seed demo wallet")
				}
			}
		}
		store = dbStore
		logger.InfoGlobal().Msg("✅ Store: Postgres")

	default:
		memStore := casinoMemory.NewStore()
		if cfg.Settings.SeedDemoData {
			for _, game := range domain.DemoGames() {
				memStore.SeedGame(game)
			}
			for _, w := range demoWallets {
				memStore.SetBalance(w.userID, w.balance)
			}
		}
		store = memStore
		logger.InfoGlobal().Msg("✅ Store: Memory")
	}

	// 2. Initialize Redis-backed idempotency (optional)
	var idem casinoUseCase.IdempotencyStore
	rdb := goredis.NewClient(&goredis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.WarnGlobal().Err(err).Msg("⚠️ Redis unavailable, duplicate-request protection disabled")
	} else {
		idem = casinoRedis.NewIdempotencyStore(rdb, cfg.Settings.IdemLockTTL, cfg.Settings.IdemResultTTL)
		logger.InfoGlobal().Msg("✅ Redis connected")
	}

	// 3. Initialize Engine
	registry := resolver.NewRegistry()
	casinoUC := casinoUseCase.NewCasinoUseCase(store, registry, idem, cfg.Settings.CatalogCacheTTL)
	casinoHandler := casinoHttp.NewHandler(casinoUC)
	logger.InfoGlobal().Msg("✅ Casino engine initialized")

	// 4. Setup HTTP Server
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	casino := api.Group("/casino")
	casino.Use(casinoHttp.AuthMiddleware([]byte(cfg.JWT.Secret)))
	casinoHandler.RegisterRoutes(casino)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	logger.InfoGlobal().
		Str("port", cfg.Server.Port).
		Str("api_url", fmt.Sprintf("http://localhost:%s/api/casino", cfg.Server.Port)).
		Msg("🚀 Casino Engine running")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalGlobal().Err(err).Msg("HTTP server failed")
		}
	}()

	// 5. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoGlobal().Msg("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorGlobal().Err(err).Msg("Server forced to shutdown")
	}

	logger.InfoGlobal().Msg("👋 Server exited properly")
}
