// Package main API Server 入口
package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/apiserver/auth"
	"storefront/internal/apiserver/currency"
	"storefront/internal/apiserver/server"
	"storefront/internal/config"
	"storefront/internal/seed"
	"storefront/internal/shared/cache"
	cacheredis "storefront/internal/shared/cache/redis"
	"storefront/internal/shared/storage/dbutil"
	"storefront/internal/shared/storage/driver/postgres"
	"storefront/internal/shared/storage/driver/sqlite"
	"storefront/internal/shared/storage/repository"
)

func main() {
	seedFlag := flag.Bool("seed", false, "填充演示数据后继续启动")
	flag.Parse()

	// 加载配置（自动加载 .env，根据 APP_ENV 切换配置文件）
	cfg := config.Load()

	log.Printf("Starting API Server... [env=%s]", cfg.Env)
	log.Printf("Config: %s", cfg.String())

	// JWT 密钥：生产必须显式配置；开发环境缺省时生成随机密钥（重启后旧会话失效）
	if cfg.Auth.JWTSecret == "" {
		if cfg.Env == config.EnvProduction {
			log.Fatal("JWT_SECRET is required in production")
		}
		b := make([]byte, 32)
		rand.Read(b)
		cfg.Auth.JWTSecret = hex.EncodeToString(b)
		log.Printf("[warn] JWT_SECRET 未配置，已生成临时密钥（仅限开发环境）")
	}

	// 初始化数据库
	db, dialect, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := dialect.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	store := repository.NewStore(db, dialect)
	defer store.Close()
	log.Printf("Connected to database [driver=%s]", cfg.Database.Driver)

	// Redis 汇率缓存（可选，未配置时汇率请求直接回源）
	var rateCache cache.RateCache
	if cfg.Redis.URL != "" {
		rc, err := cacheredis.NewStoreFromURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rc.Close()
		rateCache = rc
		log.Println("Connected to Redis")
	}

	// 汇率上游
	rateSrc := currency.NewAPIClient(cfg.Currency.BaseURL, cfg.Currency.APIKey)

	// 演示数据
	if *seedFlag {
		if err := seed.Run(context.Background(), store); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
	}

	h := server.NewHandler(store, rateSrc, rateCache, server.Config{
		Auth: auth.Config{
			JWTSecret:    cfg.Auth.JWTSecret,
			SessionTTL:   cfg.Auth.SessionTTL,
			CookieSecure: cfg.Auth.CookieSecure,
		},
		RateTTL: cfg.Currency.CacheTTL,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 优雅关闭
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("API Server listening on :%s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server stopped")
}

// openDatabase 按配置的驱动打开数据库连接
func openDatabase(cfg *config.Config) (*sql.DB, dbutil.Dialect, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.Open(cfg.DatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		return db, postgres.NewDialect(), nil
	case "sqlite", "":
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, sqlite.NewDialect(), nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
	}
}
