package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 測試時可替換
var (
	loadDotenv = godotenv.Load
	lookupEnv  = os.LookupEnv
)

type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string

	ServerAddr string
	BaseURL    string
	StaticDir  string

	SessionTTL    time.Duration
	AdminUsername string
	AdminPassword string

	WorkerCount      int
	RateLimitAuth    int // 每個 IP 每分鐘的驗證請求上限
	StatsRefreshSpec string
	LogLevel         slog.Level
}

// SecureCookies BASE_URL 是 https 時 session cookie 加上 Secure
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(strings.ToLower(c.BaseURL), "https://")
}

// Load 讀取環境變數；目前目錄有 .env 時先載入，已存在的環境變數不會被覆蓋
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("讀取 .env 失敗: %v", err)
	}

	cfg := &Config{
		RedisPassword:    env("REDIS_PASSWORD", ""),
		ServerAddr:       env("SERVER_ADDR", ":8080"),
		BaseURL:          strings.TrimRight(env("BASE_URL", "http://localhost:8080"), "/"),
		StaticDir:        env("STATIC_DIR", ""),
		AdminUsername:    env("ADMIN_USERNAME", "admin"),
		AdminPassword:    env("ADMIN_PASSWORD", "admin123"),
		StatsRefreshSpec: env("STATS_REFRESH_SPEC", "@every 1m"),
	}

	var err error
	if cfg.DatabaseURL, err = required("DATABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisAddr, err = required("REDIS_ADDR"); err != nil {
		return nil, err
	}
	redisDB, err := required("REDIS_DB")
	if err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = strconv.Atoi(redisDB); err != nil || cfg.RedisDB < 0 {
		return nil, fmt.Errorf("無效的 REDIS_DB: %q", redisDB)
	}
	if cfg.JWTSecret, err = required("JWT_SECRET"); err != nil {
		return nil, err
	}

	if cfg.WorkerCount, err = positiveInt("WORKER_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.RateLimitAuth, err = positiveInt("RATE_LIMIT_AUTH", 10); err != nil {
		return nil, err
	}

	ttl := env("SESSION_TTL", "168h")
	if cfg.SessionTTL, err = time.ParseDuration(ttl); err != nil || cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("無效的 SESSION_TTL: %q", ttl)
	}

	level := env("LOG_LEVEL", "info")
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("無效的 LOG_LEVEL: %q", level)
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME 與 ADMIN_PASSWORD 不可為空")
	}
	return cfg, nil
}

func env(key, def string) string {
	if v, ok := lookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func required(key string) (string, error) {
	v := env(key, "")
	if v == "" {
		return "", fmt.Errorf("環境變數 %s 未設定", key)
	}
	return v, nil
}

func positiveInt(key string, def int) (int, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return n, nil
}
