// Package config 统一配置管理
//
// 配置加载策略：
//  1. 从 .env 加载敏感信息（密码、密钥）和 APP_ENV
//  2. 根据 APP_ENV 加载对应的 configs/{env}.yaml 配置文件
//  3. 环境变量可覆盖 YAML 配置
//
// 凭据单一数据源：密码/密钥只存在 .env / 环境变量中，YAML 不存任何密码。
//
// 使用方式：
//   - 开发环境: APP_ENV=dev (默认，SQLite + 无 Redis 也能启动)
//   - 测试环境: APP_ENV=test
//   - 生产环境: APP_ENV=prod (PostgreSQL + Redis)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Currency CurrencyConfig `yaml:"currency"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "postgres" 或 "sqlite"（默认 sqlite）
	Path     string `yaml:"path"`   // SQLite 文件路径
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"-"` // 只从 DB_PASSWORD 环境变量读取
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig Redis 配置（可选依赖，URL 为空则禁用缓存）
type RedisConfig struct {
	URL string `yaml:"url"`
}

// AuthConfig 认证配置
// JWTSecret 只从 JWT_SECRET 环境变量读取，不存储在 YAML 中
type AuthConfig struct {
	JWTSecret    string        `yaml:"-"`
	SessionTTL   time.Duration `yaml:"session_ttl"`   // 默认 24h
	CookieSecure bool          `yaml:"cookie_secure"` // 生产环境置 true
}

// CurrencyConfig 汇率上游配置
// APIKey 只从 EXCHANGE_API_KEY 环境变量读取
type CurrencyConfig struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"-"`
	CacheTTL time.Duration `yaml:"cache_ttl"` // 汇率缓存有效期，默认 1h
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env      Environment
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Currency CurrencyConfig
}

// Load 加载配置
//
// 顺序：.env → configs/{APP_ENV}.yaml → 环境变量覆盖 → 默认值兜底。
// 配置文件不存在不是错误（全默认值也能启动开发环境）。
func Load() *Config {
	// .env 不存在时静默跳过
	_ = godotenv.Load()

	env := Environment(getEnv("APP_ENV", string(EnvDevelopment)))

	cfg := &Config{
		Env: env,
		Server: ServerConfig{
			Port: "3000",
		},
		Database: DatabaseConfig{
			Driver:  "sqlite",
			Path:    "storefront.db",
			Port:    5432,
			SSLMode: "disable",
		},
		Auth: AuthConfig{
			SessionTTL: 24 * time.Hour,
		},
		Currency: CurrencyConfig{
			BaseURL:  "https://v6.exchangerate-api.com/v6",
			CacheTTL: time.Hour,
		},
	}

	// YAML 配置文件
	if path := configPath(env); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var yc YAMLConfig
			if err := yaml.Unmarshal(data, &yc); err == nil {
				cfg.apply(&yc)
			}
		}
	}

	// 环境变量覆盖
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)

	// 敏感信息只从环境变量读取
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.Currency.APIKey = os.Getenv("EXCHANGE_API_KEY")

	if env == EnvProduction {
		cfg.Auth.CookieSecure = true
	}

	return cfg
}

// apply 合并 YAML 配置（零值不覆盖默认值）
func (c *Config) apply(yc *YAMLConfig) {
	if yc.Server.Port != "" {
		c.Server.Port = yc.Server.Port
	}
	if yc.Database.Driver != "" {
		c.Database.Driver = yc.Database.Driver
	}
	if yc.Database.Path != "" {
		c.Database.Path = yc.Database.Path
	}
	if yc.Database.Host != "" {
		c.Database.Host = yc.Database.Host
	}
	if yc.Database.Port != 0 {
		c.Database.Port = yc.Database.Port
	}
	if yc.Database.User != "" {
		c.Database.User = yc.Database.User
	}
	if yc.Database.Name != "" {
		c.Database.Name = yc.Database.Name
	}
	if yc.Database.SSLMode != "" {
		c.Database.SSLMode = yc.Database.SSLMode
	}
	if yc.Redis.URL != "" {
		c.Redis.URL = yc.Redis.URL
	}
	if yc.Auth.SessionTTL != 0 {
		c.Auth.SessionTTL = yc.Auth.SessionTTL
	}
	if yc.Auth.CookieSecure {
		c.Auth.CookieSecure = true
	}
	if yc.Currency.BaseURL != "" {
		c.Currency.BaseURL = yc.Currency.BaseURL
	}
	if yc.Currency.CacheTTL != 0 {
		c.Currency.CacheTTL = yc.Currency.CacheTTL
	}
}

// configPath 确定配置文件路径
//  1. CONFIG_DIR 环境变量
//  2. 按 APP_ENV 选择默认路径：prod → /etc/storefront/，其他 → ./configs/
func configPath(env Environment) string {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		if env == EnvProduction {
			dir = "/etc/storefront"
		} else {
			dir = "configs"
		}
	}
	return filepath.Join(dir, string(env)+".yaml")
}

// DatabaseURL 拼接 PostgreSQL 连接串
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User, c.Database.Password, c.Database.Host,
		c.Database.Port, c.Database.Name, c.Database.SSLMode)
}

// String 配置摘要（不含敏感信息）
func (c *Config) String() string {
	return fmt.Sprintf("env=%s port=%s db=%s redis=%t",
		c.Env, c.Server.Port, c.Database.Driver, c.Redis.URL != "")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
