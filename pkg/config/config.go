package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Mail     MailConfig     `mapstructure:"mail"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug / release / test
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	Secret          string        `mapstructure:"secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	Issuer          string        `mapstructure:"issuer"`
}

// FeedConfig 价格表拉取与定时刷新配置
type FeedConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
	// robfig/cron 表达式（带秒），默认每天凌晨 3 点
	RefreshSpec    string `mapstructure:"refresh_spec"`
	RefreshEnabled bool   `mapstructure:"refresh_enabled"`
}

// MailConfig 邮件通知配置，Host 为空时退化为日志输出
type MailConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	From      string `mapstructure:"from"`
	QueueSize int    `mapstructure:"queue_size"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"` // development / production
}

// ==================== 加载 ====================

// Load 读取配置：config.yaml + 环境变量覆盖 (RETAIL_ 前缀)
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("RETAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失不算错：全部走默认值 + 环境变量
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.dsn",
		"host=localhost user=retail password=retail dbname=retail_orders port=5432 sslmode=disable")

	v.SetDefault("jwt.secret", "retail-orders-secret-change-in-production")
	v.SetDefault("jwt.access_token_ttl", 2*time.Hour)
	v.SetDefault("jwt.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("jwt.issuer", "retail-orders")

	v.SetDefault("feed.timeout", 20*time.Second)
	v.SetDefault("feed.retry_count", 3)
	v.SetDefault("feed.refresh_spec", "0 0 3 * * *")
	v.SetDefault("feed.refresh_enabled", true)

	v.SetDefault("mail.queue_size", 128)
	v.SetDefault("mail.from", "noreply@retail-orders.local")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "development")
}
