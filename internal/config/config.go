package config

import (
	"VNumbers/internal/events"
	"errors"
	"flag"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL         = "localhost:8081"
	defaultCooldownMinutes = 5
	defaultLockTTLSec      = 15
)

type Config struct {
	// Server-side settings
	DatabaseDSN         string `env:"DATABASE_URI"`
	DeletionCooldownMin int    `env:"DELETION_COOLDOWN_MIN"`
	RecoveryCooldownMin int    `env:"RECOVERY_COOLDOWN_MIN"`

	// Redis-лок для нескольких инстансов; пусто - локальный мьютекс
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// LockTTLSec должен быть больше самой долгой транзакции удаления/восстановления
	LockTTLSec int `env:"LOCK_TTL_SEC"`

	// Kafka для событий; пусто - события не отправляются
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// сертификат сервера, нужен при EnableHTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	// Client-side settings
	ServerURL string `env:"-"`
	Version   bool   `env:"-"` // show version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	var brokers string
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь SQLite)")
	flag.IntVar(&cfg.DeletionCooldownMin, "deletion-cooldown", cfg.DeletionCooldownMin, "окно таймера удаления, минуты")
	flag.IntVar(&cfg.RecoveryCooldownMin, "recovery-cooldown", cfg.RecoveryCooldownMin, "окно таймера восстановления, минуты")
	flag.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "адрес Redis для распределённого лока")
	flag.IntVar(&cfg.LockTTLSec, "lock-ttl", cfg.LockTTLSec, "TTL Redis-лока, секунды")
	flag.StringVar(&brokers, "kafka", strings.Join(cfg.KafkaBrokers, ","), "список брокеров Kafka через запятую")
	flag.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "топик для событий")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (server: serve TLS, client: use https scheme)")
	flag.StringVar(&cfg.TLSCertFile, "tls-cert", cfg.TLSCertFile, "путь к PEM-сертификату сервера")
	flag.StringVar(&cfg.TLSKeyFile, "tls-key", cfg.TLSKeyFile, "путь к PEM-ключу сервера")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.KafkaBrokers = splitList(brokers)

	// Defaults
	if cfg.DeletionCooldownMin <= 0 {
		cfg.DeletionCooldownMin = defaultCooldownMinutes
	}
	if cfg.RecoveryCooldownMin <= 0 {
		cfg.RecoveryCooldownMin = defaultCooldownMinutes
	}
	if cfg.LockTTLSec <= 0 {
		cfg.LockTTLSec = defaultLockTTLSec
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = events.DefaultTopic
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}

// DeletionWindow - окно таймера удаления.
func (c *Config) DeletionWindow() time.Duration {
	return time.Duration(c.DeletionCooldownMin) * time.Minute
}

// RecoveryWindow - окно таймера восстановления.
func (c *Config) RecoveryWindow() time.Duration {
	return time.Duration(c.RecoveryCooldownMin) * time.Minute
}

// ErrTLSFilesMissing - HTTPS включён, но сертификат или ключ не заданы.
var ErrTLSFilesMissing = errors.New("https enabled: TLS_CERT_FILE and TLS_KEY_FILE are required")

// ServerTLS возвращает пути сертификата и ключа, если сервер должен слушать TLS.
// Пустые пути без ошибки - обычный HTTP.
func (c *Config) ServerTLS() (certFile, keyFile string, err error) {
	if !c.EnableHTTPS {
		return "", "", nil
	}
	if c.TLSCertFile == "" || c.TLSKeyFile == "" {
		return "", "", ErrTLSFilesMissing
	}
	return c.TLSCertFile, c.TLSKeyFile, nil
}

// LockTTL - срок жизни Redis-лока жизненного цикла.
func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSec) * time.Second
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
