// Package config собирает конфигурацию SnipScan из флагов командной строки и переменных окружения.
// Переменные окружения имеют наивысший приоритет.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// DefaultAPIBaseURL адрес публичного развертывания сервиса сокращения
const DefaultAPIBaseURL = "https://url-shortner-backend-pi.vercel.app"

var (
	// ErrInvalidAPIBaseURL возвращается, если адрес сервиса сокращения не является абсолютным http(s) URL
	ErrInvalidAPIBaseURL = errors.New("invalid API base URL")
	// ErrNegativeTimeout возвращается для отрицательного таймаута запроса
	ErrNegativeTimeout = errors.New("request timeout must not be negative")
)

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress  string        `env:"SERVER_ADDRESS"`  // Адрес для запуска HTTP-сервера
	APIBaseURL     string        `env:"API_BASE_URL"`    // Базовый адрес внешнего сервиса сокращения
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"` // Таймаут одного запроса к сервису, 0 - без ограничения
	SessionSecret  string        `env:"SESSION_SECRET"`  // Ключ подписи cookie сессии
	SessionTTL     time.Duration `env:"SESSION_TTL"`     // Время жизни неактивной формы
	LogLevel       string        `env:"LOG_LEVEL"`
	EnableHTTPS    string        `env:"ENABLE_HTTPS"`
	TLSCertFile    string        `env:"TLS_CERT_FILE"`
	TLSKeyFile     string        `env:"TLS_KEY_FILE"`
}

// NewConfig инициализирует конфигурацию, читая флаги и переменные окружения.
func NewConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:  ":8080",
		APIBaseURL:     DefaultAPIBaseURL,
		RequestTimeout: 10 * time.Second,
		SessionTTL:     30 * time.Minute,
		LogLevel:       "info",
		TLSCertFile:    "server.crt",
		TLSKeyFile:     "server.key",
	}

	var enableHTTPS bool
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	flag.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "Базовый адрес сервиса сокращения (env: API_BASE_URL)")
	flag.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "Таймаут запроса к сервису сокращения (env: REQUEST_TIMEOUT)")
	flag.StringVar(&cfg.SessionSecret, "k", cfg.SessionSecret, "Ключ подписи cookie сессии (env: SESSION_SECRET)")
	flag.DurationVar(&cfg.SessionTTL, "ttl", cfg.SessionTTL, "Время жизни неактивной сессии (env: SESSION_TTL)")
	flag.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Уровень логирования (env: LOG_LEVEL)")
	flag.BoolVar(&enableHTTPS, "s", false, "Включить HTTPS (env: ENABLE_HTTPS)")
	flag.StringVar(&cfg.TLSCertFile, "cert", cfg.TLSCertFile, "Путь к TLS сертификату (env: TLS_CERT_FILE)")
	flag.StringVar(&cfg.TLSKeyFile, "key", cfg.TLSKeyFile, "Путь к TLS ключу (env: TLS_KEY_FILE)")

	flag.Parse()

	if enableHTTPS {
		cfg.EnableHTTPS = "true"
	}

	// Переменные окружения имеют наивысший приоритет
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("error generating session secret: %w", err)
		}
		cfg.SessionSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIBaseURL, c.APIBaseURL)
	}
	if c.RequestTimeout < 0 {
		return ErrNegativeTimeout
	}
	return nil
}

// IsHTTPSEnabled сообщает, нужно ли запускать сервер по HTTPS.
// Любое непустое значение, кроме "false" и "0", включает HTTPS.
func (c *Config) IsHTTPSEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(c.EnableHTTPS)) {
	case "", "false", "0":
		return false
	default:
		return true
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
