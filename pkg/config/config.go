package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by the terminal.
const EnvPrefix = "pos"

// Environment variable names, exported for tests and docs.
const (
	EnvAPIBaseURL           = "POS_API_BASE_URL"
	EnvAPITimeout           = "POS_API_TIMEOUT"
	EnvLogLevel             = "POS_LOG_LEVEL"
	EnvSessionDBPath        = "POS_SESSION_DB"
	EnvSessionTTL           = "POS_SESSION_TTL"
	EnvStoreName            = "POS_STORE_NAME"
	EnvDefaultCustomerName  = "POS_DEFAULT_CUSTOMER_NAME"
	EnvDefaultCustomerPhone = "POS_DEFAULT_CUSTOMER_PHONE"
	EnvDefaultPayment       = "POS_DEFAULT_PAYMENT_METHOD"
	EnvOrdersPageSize       = "POS_ORDERS_PAGE_SIZE"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Receipt ReceiptConfig
	Orders  OrdersConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	LogLevel string `envconfig:"POS_LOG_LEVEL" default:"info"`
}

type APIConfig struct {
	BaseURL string        `envconfig:"POS_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"POS_API_TIMEOUT" default:"15s"`
}

func (a *APIConfig) validate() error {
	trimmed := strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if trimmed == "" {
		return fmt.Errorf("%s is required", EnvAPIBaseURL)
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return fmt.Errorf("%s must be an http(s) URL", EnvAPIBaseURL)
	}
	a.BaseURL = trimmed
	return nil
}

type SessionConfig struct {
	DBPath string        `envconfig:"POS_SESSION_DB" default:"pos-session.db"`
	TTL    time.Duration `envconfig:"POS_SESSION_TTL" default:"24h"`
}

// ReceiptConfig carries the fixed checkout fields that are not collected
// through the terminal yet.
type ReceiptConfig struct {
	StoreName            string `envconfig:"POS_STORE_NAME" default:"SSIT Store"`
	DefaultCustomerName  string `envconfig:"POS_DEFAULT_CUSTOMER_NAME" default:"Khach Le"`
	DefaultCustomerPhone string `envconfig:"POS_DEFAULT_CUSTOMER_PHONE" default:"0344279128"`
	DefaultPaymentMethod string `envconfig:"POS_DEFAULT_PAYMENT_METHOD" default:"CASH"`
}

type OrdersConfig struct {
	PageSize int `envconfig:"POS_ORDERS_PAGE_SIZE" default:"20"`
}
