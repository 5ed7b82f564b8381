package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/niranjan1960/banos-dessert/internal/service"
	"github.com/niranjan1960/banos-dessert/internal/store"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Env, Port string
	LogLevel  string

	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool
	MountPrefix  string
	AdminAPIKey  string

	RequestTimeout time.Duration

	StoreDriver string
	StorePath   string
	DSN         string
	MongoURI    string
	MongoDB     string
	StorePolicy store.Policy

	Pricing      service.Pricing
	StatusPolicy service.StatusPolicy

	SMTP service.SMTPConfig
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// LoadConfig reads the environment. Malformed values are collected and
// returned together.
func LoadConfig() (Config, error) {
	var errs []error
	p := parser{errs: &errs}

	cfg := Config{
		Env:      getEnv("APP_ENV", "dev"),
		Port:     getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		SessionTTL:   p.duration("SESSION_TTL", 7*24*time.Hour),
		MountPrefix:  normalizePrefix(getEnv("MOUNT_PREFIX", "/make-server-6bcb6267")),
		AdminAPIKey:  getEnv("ADMIN_API_KEY", ""),
		CookieSecure: p.bool("COOKIE_SECURE", false),

		RequestTimeout: p.duration("REQUEST_TIMEOUT", 15*time.Second),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
		StorePath:   getEnv("STORE_PATH", "data/store.json"),
		DSN:         getEnv("DB_DSN", ""),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "banos"),

		SMTP: service.SMTPConfig{
			Host:    getEnv("SMTP_HOST", ""),
			Port:    getEnv("SMTP_PORT", "587"),
			From:    getEnv("SMTP_FROM", "orders@banos-sweets.local"),
			Timeout: p.duration("SMTP_TIMEOUT", 10*time.Second),
		},
	}

	def := store.DefaultPolicy()
	cfg.StorePolicy = store.Policy{
		Timeout:  p.duration("STORE_TIMEOUT", def.Timeout),
		Attempts: p.int("STORE_RETRIES", def.Attempts),
		Backoff:  def.Backoff,
	}

	pricing := service.DefaultPricing()
	cfg.Pricing = service.Pricing{
		DeliveryFee:   p.money("DELIVERY_FEE", pricing.DeliveryFee),
		FreeThreshold: p.money("FREE_DELIVERY_THRESHOLD", pricing.FreeThreshold),
	}

	policy, err := service.ParseStatusPolicy(getEnv("ORDER_STATUS_POLICY", ""))
	if err != nil {
		errs = append(errs, err)
	}
	cfg.StatusPolicy = policy

	switch cfg.StoreDriver {
	case DriverMemory, DriverFile, DriverMongo:
	case DriverPostgres:
		if cfg.DSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver))
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "prod" {
			errs = append(errs, errors.New("JWT_SECRET is required in prod"))
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg, errors.Join(errs...)
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

type parser struct{ errs *[]error }

func (p parser) fail(k, v string, err error) {
	*p.errs = append(*p.errs, fmt.Errorf("%s=%q: %w", k, v, err))
}

func (p parser) int(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(k, v, err)
		return d
	}
	return n
}

func (p parser) bool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(k, v, err)
		return d
	}
	return b
}

func (p parser) duration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	t, err := time.ParseDuration(v)
	if err != nil {
		p.fail(k, v, err)
		return d
	}
	return t
}

func (p parser) money(k string, d decimal.Decimal) decimal.Decimal {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	m, err := decimal.NewFromString(v)
	if err != nil {
		p.fail(k, v, err)
		return d
	}
	if m.IsNegative() {
		p.fail(k, v, errors.New("must not be negative"))
		return d
	}
	return m
}
