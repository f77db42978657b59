package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EmailProviderSendgrid = "sendgrid"
	EmailProviderPostmark = "postmark"
	EmailProviderNone     = "none"
)

type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	JWT     JWTConfig
	Pricing PricingConfig
	Cart    CartConfig
	Email   EmailConfig
	Redis   RedisConfig
	Admin   AdminConfig
	CORS    CORSConfig
}

// Load reads the process environment. Call godotenv first if a .env file should be honoured.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	switch strings.ToLower(c.Email.Provider) {
	case EmailProviderSendgrid:
		if c.Email.SendgridAPIKey == "" {
			return fmt.Errorf("SENDGRID_API_KEY is required when EMAIL_PROVIDER=%s", EmailProviderSendgrid)
		}
	case EmailProviderPostmark:
		if c.Email.PostmarkToken == "" {
			return fmt.Errorf("POSTMARK_API_TOKEN is required when EMAIL_PROVIDER=%s", EmailProviderPostmark)
		}
	case EmailProviderNone:
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER %q", c.Email.Provider)
	}
	if c.Pricing.TaxRate.IsNegative() || c.Pricing.FlatShipping.IsNegative() || c.Pricing.FreeShippingThreshold.IsNegative() {
		return fmt.Errorf("pricing values must not be negative")
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

type AppConfig struct {
	Env            string        `envconfig:"APP_ENV" default:"development"`
	ServiceName    string        `envconfig:"SERVICE_NAME" default:"frozo-api"`
	Port           string        `envconfig:"PORT" default:"8000"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string        `envconfig:"LOG_FORMAT" default:"json"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, "production")
}

type MongoConfig struct {
	URI            string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database       string        `envconfig:"MONGO_DATABASE" default:"frozo"`
	ConnectTimeout time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10s"`
}

type JWTConfig struct {
	Secret     string        `envconfig:"JWT_SECRET" required:"true"`
	Expiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
}

type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"FREE_SHIPPING_THRESHOLD" default:"50"`
	FlatShipping          decimal.Decimal `envconfig:"SHIPPING_FEE" default:"5.99"`
	TaxRate               decimal.Decimal `envconfig:"TAX_RATE" default:"0.08"`
}

type CartConfig struct {
	// OptimisticLocking rejects saves whose loaded version is stale instead of last-write-wins.
	OptimisticLocking bool `envconfig:"CART_OPTIMISTIC_LOCKING" default:"false"`
}

type EmailConfig struct {
	Provider       string `envconfig:"EMAIL_PROVIDER" default:"none"`
	SendgridAPIKey string `envconfig:"SENDGRID_API_KEY"`
	PostmarkToken  string `envconfig:"POSTMARK_API_TOKEN"`
	Sender         string `envconfig:"EMAIL_SENDER" default:"no-reply@frozo.local"`
	SenderName     string `envconfig:"EMAIL_SENDER_NAME" default:"Frozo Frozen Foods"`
	NotifyAddress  string `envconfig:"CONTACT_NOTIFY_EMAIL"`
}

type RedisConfig struct {
	// URL enables the product snapshot cache when set.
	URL        string        `envconfig:"REDIS_URL"`
	ProductTTL time.Duration `envconfig:"PRODUCT_CACHE_TTL" default:"5m"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type AdminConfig struct {
	Email    string `envconfig:"ADMIN_EMAIL"`
	Password string `envconfig:"ADMIN_PASSWORD"`
	Name     string `envconfig:"ADMIN_NAME" default:"Administrator"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}
