package dondominio

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Defaults used by NewConfig and by the env tags below.
const (
	DefaultEndpoint = "https://simple-api.dondominio.net"
	DefaultPort     = 443
	DefaultTimeout  = 15 * time.Second

	// ClientVersion is the API version this client was written against.
	ClientVersion = "1.1"
)

// EnvPrefix is prepended to every variable read by ConfigFromEnv.
const EnvPrefix = "DONDOMINIO_"

// Config holds the settings of a Client. The zero value is not usable; start
// from NewConfig or ConfigFromEnv.
type Config struct {
	Endpoint string        `env:"ENDPOINT" envDefault:"https://simple-api.dondominio.net"`
	Port     int           `env:"PORT" envDefault:"443"`
	User     string        `env:"API_USER"`
	Password string        `env:"API_PASSWORD"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"15s"`
	// VerifySSL checks the server certificate. Turn it off only against test endpoints.
	VerifySSL    bool `env:"VERIFY_SSL" envDefault:"true"`
	ThrowOnError bool `env:"THROW_ON_ERROR" envDefault:"true"`
	AutoValidate bool `env:"AUTO_VALIDATE" envDefault:"true"`
	VersionCheck bool `env:"VERSION_CHECK" envDefault:"true"`
	Debug        bool `env:"DEBUG"`
	// UserAgent adds fields to the key/value user agent, as "Key:Value,Key:Value".
	UserAgent map[string]string `env:"USER_AGENT"`
}

// NewConfig returns a Config with every default applied.
func NewConfig() Config {
	return Config{
		Endpoint:     DefaultEndpoint,
		Port:         DefaultPort,
		Timeout:      DefaultTimeout,
		VerifySSL:    true,
		ThrowOnError: true,
		AutoValidate: true,
		VersionCheck: true,
	}
}

// ConfigFromEnv loads a .env file when one exists and parses DONDOMINIO_*
// variables into a Config.
func ConfigFromEnv() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("dondominio: parse env config: %w", err)
	}
	return cfg, nil
}

// check reports the first setting that keeps the client from working.
func (c Config) check() error {
	if c.User == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	if c.Endpoint == "" {
		return fmt.Errorf("dondominio: endpoint is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("dondominio: invalid port %d", c.Port)
	}
	return nil
}
