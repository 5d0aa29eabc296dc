package dondominio

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option configures a Client in New. Options apply in order, so WithConfig and
// WithEnv should come before the options that adjust single settings.
type Option func(*Client) error

// WithConfig replaces every setting with cfg.
func WithConfig(cfg Config) Option {
	return func(c *Client) error {
		c.cfg = cfg
		return nil
	}
}

// WithEnv loads settings from DONDOMINIO_* variables and an optional .env file.
func WithEnv() Option {
	return func(c *Client) error {
		cfg, err := ConfigFromEnv()
		if err != nil {
			return err
		}
		c.cfg = cfg
		return nil
	}
}

func WithCredentials(user, password string) Option {
	return func(c *Client) error {
		c.cfg.User, c.cfg.Password = user, password
		return nil
	}
}

func WithEndpoint(endpoint string) Option {
	return func(c *Client) error {
		c.cfg.Endpoint = endpoint
		return nil
	}
}

func WithPort(port int) Option {
	return func(c *Client) error {
		c.cfg.Port = port
		return nil
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		c.cfg.Timeout = d
		return nil
	}
}

func WithVerifySSL(v bool) Option {
	return func(c *Client) error {
		c.cfg.VerifySSL = v
		return nil
	}
}

func WithThrowOnError(v bool) Option {
	return func(c *Client) error {
		c.cfg.ThrowOnError = v
		return nil
	}
}

func WithAutoValidate(v bool) Option {
	return func(c *Client) error {
		c.cfg.AutoValidate = v
		return nil
	}
}

func WithVersionCheck(v bool) Option {
	return func(c *Client) error {
		c.cfg.VersionCheck = v
		return nil
	}
}

// WithUserAgent adds or overrides one Key/Value field of the User-Agent header.
func WithUserAgent(key, value string) Option {
	return func(c *Client) error {
		if c.cfg.UserAgent == nil {
			c.cfg.UserAgent = map[string]string{}
		}
		c.cfg.UserAgent[key] = value
		return nil
	}
}

// WithLogger sets the logger used for version warnings and debug call logs.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) error {
		if l == nil {
			return errors.New("dondominio: nil logger")
		}
		c.log = l
		return nil
	}
}

// WithDebug logs every call, its parameters (password redacted) and the raw
// response at debug level.
func WithDebug(v bool) Option {
	return func(c *Client) error {
		c.cfg.Debug = v
		return nil
	}
}

// WithTransport replaces the HTTP transport, for tests or custom plumbing.
// Connection settings and WithHTTPDoer/WithRateLimit are then ignored.
func WithTransport(t Transport) Option {
	return func(c *Client) error {
		c.transport = t
		return nil
	}
}

// WithHTTPClient makes the default transport send requests through d.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) error {
		c.hc = d
		return nil
	}
}

// WithRateLimit spaces out calls to at most r per second with the given burst.
// Calls wait for their turn; nothing is retried.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) error {
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(r, burst)
		return nil
	}
}

// WithMetrics registers call counters and latency histograms on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) error {
		c.metrics = NewMetrics(reg)
		return nil
	}
}
