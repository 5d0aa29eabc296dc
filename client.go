package dondominio

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client is a DonDominio API client. It is safe for concurrent use provided its
// Transport is; the default HTTP transport is.
type Client struct {
	cfg       Config
	transport Transport
	log       *zap.Logger
	metrics   *Metrics

	// inputs for the default transport
	hc      Doer
	limiter *rate.Limiter

	// behavior, adjustable after construction
	throwOnError atomic.Bool
	autoValidate atomic.Bool
	versionCheck atomic.Bool

	Account *AccountAPI
	Contact *ContactAPI
	Domain  *DomainAPI
	Service *ServiceAPI
	SSL     *SSLAPI
	Tool    *ToolAPI
	User    *UserAPI

	modules map[string]*module
}

// New returns a Client. Credentials are required, through WithCredentials,
// WithConfig or WithEnv.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		cfg: NewConfig(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.cfg.check(); err != nil {
		return nil, err
	}

	if c.transport == nil {
		topts := []TransportOption{WithTransportLogger(c.log)}
		if c.hc != nil {
			topts = append(topts, WithHTTPDoer(c.hc))
		}
		if c.limiter != nil {
			topts = append(topts, WithLimiter(c.limiter))
		}
		c.transport = NewHTTPTransport(c.cfg, topts...)
	}

	c.throwOnError.Store(c.cfg.ThrowOnError)
	c.autoValidate.Store(c.cfg.AutoValidate)
	c.versionCheck.Store(c.cfg.VersionCheck)

	c.Account = newAccountAPI(c)
	c.Contact = newContactAPI(c)
	c.Domain = newDomainAPI(c)
	c.Service = newServiceAPI(c)
	c.SSL = newSSLAPI(c)
	c.Tool = newToolAPI(c)
	c.User = newUserAPI(c)
	c.modules = map[string]*module{
		"account": &c.Account.module,
		"contact": &c.Contact.module,
		"domain":  &c.Domain.module,
		"service": &c.Service.module,
		"ssl":     &c.SSL.module,
		"tool":    &c.Tool.module,
		"user":    &c.User.module,
	}
	return c, nil
}

// Call dispatches "resource_operation" (for example "domain_check" or
// "service_mailList") to the matching wrapper. A name without an underscore,
// an unknown resource or an unknown operation is a programming error and panics.
func (c *Client) Call(ctx context.Context, name string, args Params) (*Response, error) {
	resource, op, ok := strings.Cut(name, "_")
	if !ok {
		panic(fmt.Sprintf("dondominio: invalid call: %s", name))
	}
	m, ok := c.modules[resource]
	if !ok {
		panic(fmt.Sprintf("dondominio: undefined module: %s", resource))
	}
	return m.Proxy(ctx, op, args)
}

// HasCall reports whether Call would accept name.
func (c *Client) HasCall(name string) bool {
	resource, op, ok := strings.Cut(name, "_")
	if !ok {
		return false
	}
	m, ok := c.modules[resource]
	return ok && m.Has(op)
}

// Calls lists every name Call accepts, grouped by resource.
func (c *Client) Calls() map[string][]string {
	out := make(map[string][]string, len(c.modules))
	for name, m := range c.modules {
		out[name] = m.Operations()
	}
	return out
}

// Config returns a copy of the settings with the current behavior flags.
func (c *Client) Config() Config {
	cfg := c.cfg
	cfg.ThrowOnError = c.throwOnError.Load()
	cfg.AutoValidate = c.autoValidate.Load()
	cfg.VersionCheck = c.versionCheck.Load()
	return cfg
}

func (c *Client) SetThrowOnError(v bool) { c.throwOnError.Store(v) }
func (c *Client) SetAutoValidate(v bool) { c.autoValidate.Store(v) }
func (c *Client) SetVersionCheck(v bool) { c.versionCheck.Store(v) }

// Close releases the transport's idle connections. The client stays usable.
func (c *Client) Close() error {
	if cl, ok := c.transport.(interface{ Close() }); ok {
		cl.Close()
	}
	_ = c.log.Sync()
	return nil
}
