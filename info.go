package dondominio

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Info summarizes the client settings and the result of a connection test.
type Info struct {
	Endpoint     string
	Port         int
	User         string
	Password     string // masked
	Timeout      time.Duration
	VerifySSL    bool
	ThrowOnError bool
	AutoValidate bool
	VersionCheck bool
	Debug        bool

	// Filled from tool/hello when the connection test succeeds.
	IP         string
	Lang       string
	APIVersion string
}

// Info checks the settings and calls tool/hello. The returned Info is
// populated with the settings even when the connection test fails.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	cfg := c.Config()
	info := &Info{
		Endpoint:     cfg.Endpoint,
		Port:         cfg.Port,
		User:         cfg.User,
		Password:     strings.Repeat("*", len(cfg.Password)),
		Timeout:      cfg.Timeout,
		VerifySSL:    cfg.VerifySSL,
		ThrowOnError: cfg.ThrowOnError,
		AutoValidate: cfg.AutoValidate,
		VersionCheck: cfg.VersionCheck,
		Debug:        cfg.Debug,
	}
	if err := cfg.check(); err != nil {
		return info, err
	}

	resp, err := c.Tool.Hello(ctx)
	if err != nil {
		return info, fmt.Errorf("connection test: %w", err)
	}
	if ok, _ := resp.Success(); !ok {
		return info, fmt.Errorf("connection test: %w", resp.Err())
	}
	info.IP = resp.GetString("ip")
	info.Lang = resp.GetString("lang")
	info.APIVersion = resp.GetString("version")
	return info, nil
}
