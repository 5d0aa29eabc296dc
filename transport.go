package dondominio

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Transport sends one API call and returns the raw response body.
type Transport interface {
	Execute(ctx context.Context, path string, params Params) (string, error)
}

// Doer is the minimal http.Client interface we depend on (handy for tests/mocks).
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// HTTPTransport posts form-encoded calls to the API endpoint.
type HTTPTransport struct {
	hc      Doer
	baseURL string
	ua      string
	limiter *rate.Limiter
	log     *zap.Logger
	debug   bool
}

type TransportOption func(*HTTPTransport)

func WithHTTPDoer(d Doer) TransportOption { return func(t *HTTPTransport) { t.hc = d } }
func WithTransportLogger(l *zap.Logger) TransportOption {
	return func(t *HTTPTransport) { t.log = l }
}

// WithLimiter makes every call wait for a token from l before sending.
func WithLimiter(l *rate.Limiter) TransportOption { return func(t *HTTPTransport) { t.limiter = l } }

// NewHTTPTransport builds a transport from the connection settings of cfg.
func NewHTTPTransport(cfg Config, opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		hc:      defaultHTTPClient(cfg),
		baseURL: baseURL(cfg.Endpoint, cfg.Port),
		ua:      buildUserAgent(cfg.UserAgent),
		log:     zap.NewNop(),
		debug:   cfg.Debug,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func defaultHTTPClient(cfg Config) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.VerifySSL {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via Config.VerifySSL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// Execute posts params to path and returns the body. Any failure to obtain a
// 2xx body is a *TransportError.
func (t *HTTPTransport) Execute(ctx context.Context, path string, params Params) (string, error) {
	u := joinURL(t.baseURL, path)

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", &TransportError{URL: u, Err: err}
		}
	}

	form := encodeForm(params)
	form.Set("output-format", "json")
	form.Set("output-pretty", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &TransportError{URL: u, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.ua)
	req.Header.Set("X-Request-ID", reqID)

	if t.debug {
		t.log.Debug("calling",
			zap.String("url", u),
			zap.String("request_id", reqID),
			zap.Any("params", redact(form)),
		)
	}

	start := time.Now()
	resp, err := t.hc.Do(req)
	if err != nil {
		return "", &TransportError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	elapsed := time.Since(start)
	if err != nil {
		return "", &TransportError{URL: u, StatusCode: resp.StatusCode, Err: err}
	}

	if t.debug {
		t.log.Debug("completed",
			zap.String("url", u),
			zap.String("request_id", reqID),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", elapsed),
			zap.ByteString("body", b),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", resp.Status, truncate(string(b), 512)),
		}
	}
	return string(b), nil
}

// Close releases idle connections held by the underlying http.Client.
func (t *HTTPTransport) Close() {
	if c, ok := t.hc.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}

// UserAgent returns the User-Agent header sent with every call.
func (t *HTTPTransport) UserAgent() string { return t.ua }

// encodeForm flattens params into form fields. Slices become repeated key[]
// fields, maps become key[sub] fields and nil values are dropped.
func encodeForm(params Params) url.Values {
	v := url.Values{}
	for k, val := range params {
		addFormValue(v, k, val)
	}
	return v
}

func addFormValue(v url.Values, key string, val any) {
	switch x := val.(type) {
	case nil:
	case string:
		v.Add(key, x)
	case bool:
		v.Add(key, strconv.FormatBool(x))
	case []string:
		for _, s := range x {
			v.Add(key+"[]", s)
		}
	case []any:
		for _, item := range x {
			addFormValue(v, key+"[]", item)
		}
	case Params:
		addFormValue(v, key, map[string]any(x))
	case map[string]any:
		for sub, item := range x {
			addFormValue(v, key+"["+sub+"]", item)
		}
	case map[string]string:
		for sub, s := range x {
			v.Add(key+"["+sub+"]", s)
		}
	default:
		v.Add(key, scalarString(x))
	}
}

func redact(form url.Values) map[string]string {
	out := make(map[string]string, len(form))
	for k := range form {
		if k == "apipasswd" {
			out[k] = "********"
			continue
		}
		out[k] = form.Get(k)
	}
	return out
}

// baseURL appends port to endpoint unless the endpoint already carries one or
// the port is the scheme's default.
func baseURL(endpoint string, port int) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || u.Port() != "" || port <= 0 {
		return endpoint
	}
	if (u.Scheme == "https" && port == 443) || (u.Scheme == "http" && port == 80) {
		return endpoint
	}
	u.Host = u.Host + ":" + strconv.Itoa(port)
	return u.String()
}

// userAgentFields are always present and come first, in this order.
var userAgentFields = []string{"ClientPlatform", "ClientVersion", "GoVersion", "OperatingSystem", "OperatingSystemVersion"}

// buildUserAgent renders "Key/Value;" pairs. Extra entries override the
// defaults and are appended in key order.
func buildUserAgent(extra map[string]string) string {
	fields := map[string]string{
		"ClientPlatform":         "Go",
		"ClientVersion":          ClientVersion,
		"GoVersion":              strings.TrimPrefix(runtime.Version(), "go"),
		"OperatingSystem":        runtime.GOOS,
		"OperatingSystemVersion": runtime.GOARCH,
	}
	var custom []string
	for k, v := range extra {
		if _, known := fields[k]; !known {
			custom = append(custom, k)
		}
		fields[k] = v
	}
	slices.Sort(custom)

	var b strings.Builder
	for _, k := range append(slices.Clone(userAgentFields), custom...) {
		b.WriteString(k)
		b.WriteByte('/')
		b.WriteString(fields[k])
		b.WriteByte(';')
	}
	return b.String()
}
