package dondominio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Code is the envelope's errorCode. The API sends it as a number, the
// synthetic validation envelope carries -1, and some gateways quote it.
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*c = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("errorCode: %w", err)
		}
		*c = Code(n.String())
	}
	return nil
}

func (c Code) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(c), 10, 64); err == nil {
		return []byte(c), nil
	}
	return json.Marshal(string(c))
}

// empty mirrors the API's notion of "no error code": absent or zero.
func (c Code) empty() bool { return c == "" || c == "0" }

// Messages accepts either a single string or a list of strings.
type Messages []string

func (m *Messages) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*m = nil
	case string:
		*m = Messages{x}
	case []any:
		out := make(Messages, 0, len(x))
		for _, v := range x {
			out = append(out, scalarString(v))
		}
		*m = out
	default:
		*m = Messages{scalarString(x)}
	}
	return nil
}

// Envelope is the JSON object every API call answers with.
type Envelope struct {
	Success      *bool          `json:"success"`
	ErrorCode    Code           `json:"errorCode"`
	ErrorCodeMsg string         `json:"errorCodeMsg"`
	Action       string         `json:"action,omitempty"`
	Version      string         `json:"version,omitempty"`
	ResponseData map[string]any `json:"responseData,omitempty"`
	Messages     Messages       `json:"messages"`
}

func (e *Envelope) UnmarshalJSON(b []byte) error {
	type plain Envelope
	var aux struct {
		plain
		ResponseData json.RawMessage `json:"responseData"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Envelope(aux.plain)
	data, err := decodeResponseData(aux.ResponseData)
	if err != nil {
		return fmt.Errorf("responseData: %w", err)
	}
	e.ResponseData = data
	return nil
}

// decodeResponseData accepts an object or a list. Lists, which the API emits for
// empty results, are keyed by index.
func decodeResponseData(b json.RawMessage) (map[string]any, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case map[string]any:
		return x, nil
	case []any:
		m := make(map[string]any, len(x))
		for i, item := range x {
			m[strconv.Itoa(i)] = item
		}
		return m, nil
	}
	return map[string]any{"0": v}, nil
}

// Response is the parsed result of one API call. It is not modified after
// construction.
type Response struct {
	env       Envelope
	raw       string
	decodeErr error
}

// NewResponse parses raw without ever failing. A body that is not an envelope
// yields a Response whose Success reports absent and whose Err describes the
// problem.
func NewResponse(raw string) *Response {
	r := &Response{raw: raw}
	if err := json.Unmarshal([]byte(raw), &r.env); err != nil {
		r.env = Envelope{}
		r.decodeErr = err
	}
	return r
}

// ParseResponse is NewResponse followed by Err: it returns the Response together
// with the error an unsuccessful or malformed envelope maps to.
func ParseResponse(raw string) (*Response, error) {
	r := NewResponse(raw)
	return r, r.Err()
}

// Err returns nil for a successful envelope, a *ResponseError when the success
// flag is absent and the result of CastError otherwise.
func (r *Response) Err() error {
	if r.env.Success == nil {
		return &ResponseError{Raw: r.raw, Err: r.decodeErr}
	}
	if *r.env.Success {
		return nil
	}
	return CastError(r.env)
}

// CastError maps an unsuccessful envelope to its *APIError. An envelope without
// an error code yields a generic ErrAPI error carrying a dump of the envelope.
func CastError(env Envelope) *APIError {
	if env.ErrorCode.empty() {
		dump, _ := json.Marshal(env)
		return &APIError{
			Kind:     ErrAPI,
			Code:     string(env.ErrorCode),
			Message:  "unexpected error: " + string(dump),
			Messages: env.Messages,
			Action:   env.Action,
		}
	}
	return &APIError{
		Kind:     KindForCode(string(env.ErrorCode)),
		Code:     string(env.ErrorCode),
		Message:  strings.Join(env.Messages, "; "),
		Messages: env.Messages,
		Action:   env.Action,
	}
}

// Success returns the envelope's success flag; ok is false when the flag was absent.
func (r *Response) Success() (success, ok bool) {
	if r.env.Success == nil {
		return false, false
	}
	return *r.env.Success, true
}

func (r *Response) ErrorCode() string    { return string(r.env.ErrorCode) }
func (r *Response) ErrorCodeMsg() string { return r.env.ErrorCodeMsg }
func (r *Response) Action() string       { return r.env.Action }
func (r *Response) Version() string      { return r.env.Version }
func (r *Response) Messages() []string   { return r.env.Messages }
func (r *Response) Raw() string          { return r.raw }
func (r *Response) Envelope() Envelope   { return r.env }

// ResponseData returns a shallow copy of the payload.
func (r *Response) ResponseData() map[string]any { return maps.Clone(r.env.ResponseData) }

// Get returns the top-level responseData entry for key.
func (r *Response) Get(key string) (any, bool) {
	v, ok := r.env.ResponseData[key]
	return v, ok
}

// GetString returns the entry for key rendered as a string, or "" when absent.
func (r *Response) GetString(key string) string {
	v, ok := r.Get(key)
	if !ok || v == nil {
		return ""
	}
	return scalarString(v)
}

// Output renders responseData in one of the formats accepted by Render.
func (r *Response) Output(format string) (string, error) {
	var b strings.Builder
	if err := Render(&b, format, r.env.ResponseData); err != nil {
		return "", err
	}
	return b.String(), nil
}
