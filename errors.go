package dondominio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAPI matches every error reported by the API, including client-side validation failures.
	ErrAPI = errors.New("dondominio: api error")
	// ErrValidation is the kind of a call rejected before it reached the transport (code -1).
	ErrValidation = errors.New("dondominio: validation error")
	// ErrTransport matches any *TransportError.
	ErrTransport = errors.New("dondominio: transport error")
	// ErrMalformedResponse matches a *ResponseError: the body did not carry a success flag.
	ErrMalformedResponse = errors.New("dondominio: malformed response")

	ErrMissingCredentials = errors.New("dondominio: api username and password are required")
	ErrUnknownFormat      = errors.New("dondominio: unknown output format")
)

// APIError is an error the API reported in its envelope, or a synthetic one built
// from client-side validation. errors.Is matches its Kind, every ancestor of that
// Kind (its family) and ErrAPI.
type APIError struct {
	Kind     error
	Code     string
	Message  string
	Messages []string
	Action   string
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Code != "" {
		fmt.Fprintf(&b, " (code %s)", e.Code)
	}
	if e.Action != "" {
		fmt.Fprintf(&b, " in %s", e.Action)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *APIError) Is(target error) bool {
	if target == ErrAPI {
		return true
	}
	for k := e.Kind; k != nil; k = kindParent[k] {
		if k == target {
			return true
		}
	}
	return false
}

func (e *APIError) Unwrap() error { return e.Kind }

// TransportError reports a failure to obtain a response body at all.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("dondominio: POST %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("dondominio: POST %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// ResponseError reports a body that could not be read as an API envelope.
type ResponseError struct {
	Raw string
	Err error // decode error, nil when the JSON was valid but incomplete
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", ErrMalformedResponse, e.Err)
	}
	return ErrMalformedResponse.Error() + ": missing success flag"
}

func (e *ResponseError) Unwrap() []error { return []error{ErrMalformedResponse, e.Err} }
