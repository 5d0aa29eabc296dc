package dondominio

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

const validationErrorMsg = "Validation error"

// execute runs one operation: validate, send, parse. Validation failures never
// reach the transport. Transport failures are always returned as errors; API
// failures only when the client throws on error. A non-nil Response accompanies
// every non-transport outcome.
func (c *Client) execute(ctx context.Context, path string, params Params, rules Rules) (*Response, error) {
	action := strings.Trim(path, "/")
	start := time.Now()

	if c.autoValidate.Load() && len(rules) > 0 {
		if msgs := Validate(params, rules); len(msgs) > 0 {
			resp := validationFailure(msgs)
			err := resp.Err()
			c.metrics.observe(action, err, time.Since(start))
			c.log.Debug("validation failed", zap.String("action", action), zap.Strings("messages", msgs))
			return resp, c.result(err)
		}
	}

	raw, err := c.transport.Execute(ctx, path, merge(params, Params{
		"apiuser":   c.cfg.User,
		"apipasswd": c.cfg.Password,
	}))
	if err != nil {
		if !errors.Is(err, ErrTransport) {
			err = &TransportError{URL: path, Err: err}
		}
		c.metrics.observe(action, err, time.Since(start))
		return nil, err
	}

	resp := NewResponse(raw)
	if c.versionCheck.Load() && resp.Version() != "" {
		c.warnVersion(resp.Version())
	}

	err = resp.Err()
	c.metrics.observe(action, err, time.Since(start))
	return resp, c.result(err)
}

func (c *Client) result(err error) error {
	if c.throwOnError.Load() {
		return err
	}
	return nil
}

// validationFailure builds the envelope a call rejected by Validate answers with.
func validationFailure(msgs []string) *Response {
	f := false
	raw, _ := json.Marshal(Envelope{
		Success:      &f,
		ErrorCode:    "-1",
		ErrorCodeMsg: validationErrorMsg,
		Messages:     msgs,
	})
	return NewResponse(string(raw))
}
