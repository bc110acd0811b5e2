package api

import (
	"context"
	"encoding/json"
)

// envelope is the standard response wrapper every non-login endpoint uses.
// Success is a pointer so an absent field is distinguishable from false.
type envelope struct {
	Success   *bool           `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

// normalize maps a raw HTTP response to a payload or an error, in this order:
//
//  1. Login endpoint with a top-level token field: returned as-is.
//  2. Envelope with success=true: the unwrapped data field.
//  3. HTTP 200 with success=false: BusinessError with the server message.
//  4. Other 2xx with an unrecognized shape: raw payload (lenient fallback).
//  5. Everything else: HTTPError with the status and best-effort message.
//
// A 401 additionally fires the OnUnauthorized hook.
func (c *Client) normalize(ctx context.Context, status int, raw []byte, login bool) (json.RawMessage, error) {
	if login {
		var probe struct {
			Token string `json:"token"`
		}
		if json.Unmarshal(raw, &probe) == nil && probe.Token != "" {
			return raw, nil
		}
	}

	var env envelope
	envOK := json.Unmarshal(raw, &env) == nil && env.Success != nil

	if envOK && *env.Success {
		return env.Data, nil
	}

	if status == 200 && envOK && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "operation failed"
		}
		return nil, &BusinessError{Message: msg}
	}

	if status >= 200 && status < 300 {
		c.log.Warn(ctx, "unrecognized response shape, passing through", "status", status)
		return raw, nil
	}

	if status == 401 {
		c.log.Warn(ctx, "unauthorized response, signalling re-login")
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
	}

	return nil, &HTTPError{Status: status, Message: env.Message}
}
