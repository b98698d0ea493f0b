package glpi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Session holds what every authenticated GLPI call needs. It belongs to the
// request cycle that opened it and is never shared with another request.
type Session struct {
	BaseURL      string
	AppToken     string
	SessionToken string
}

// Headers returns the headers GLPI expects on authenticated calls.
func (s Session) Headers() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Session-Token", s.SessionToken)
	if s.AppToken != "" {
		h.Set("App-Token", s.AppToken)
	}
	return h
}

func (s Session) endpoint(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + path
}

// InitSession opens a GLPI session using an application token and a user
// API token.
func (c *Client) InitSession(ctx context.Context, baseURL, appToken, userToken string) (Session, error) {
	const op = "initSession"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/initSession", nil)
	if err != nil {
		return Session{}, &AuthError{Op: op}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "user_token "+userToken)
	if appToken != "" {
		req.Header.Set("App-Token", appToken)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return Session{}, transportError(op, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return Session{}, &AuthError{Op: op, StatusCode: res.StatusCode}
	}

	var body struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return Session{}, &AuthError{Op: op}
	}
	if body.SessionToken == "" {
		return Session{}, &AuthError{Op: op}
	}

	return Session{
		BaseURL:      baseURL,
		AppToken:     appToken,
		SessionToken: body.SessionToken,
	}, nil
}

// KillSession closes the session on the GLPI side.
func (c *Client) KillSession(ctx context.Context, s Session) error {
	const op = "killSession"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint("/killSession"), nil)
	if err != nil {
		return fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header = s.Headers()

	res, err := c.HTTP.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, res.Body)

	return statusError(op, res.StatusCode)
}
