// Package signup submits alpha-access signups to the site API.
package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"
)

// ErrFailed is the single error a caller sees for any failed signup. The
// cause is logged, not returned.
var ErrFailed = errors.New("an error occurred. please try again.")

// ErrInvalidEmail is returned before any request when the email is unusable.
var ErrInvalidEmail = errors.New("a valid email is required")

// SignupPath is the signup endpoint relative to the API base URL.
const SignupPath = "/signup"

// Form is the body posted to the signup endpoint.
type Form struct {
	Email        string `json:"email"`
	GithubLink   string `json:"githubLink"`
	LinkedinLink string `json:"linkedinLink"`
	Name         string `json:"name"`
}

// Validate checks the only required field.
func (f Form) Validate() error {
	email := strings.TrimSpace(f.Email)
	if email == "" {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

type response struct {
	Success *bool `json:"success"`
}

// Client posts signups.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *slog.Logger
}

// NewClient creates a client bounded by timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

// Submit posts f. Any non-2xx status, transport error or an explicit
// {"success": false} yields ErrFailed.
func (c *Client) Submit(ctx context.Context, f Form) error {
	if err := f.Validate(); err != nil {
		return err
	}
	f.Email = strings.TrimSpace(f.Email)

	if err := c.post(ctx, f); err != nil {
		c.Logger.Warn("signup failed", "error", err)
		return ErrFailed
	}
	c.Logger.Info("signup accepted")
	return nil
}

func (c *Client) post(ctx context.Context, f Form) error {
	body, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding form: %w", err)
	}
	url := strings.TrimRight(c.BaseURL, "/") + SignupPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("posting signup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("signup status %d", resp.StatusCode)
	}

	var r response
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	// the body is optional; only an explicit false is a failure
	if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &r) == nil && r.Success != nil && !*r.Success {
		return errors.New("signup rejected by server")
	}
	return nil
}
