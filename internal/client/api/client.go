// internal/client/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// User is the identity view the server returns on login and /me.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	MemberID     string   `json:"member_id,omitempty"`
	FullName     string   `json:"full_name,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	ProfileImage string   `json:"profile_image,omitempty"`
}

// APIError is a failure envelope the server answered with. Transport
// failures are returned as ordinary wrapped errors, never as APIError, so
// callers can tell credential failures from connectivity problems.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is a thin JSON client for the clubhub API. Once a token is set, it
// is attached to every subsequent request, the counterpart of the browser
// client's default Authorization header.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the bearer token attached to all subsequent calls.
func (c *Client) SetToken(token string) { c.token = token }

// ClearToken removes the default bearer token.
func (c *Client) ClearToken() { c.token = "" }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
	User    json.RawMessage `json:"user"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "unexpected server response"}
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

// Login exchanges an identifier/password pair for a token and user info.
func (c *Client) Login(ctx context.Context, identifier, password string) (string, *User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		return "", nil, err
	}

	var user User
	if err := json.Unmarshal(env.User, &user); err != nil {
		return "", nil, &APIError{StatusCode: http.StatusOK, Message: "unexpected server response"}
	}
	return env.Token, &user, nil
}

// Me resolves the installed token to the current identity.
func (c *Client) Me(ctx context.Context) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "unexpected server response"}
	}
	return &user, nil
}

// Members lists member profiles (any authenticated identity may call this).
func (c *Client) Members(ctx context.Context) ([]map[string]interface{}, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/members", nil)
	if err != nil {
		return nil, err
	}

	var members []map[string]interface{}
	if err := json.Unmarshal(env.Data, &members); err != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "unexpected server response"}
	}
	return members, nil
}
