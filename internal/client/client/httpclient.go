package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Route paths on the gophauth server.
const (
	pathRegister = "/api/register"
	pathAuth     = "/api/auth"
	pathProfile  = "/api/profile"
	pathHealth   = "/healthz"
)

// replies are small JSON objects; anything bigger is not ours.
const maxReplyBytes = 1 << 16

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

type errorReply struct {
	Error string `json:"error"`
}

type registerReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type authReply struct {
	Success bool `json:"success"`
	LoginResult
}

// NewHTTPClient returns a client for the server at baseURL. Every request is
// bounded by timeout in addition to the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var reply registerReply
	if err := c.do(ctx, http.MethodPost, pathRegister, "", req, &reply); err != nil {
		return "", err
	}
	return reply.Message, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var reply authReply
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, pathAuth, "", body, &reply); err != nil {
		return nil, err
	}
	return &reply.LoginResult, nil
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, pathProfile, token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, pathHealth, "", nil, nil)
}

// do sends body as JSON and decodes a 2xx reply into out. Transport failures
// wrap ErrUnavailable; non-2xx replies become *ServerError.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return fmt.Errorf("%w: read reply: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorReply
		_ = json.Unmarshal(data, &er)
		return &ServerError{StatusCode: resp.StatusCode, Message: er.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}
