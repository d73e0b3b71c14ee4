// Package api provides the thin HTTP client shared by the auth and
// task services. It handles Bearer token authentication, CSRF header
// echoing, cookie persistence, and JSON (de)serialization.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/facildate/taskboard/internal/sanitize"
)

// csrfCookieName is the cookie the server issues for CSRF protection;
// its value is echoed back in the csrfHeader on every request.
const (
	csrfCookieName = "csrftoken"
	csrfHeader     = "X-CSRFToken"
	authCookieName = "authToken"
)

// Client is a thin HTTP client for the task API. The bearer token is
// read through a callback on every request so the client follows the
// session without holding a copy of it.
type Client struct {
	baseURL    string
	base       *url.URL
	token      func() string
	jar        *cookiejar.Jar
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL. token
// returns the current bearer token, or the empty string when the
// caller is anonymous. trustedOrigins lists additional origins
// (scheme://host[:port]) redirects may target; redirects anywhere else
// are refused so the bearer token and cookies never leave trusted hosts.
func NewClient(baseURL string, token func() string, trustedOrigins ...string) (*Client, error) {
	trimmed := strings.TrimRight(baseURL, "/")

	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		baseURL: trimmed,
		base:    base,
		token:   token,
		jar:     jar,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if !sanitize.IsSafeURL(req.URL.String(), trimmed, trustedOrigins) {
					return fmt.Errorf("refusing redirect to untrusted origin %q", req.URL)
				}
				return nil
			},
		},
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(
	ctx context.Context,
	op string,
	path string,
	result interface{},
) error {
	return c.do(ctx, op, http.MethodGet, path, c.token(), nil, result)
}

// GetWithToken performs a GET authenticated with an explicit bearer
// token instead of the session's. Used during login, when the token
// has been issued but not yet stored.
func (c *Client) GetWithToken(
	ctx context.Context,
	op string,
	path string,
	token string,
	result interface{},
) error {
	return c.do(ctx, op, http.MethodGet, path, token, nil, result)
}

// Post performs an HTTP POST request with a JSON body and unmarshals
// the JSON response.
func (c *Client) Post(
	ctx context.Context,
	op string,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, op, http.MethodPost, path, c.token(), body, result)
}

// Patch performs an HTTP PATCH request with a JSON body and unmarshals
// the JSON response.
func (c *Client) Patch(
	ctx context.Context,
	op string,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, op, http.MethodPatch, path, c.token(), body, result)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(
	ctx context.Context,
	op string,
	path string,
) error {
	return c.do(ctx, op, http.MethodDelete, path, c.token(), nil, nil)
}

// CSRFToken returns the value of the server-issued CSRF cookie, or the
// empty string when none has been received yet.
func (c *Client) CSRFToken() string {
	for _, cookie := range c.jar.Cookies(c.base) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

// ExpireAuthCookie drops the legacy auth cookie from the jar, if present.
func (c *Client) ExpireAuthCookie() {
	c.jar.SetCookies(c.base, []*http.Cookie{{
		Name:   authCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}})
}

// do builds the request, attaches auth and CSRF headers, executes it,
// and handles JSON (de)serialization. Errors carry op so callers can
// tell which operation failed.
func (c *Client) do(
	ctx context.Context,
	op string,
	method string,
	path string,
	token string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshaling request body: %w", op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if csrf := c.CSRFToken(); csrf != "" {
		req.Header.Set(csrfHeader, csrf)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: executing request %s %s: %w", op, method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("%s: reading response body: %w", op, readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     parseErrorDetail(respBody),
		}
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf(
			"%s: unmarshaling response from %s %s: %w",
			op, method, path, err,
		)
	}

	return nil
}
