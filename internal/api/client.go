package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/pomotrack/pomotrack/internal/util"
)

const defaultTimeout = 15 * time.Second

// Client talks to the pomodoro backend. Authentication is cookie-session
// based; when a cookie file path is configured the session cookie survives
// across process invocations.
type Client struct {
	baseURL    string
	httpClient *http.Client
	jar        *cookiejar.Jar
	cookiePath string
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the default request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithCookieFile persists the session cookies at the given path
func WithCookieFile(path string) Option {
	return func(c *Client) {
		c.cookiePath = path
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		jar:     jar,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.cookiePath != "" {
		if err := client.loadCookies(); err != nil {
			util.LogDebugf("Could not load stored cookies: %v", err)
		}
	}

	return client, nil
}

// envelope is the common wrapper every backend response carries
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do sends one JSON request and decodes the response into out when non-nil.
// Non-2xx responses become *Error values with the server's message.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	util.LogDebugf("%s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if len(resp.Header.Values("Set-Cookie")) > 0 && c.cookiePath != "" {
		if err := c.saveCookies(); err != nil {
			util.LogDebugf("Could not persist cookies: %v", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if err := sonic.Unmarshal(respBody, &env); err == nil && env.Message != "" {
			return &Error{Status: resp.StatusCode, Message: env.Message}
		}
		return &Error{Status: resp.StatusCode}
	}

	if out != nil {
		if err := sonic.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}

	return nil
}

// storedCookie is the persisted form of one session cookie
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

func (c *Client) serverURL() (*url.URL, error) {
	return url.Parse(c.baseURL)
}

func (c *Client) loadCookies() error {
	data, err := os.ReadFile(c.cookiePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var stored []storedCookie
	if err := sonic.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to parse cookie file: %w", err)
	}

	u, err := c.serverURL()
	if err != nil {
		return err
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		if !sc.Expires.IsZero() && sc.Expires.Before(time.Now()) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:    sc.Name,
			Value:   sc.Value,
			Path:    sc.Path,
			Expires: sc.Expires,
		})
	}
	c.jar.SetCookies(u, cookies)
	return nil
}

func (c *Client) saveCookies() error {
	u, err := c.serverURL()
	if err != nil {
		return err
	}

	cookies := c.jar.Cookies(u)
	stored := make([]storedCookie, 0, len(cookies))
	for _, ck := range cookies {
		stored = append(stored, storedCookie{
			Name:    ck.Name,
			Value:   ck.Value,
			Path:    ck.Path,
			Expires: ck.Expires,
		})
	}

	data, err := sonic.Marshal(stored)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.cookiePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(c.cookiePath, data, 0600)
}

// ClearCookies drops the in-memory session and removes the cookie file
func (c *Client) ClearCookies() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	c.jar = jar
	c.httpClient.Jar = jar

	if c.cookiePath == "" {
		return nil
	}
	if err := os.Remove(c.cookiePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
