package clients

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

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

const defaultTimeout = 30 * time.Second

// TokenSource hands out the access credential for a single call. It is asked
// before every request; the client never caches the result.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

func StaticToken(token string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

type RequestEditorFn func(ctx context.Context, req *http.Request) error

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	editors    []RequestEditorFn
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: defaultTimeout},
		editors:    []RequestEditorFn{correlationIDEditor},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func correlationIDEditor(ctx context.Context, req *http.Request) error {
	req.Header.Set("Correlation-ID", log.CorrelationIDFromContext(ctx))
	return nil
}

func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, params url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, params, body, out)
}

func (c *Client) Put(ctx context.Context, path string, params url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, params, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, params url.Values) error {
	return c.do(ctx, http.MethodDelete, path, params, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, params, body)
	if err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newStatusError(res.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, params url.Values, body any) (*http.Request, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting access token: %w", err)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	if token != "" {
		query.Set("access_token", token)
	}

	target := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, edit := range c.editors {
		if err := edit(ctx, req); err != nil {
			return nil, fmt.Errorf("editing request: %w", err)
		}
	}

	return req, nil
}
