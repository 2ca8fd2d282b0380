// Package api is a thin HTTP client for the bookshelf REST API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
)

// Client talks to a bookshelf server. It holds no session state; callers
// pass the bearer token to every book operation.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second)

	c.AddRetryCondition(retryCondition)

	return &Client{client: c}
}

// retryCondition retries reads only, on network errors and gateway failures.
func retryCondition(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	switch r.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (c *Client) request(ctx context.Context, token string, result any) *resty.Request {
	req := c.client.R().SetContext(ctx).SetError(&errorEnvelope{})
	if token != "" {
		req.SetAuthToken(token)
	}
	if result != nil {
		req.SetResult(result)
	}
	return req
}

func handleResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	env, _ := resp.Error().(*errorEnvelope)
	return newAPIError(resp.StatusCode(), env, resp.String())
}

type dataEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type tokenEnvelope struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Health succeeds when the server reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	return handleResponse(c.request(ctx, "", nil).Get("/health"))
}

// Register creates an account and returns the server's confirmation.
func (c *Client) Register(ctx context.Context, r models.Registration) (string, error) {
	var out dataEnvelope[string]
	if err := handleResponse(c.request(ctx, "", &out).SetBody(r).Post("/api/auth/register")); err != nil {
		return "", err
	}
	return out.Data, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenEnvelope
	body := map[string]string{"email": email, "password": password}
	if err := handleResponse(c.request(ctx, "", &out).SetBody(body).Post("/api/auth/login")); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: %w", ErrUnexpectedResponse)
	}
	return out.Token, nil
}

func (c *Client) ListBooks(ctx context.Context, token string, f models.BookFilter) ([]models.Book, error) {
	var out dataEnvelope[[]models.Book]
	req := c.request(ctx, token, &out)
	if f.Author != "" {
		req.SetQueryParam("author", f.Author)
	}
	if f.Genre != "" {
		req.SetQueryParam("genre", f.Genre)
	}
	if f.MinPages != "" {
		req.SetQueryParam("minPages", f.MinPages)
	}
	if err := handleResponse(req.Get("/api/books")); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateBook(ctx context.Context, token string, in models.BookInput) (*models.Book, error) {
	var out dataEnvelope[models.Book]
	if err := handleResponse(c.request(ctx, token, &out).SetBody(in).Post("/api/books")); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) UpdateBook(ctx context.Context, token, id string, in models.BookInput) (*models.Book, error) {
	var out dataEnvelope[models.Book]
	req := c.request(ctx, token, &out).SetBody(in).SetPathParam("id", id)
	if err := handleResponse(req.Patch("/api/books/{id}")); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) DeleteBook(ctx context.Context, token, id string) (*models.Book, error) {
	var out dataEnvelope[models.Book]
	req := c.request(ctx, token, &out).SetPathParam("id", id)
	if err := handleResponse(req.Delete("/api/books/{id}")); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
