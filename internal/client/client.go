// Package client talks to the remote storefront API: product catalog,
// auth, users and the cart resource, all JSON over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/glutt28/ecommerce-prototype/internal/storefront/cart"
	"github.com/glutt28/ecommerce-prototype/internal/storefront/catalog"
	"github.com/glutt28/ecommerce-prototype/internal/storefront/session"
)

var ErrNotFound = errors.New("resource not found")

const (
	defaultTimeout = 10 * time.Second
	maxAttempts    = 2 // one retry on transport errors and 5xx
)

// Client is the HTTP client for the remote storefront API. It satisfies
// catalog.Source, cart.RemoteAPI and session.Directory.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Products

func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ProductByID(ctx context.Context, id int) (catalog.Product, error) {
	var p catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil, &p); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	var products []catalog.Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Auth and users

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) Users(ctx context.Context) ([]session.User, error) {
	var users []session.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UserByID(ctx context.Context, id int) (session.User, error) {
	var u session.User
	if err := c.do(ctx, http.MethodGet, "/users/"+strconv.Itoa(id), nil, &u); err != nil {
		return session.User{}, err
	}
	return u, nil
}

// Carts

func (c *Client) CartsByUser(ctx context.Context, userID int) ([]cart.Cart, error) {
	var carts []cart.Cart
	if err := c.do(ctx, http.MethodGet, "/carts/user/"+strconv.Itoa(userID), nil, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

func (c *Client) CartByID(ctx context.Context, id int) (cart.Cart, error) {
	var out cart.Cart
	if err := c.do(ctx, http.MethodGet, "/carts/"+strconv.Itoa(id), nil, &out); err != nil {
		return cart.Cart{}, err
	}
	return out, nil
}

func (c *Client) CreateCart(ctx context.Context, in cart.Cart) (cart.Cart, error) {
	var out cart.Cart
	if err := c.do(ctx, http.MethodPost, "/carts", in, &out); err != nil {
		return cart.Cart{}, err
	}
	return out, nil
}

func (c *Client) UpdateCart(ctx context.Context, id int, in cart.Cart) (cart.Cart, error) {
	var out cart.Cart
	if err := c.do(ctx, http.MethodPut, "/carts/"+strconv.Itoa(id), in, &out); err != nil {
		return cart.Cart{}, err
	}
	return out, nil
}

func (c *Client) DeleteCart(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/carts/"+strconv.Itoa(id), nil, nil)
}

// do issues one request with a single retry on transport errors and 5xx
// responses. 4xx responses are not retried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryable, err := c.doOnce(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			return err
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte, out any) (retryable bool, err error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return true, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrNotFound
	case resp.StatusCode >= 500:
		return true, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		return false, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return false, nil
}
