// Package shopapi is the HTTP client for the shop REST API (products and orders).
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MikeMC777/butchery-shop/internal/order"
	"github.com/MikeMC777/butchery-shop/internal/product"
)

const (
	productsPath = "/api/products/"
	ordersPath   = "/api/orders/"

	// bodies of error answers are only needed for the message
	maxErrorBody = 64 << 10
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
	Log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Log:     log,
	}
}

func productPath(id int) string { return fmt.Sprintf("%s%d/", productsPath, id) }

// ListProducts fetches the whole catalog; the API has no paging.
func (c *Client) ListProducts(ctx context.Context) ([]product.Product, error) {
	var out []product.Product
	if err := c.do(ctx, http.MethodGet, productsPath, nil, "", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []product.Product{}
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*product.Product, error) {
	var p product.Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct posts the form as multipart, with the image file when present.
func (c *Client) CreateProduct(ctx context.Context, f product.Form) (*product.Product, error) {
	body, ctype, err := encodeForm(f, true)
	if err != nil {
		return nil, err
	}
	var p product.Product
	if err := c.do(ctx, http.MethodPost, productsPath, body, ctype, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct replaces name, description, price and quantity. The image is left alone.
func (c *Client) UpdateProduct(ctx context.Context, id int, f product.Form) (*product.Product, error) {
	body, ctype, err := encodeForm(f, false)
	if err != nil {
		return nil, err
	}
	var p product.Product
	if err := c.do(ctx, http.MethodPut, productPath(id), body, ctype, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, "", nil)
}

func (c *Client) CreateOrder(ctx context.Context, req order.CreateOrderRequest) (*order.Order, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	var o order.Order
	if err := c.do(ctx, http.MethodPost, ordersPath, bytes.NewReader(raw), "application/json", &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func encodeForm(f product.Form, withImage bool) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range f.Fields() {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("encode form: %w", err)
		}
	}
	if withImage && f.Image != nil {
		fw, err := w.CreateFormFile("image", f.Image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("encode image: %w", err)
		}
		if _, err := fw.Write(f.Image.Data); err != nil {
			return nil, "", fmt.Errorf("encode image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// do sends one request. There are no retries: a failed call is reported once.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, ctype string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("shop api: build request: %w", err)
	}
	if ctype != "" {
		req.Header.Set("Content-Type", ctype)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Error().Err(err).Str("method", method).Str("path", path).Msg("[shopapi] request failed")
		return fmt.Errorf("shop api: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	c.Log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", res.StatusCode).
		Dur("dur", time.Since(start)).
		Msg("[shopapi]")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &APIError{Method: method, Path: path, Status: res.StatusCode, Body: b}
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("shop api: decode %s %s: %w", method, path, err)
	}
	return nil
}
