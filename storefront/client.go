package storefront

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

	"github.com/andareed/shopfront/logging"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// ClientConfig holds the API client settings.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// RatePerSecond paces outgoing requests; zero or less disables pacing.
	RatePerSecond float64
}

// Client is the HTTP Backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	err := c.do(ctx, http.MethodGet, "/api/products/", nil, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, p Product) (Product, error) {
	var out Product
	err := c.do(ctx, http.MethodPatch, "/api/products/"+url.PathEscape(p.ID)+"/", p, &out)
	return out, err
}

func (c *Client) Cart(ctx context.Context) (Cart, error) {
	var out Cart
	err := c.do(ctx, http.MethodGet, "/cart/cart-get/", nil, &out)
	return out, err
}

type cartChange struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity,omitempty"`
}

func (c *Client) AddToCart(ctx context.Context, productID string, qty int) (Cart, error) {
	var out Cart
	err := c.do(ctx, http.MethodPost, "/cart/cart-add/", cartChange{ProductID: productID, Quantity: qty}, &out)
	return out, err
}

func (c *Client) RemoveFromCart(ctx context.Context, productID string) (Cart, error) {
	var out Cart
	err := c.do(ctx, http.MethodPost, "/cart/cart-delete/", cartChange{ProductID: productID}, &out)
	return out, err
}

func (c *Client) PlaceOrder(ctx context.Context, ck Checkout) (Order, error) {
	var out Order
	err := c.do(ctx, http.MethodPost, "/orders/order-form/", ck, &out)
	return out, err
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	err := c.do(ctx, http.MethodGet, "/orders/", nil, &out)
	return out, err
}

func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var out Profile
	err := c.do(ctx, http.MethodGet, "/api/profile/", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, p Profile) (Profile, error) {
	var out Profile
	err := c.do(ctx, http.MethodPatch, "/api/profile/", p, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	logging.Debugf("api: %s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(respBody)}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// errorMessage digs the human message out of an error body. The API uses
// "detail", "message" or "error" depending on the endpoint; validation
// failures come back as an "errors" object of field lists.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	res := gjson.GetManyBytes(body, "detail", "message", "error")
	for _, r := range res {
		if r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	var parts []string
	gjson.GetBytes(body, "errors").ForEach(func(field, msgs gjson.Result) bool {
		first := msgs
		if msgs.IsArray() {
			first = msgs.Get("0")
		}
		parts = append(parts, field.String()+": "+first.String())
		return true
	})
	return strings.Join(parts, "; ")
}
