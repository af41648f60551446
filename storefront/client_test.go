package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{BaseURL: srv.URL + "/", Timeout: time.Second})
}

func TestClientProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Mate","category":"kitchen","price":12.5,"stock":3}]`))
	})

	got, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Product{{ID: "p1", Name: "Mate", Category: "kitchen", Price: 12.5, Stock: 3}}, got)
}

func TestClientSendsJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/cart-add/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body cartChange
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, cartChange{ProductID: "p1", Quantity: 2}, body)
		_, _ = w.Write([]byte(`{"lines":[{"product_id":"p1","name":"Mate","price":1,"quantity":2}]}`))
	})

	cart, err := c.AddToCart(context.Background(), "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Count())
}

func TestClientAPIErrorMessage(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		want   string
	}{
		"detail":     {404, `{"success":false,"detail":"Payment ID Incorrect."}`, "Payment ID Incorrect."},
		"message":    {400, `{"flag_custom":false,"message":"Producto sin stock.","color":"red"}`, "Producto sin stock."},
		"error":      {500, `{"error":"boom"}`, "boom"},
		"field list": {400, `{"success":false,"errors":{"email":["Enter a valid email."],"name":["Required."]}}`, "email: Enter a valid email.; name: Required."},
		"plain text": {502, "bad gateway\n", "bad gateway"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.Cart(context.Background())
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestClientHonoursContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Orders(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
