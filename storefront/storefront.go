// Package storefront holds the shop's domain types and the backends the UI
// talks to: an HTTP client for the real API and an in-memory store for
// offline use and tests.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
	ErrNoStock  = errors.New("product out of stock")
)

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (l CartLine) Subtotal() float64 { return l.Price * float64(l.Quantity) }

type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c Cart) Total() float64 {
	var t float64
	for _, l := range c.Lines {
		t += l.Subtotal()
	}
	return t
}

// Count is the number of items, not lines.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

type ShippingMethod string

const (
	ShippingPickup   ShippingMethod = "pickup"
	ShippingDelivery ShippingMethod = "delivery"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// Checkout is what the checkout form submits. Address is required for
// delivery only.
type Checkout struct {
	Shipping ShippingMethod `json:"shipping_method"`
	Payment  PaymentMethod  `json:"payment_method"`
	Address  string         `json:"address,omitempty"`
	Note     string         `json:"note,omitempty"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID        string      `json:"id"`
	Lines     []CartLine  `json:"lines"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	Checkout  Checkout    `json:"checkout"`
	CreatedAt time.Time   `json:"created_at"`
}

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Backend is everything the UI needs from the shop.
type Backend interface {
	Products(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, p Product) (Product, error)

	Cart(ctx context.Context) (Cart, error)
	AddToCart(ctx context.Context, productID string, qty int) (Cart, error)
	RemoveFromCart(ctx context.Context, productID string) (Cart, error)

	PlaceOrder(ctx context.Context, c Checkout) (Order, error)
	Orders(ctx context.Context) ([]Order, error)

	Profile(ctx context.Context) (Profile, error)
	UpdateProfile(ctx context.Context, p Profile) (Profile, error)
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// NotFound reports whether the API answered 404.
func (e *APIError) NotFound() bool { return e.Status == 404 }
