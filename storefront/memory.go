package storefront

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Backend. Latency, when set, is applied to every
// call so the UI's loading states can be seen offline.
type Memory struct {
	Latency time.Duration

	mu       sync.Mutex
	products []Product
	cart     []CartLine
	orders   []Order
	profile  Profile
	now      func() time.Time
}

func NewMemory(products []Product) *Memory {
	return &Memory{
		products: slices.Clone(products),
		profile:  Profile{Name: "Guest", Email: "guest@example.com"},
		now:      time.Now,
	}
}

func (m *Memory) wait(ctx context.Context) error {
	if m.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *Memory) Products(ctx context.Context) ([]Product, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.products), nil
}

func (m *Memory) UpdateProduct(ctx context.Context, p Product) (Product, error) {
	if err := m.wait(ctx); err != nil {
		return Product{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.productIndex(p.ID)
	if i < 0 {
		return Product{}, fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}
	m.products[i] = p
	// cart lines show the current name and price
	for j := range m.cart {
		if m.cart[j].ProductID == p.ID {
			m.cart[j].Name, m.cart[j].Price = p.Name, p.Price
		}
	}
	return p, nil
}

func (m *Memory) Cart(ctx context.Context) (Cart, error) {
	if err := m.wait(ctx); err != nil {
		return Cart{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cartLocked(), nil
}

func (m *Memory) AddToCart(ctx context.Context, productID string, qty int) (Cart, error) {
	if err := m.wait(ctx); err != nil {
		return Cart{}, err
	}
	if qty < 1 {
		return Cart{}, fmt.Errorf("%w: quantity %d", ErrInvalid, qty)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.productIndex(productID)
	if i < 0 {
		return Cart{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	p := m.products[i]

	j := slices.IndexFunc(m.cart, func(l CartLine) bool { return l.ProductID == productID })
	have := 0
	if j >= 0 {
		have = m.cart[j].Quantity
	}
	if have+qty > p.Stock {
		return Cart{}, fmt.Errorf("%s: %w", p.Name, ErrNoStock)
	}
	if j >= 0 {
		m.cart[j].Quantity += qty
	} else {
		m.cart = append(m.cart, CartLine{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: qty})
	}
	return m.cartLocked(), nil
}

func (m *Memory) RemoveFromCart(ctx context.Context, productID string) (Cart, error) {
	if err := m.wait(ctx); err != nil {
		return Cart{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j := slices.IndexFunc(m.cart, func(l CartLine) bool { return l.ProductID == productID })
	if j < 0 {
		return Cart{}, fmt.Errorf("cart line %s: %w", productID, ErrNotFound)
	}
	m.cart = slices.Delete(m.cart, j, j+1)
	return m.cartLocked(), nil
}

// PlaceOrder turns the cart into an order and takes the stock.
func (m *Memory) PlaceOrder(ctx context.Context, c Checkout) (Order, error) {
	if err := m.wait(ctx); err != nil {
		return Order{}, err
	}
	if err := ValidateCheckout(c); err != nil {
		return Order{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.cart) == 0 {
		return Order{}, fmt.Errorf("%w: cart is empty", ErrInvalid)
	}
	for _, l := range m.cart {
		i := m.productIndex(l.ProductID)
		if i < 0 {
			return Order{}, fmt.Errorf("product %s: %w", l.ProductID, ErrNotFound)
		}
		if m.products[i].Stock < l.Quantity {
			return Order{}, fmt.Errorf("%s: %w", l.Name, ErrNoStock)
		}
	}
	for _, l := range m.cart {
		m.products[m.productIndex(l.ProductID)].Stock -= l.Quantity
	}

	cart := m.cartLocked()
	o := Order{
		ID:        uuid.NewString(),
		Lines:     cart.Lines,
		Total:     cart.Total(),
		Status:    OrderPending,
		Checkout:  c,
		CreatedAt: m.now(),
	}
	m.orders = append(m.orders, o)
	m.cart = nil
	return o, nil
}

// Orders returns the newest order first.
func (m *Memory) Orders(ctx context.Context) ([]Order, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.orders)
	slices.Reverse(out)
	return out, nil
}

func (m *Memory) Profile(ctx context.Context) (Profile, error) {
	if err := m.wait(ctx); err != nil {
		return Profile{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile, nil
}

func (m *Memory) UpdateProfile(ctx context.Context, p Profile) (Profile, error) {
	if err := m.wait(ctx); err != nil {
		return Profile{}, err
	}
	if err := ValidateProfile(p); err != nil {
		return Profile{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = p
	return p, nil
}

func (m *Memory) productIndex(id string) int {
	return slices.IndexFunc(m.products, func(p Product) bool { return p.ID == id })
}

func (m *Memory) cartLocked() Cart {
	return Cart{Lines: slices.Clone(m.cart)}
}
