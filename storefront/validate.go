package storefront

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
)

// ParseProduct builds a product from form fields. Price must be a
// non-negative number and stock a non-negative integer.
func ParseProduct(id, name, category, price, stock string) (Product, error) {
	p := Product{
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
	}
	if p.Name == "" {
		return p, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || v < 0 {
		return p, fmt.Errorf("%w: price %q", ErrInvalid, price)
	}
	p.Price = v

	n, err := strconv.Atoi(strings.TrimSpace(stock))
	if err != nil || n < 0 {
		return p, fmt.Errorf("%w: stock %q", ErrInvalid, stock)
	}
	p.Stock = n
	return p, nil
}

// ParseQuantity reads a cart quantity, which must be at least one.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: enter a valid quantity", ErrInvalid)
	}
	return n, nil
}

func ValidateProfile(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	addr, err := mail.ParseAddress(p.Email)
	if err != nil || addr.Address != p.Email {
		return fmt.Errorf("%w: email %q", ErrInvalid, p.Email)
	}
	return nil
}

func ValidateCheckout(c Checkout) error {
	switch c.Shipping {
	case ShippingPickup:
	case ShippingDelivery:
		if strings.TrimSpace(c.Address) == "" {
			return fmt.Errorf("%w: delivery needs an address", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: shipping method %q", ErrInvalid, c.Shipping)
	}
	switch c.Payment {
	case PaymentCash, PaymentTransfer:
	default:
		return fmt.Errorf("%w: payment method %q", ErrInvalid, c.Payment)
	}
	return nil
}
