package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecord is returned when a lookup matches nothing.
	ErrNoRecord = errors.New("models: no matching record found")

	// ErrInvalidCredentials is returned by Authenticate when the email is
	// unknown or the password does not match.
	ErrInvalidCredentials = errors.New("models: invalid credentials")

	// ErrDuplicateEmail is returned on registration with an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("models: duplicate email")

	ErrInvalidQuantity = errors.New("models: quantity must be at least 1")
	ErrOutOfStock      = errors.New("models: product is out of stock")
	ErrLineNotFound    = errors.New("models: item is not in the cart")
	ErrEmptyCart       = errors.New("models: cart is empty")
)

// StockExceededError is returned by Cart.Add when the requested quantity,
// together with what is already in the cart, would exceed the product's
// stock. Remaining is how many more units the caller may still add.
type StockExceededError struct {
	Remaining int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("models: only %d left in stock", e.Remaining)
}
