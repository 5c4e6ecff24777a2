package models

import "time"

type Product struct {
	ID          int
	Name        string
	Quantity    int
	Price       float64
	Image       string
	Description string
	Category    string
	Visible     bool
}

type User struct {
	ID             int
	Username       string
	Email          string
	HashedPassword []byte
	Address        string
	Contact        string
	Role           string
	Image          string
	Created        time.Time
}

type Order struct {
	ID      int
	UserID  int
	Total   float64
	Created time.Time
	Items   []OrderItem
}

// OrderItem carries the name and price snapshots taken at checkout time,
// so later edits to the product never change historical orders.
type OrderItem struct {
	ID        int
	OrderID   int
	ProductID int
	Name      string
	Price     float64
	Quantity  int
}

func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
