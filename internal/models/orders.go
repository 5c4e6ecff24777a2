package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type OrderModel struct {
	DB *sql.DB
}

// Create persists the cart as an order for userID and returns the new
// order id. The header insert, the bulk item insert and the stock
// decrements run in one transaction, so a failure part-way leaves no
// half-written order behind. The total is recomputed from the lines here;
// nothing client-supplied is trusted.
func (m *OrderModel) Create(userID int, cart *Cart) (int, error) {
	if cart.Len() == 0 {
		return 0, ErrEmptyCart
	}

	tx, err := m.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var orderID int
	query := `INSERT INTO orders (user_id, total, created) VALUES ($1, $2, $3) RETURNING id`
	err = tx.QueryRow(query, userID, cart.Total(), time.Now().UTC()).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(pq.CopyIn("order_items", "order_id", "product_id", "product_name", "price", "quantity"))
	if err != nil {
		return 0, err
	}
	for _, item := range cart.Items {
		if _, err = stmt.Exec(orderID, item.ProductID, item.ProductName, item.Price, item.Quantity); err != nil {
			stmt.Close()
			return 0, err
		}
	}
	if _, err = stmt.Exec(); err != nil {
		stmt.Close()
		return 0, err
	}
	if err = stmt.Close(); err != nil {
		return 0, err
	}

	for _, item := range cart.Items {
		_, err = tx.Exec("UPDATE products SET quantity = quantity - $1 WHERE id = $2", item.Quantity, item.ProductID)
		if err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return orderID, nil
}

// orderRow is one flattened row of the orders ⟕ order_items join. The
// item columns are nullable: an order with no items joins to a single row
// whose ItemID is null.
type orderRow struct {
	OrderID   int
	UserID    int
	Total     float64
	Created   time.Time
	ItemID    sql.NullInt64
	ProductID sql.NullInt64
	Name      sql.NullString
	Price     sql.NullFloat64
	Quantity  sql.NullInt64
}

// groupOrderRows collapses join rows into orders, preserving the row
// order. Rows sharing an order id fold into one order; a null ItemID
// contributes no item, so such an order keeps an empty item list.
func groupOrderRows(rows []orderRow) []*Order {
	var (
		orders []*Order
		byID   = map[int]*Order{}
	)

	for _, row := range rows {
		o, ok := byID[row.OrderID]
		if !ok {
			o = &Order{
				ID:      row.OrderID,
				UserID:  row.UserID,
				Total:   row.Total,
				Created: row.Created,
				Items:   []OrderItem{},
			}
			byID[row.OrderID] = o
			orders = append(orders, o)
		}
		if row.ItemID.Valid {
			o.Items = append(o.Items, OrderItem{
				ID:        int(row.ItemID.Int64),
				OrderID:   row.OrderID,
				ProductID: int(row.ProductID.Int64),
				Name:      row.Name.String,
				Price:     row.Price.Float64,
				Quantity:  int(row.Quantity.Int64),
			})
		}
	}

	return orders
}

const orderJoin = `SELECT o.id, o.user_id, o.total, o.created,
		i.id, i.product_id, i.product_name, i.price, i.quantity
	FROM orders o
	LEFT JOIN order_items i ON i.order_id = o.id`

func (m *OrderModel) scanOrders(rows *sql.Rows) ([]*Order, error) {
	defer rows.Close()

	var flat []orderRow
	for rows.Next() {
		var row orderRow
		err := rows.Scan(&row.OrderID, &row.UserID, &row.Total, &row.Created,
			&row.ItemID, &row.ProductID, &row.Name, &row.Price, &row.Quantity)
		if err != nil {
			return nil, err
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groupOrderRows(flat), nil
}

// ByUser returns the user's orders, most recent first, with their items
// nested.
func (m *OrderModel) ByUser(userID int) ([]*Order, error) {
	query := orderJoin + ` WHERE o.user_id = $1 ORDER BY o.created DESC, o.id DESC, i.id ASC`

	rows, err := m.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	return m.scanOrders(rows)
}

// Get returns one order with its items, or ErrNoRecord.
func (m *OrderModel) Get(id int) (*Order, error) {
	query := orderJoin + ` WHERE o.id = $1 ORDER BY i.id ASC`

	rows, err := m.DB.Query(query, id)
	if err != nil {
		return nil, err
	}
	orders, err := m.scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNoRecord
	}
	return orders[0], nil
}
