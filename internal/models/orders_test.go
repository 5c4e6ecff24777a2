package models

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, productID int64, name string, price float64, qty int64) orderRow {
	return orderRow{
		ItemID:    sql.NullInt64{Int64: id, Valid: true},
		ProductID: sql.NullInt64{Int64: productID, Valid: true},
		Name:      sql.NullString{String: name, Valid: true},
		Price:     sql.NullFloat64{Float64: price, Valid: true},
		Quantity:  sql.NullInt64{Int64: qty, Valid: true},
	}
}

func TestGroupOrderRows(t *testing.T) {
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("rows sharing an order id collapse into one order", func(t *testing.T) {
		a := item(1, 10, "Milk", 2.50, 2)
		a.OrderID, a.UserID, a.Total, a.Created = 5, 1, 15, created
		b := item(2, 11, "Bread", 10, 1)
		b.OrderID, b.UserID, b.Total, b.Created = 5, 1, 15, created

		orders := groupOrderRows([]orderRow{a, b})

		require.Len(t, orders, 1)
		assert.Equal(t, 5, orders[0].ID)
		assert.Equal(t, 15.0, orders[0].Total)
		require.Len(t, orders[0].Items, 2)
		assert.Equal(t, "Milk", orders[0].Items[0].Name)
		assert.Equal(t, "Bread", orders[0].Items[1].Name)
	})

	t.Run("null item id yields an order with an empty item list", func(t *testing.T) {
		row := orderRow{OrderID: 8, UserID: 2, Total: 0, Created: created}

		orders := groupOrderRows([]orderRow{row})

		require.Len(t, orders, 1)
		assert.Equal(t, 8, orders[0].ID)
		assert.NotNil(t, orders[0].Items)
		assert.Empty(t, orders[0].Items)
	})

	t.Run("row order is preserved across orders", func(t *testing.T) {
		newer := item(3, 10, "Milk", 2.50, 1)
		newer.OrderID, newer.Created = 9, created.Add(time.Hour)
		older := item(4, 11, "Bread", 10, 1)
		older.OrderID, older.Created = 7, created

		orders := groupOrderRows([]orderRow{newer, older})

		require.Len(t, orders, 2)
		assert.Equal(t, 9, orders[0].ID)
		assert.Equal(t, 7, orders[1].ID)
	})

	t.Run("no rows means no orders", func(t *testing.T) {
		assert.Empty(t, groupOrderRows(nil))
	})
}

// An empty cart is rejected before any write is attempted.
func TestOrderCreateEmptyCart(t *testing.T) {
	m := &OrderModel{}

	_, err := m.Create(1, &Cart{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderCreateRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cart := &Cart{Items: []CartItem{
		{ProductID: 1, ProductName: "Milk", Price: 2.50, Quantity: 2},
		{ProductID: 2, ProductName: "Bread", Price: 10, Quantity: 1},
	}}

	mock.ExpectBegin()
	// The persisted total is recomputed from the lines, never supplied by
	// the client.
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(42, cart.Total(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	stmt := mock.ExpectPrepare(`COPY "order_items"`)
	stmt.ExpectExec().WithArgs(9, 1, "Milk", 2.50, 2).WillReturnResult(sqlmock.NewResult(0, 1))
	stmt.ExpectExec().WithArgs(9, 2, "Bread", 10.0, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	stmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE products SET quantity`).WithArgs(2, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE products SET quantity`).WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := &OrderModel{DB: db}
	orderID, err := m.Create(42, cart)
	require.NoError(t, err)
	assert.Equal(t, 9, orderID)
	assert.InDelta(t, 15.00, cart.Total(), 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed item write rolls the transaction back and propagates, so the
// caller keeps the cart.
func TestOrderCreateItemWriteFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cart := &Cart{Items: []CartItem{
		{ProductID: 7, ProductName: "Oat Milk", Price: 2.50, Quantity: 3},
	}}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(42, cart.Total(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	stmt := mock.ExpectPrepare(`COPY "order_items"`)
	stmt.ExpectExec().WithArgs(9, 7, "Oat Milk", 2.50, 3).WillReturnError(errors.New("write failed"))
	mock.ExpectRollback()

	m := &OrderModel{DB: db}
	_, err = m.Create(42, cart)
	require.Error(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Quantity(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderGet(t *testing.T) {
	columns := []string{"id", "user_id", "total", "created", "item_id", "product_id", "product_name", "price", "quantity"}
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("returns the order with items in insertion order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE o\.id = \$1 ORDER BY i\.id ASC`).
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(9, 42, 15.0, created, 1, 1, "Milk", 2.50, 2).
				AddRow(9, 42, 15.0, created, 2, 2, "Bread", 10.0, 1))

		m := &OrderModel{DB: db}
		order, err := m.Get(9)
		require.NoError(t, err)
		assert.Equal(t, 42, order.UserID)
		require.Len(t, order.Items, 2)
		assert.Equal(t, "Milk", order.Items[0].Name)
		assert.Equal(t, "Bread", order.Items[1].Name)
	})

	t.Run("missing order is ErrNoRecord", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE o\.id = \$1`).
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows(columns))

		m := &OrderModel{DB: db}
		_, err = m.Get(9)
		assert.ErrorIs(t, err, ErrNoRecord)
	})
}
