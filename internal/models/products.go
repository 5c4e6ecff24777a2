package models

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type ProductModel struct {
	DB *sql.DB
}

// ProductFilters holds the raw query-string values from the catalog page.
// Values arrive untrusted: everything is bound as a query parameter and
// the sort mode is mapped through a whitelist.
type ProductFilters struct {
	Search        string
	Category      string
	Sort          string
	MinPrice      string
	MaxPrice      string
	IncludeHidden bool
}

const productColumns = `id, product_name, quantity, price,
	COALESCE(image, ''), COALESCE(description, ''), COALESCE(category, ''), visible`

// build turns the filters into a WHERE/ORDER BY tail and its arguments.
func (f ProductFilters) build() (string, []any) {
	var (
		where []string
		args  []any
	)

	if !f.IncludeHidden {
		where = append(where, "visible = TRUE")
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(product_name ILIKE $%d OR CAST(id AS TEXT) LIKE $%d)", n, n))
	}

	if f.Category != "" && f.Category != "all" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	if min, err := strconv.ParseFloat(f.MinPrice, 64); err == nil {
		args = append(args, min)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if max, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil {
		args = append(args, max)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}

	var sb strings.Builder
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	switch f.Sort {
	case "price_asc":
		sb.WriteString(" ORDER BY price ASC")
	case "price_desc":
		sb.WriteString(" ORDER BY price DESC")
	default:
		sb.WriteString(" ORDER BY id ASC")
	}

	return sb.String(), args
}

// Find returns the products matching the filters, scoped by visibility.
func (m *ProductModel) Find(f ProductFilters) ([]*Product, error) {
	tail, args := f.build()
	query := "SELECT " + productColumns + " FROM products" + tail

	rows, err := m.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p := &Product{}
		err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Image, &p.Description, &p.Category, &p.Visible)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (m *ProductModel) Get(id int) (*Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"

	p := &Product{}
	err := m.DB.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Image, &p.Description, &p.Category, &p.Visible)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRecord
		}
		return nil, err
	}

	return p, nil
}

// Categories returns the distinct non-empty category labels, for the
// catalog filter dropdown.
func (m *ProductModel) Categories() ([]string, error) {
	query := `SELECT DISTINCT category FROM products
		WHERE category IS NOT NULL AND category <> '' ORDER BY category`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (m *ProductModel) Insert(p *Product) (int, error) {
	query := `INSERT INTO products (product_name, quantity, price, image, description, category, visible)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
		RETURNING id`

	var id int
	err := m.DB.QueryRow(query, p.Name, p.Quantity, p.Price, p.Image, p.Description, p.Category, p.Visible).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update rewrites the product row. An empty image keeps the stored one, so
// an admin editing other fields does not have to re-upload the picture.
func (m *ProductModel) Update(p *Product) error {
	query := `UPDATE products
		SET product_name = $1, quantity = $2, price = $3,
			image = COALESCE(NULLIF($4, ''), image),
			description = NULLIF($5, ''), category = NULLIF($6, ''), visible = $7
		WHERE id = $8`

	result, err := m.DB.Exec(query, p.Name, p.Quantity, p.Price, p.Image, p.Description, p.Category, p.Visible, p.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRecord
	}
	return nil
}

func (m *ProductModel) Delete(id int) error {
	result, err := m.DB.Exec("DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRecord
	}
	return nil
}
