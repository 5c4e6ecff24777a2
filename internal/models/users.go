package models

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type UserModel struct {
	DB *sql.DB
}

func (m *UserModel) Insert(username, email, password, address, contact, role, image string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (username, email, hashed_password, address, contact, role, image, created)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), now())`

	_, err = m.DB.Exec(query, username, email, hashedPassword, address, contact, role, image)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Authenticate returns the user matching email and password, or
// ErrInvalidCredentials. The caller never learns which of the two was
// wrong.
func (m *UserModel) Authenticate(email, password string) (*User, error) {
	u := &User{}
	query := `SELECT id, username, email, hashed_password, address, contact, role, COALESCE(image, ''), created
		FROM users WHERE email = $1`

	err := m.DB.QueryRow(query, email).Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword,
		&u.Address, &u.Contact, &u.Role, &u.Image, &u.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword(u.HashedPassword, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return u, nil
}

func (m *UserModel) Get(id int) (*User, error) {
	u := &User{}
	query := `SELECT id, username, email, hashed_password, address, contact, role, COALESCE(image, ''), created
		FROM users WHERE id = $1`

	err := m.DB.QueryRow(query, id).Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword,
		&u.Address, &u.Contact, &u.Role, &u.Image, &u.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	return u, nil
}

func (m *UserModel) GetAll() ([]*User, error) {
	query := `SELECT id, username, email, address, contact, role, COALESCE(image, ''), created
		FROM users ORDER BY id`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u := &User{}
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Address, &u.Contact, &u.Role, &u.Image, &u.Created)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Update rewrites the profile fields. The password and role are changed
// through dedicated paths, not here; an empty image keeps the stored one.
func (m *UserModel) Update(u *User) error {
	query := `UPDATE users
		SET username = $1, email = $2, address = $3, contact = $4,
			image = COALESCE(NULLIF($5, ''), image)
		WHERE id = $6`

	result, err := m.DB.Exec(query, u.Username, u.Email, u.Address, u.Contact, u.Image, u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateEmail
		}
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

func (m *UserModel) Delete(id int) error {
	result, err := m.DB.Exec("DELETE FROM users WHERE id = $1", id)
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
