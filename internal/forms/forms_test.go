package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() Registration {
	return Registration{
		Username: "alex",
		Email:    "alex@example.com",
		Password: "letmein",
		Address:  "1 Main St",
		Contact:  "555-0100",
		Role:     "user",
	}
}

func TestRegistrationValidate(t *testing.T) {
	t.Run("valid form passes", func(t *testing.T) {
		assert.True(t, validRegistration().Validate().Valid())
	})

	t.Run("every field is required", func(t *testing.T) {
		errs := Registration{}.Validate()
		for _, field := range []string{"Username", "Email", "Password", "Address", "Contact", "Role"} {
			assert.Contains(t, errs, field)
		}
	})

	t.Run("short password", func(t *testing.T) {
		form := validRegistration()
		form.Password = "12345"

		errs := form.Validate()
		assert.Contains(t, errs, "Password")
		assert.Equal(t, "Must be at least 6 characters long", errs["Password"])
	})

	t.Run("bad email", func(t *testing.T) {
		form := validRegistration()
		form.Email = "not-an-email"
		assert.Contains(t, form.Validate(), "Email")
	})

	t.Run("unknown role", func(t *testing.T) {
		form := validRegistration()
		form.Role = "superuser"
		assert.Contains(t, form.Validate(), "Role")
	})
}

func TestProductParse(t *testing.T) {
	t.Run("valid numbers parse", func(t *testing.T) {
		form := Product{Name: "Milk", Quantity: "5", Price: "2.50"}

		quantity, price, errs := form.Parse()
		require.True(t, errs.Valid())
		assert.Equal(t, 5, quantity)
		assert.Equal(t, 2.50, price)
	})

	t.Run("malformed quantity is rejected not zeroed", func(t *testing.T) {
		form := Product{Name: "Milk", Quantity: "lots", Price: "2.50"}

		_, _, errs := form.Parse()
		assert.Contains(t, errs, "Quantity")
	})

	t.Run("malformed price is rejected not zeroed", func(t *testing.T) {
		form := Product{Name: "Milk", Quantity: "5", Price: "free"}

		_, _, errs := form.Parse()
		assert.Contains(t, errs, "Price")
	})

	t.Run("negative values are rejected", func(t *testing.T) {
		form := Product{Name: "Milk", Quantity: "-1", Price: "-2"}

		_, _, errs := form.Parse()
		assert.Contains(t, errs, "Quantity")
		assert.Contains(t, errs, "Price")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, errs := Product{}.Parse()
		assert.Contains(t, errs, "Name")
		assert.Contains(t, errs, "Quantity")
		assert.Contains(t, errs, "Price")
	})
}

func TestLoginValidate(t *testing.T) {
	assert.True(t, Login{Email: "a@b.com", Password: "x"}.Validate().Valid())
	assert.Contains(t, Login{Password: "x"}.Validate(), "Email")
	assert.Contains(t, Login{Email: "a@b.com"}.Validate(), "Password")
}
