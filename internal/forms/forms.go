// Package forms decodes and validates the storefront's HTML forms.
// Malformed numeric input is rejected with a field error rather than
// silently coerced to zero.
package forms

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Errors maps a field name to a human-readable message for re-rendering
// the form.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

func check(form any) Errors {
	err := validate.Struct(form)
	if err == nil {
		return Errors{}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Struct-level failure, not field input. Should not happen with
		// these forms.
		panic(err)
	}

	errs := Errors{}
	for _, fe := range verrs {
		if _, dup := errs[fe.Field()]; !dup {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", fe.Param())
	case "oneof":
		return "Not a valid choice"
	case "number", "numeric":
		return "Must be a number"
	default:
		return "Invalid value"
	}
}

type Registration struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Address  string `validate:"required"`
	Contact  string `validate:"required"`
	Role     string `validate:"required,oneof=admin user"`
}

func (f Registration) Validate() Errors {
	return check(f)
}

type Login struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (f Login) Validate() Errors {
	return check(f)
}

// Product keeps quantity and price as the raw strings the form posted;
// Parse reports them as field errors when they do not parse.
type Product struct {
	Name        string `validate:"required"`
	Quantity    string `validate:"required,number"`
	Price       string `validate:"required,numeric"`
	Description string
	Category    string
	Image       string
	Visible     bool
}

// Parse validates the form and converts the numeric fields. The returned
// quantity and price are only meaningful when the Errors are Valid.
func (f Product) Parse() (quantity int, price float64, errs Errors) {
	errs = check(f)

	if _, ok := errs["Quantity"]; !ok {
		q, err := strconv.Atoi(f.Quantity)
		switch {
		case err != nil:
			errs["Quantity"] = "Must be a whole number"
		case q < 0:
			errs["Quantity"] = "Cannot be negative"
		default:
			quantity = q
		}
	}

	if _, ok := errs["Price"]; !ok {
		p, err := strconv.ParseFloat(f.Price, 64)
		switch {
		case err != nil:
			errs["Price"] = "Must be a number"
		case p < 0:
			errs["Price"] = "Cannot be negative"
		default:
			price = p
		}
	}

	return quantity, price, errs
}

type UserProfile struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Address  string `validate:"required"`
	Contact  string `validate:"required"`
}

func (f UserProfile) Validate() Errors {
	return check(f)
}
