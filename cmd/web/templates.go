package main

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"supermarket/internal/forms"
	"supermarket/internal/models"
)

type TemplateData struct {
	CurrentYear     int
	Flash           string
	IsAuthenticated bool
	UserRole        string
	UserName        string
	CartSize        int
	Products        []*models.Product
	Product         *models.Product
	Cart            models.Cart
	Orders          []*models.Order
	Order           *models.Order
	Users           []*models.User
	User            *models.User
	Categories      []string
	Filters         models.ProductFilters
	Form            any
	FormErrors      forms.Errors
}

func currency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func humanDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02 Jan 2006 at 15:04")
}

var functions = template.FuncMap{
	"currency":  currency,
	"humanDate": humanDate,
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := make(map[string]*template.Template)

	pages, err := filepath.Glob("./ui/html/*.page.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		ts, err := template.New(name).Funcs(functions).ParseFiles("./ui/html/base.layout.tmpl")
		if err != nil {
			return nil, err
		}

		partials, err := filepath.Glob("./ui/html/*.partial.tmpl")
		if err != nil {
			return nil, err
		}

		if len(partials) > 0 {
			ts, err = ts.ParseGlob("./ui/html/*.partial.tmpl")
			if err != nil {
				return nil, err
			}
		}

		ts, err = ts.ParseFiles(page)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
