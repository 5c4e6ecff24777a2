package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"supermarket/internal/forms"
	"supermarket/internal/models"
)

// listProducts serves both the shopper catalog and the admin inventory.
// Admins see every product including hidden ones; everyone else gets the
// visible subset.
func (app *application) listProducts(w http.ResponseWriter, r *http.Request) {
	admin := app.isAdmin(r)

	filters := models.ProductFilters{
		Search:        r.URL.Query().Get("search"),
		Category:      r.URL.Query().Get("category"),
		Sort:          r.URL.Query().Get("sort"),
		MinPrice:      r.URL.Query().Get("min_price"),
		MaxPrice:      r.URL.Query().Get("max_price"),
		IncludeHidden: admin,
	}

	products, err := app.products.Find(filters)
	if err != nil {
		app.serverError(w, err)
		return
	}
	categories, err := app.products.Categories()
	if err != nil {
		app.serverError(w, err)
		return
	}

	page := "shopping.page.tmpl"
	if admin {
		page = "inventory.page.tmpl"
	}
	app.render(w, r, page, &TemplateData{
		Products:   products,
		Categories: categories,
		Filters:    filters,
	})
}

func (app *application) showProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":id")
	if err != nil {
		app.notFound(w)
		return
	}

	p, err := app.products.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}
	if !p.Visible && !app.isAdmin(r) {
		app.notFound(w)
		return
	}

	app.render(w, r, "product.page.tmpl", &TemplateData{Product: p})
}

func (app *application) createProductForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "addproduct.page.tmpl", &TemplateData{Form: forms.Product{Visible: true}})
}

func (app *application) createProduct(w http.ResponseWriter, r *http.Request) {
	form := productForm(r)

	quantity, price, errs := form.Parse()
	if !errs.Valid() {
		app.render(w, r, "addproduct.page.tmpl", &TemplateData{Form: form, FormErrors: errs})
		return
	}

	image, err := app.uploadImage(r, "image")
	if err != nil {
		app.serverError(w, err)
		return
	}

	_, err = app.products.Insert(&models.Product{
		Name:        form.Name,
		Quantity:    quantity,
		Price:       price,
		Image:       image,
		Description: form.Description,
		Category:    form.Category,
		Visible:     form.Visible,
	})
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.flash(r, "Product added")
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
}

func (app *application) updateProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":id")
	if err != nil {
		app.notFound(w)
		return
	}

	p, err := app.products.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	form := forms.Product{
		Name:        p.Name,
		Quantity:    strconv.Itoa(p.Quantity),
		Price:       strconv.FormatFloat(p.Price, 'f', 2, 64),
		Description: p.Description,
		Category:    p.Category,
		Visible:     p.Visible,
	}
	app.render(w, r, "updateproduct.page.tmpl", &TemplateData{Product: p, Form: form})
}

func (app *application) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":id")
	if err != nil {
		app.notFound(w)
		return
	}

	form := productForm(r)

	quantity, price, errs := form.Parse()
	if !errs.Valid() {
		app.render(w, r, "updateproduct.page.tmpl", &TemplateData{
			Product:    &models.Product{ID: id},
			Form:       form,
			FormErrors: errs,
		})
		return
	}

	image, err := app.uploadImage(r, "image")
	if err != nil {
		app.serverError(w, err)
		return
	}

	err = app.products.Update(&models.Product{
		ID:          id,
		Name:        form.Name,
		Quantity:    quantity,
		Price:       price,
		Image:       image,
		Description: form.Description,
		Category:    form.Category,
		Visible:     form.Visible,
	})
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	app.flash(r, "Product updated")
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
}

func (app *application) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":id")
	if err != nil {
		app.notFound(w)
		return
	}

	err = app.products.Delete(id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	app.flash(r, "Product deleted")
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
}

func productForm(r *http.Request) forms.Product {
	return forms.Product{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Quantity:    strings.TrimSpace(r.FormValue("quantity")),
		Price:       strings.TrimSpace(r.FormValue("price")),
		Description: r.FormValue("description"),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Visible:     r.FormValue("visible") == "on",
	}
}
