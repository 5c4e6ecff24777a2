package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"supermarket/internal/models"
)

func (app *application) viewCart(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "cart.page.tmpl", &TemplateData{Cart: app.cart(r)})
}

func (app *application) addToCart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":id")
	if err != nil {
		app.notFound(w)
		return
	}

	// An absent quantity means one; anything present must parse.
	quantity := 1
	if raw := r.FormValue("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			app.flash(r, "Enter a valid quantity")
			http.Redirect(w, r, "/products", http.StatusSeeOther)
			return
		}
	}

	p, err := app.products.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.flash(r, "Product not found")
			http.Redirect(w, r, "/products", http.StatusSeeOther)
		} else {
			app.serverError(w, err)
		}
		return
	}

	cart := app.cart(r)
	if err := cart.Add(p, quantity); err != nil {
		app.flash(r, cartMessage(err))
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	app.saveCart(r, cart)

	app.flash(r, fmt.Sprintf("%s added to cart", p.Name))
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (app *application) updateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.FormValue("productId"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		app.flash(r, "Enter a valid quantity")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	cart := app.cart(r)

	// Setting a line to zero is a plain removal, which must work even if
	// the product has since been deleted from the catalog.
	if quantity == 0 {
		cart.Remove(productID)
		app.saveCart(r, cart)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	p, err := app.products.Get(productID)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.flash(r, "Product not found")
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
		} else {
			app.serverError(w, err)
		}
		return
	}

	if err := cart.Update(p, quantity); err != nil {
		app.flash(r, cartMessage(err))
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	app.saveCart(r, cart)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (app *application) removeFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":id")
	if err != nil {
		app.notFound(w)
		return
	}

	cart := app.cart(r)
	cart.Remove(id)
	app.saveCart(r, cart)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (app *application) clearCart(w http.ResponseWriter, r *http.Request) {
	cart := app.cart(r)
	cart.Clear()
	app.saveCart(r, cart)

	app.flash(r, "Cart cleared")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// checkout persists the session cart as an order. The cart is cleared
// only after the order transaction commits, so a failed write keeps the
// shopper's cart intact.
func (app *application) checkout(w http.ResponseWriter, r *http.Request) {
	cart := app.cart(r)

	orderID, err := app.orders.Create(app.authenticatedUserID(r), &cart)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			app.flash(r, "Your cart is empty")
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
		} else {
			app.serverError(w, err)
		}
		return
	}

	cart.Clear()
	app.saveCart(r, cart)

	app.flash(r, fmt.Sprintf("Order #%d placed", orderID))
	http.Redirect(w, r, fmt.Sprintf("/invoice/%d", orderID), http.StatusSeeOther)
}

func (app *application) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orders.ByUser(app.authenticatedUserID(r))
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.render(w, r, "orders.page.tmpl", &TemplateData{Orders: orders})
}

func (app *application) showInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":orderId")
	if err != nil {
		app.notFound(w)
		return
	}

	order, err := app.orders.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	// An order is private to its owner; admins may inspect any.
	if order.UserID != app.authenticatedUserID(r) && !app.isAdmin(r) {
		app.notFound(w)
		return
	}

	app.render(w, r, "invoice.page.tmpl", &TemplateData{Order: order})
}

func cartMessage(err error) string {
	var exceeded *models.StockExceededError
	switch {
	case errors.As(err, &exceeded):
		return fmt.Sprintf("Only %d left in stock", exceeded.Remaining)
	case errors.Is(err, models.ErrOutOfStock):
		return "This product is out of stock"
	case errors.Is(err, models.ErrInvalidQuantity):
		return "Quantity must be at least 1"
	case errors.Is(err, models.ErrLineNotFound):
		return "That item is not in your cart"
	default:
		return "Could not update the cart"
	}
}
