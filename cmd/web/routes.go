package main

import (
	"net/http"

	"github.com/bmizerany/pat"
)

func (app *application) routes() http.Handler {
	mux := pat.New()

	mux.Get("/", http.HandlerFunc(app.home))

	mux.Get("/register", http.HandlerFunc(app.registerForm))
	mux.Post("/register", http.HandlerFunc(app.register))
	mux.Get("/login", http.HandlerFunc(app.loginForm))
	mux.Post("/login", http.HandlerFunc(app.login))
	mux.Get("/logout", http.HandlerFunc(app.logout))

	mux.Get("/products", http.HandlerFunc(app.listProducts))
	mux.Get("/inventory", app.requireAdmin(app.listProducts))
	mux.Get("/addProduct", app.requireAdmin(app.createProductForm))
	mux.Post("/addProduct", app.requireAdmin(app.createProduct))
	mux.Get("/products/update/:id", app.requireAdmin(app.updateProductForm))
	mux.Post("/products/update/:id", app.requireAdmin(app.updateProduct))
	mux.Get("/products/delete/:id", app.requireAdmin(app.deleteProduct))
	mux.Get("/product/:id", app.requireAuth(app.showProduct))

	mux.Get("/cart", app.requireAuth(app.viewCart))
	mux.Post("/cart/add/:id", app.requireAuth(app.addToCart))
	mux.Post("/cart/update", app.requireAuth(app.updateCartItem))
	mux.Post("/cart/remove/:id", app.requireAuth(app.removeFromCart))
	mux.Post("/cart/clear", app.requireAuth(app.clearCart))
	mux.Post("/checkout", app.requireAuth(app.checkout))
	mux.Get("/orders", app.requireAuth(app.listOrders))
	mux.Get("/invoice/:orderId", app.requireAuth(app.showInvoice))

	// The delete route is registered before /users/:id so pat matches it
	// first.
	mux.Get("/users", app.requireAdmin(app.listUsers))
	mux.Get("/users/delete/:id", app.requireAdmin(app.deleteUser))
	mux.Get("/users/:id", app.requireAuth(app.showUser))
	mux.Post("/users/update/:id", app.requireAuth(app.updateUser))

	mux.Get("/static/", http.StripPrefix("/static", http.FileServer(http.Dir("./ui/static"))))

	return app.recoverPanic(app.logRequest(app.session.LoadAndSave(mux)))
}
