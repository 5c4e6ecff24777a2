package main

import (
	"fmt"
	"net/http"
)

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%v", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireAuth redirects anonymous visitors to the login page with a
// message, matching the storefront's flash-and-redirect failure style.
func (app *application) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.isAuthenticated(r) {
			app.flash(r, "Please log in to view this resource")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		next(w, r)
	})
}

func (app *application) requireAdmin(next http.HandlerFunc) http.Handler {
	return app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if !app.isAdmin(r) {
			app.flash(r, "Access denied")
			http.Redirect(w, r, "/products", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}
