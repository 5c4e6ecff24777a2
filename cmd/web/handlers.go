package main

import (
	"errors"
	"net/http"

	"supermarket/internal/forms"
	"supermarket/internal/models"
)

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "home.page.tmpl", nil)
}

func (app *application) registerForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "register.page.tmpl", &TemplateData{Form: forms.Registration{}})
}

func (app *application) register(w http.ResponseWriter, r *http.Request) {
	form := forms.Registration{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Address:  r.FormValue("address"),
		Contact:  r.FormValue("contact"),
		Role:     r.FormValue("role"),
	}
	if form.Role == "" {
		form.Role = "user"
	}

	errs := form.Validate()
	if !errs.Valid() {
		form.Password = ""
		app.render(w, r, "register.page.tmpl", &TemplateData{Form: form, FormErrors: errs})
		return
	}

	err := app.users.Insert(form.Username, form.Email, form.Password, form.Address, form.Contact, form.Role, "")
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			form.Password = ""
			app.render(w, r, "register.page.tmpl", &TemplateData{
				Form:       form,
				FormErrors: forms.Errors{"Email": "Address is already in use"},
			})
			return
		}
		app.serverError(w, err)
		return
	}

	app.flash(r, "Registration successful. Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (app *application) loginForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "login.page.tmpl", &TemplateData{Form: forms.Login{}})
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	form := forms.Login{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	errs := form.Validate()
	if errs.Valid() {
		user, err := app.users.Authenticate(form.Email, form.Password)
		if err != nil {
			if !errors.Is(err, models.ErrInvalidCredentials) {
				app.serverError(w, err)
				return
			}
			errs["Generic"] = "Invalid email or password"
		} else {
			// New session token on privilege change.
			if err := app.session.RenewToken(r.Context()); err != nil {
				app.serverError(w, err)
				return
			}
			app.session.Put(r.Context(), "authenticatedUserID", user.ID)
			app.session.Put(r.Context(), "userRole", user.Role)
			app.session.Put(r.Context(), "userName", user.Username)
			app.flash(r, "Login successful!")

			if user.Role == "admin" {
				http.Redirect(w, r, "/inventory", http.StatusSeeOther)
			} else {
				http.Redirect(w, r, "/products", http.StatusSeeOther)
			}
			return
		}
	}

	form.Password = ""
	app.render(w, r, "login.page.tmpl", &TemplateData{Form: form, FormErrors: errs})
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	app.session.Remove(r.Context(), "authenticatedUserID")
	app.session.Remove(r.Context(), "userRole")
	app.session.Remove(r.Context(), "userName")
	app.session.Remove(r.Context(), "cart")

	app.flash(r, "Logged out successfully")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
