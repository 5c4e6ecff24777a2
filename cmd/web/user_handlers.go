package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"supermarket/internal/forms"
	"supermarket/internal/models"
)

func (app *application) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.users.GetAll()
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "users.page.tmpl", &TemplateData{Users: users})
}

func (app *application) showUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":id")
	if err != nil {
		app.notFound(w)
		return
	}

	// Shoppers may only see their own profile.
	if id != app.authenticatedUserID(r) && !app.isAdmin(r) {
		app.notFound(w)
		return
	}

	user, err := app.users.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	app.render(w, r, "user.page.tmpl", &TemplateData{User: user})
}

func (app *application) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":id")
	if err != nil {
		app.notFound(w)
		return
	}
	if id != app.authenticatedUserID(r) && !app.isAdmin(r) {
		app.notFound(w)
		return
	}

	form := forms.UserProfile{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Address:  r.FormValue("address"),
		Contact:  strings.TrimSpace(r.FormValue("contact")),
	}

	errs := form.Validate()
	if !errs.Valid() {
		app.render(w, r, "user.page.tmpl", &TemplateData{
			User:       &models.User{ID: id, Username: form.Username, Email: form.Email, Address: form.Address, Contact: form.Contact},
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

	err = app.users.Update(&models.User{
		ID:       id,
		Username: form.Username,
		Email:    form.Email,
		Address:  form.Address,
		Contact:  form.Contact,
		Image:    image,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateEmail):
			app.render(w, r, "user.page.tmpl", &TemplateData{
				User:       &models.User{ID: id, Username: form.Username, Email: form.Email, Address: form.Address, Contact: form.Contact},
				Form:       form,
				FormErrors: forms.Errors{"Email": "Address is already in use"},
			})
		case errors.Is(err, models.ErrNoRecord):
			app.notFound(w)
		default:
			app.serverError(w, err)
		}
		return
	}

	app.flash(r, "Profile updated")
	http.Redirect(w, r, fmt.Sprintf("/users/%d", id), http.StatusSeeOther)
}

func (app *application) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, ":id")
	if err != nil {
		app.notFound(w)
		return
	}

	if id == app.authenticatedUserID(r) {
		app.flash(r, "You cannot delete your own account")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	err = app.users.Delete(id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	app.flash(r, "User deleted")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
