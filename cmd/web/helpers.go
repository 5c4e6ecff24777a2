package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"time"

	"supermarket/internal/models"

	"github.com/google/uuid"
)

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter) {
	app.clientError(w, http.StatusNotFound)
}

func (app *application) flash(r *http.Request, message string) {
	app.session.Put(r.Context(), "flash", message)
}

func (app *application) isAuthenticated(r *http.Request) bool {
	return app.session.Exists(r.Context(), "authenticatedUserID")
}

func (app *application) isAdmin(r *http.Request) bool {
	return app.session.GetString(r.Context(), "userRole") == "admin"
}

func (app *application) authenticatedUserID(r *http.Request) int {
	return app.session.GetInt(r.Context(), "authenticatedUserID")
}

// pathID reads a named numeric pat parameter, e.g. ":id".
func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(name))
}

// cart returns the session's cart, or an empty one if none is stored yet.
func (app *application) cart(r *http.Request) models.Cart {
	c, _ := app.session.Get(r.Context(), "cart").(models.Cart)
	return c
}

func (app *application) saveCart(r *http.Request, c models.Cart) {
	app.session.Put(r.Context(), "cart", c)
}

func (app *application) addDefaultData(td *TemplateData, r *http.Request) *TemplateData {
	if td == nil {
		td = &TemplateData{}
	}
	td.CurrentYear = time.Now().Year()
	td.Flash = app.session.PopString(r.Context(), "flash")
	td.IsAuthenticated = app.isAuthenticated(r)
	td.CartSize = app.cart(r).Len()

	if td.IsAuthenticated {
		td.UserRole = app.session.GetString(r.Context(), "userRole")
		td.UserName = app.session.GetString(r.Context(), "userName")
	}
	return td
}

func (app *application) render(w http.ResponseWriter, r *http.Request, page string, data *TemplateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.serverError(w, fmt.Errorf("the template %s does not exist", page))
		return
	}

	buf := new(bytes.Buffer)
	err := ts.ExecuteTemplate(buf, "base", app.addDefaultData(data, r))
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// uploadImage saves the named multipart file under ui/static/images with
// a fresh uuid name and returns that name. No file in the request is not
// an error; the empty name means "keep whatever is stored".
func (app *application) uploadImage(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll("./ui/static/images", 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join("./ui/static/images", name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}
	return name, nil
}
