// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SiteName is the base page title.
const SiteName = "Wishlist"

// FullTitle returns the page title for the layout.
func FullTitle(pageTitle string) string {
	if pageTitle == "" {
		return SiteName
	}
	return pageTitle + " | " + SiteName
}

//go:embed templates/*.html
var templates embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{"fullTitle": FullTitle}
	return &Renderer{
		tmpl: template.Must(template.New("").Funcs(funcs).ParseFS(templates, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

type page struct {
	Title   string
	Heading string
	Action  string
}

// Signup serves GET /signup.
func Signup(c echo.Context) error {
	return c.Render(http.StatusOK, "signup", page{Title: "Sign up", Heading: "Sign up", Action: "/users"})
}

// Login serves GET /login.
func Login(c echo.Context) error {
	return c.Render(http.StatusOK, "login", page{Title: "Log in", Heading: "Log in", Action: "/sessions"})
}
