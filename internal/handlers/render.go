package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	"github.com/themizzi/storefront-e2e/internal/models"
	"github.com/themizzi/storefront-e2e/internal/services"
)

// Page is the layout data every screen carries.
type Page struct {
	Title     string
	User      string
	CartCount int
}

type productCard struct {
	Item      dataset.CatalogItem
	ReturnURL string
}

type totalsView struct {
	Prefix string
	Totals models.Totals
}

var templateFuncs = template.FuncMap{
	"price": dataset.FormatPrice,
	"card": func(item dataset.CatalogItem, returnURL string) productCard {
		return productCard{Item: item, ReturnURL: returnURL}
	},
	"totals": func(prefix string, t models.Totals) totalsView {
		return totalsView{Prefix: prefix, Totals: t}
	},
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
	log   *log.Logger
}

// NewRenderer parses every templates/pages/*.html in assets together with
// the shared partials in templates/.
func NewRenderer(assets fs.FS, logger *log.Logger) (*Renderer, error) {
	files, err := fs.Glob(assets, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("failed to parse template: no pages found")
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files)), log: logger}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(assets, "templates/*.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes page with the given status. Output is buffered so a template
// error never leaves a half-written page behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := r.pages[page]
	if !ok {
		r.log.Error("Unknown page template", "page", page)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.log.Error("Error rendering template", "page", page, "err", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.log.Debug("Error writing response", "page", page, "err", err)
	}
}

// view pairs the renderer with what the layout header needs.
type view struct {
	*Renderer
	carts *services.CartService
}

func (v view) page(r *http.Request, title string) Page {
	p := Page{Title: title}
	if claims := CurrentUser(r.Context()); claims != nil {
		p.User = claims.Name
	}
	cart := v.carts.Cart(SessionID(r.Context()))
	p.CartCount = cart.ItemCount()
	return p
}

type notFoundView struct {
	Page
	Message string
}

func (v view) notFound(w http.ResponseWriter, r *http.Request, message string) {
	v.Render(w, http.StatusNotFound, "notfound", notFoundView{
		Page:    v.page(r, "Not found"),
		Message: message,
	})
}
