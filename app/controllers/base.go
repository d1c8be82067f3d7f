package controllers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"folio/app/feed"
	"folio/app/theme"
	"folio/logging"
)

// pages maps a template name to the page file rendered inside the layout.
var pages = map[string]string{
	"home":         "pages/home.html",
	"about":        "pages/about.html",
	"posts/index":  "posts/index.html",
	"posts/show":   "posts/show.html",
	"posts/search": "posts/search.html",
	"posts/author": "posts/author.html",
	"contact/new":  "contact/new.html",
}

// TemplateFuncs are the helpers available to every view.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"dict": dict,
		"dataAttrs": func(objs ...map[string]any) template.HTMLAttr {
			return theme.HTMLAttributes(theme.DataAttributes(objs...))
		},
		"button": func(variant, appearance, paint string) template.HTMLAttr {
			style := theme.Style{
				Variant:    theme.ParseVariant(variant),
				Appearance: theme.ParseAppearance(appearance),
				Paint:      theme.ParsePaint(paint),
			}
			return theme.HTMLAttributes(style.Attributes())
		},
		"date": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
	}
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// LoadTemplates parses every page together with the layout and partials.
func LoadTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t, err := template.New("layout.html").Funcs(TemplateFuncs()).ParseFS(fsys, "layout.html", "partials/*.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		templates[name] = t
	}
	return templates, nil
}

// Page is the data every view receives from the layout's point of view.
type Page struct {
	Site        feed.Site
	Title       string
	Description string
	Canonical   string
	Query       string
}

// Base carries what all controllers share.
type Base struct {
	Site      feed.Site
	Templates map[string]*template.Template
	Logger    logging.Logger
}

// NewBase creates a Base. A nil logger discards.
func NewBase(site feed.Site, templates map[string]*template.Template, logger logging.Logger) Base {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return Base{Site: site, Templates: templates, Logger: logger}
}

func (b Base) page(title, description string) Page {
	return Page{Site: b.Site, Title: title, Description: description}
}

// isAPIRequest reports whether the client wants JSON.
func isAPIRequest(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") || strings.HasPrefix(r.URL.Path, "/api")
}

func (b Base) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.Logger.WithError(err).Warn("Failed to encode JSON response")
	}
}

func (b Base) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPIRequest(r) {
		b.sendJSON(w, status, map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

func (b Base) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	t, ok := b.Templates[name]
	if !ok {
		b.sendError(w, r, "Template not found: "+name, http.StatusInternalServerError)
		return
	}

	var buf strings.Builder
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		b.Logger.WithError(err).WithField("template", name).Error("Template error")
		b.sendError(w, r, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
