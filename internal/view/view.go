// Package view renders server-side HTML. Handlers depend on the
// Renderer interface only; the template engine is an implementation
// detail behind it.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer produces an HTML body for a named view and its context.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

type TemplateRenderer struct {
	templates *template.Template
}

func New() (*TemplateRenderer, error) {
	funcs := template.FuncMap{
		"date": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("Mon, Jan 2")
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
