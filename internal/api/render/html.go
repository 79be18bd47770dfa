package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/Togather-Foundation/beeps/internal/domain/beeps"
	"github.com/Togather-Foundation/beeps/web"
	"github.com/dustin/go-humanize"
)

// Credit is a footer link.
type Credit struct {
	Label string
	URL   string
}

var credits = []Credit{
	{Label: "love", URL: "https://pkg.go.dev/net/http"},
	{Label: "tears", URL: "https://pkg.go.dev/html/template"},
}

// Renderer executes the embedded HTML templates.
type Renderer struct {
	templates *template.Template
	now       func() time.Time
}

type pageData struct {
	Beeps []beeps.Beep
}

type errorData struct {
	Status     int
	StatusText string
	Message    string
}

// New parses the embedded templates. assets resolves static file names to
// their fingerprinted URLs.
func New(assets *web.Assets) (*Renderer, error) {
	return newRenderer(assets, time.Now)
}

func newRenderer(assets *web.Assets, now func() time.Time) (*Renderer, error) {
	r := &Renderer{now: now}
	funcs := template.FuncMap{
		"static":  assets.URL,
		"ago":     r.ago,
		"credits": func() []Credit { return credits },
	}
	tmpl, err := template.New("beeps").Funcs(funcs).ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.templates = tmpl
	return r, nil
}

// Page renders the home page. beeps must already be in display order.
func (r *Renderer) Page(w io.Writer, list []beeps.Beep) error {
	return r.execute(w, "page", pageData{Beeps: list})
}

// Error renders the uniform error page.
func (r *Renderer) Error(w io.Writer, status int, message string) error {
	return r.execute(w, "error", errorData{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
	})
}

// execute renders into a buffer first so a template failure never leaves a
// half-written page on the wire.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) ago(t time.Time) string {
	return humanize.RelTime(t, r.now(), "ago", "from now")
}
