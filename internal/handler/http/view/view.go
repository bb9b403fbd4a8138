// Package view renders the HTML screens from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageDepartments = "departments"
	PageEmployees   = "employees"
	PageAttendance  = "attendance"
	PageError       = "error"
)

// Base is the data every screen needs for the layout.
type Base struct {
	Title     string `json:"-"`
	Active    string `json:"-"`
	CSRFToken string `json:"csrf_token"`
	Links     Links  `json:"-"`
}

// Renderer holds one template set per screen; each set is the layout plus
// the shared partials plus the screen itself.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageDepartments, PageEmployees, PageAttendance, PageError} {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", page, err)
		}
		if _, err := tmpl.ParseFS(templateFS, "templates/"+page+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render executes page into a buffer first so a template error never leaves
// a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to execute %s template: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"fieldError": func(err *apierror.Error, field string) string {
		return err.FieldError(field)
	},
	"bannerFor": func(err *apierror.Error, fields ...string) string {
		return err.BannerFor(fields...)
	},
	"unmatched": func(err *apierror.Error, fields ...string) []string {
		return err.Unmatched(fields...)
	},
	"summary": func(err *apierror.Error) string {
		return err.Summary()
	},
	"isNetwork": func(err *apierror.Error) bool {
		return err.IsNetwork()
	},
	"id": func(id int64) string {
		return strconv.FormatInt(id, 10)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "–"
		}
		return t.Format("Jan 2, 2006")
	},
}

// Links builds URLs for the current screen, keeping its query (page,
// selection, filters) and dropping the dialog parameters.
type Links struct {
	path  string
	query url.Values
}

// Dialog query parameters; they never survive into a derived link.
const (
	ParamModal         = "modal"
	ParamConfirmDelete = "confirm_delete"
)

func NewLinks(path string, query url.Values) Links {
	q := url.Values{}
	for k, v := range query {
		if k == ParamModal || k == ParamConfirmDelete || len(v) == 0 || v[0] == "" {
			continue
		}
		q.Set(k, v[0])
	}
	return Links{path: path, query: q}
}

// Current is the screen URL without any dialog open.
func (l Links) Current() string {
	return l.build(l.path, l.query)
}

// Path returns sub (relative to the screen) with the current query.
func (l Links) Path(sub string) string {
	return l.build(l.path+sub, l.query)
}

// Page links to page n.
func (l Links) Page(n int) string {
	return l.Set("page", strconv.Itoa(n))
}

// Set returns the current URL with the key/value pairs set.
func (l Links) Set(pairs ...string) string {
	q := url.Values{}
	for k, v := range l.query {
		q[k] = v
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		q.Set(pairs[i], pairs[i+1])
	}
	return l.build(l.path, q)
}

// Get returns a kept query value.
func (l Links) Get(key string) string {
	return l.query.Get(key)
}

func (l Links) build(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
