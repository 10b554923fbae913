// Package view renders the HTML pages. Templates live under templates/, share
// a layout.html, and get a per-request FuncMap so translations and role gates
// resolve against the visitor actually looking at the page.
package view

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gestion-formations/gate"
	"gestion-formations/i18n"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	langResolver = func(_ *http.Request) string { return "fr" }
	roleResolver = func(_ *http.Request) gate.Role { return gate.RoleUnknown }
	// canResolver is set by the host app so templates can show/hide actions
	// without importing the gate wiring.
	canResolver  func(*http.Request, string, string) bool
	csrfResolver func(*http.Request) template.HTML
)

// SetLangResolver allows the host app to provide a custom language resolver
// (e.g., reading from context).
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetRoleResolver provides the visitor's role for gated rendering.
func SetRoleResolver(f func(*http.Request) gate.Role) {
	if f != nil {
		roleResolver = f
	}
}

// SetCanResolver sets the callback used by the "can" template func.
func SetCanResolver(f func(r *http.Request, resource, action string) bool) {
	if f != nil {
		canResolver = f
	}
}

// SetCSRFFieldResolver sets the callback behind the "csrfField" template func.
func SetCSRFFieldResolver(f func(*http.Request) template.HTML) {
	if f != nil {
		csrfResolver = f
	}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
}

// Funcs returns the standard func map including i18n and role helpers.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	role := roleResolver(r)
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		// can checks role permission (resource, action) -> bool
		"can": func(resource, action string) bool {
			if canResolver == nil {
				return false
			}
			return canResolver(r, resource, action)
		},
		// roleIs gates a fragment to an explicit allowed set of role names.
		"roleIs": func(allowed ...string) bool {
			set := make([]gate.Role, 0, len(allowed))
			for _, a := range allowed {
				set = append(set, gate.ParseRole(a))
			}
			return gate.VisibleFor(role, set...)
		},
		"csrfField": func() template.HTML {
			if csrfResolver == nil {
				return ""
			}
			return csrfResolver(r)
		},
		"year": func() int { return time.Now().Year() },
		// dateFR renders "2006-01-02" API dates as day/month/year.
		"dateFR": func(s string) string {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return s
			}
			return d.Format("02/01/2006")
		},
		// dict creates a map from key-value pairs for passing to sub-templates.
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// parse loads layout.html plus the page template, caching the result.
func parse(name string) (*template.Template, error) {
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return t, nil
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return nil, fmt.Errorf("view: %s: %w", name, err)
	}
	layoutPath := filepath.Join(baseDir, "layout.html")
	files := []string{mainPath}
	root := name
	if fi, err := os.Stat(layoutPath); err == nil && !fi.IsDir() {
		files = []string{layoutPath, mainPath}
		root = "layout.html"
	}
	// Placeholder funcs so parsing succeeds; real ones are bound per render.
	parsed, err := template.New(root).Funcs(Funcs(&http.Request{})).ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	tplCache.Lock()
	tplCache.m[name] = parsed
	tplCache.Unlock()
	return parsed, nil
}

// Render executes the named page template wrapped in the layout. The cached
// template is cloned per request so the FuncMap can close over the visitor's
// language and role without racing other requests.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(func() {
		if baseDir == "" {
			detectBase()
		}
	})
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Lang"]; !exists {
		data["Lang"] = langResolver(r)
	}

	cached, err := parse(name)
	if err != nil {
		return err
	}
	t, err := cached.Clone()
	if err != nil {
		return err
	}
	return t.Funcs(Funcs(r)).Execute(w, data)
}
