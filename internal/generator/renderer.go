package generator

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

//go:embed templates/*.html.tmpl
var defaultTemplates embed.FS

// HTMLRenderer renders site pages with html/template. Built-in templates
// ship for the "index" and "post" page kinds; a theme filesystem can
// override them by template name.
type HTMLRenderer struct {
	fsys   fs.FS
	funcs  template.FuncMap
	global any

	mu     sync.RWMutex
	parsed map[string]*template.Template
}

// RendererOption configures the HTML renderer.
type RendererOption func(*HTMLRenderer)

// WithTemplateFS overlays templates from a theme filesystem. Lookups try the
// template name as given, then with .html and .html.tmpl extensions, then
// below templates/ and layouts/ directories.
func WithTemplateFS(fsys fs.FS) RendererOption {
	return func(r *HTMLRenderer) {
		r.fsys = fsys
	}
}

// NewHTMLRenderer constructs a renderer with the built-in page templates.
func NewHTMLRenderer(opts ...RendererOption) *HTMLRenderer {
	renderer := &HTMLRenderer{
		funcs:  template.FuncMap{},
		parsed: map[string]*template.Template{},
	}
	renderer.funcs["global"] = func() any { return renderer.global }
	for _, opt := range opts {
		if opt != nil {
			opt(renderer)
		}
	}
	return renderer
}

// Render renders the named template with data. Extra writers receive a copy
// of the output.
func (r *HTMLRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	tmpl, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("generator: render %q: %w", name, err)
	}
	return emit(buf.String(), out)
}

// RenderTemplate is an alias for Render, matching the renderer contract.
func (r *HTMLRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	return r.Render(name, data, out...)
}

// RenderString renders inline template content.
func (r *HTMLRenderer) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := template.New("inline").Funcs(r.funcs).Parse(content)
	if err != nil {
		return "", fmt.Errorf("generator: parse inline template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("generator: render inline template: %w", err)
	}
	return emit(buf.String(), out)
}

// RegisterFilter exposes a function to templates. Filters registered after
// the first render are ignored by already-parsed templates.
func (r *HTMLRenderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return fmt.Errorf("generator: filter requires name and function")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = func(input any, param ...any) (any, error) {
		var arg any
		if len(param) > 0 {
			arg = param[0]
		}
		return fn(input, arg)
	}
	return nil
}

// GlobalContext stores data reachable from templates via the global helper.
func (r *HTMLRenderer) GlobalContext(data any) error {
	r.global = data
	return nil
}

func (r *HTMLRenderer) lookup(name string) (*template.Template, error) {
	key := templateKey(name)
	r.mu.RLock()
	tmpl, ok := r.parsed[key]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	source, err := r.readTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err = template.New(key).Funcs(r.funcs).Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("generator: parse template %q: %w", name, err)
	}
	r.mu.Lock()
	r.parsed[key] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}

func (r *HTMLRenderer) readTemplate(name string) ([]byte, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("generator: template name required")
	}
	if r.fsys != nil {
		for _, candidate := range templateCandidates(trimmed) {
			if data, err := fs.ReadFile(r.fsys, candidate); err == nil {
				return data, nil
			}
		}
	}
	data, err := defaultTemplates.ReadFile("templates/" + templateKey(trimmed) + ".html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("generator: template %q not found", name)
	}
	return data, nil
}

func templateCandidates(name string) []string {
	base := strings.TrimPrefix(path.Clean(name), "/")
	candidates := []string{base}
	if path.Ext(base) == "" {
		candidates = append(candidates, base+".html", base+".html.tmpl")
	}
	var out []string
	for _, candidate := range candidates {
		out = append(out, candidate, path.Join("templates", candidate), path.Join("layouts", candidate))
	}
	return out
}

func templateKey(name string) string {
	base := path.Base(strings.TrimSpace(name))
	base = strings.TrimSuffix(base, ".tmpl")
	return strings.TrimSuffix(base, ".html")
}

func emit(content string, outs []io.Writer) (string, error) {
	for _, out := range outs {
		if out == nil {
			continue
		}
		if _, err := io.WriteString(out, content); err != nil {
			return "", err
		}
	}
	return content, nil
}

var _ interfaces.TemplateRenderer = (*HTMLRenderer)(nil)
