package generator

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// ThemeConfig points the generator at a theme directory. Name and Variant
// select within the loaded manifest; both fall back to the manifest
// defaults when empty.
type ThemeConfig struct {
	Dir     string
	Name    string
	Variant string
}

type themeSelector struct {
	cfg    ThemeConfig
	loader func(dir string) (*gotheme.Manifest, error)

	mu        sync.Mutex
	loaded    bool
	selection *gotheme.Selection
	loadErr   error
}

func newThemeSelector(cfg ThemeConfig) *themeSelector {
	return &themeSelector{
		cfg: cfg,
		loader: func(dir string) (*gotheme.Manifest, error) {
			return gotheme.LoadDir(os.DirFS(dir), ".")
		},
	}
}

// Selection loads the theme manifest once and resolves the configured
// theme/variant. Returns nil without error when no theme directory is set.
func (s *themeSelector) Selection() (*gotheme.Selection, error) {
	if s == nil || strings.TrimSpace(s.cfg.Dir) == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.selection, s.loadErr
	}
	s.loaded = true

	manifest, err := s.loader(strings.TrimSpace(s.cfg.Dir))
	if err != nil {
		s.loadErr = fmt.Errorf("generator: load theme manifest from %s: %w", s.cfg.Dir, err)
		return nil, s.loadErr
	}
	name := strings.TrimSpace(s.cfg.Name)
	if name == "" {
		name = strings.TrimSpace(manifest.Name)
	}
	if name == "" {
		s.loadErr = fmt.Errorf("generator: theme name required for selection")
		return nil, s.loadErr
	}

	registry := gotheme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		s.loadErr = fmt.Errorf("generator: register theme manifest: %w", err)
		return nil, s.loadErr
	}
	selector := gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   name,
		DefaultVariant: strings.TrimSpace(s.cfg.Variant),
	}
	selection, err := selector.Select(name, strings.TrimSpace(s.cfg.Variant))
	if err != nil {
		s.loadErr = fmt.Errorf("generator: select theme %s: %w", name, err)
		return nil, s.loadErr
	}
	s.selection = selection
	return s.selection, nil
}

// TemplateName resolves the template for a page kind through the theme
// manifest, falling back to the kind itself.
func (s *themeSelector) TemplateName(kind string) string {
	selection, err := s.Selection()
	if err != nil || selection == nil {
		return kind
	}
	return selection.Template(kind, kind)
}

// FS exposes the theme directory for template lookups.
func (s *themeSelector) FS() fs.FS {
	if s == nil || strings.TrimSpace(s.cfg.Dir) == "" {
		return nil
	}
	return os.DirFS(strings.TrimSpace(s.cfg.Dir))
}
