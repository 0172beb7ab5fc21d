package index

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// EntryURLResolverOptions configures the go-urlkit backed resolver used to
// turn curated entries into absolute site URLs for feeds and sitemaps.
type EntryURLResolverOptions struct {
	Manager      *urlkit.RouteManager
	DefaultGroup string
	DefaultRoute string
	SlugParam    string
}

// EntryURLResolver resolves post URLs using a go-urlkit RouteManager.
type EntryURLResolver struct {
	manager *urlkit.RouteManager

	defaultGroup string
	defaultRoute string
	slugParam    string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewEntryURLResolver constructs a resolver backed by go-urlkit.
func NewEntryURLResolver(opts EntryURLResolverOptions) *EntryURLResolver {
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	if opts.DefaultGroup == "" {
		opts.DefaultGroup = "blog"
	}
	if opts.DefaultRoute == "" {
		opts.DefaultRoute = "post"
	}

	return &EntryURLResolver{
		manager:      opts.Manager,
		defaultGroup: strings.TrimSpace(opts.DefaultGroup),
		defaultRoute: strings.TrimSpace(opts.DefaultRoute),
		slugParam:    opts.SlugParam,
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// Resolve builds the site URL for a post slug. A nil resolver or missing
// manager yields an empty URL so callers can fall back to relative paths.
func (r *EntryURLResolver) Resolve(slug string) (string, error) {
	if r == nil || r.manager == nil || strings.TrimSpace(slug) == "" {
		return "", nil
	}

	group, err := r.groupForPath(r.defaultGroup)
	if err != nil || group == nil {
		return "", err
	}

	builder, err := r.safeBuilder(group, r.defaultRoute)
	if err != nil {
		return "", err
	}

	builder.WithParam(r.slugParam, slug)
	return builder.Build()
}

func (r *EntryURLResolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	root, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

func (r *EntryURLResolver) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("index: urlkit group is nil")
	}
	// Named results so a recovered panic still reaches the caller.
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("index: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("index: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("index: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("index: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("index: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, nil
}
