// Package router implements the console's view routing: a static route
// table with per-route auth metadata, and a navigation guard evaluated on
// every transition.
//
// The guard is a pure decision over the target route and the session
// token. It is re-evaluated on every call to [Router.Navigate], never
// cached, since the token can change between navigations (the API client
// resets the session when the backend reports an expired token).
package router

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lttslabs/etlctl/internal/shared"
)

// Well-known paths.
const (
	RootPath  = "/"
	LoginPath = "/login"
	// CatchAllPath matches any path no other route claims.
	CatchAllPath = "*"
)

// Meta carries a route's authentication requirement and display title.
// Every reachable route must set it explicitly; there is no implicit
// "no auth required" default.
type Meta struct {
	RequiresAuth bool
	Title        string
}

// Route is one entry of the static route table.
type Route struct {
	Path     string
	Name     string
	Meta     *Meta
	Redirect string // non-empty: navigating here forwards to another path
	Children []Route
}

// TokenReader is the slice of the session the router needs.
type TokenReader interface {
	Token() string
}

// Router resolves paths against the route table and applies the guard on
// every transition.
type Router struct {
	mu       sync.Mutex
	byPath   map[string]Route
	catchAll *Route
	current  string
	session  TokenReader
	onChange func(Route)
	logger   *log.Logger
}

// New builds a Router over the route table. It rejects a route with no
// Meta, a duplicate path, a redirect to an unregistered path, and a
// table without a catch-all; configuration errors surface at startup,
// not at navigation time.
func New(routes []Route, session TokenReader, logger *log.Logger) (*Router, error) {
	r := &Router{
		byPath:  make(map[string]Route),
		current: RootPath,
		session: session,
		logger:  logger,
	}

	if err := r.register(routes); err != nil {
		return nil, err
	}

	if r.catchAll == nil {
		return nil, fmt.Errorf("%w: no catch-all route registered", shared.ErrInvalidRoute)
	}

	for path, route := range r.byPath {
		if route.Redirect == "" {
			continue
		}
		if _, ok := r.byPath[route.Redirect]; !ok {
			return nil, fmt.Errorf("%w: %s redirects to unregistered path %s", shared.ErrInvalidRoute, path, route.Redirect)
		}
	}

	return r, nil
}

func (r *Router) register(routes []Route) error {
	for _, route := range routes {
		if route.Meta == nil {
			return fmt.Errorf("%w: route %q (%s) has no meta", shared.ErrInvalidRoute, route.Name, route.Path)
		}

		if route.Path == CatchAllPath {
			if r.catchAll != nil {
				return fmt.Errorf("%w: duplicate catch-all route", shared.ErrInvalidRoute)
			}
			ca := route
			r.catchAll = &ca
		} else {
			if _, ok := r.byPath[route.Path]; ok {
				return fmt.Errorf("%w: duplicate path %s", shared.ErrInvalidRoute, route.Path)
			}
			r.byPath[route.Path] = route
		}

		if err := r.register(route.Children); err != nil {
			return err
		}
	}
	return nil
}

// SetOnChange registers a hook fired after every effective transition.
func (r *Router) SetOnChange(fn func(Route)) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Current returns the current full path (including any query).
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Resolve returns the route for a path, falling back to the catch-all.
func (r *Router) Resolve(path string) Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(path)
}

func (r *Router) resolveLocked(path string) Route {
	if route, ok := r.byPath[stripQuery(path)]; ok {
		return route
	}
	return *r.catchAll
}

// Navigate transitions to path, following route redirects and the guard's
// decisions until a route is allowed. Navigating to the path already
// current is a no-op: concurrent auth-expiry triggers collapse to a
// single effective transition. Returns the route settled on.
func (r *Router) Navigate(path string) Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Redirect chains are short (route redirect plus one guard hop); the
	// bound only protects against a misconfigured cycle.
	const maxHops = 8

	for hop := 0; hop < maxHops; hop++ {
		route := r.resolveLocked(path)

		if route.Redirect != "" {
			path = route.Redirect
			continue
		}

		decision := Guard(route, path, r.session)
		if !decision.Allow {
			path = decision.RedirectTo
			continue
		}

		if stripQuery(r.current) == stripQuery(path) {
			return route
		}

		r.current = path
		if r.onChange != nil {
			r.onChange(route)
		}
		return route
	}

	if r.logger != nil {
		r.logger.Error("navigation did not settle", "path", path)
	}
	return r.resolveLocked(r.current)
}

func stripQuery(path string) string {
	if idx := strings.Index(path, "?"); idx >= 0 {
		return path[:idx]
	}
	return path
}
