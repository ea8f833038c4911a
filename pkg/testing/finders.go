package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/parallaxpager/pkg/host"
	"github.com/go-drift/parallaxpager/pkg/memhost"
)

// Finder locates views in a view tree.
type Finder interface {
	// Evaluate returns all matching views under root (depth-first pre-order).
	Evaluate(root host.View) []host.View
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	views  []host.View
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() host.View {
	if len(r.views) == 0 {
		panic(fmt.Sprintf("Finder found no views: %s", r.describe()))
	}
	return r.views[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() host.View {
	if len(r.views) == 0 {
		return nil
	}
	return r.views[0]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []host.View {
	return r.views
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.views)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.views) > 0
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// Find evaluates finder against the coordinator's view tree.
func (t *PagerTester) Find(finder Finder) FinderResult {
	return FinderResult{
		views:  finder.Evaluate(t.coordinator.View()),
		finder: finder,
	}
}

// --- Concrete finders ---

type typeFinder struct {
	viewType reflect.Type
}

func (f *typeFinder) Evaluate(root host.View) []host.View {
	return collectMatches(root, func(v host.View) bool {
		return reflect.TypeOf(v) == f.viewType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.viewType)
}

// ByType returns a finder that matches views of type T.
func ByType[T host.View]() Finder {
	return &typeFinder{viewType: reflect.TypeFor[T]()}
}

type nameFinder struct {
	name     string
	contains bool
}

func (f *nameFinder) Evaluate(root host.View) []host.View {
	return collectMatches(root, func(v host.View) bool {
		name := ViewName(v)
		if f.contains {
			return strings.Contains(name, f.name)
		}
		return name == f.name
	})
}

func (f *nameFinder) Description() string {
	if f.contains {
		return fmt.Sprintf("ByNameContaining(%q)", f.name)
	}
	return fmt.Sprintf("ByName(%q)", f.name)
}

// ByName returns a finder that matches memhost views named name.
func ByName(name string) Finder {
	return &nameFinder{name: name}
}

// ByNameContaining returns a finder that matches memhost views whose name
// contains substr.
func ByNameContaining(substr string) Finder {
	return &nameFinder{name: substr, contains: true}
}

type identityFinder struct {
	view host.View
}

func (f *identityFinder) Evaluate(root host.View) []host.View {
	return collectMatches(root, func(v host.View) bool {
		return v == f.view
	})
}

func (f *identityFinder) Description() string {
	return fmt.Sprintf("ByView(%s)", ViewName(f.view))
}

// ByView returns a finder that matches view itself.
func ByView(view host.View) Finder {
	return &identityFinder{view: view}
}

// ViewName returns the name of a memhost view, or its type name otherwise.
func ViewName(v host.View) string {
	if v == nil {
		return "<nil>"
	}
	if name := memhost.NameOf(v); name != "" {
		return name
	}
	return reflect.TypeOf(v).String()
}

func collectMatches(root host.View, match func(host.View) bool) []host.View {
	var out []host.View
	var walk func(v host.View)
	walk = func(v host.View) {
		if match(v) {
			out = append(out, v)
		}
		for _, child := range v.Subviews() {
			walk(child)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}
