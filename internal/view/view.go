// Package view models the two demo pages. Each view owns its trigger
// catalog, its activity log, and its fault boundary state; nothing is
// shared between views and nothing survives a restart.
package view

import (
	"faultline/internal/activity"
	"faultline/internal/boundary"
	"faultline/internal/fault"
)

// View is one page of the demo.
type View struct {
	Name     string
	Title    string
	Path     string
	Catalog  []fault.Trigger
	Log      *activity.Log
	Boundary *boundary.State
}

// Registry holds the demo views keyed by route name.
type Registry struct {
	views map[string]*View
	order []string
}

// NewRegistry builds the fixed home and about views.
func NewRegistry() *Registry {
	home := &View{
		Name:     "home",
		Title:    "Trigger Catalog",
		Path:     "/",
		Catalog:  fault.HomeCatalog(),
		Log:      activity.NewLog(),
		Boundary: boundary.NewState(),
	}
	about := &View{
		Name:     "about",
		Title:    "About",
		Path:     "/about",
		Catalog:  fault.AboutCatalog(),
		Log:      activity.NewLog(),
		Boundary: boundary.NewState(),
	}
	return &Registry{
		views: map[string]*View{home.Name: home, about.Name: about},
		order: []string{home.Name, about.Name},
	}
}

// Get returns the view registered under name.
func (r *Registry) Get(name string) (*View, bool) {
	v, ok := r.views[name]
	return v, ok
}

// All returns the views in navigation order.
func (r *Registry) All() []*View {
	out := make([]*View, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.views[name])
	}
	return out
}
