// Package routes provides a declarative route table and the router that
// resolves URL paths against it.
//
// A table is an ordered slice of Entry values. Declaration order is match
// precedence: the first entry whose pattern matches a path wins. Patterns are
// slash-separated segments where a segment prefixed with ":" captures one
// non-empty path segment under that name:
//
//	table := []routes.Entry[string]{
//	    {Path: "/", Name: "Home", Component: "home"},
//	    {Path: "/admin/service/update/:id", Name: "AdminUpdateService", Component: "update", Props: true},
//	}
//
//	r, err := routes.New(table)
//	m, err := r.Resolve("/admin/service/update/42") // m.Props()["id"] == "42"
//	u, err := r.URL("AdminUpdateService", map[string]string{"id": "7"})
package routes

// Entry binds a URL path pattern to a component reference.
// The component is owned by the presentation layer; the table only refers to it.
type Entry[C any] struct {
	Path      string
	Name      string
	Component C

	// Props forwards matched path parameters to the component as inputs.
	Props bool

	// Redirect sends navigations for Path to this location instead of
	// rendering a component.
	Redirect string
}

// IsRedirect reports whether the entry redirects instead of rendering.
func (e Entry[C]) IsRedirect() bool {
	return e.Redirect != ""
}

// Param is a named value captured from a dynamic path segment.
type Param struct {
	Key   string
	Value string
}

// Params preserves the order in which parameters appear in the pattern.
type Params []Param

// Get returns the value for key, or "" if absent.
func (p Params) Get(key string) string {
	for _, param := range p {
		if param.Key == key {
			return param.Value
		}
	}
	return ""
}

// Map copies the parameters into a map.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, param := range p {
		m[param.Key] = param.Value
	}
	return m
}

// Match is the result of resolving a path against the table.
type Match[C any] struct {
	Entry  Entry[C]
	Params Params
}

// Props returns the parameters to hand to the component. It is nil unless
// the entry forwards parameters.
func (m Match[C]) Props() map[string]string {
	if !m.Entry.Props {
		return nil
	}
	return m.Params.Map()
}
