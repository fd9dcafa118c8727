// Package web serves route-table views as server-rendered pages.
// Templates are parsed once at startup, and a Router dispatches each
// navigation to the first matching entry of a routes table.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// View is the component reference held by a route entry: the view template
// and the title it renders under.
type View struct {
	Template string
	Title    string
}

// ViewData contains the data passed to view templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
// Props holds path parameters forwarded by the matched entry and is nil
// when the entry does not forward them.
type ViewData struct {
	Title    string
	BasePath string
	Path     string
	Props    map[string]string
	Data     any
}

// TemplateSet holds pre-parsed templates and a base path for URL generation.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layout templates once, then clones them for each
// view and parses the view file into the clone. funcs is installed before
// parsing so layouts and views can call it. Any missing or malformed
// template fails here rather than on first request.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []View, funcs template.FuncMap) (*TemplateSet, error) {
	layouts, err := template.New("layouts").Funcs(funcs).ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	viewTemplates := make(map[string]*template.Template, len(views))
	for _, v := range views {
		if _, done := viewTemplates[v.Template]; done {
			continue
		}
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		viewTemplates[v.Template] = t
	}

	return &TemplateSet{
		views:    viewTemplates,
		basePath: basePath,
	}, nil
}

// BasePath returns the prefix prepended to generated URLs.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Has reports whether the view template was parsed.
func (ts *TemplateSet) Has(view string) bool {
	_, ok := ts.views[view]
	return ok
}

// Render executes the named layout for the view into a buffer and, on
// success, writes it with the given status and a text/html Content-Type.
// Nothing is written to w when execution fails.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layout, view string, data ViewData) error {
	t, ok := ts.views[view]
	if !ok {
		return fmt.Errorf("template not found: %s", view)
	}

	if data.BasePath == "" {
		data.BasePath = ts.basePath
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layout, data); err != nil {
		return fmt.Errorf("execute %s: %w", view, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
