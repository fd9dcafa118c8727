package web

import (
	"fmt"
	"html/template"

	"github.com/householdservices/portal/pkg/routes"
)

// Funcs returns the template functions bound to a route table:
//
//	{{ url "AdminUpdateService" "id" 7 }}
//
// resolves a named route to its base-path-prefixed URL, so templates never
// hard-code paths.
func Funcs(r *routes.Router[View], basePath string) template.FuncMap {
	return template.FuncMap{
		"url": func(name string, kv ...any) (string, error) {
			if len(kv)%2 != 0 {
				return "", fmt.Errorf("url %s: odd number of parameter arguments", name)
			}
			params := make(map[string]string, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				params[fmt.Sprint(kv[i])] = fmt.Sprint(kv[i+1])
			}
			u, err := r.URL(name, params)
			if err != nil {
				return "", err
			}
			return basePath + u, nil
		},
	}
}
