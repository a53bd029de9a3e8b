package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"microblog/internal/i18n"
	"microblog/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates собирает все страницы в один набор; partial-шаблоны
// (header, footer, post, pager) доступны каждой странице.
func Templates(bundle *i18n.Bundle) (*template.Template, error) {
	funcs := template.FuncMap{
		"t": func(locale, key string, params ...interface{}) string {
			args := make([]string, len(params))
			for i, p := range params {
				args[i] = fmt.Sprint(p)
			}
			return bundle.T(locale, key, args...)
		},
		"avatar": func(u interface{}, size int) string {
			switch v := u.(type) {
			case *models.User:
				if v != nil {
					return v.Avatar(size)
				}
			case models.User:
				return v.Avatar(size)
			}
			return ""
		},
		"dict": dict,
		"datetime": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04 UTC")
		},
		"isotime": func(t time.Time) string {
			return t.UTC().Format(time.RFC3339)
		},
	}

	tmpl, err := template.New("microblog").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return tmpl, nil
}

// dict собирает map для передачи нескольких значений в partial-шаблон.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
