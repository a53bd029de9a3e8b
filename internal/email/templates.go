package email

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*
var templateFS embed.FS

// TemplateManager рендерит пары text/html шаблонов писем.
// Шаблон "name" состоит из файлов templates/name.txt и templates/name.html.
type TemplateManager struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewTemplateManager загружает встроенные шаблоны
func NewTemplateManager() (*TemplateManager, error) {
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html templates: %w", err)
	}
	return &TemplateManager{text: text, html: html}, nil
}

// Render возвращает текстовую и HTML версии письма
func (tm *TemplateManager) Render(name string, data TemplateData) (text string, html string, err error) {
	var tb, hb strings.Builder
	if err := tm.text.ExecuteTemplate(&tb, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %w", name, err)
	}
	if err := tm.html.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %w", name, err)
	}
	return tb.String(), hb.String(), nil
}
