package util

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// FuncMap holds the helpers available to every template rendered here.
var FuncMap = template.FuncMap{
	"default": func(defaultVal any, val any) any {
		if val == nil || val == "" {
			return defaultVal
		}
		return val
	},
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"title": func(s string) string {
		if len(s) == 0 {
			return s
		}
		return strings.ToUpper(string(s[0])) + strings.ToLower(s[1:])
	},
	"join": func(sep string, items []string) string {
		return strings.Join(items, sep)
	},
	"percent": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f*100)
	},
}

// RenderTemplate renders text with data using Go's text/template package.
// This lives in internal to avoid committing to public API stability prematurely.
func RenderTemplate(text string, data any) (string, error) {
	if !strings.Contains(text, "{{") { // fast path: no template markers
		return text, nil
	}

	tmpl, err := template.New("inline").Funcs(FuncMap).Parse(text)
	if err != nil {
		return "", err
	}
	return execute(tmpl, data)
}

// TemplateSet is a named collection of templates parsed once up front.
// It is safe for concurrent rendering after construction.
type TemplateSet struct {
	root *template.Template
}

// NewTemplateSet parses every named source. Parsing errors are returned
// with the offending template name.
func NewTemplateSet(sources map[string]string) (*TemplateSet, error) {
	root := template.New("").Funcs(FuncMap)
	for name, src := range sources {
		if _, err := root.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parse template %q: %w", name, err)
		}
	}
	return &TemplateSet{root: root}, nil
}

// MustTemplateSet is like NewTemplateSet but panics on error. Intended for
// package-level template tables.
func MustTemplateSet(sources map[string]string) *TemplateSet {
	ts, err := NewTemplateSet(sources)
	if err != nil {
		panic(err)
	}
	return ts
}

// Has reports whether a template with the given name exists.
func (ts *TemplateSet) Has(name string) bool {
	return ts.root.Lookup(name) != nil
}

// Render executes the named template.
func (ts *TemplateSet) Render(name string, data any) (string, error) {
	tmpl := ts.root.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template %q not defined", name)
	}
	return execute(tmpl, data)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
