package components

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/vango-dev/mdx/pkg/render"
)

// TemplateData is the value a template component is executed with.
type TemplateData struct {
	Name       string
	ID         string
	HasID      bool
	Classes    []string
	Class      string // Classes joined with spaces
	Attributes map[string]string
	Children   string
}

// templateFuncs are available to every template component. Children is
// already rendered markup and must be emitted as is; attribute values are
// raw and should go through attr or text.
var templateFuncs = template.FuncMap{
	"text": render.EscapeText,
	"attr": render.EscapeAttr,
	"join": strings.Join,
}

// Template is a Handler that renders a text/template.
type Template struct {
	name string
	tmpl *template.Template
}

// NewTemplate parses source as the template for component name.
func NewTemplate(name, source string) (*Template, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs).Option("missingkey=zero").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("component %s: parse template: %w", name, err)
	}
	return &Template{name: name, tmpl: tmpl}, nil
}

// Name returns the component name the template was created for.
func (t *Template) Name() string {
	return t.name
}

// Handle implements render.Handler.
func (t *Template) Handle(ctx context.Context, name string, props render.ComponentProps) (string, error) {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, newTemplateData(name, props)); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return b.String(), nil
}

func newTemplateData(name string, props render.ComponentProps) TemplateData {
	data := TemplateData{
		Name:       name,
		Classes:    props.Classes,
		Class:      strings.Join(props.Classes, " "),
		Attributes: make(map[string]string, len(props.Attributes)),
		Children:   props.Children,
	}
	if props.ID != nil {
		data.ID = *props.ID
		data.HasID = true
	}
	for k, v := range props.Attributes {
		if v != nil {
			data.Attributes[k] = *v
		} else {
			data.Attributes[k] = ""
		}
	}
	return data
}

// RegisterTemplates parses every template in defs and registers it under
// its key. Nothing is registered if any template fails to parse.
func (r *Registry) RegisterTemplates(defs map[string]string) error {
	parsed := make(map[string]*Template, len(defs))
	for name, source := range defs {
		if render.Classify(name) != render.TagCustom {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		t, err := NewTemplate(name, source)
		if err != nil {
			return err
		}
		parsed[name] = t
	}
	for name, t := range parsed {
		if err := r.Register(name, t); err != nil {
			return err
		}
	}
	return nil
}
