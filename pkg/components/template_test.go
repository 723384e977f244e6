package components

import (
	"context"
	"testing"

	"github.com/vango-dev/mdx/pkg/markup"
	"github.com/vango-dev/mdx/pkg/render"
)

func TestTemplateHandle(t *testing.T) {
	props := render.ComponentProps{
		ID:      markup.StrPtr("n1"),
		Classes: []string{"a", "b"},
		Attributes: map[string]*string{
			"title":  markup.StrPtr(`Tom & "Jerry"`),
			"hidden": nil,
		},
		Children: "<p>body</p>",
	}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "children raw",
			source: `<aside>{{.Children}}</aside>`,
			want:   `<aside><p>body</p></aside>`,
		},
		{
			name:   "id and class",
			source: `<div{{if .HasID}} id="{{attr .ID}}"{{end}} class="{{.Class}}">{{.Children}}</div>`,
			want:   `<div id="n1" class="a b"><p>body</p></div>`,
		},
		{
			name:   "escaped attribute",
			source: `<h2 title="{{attr (index .Attributes "title")}}">{{text (index .Attributes "title")}}</h2>`,
			want:   `<h2 title="Tom &amp; &quot;Jerry&quot;">Tom &amp; &quot;Jerry&quot;</h2>`,
		},
		{
			name:   "boolean attribute",
			source: `{{with index .Attributes "hidden"}}set{{else}}{{if .Name}}empty{{end}}{{end}}`,
			want:   `empty`,
		},
		{
			name:   "name",
			source: `{{.Name}}:{{join .Classes ","}}`,
			want:   `Note:a,b`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := NewTemplate("Note", tt.source)
			if err != nil {
				t.Fatalf("NewTemplate: %v", err)
			}
			got, err := tmpl.Handle(context.Background(), "Note", props)
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if got != tt.want {
				t.Errorf("Handle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewTemplateParseError(t *testing.T) {
	if _, err := NewTemplate("Bad", "{{.Children"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRegisterTemplates(t *testing.T) {
	reg := NewRegistry()
	err := reg.RegisterTemplates(map[string]string{
		"Note":  `<aside>{{.Children}}</aside>`,
		"Title": `<h1>{{.Children}}</h1>`,
	})
	if err != nil {
		t.Fatalf("RegisterTemplates: %v", err)
	}
	got, err := reg.Handle(context.Background(), "Title", render.ComponentProps{Children: "T"})
	if err != nil || got != "<h1>T</h1>" {
		t.Errorf("Handle = %q, %v", got, err)
	}

	reg = NewRegistry()
	err = reg.RegisterTemplates(map[string]string{
		"Good": `ok`,
		"Bad":  `{{`,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(reg.Names()) != 0 {
		t.Errorf("registered %v after failure", reg.Names())
	}
}
