package components

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/vango-dev/mdx/pkg/render"
)

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("Title", render.HandlerFunc(func(ctx context.Context, name string, p render.ComponentProps) (string, error) {
		return "<h1>" + p.Children + "</h1>", nil
	}))
	if err := reg.RegisterFunc("Layout", func(ctx context.Context, p render.ComponentProps) (string, error) {
		return `<div class="layout">` + p.Children + "</div>", nil
	}); err != nil {
		t.Fatalf("RegisterFunc: %v", err)
	}

	tests := []struct {
		name     string
		children string
		want     string
	}{
		{"Title", "hi", "<h1>hi</h1>"},
		{"Layout", "<p>x</p>", `<div class="layout"><p>x</p></div>`},
		{"Unknown", "dropped", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Handle(context.Background(), tt.name, render.ComponentProps{Children: tt.children})
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if got != tt.want {
				t.Errorf("Handle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistryStrict(t *testing.T) {
	reg := NewRegistry(Strict())
	_, err := reg.Handle(context.Background(), "Missing", render.ComponentProps{})
	if !errors.Is(err, ErrUnknownComponent) {
		t.Fatalf("err = %v, want ErrUnknownComponent", err)
	}
}

func TestRegistryFallback(t *testing.T) {
	reg := NewRegistry(WithFallback(render.HandlerFunc(func(ctx context.Context, name string, p render.ComponentProps) (string, error) {
		return "<!-- " + name + " -->", nil
	})))
	got, err := reg.Handle(context.Background(), "Missing", render.ComponentProps{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if got != "<!-- Missing -->" {
		t.Errorf("Handle = %q", got)
	}
}

func TestRegistryInvalidNames(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"div", "", "élan", "9Lives"} {
		if err := reg.Register(name, render.NopHandler); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Register(%q) err = %v, want ErrInvalidName", name, err)
		}
	}
	if err := reg.Register("Ok", nil); err == nil {
		t.Error("Register with nil handler succeeded")
	}
}

func TestRegistryNamesAndUnregister(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("B", render.NopHandler)
	reg.MustRegister("A", render.NopHandler)
	if got, want := reg.Names(), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
	reg.Unregister("A")
	if _, ok := reg.Lookup("A"); ok {
		t.Error("A still registered")
	}
}

func TestRegistryConcurrentUse(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		name := fmt.Sprintf("C%d", i)
		go func() {
			defer wg.Done()
			reg.MustRegister(name, render.NopHandler)
		}()
		go func() {
			defer wg.Done()
			if _, err := reg.Handle(context.Background(), name, render.ComponentProps{}); err != nil {
				t.Errorf("Handle: %v", err)
			}
		}()
	}
	wg.Wait()
	if n := len(reg.Names()); n != 20 {
		t.Errorf("len(Names) = %d, want 20", n)
	}
}
