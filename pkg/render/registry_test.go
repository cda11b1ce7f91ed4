package render

import (
	"context"
	"testing"

	"github.com/karantnn/GitCode/pkg/record"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, *record.Record, Options) ([]byte, error) {
	return nil, nil
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "list"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "list"}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "tree"})
	registry.MustRegister(stubRenderer{name: "list"})
	registry.MustRegister(stubRenderer{name: "table"})

	names := registry.List()
	want := []string{"list", "table", "tree"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected lookup failure")
	}
	if registry.Has("missing") {
		t.Fatal("Has must report unregistered names as absent")
	}
}
