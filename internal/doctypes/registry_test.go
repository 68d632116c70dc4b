package doctypes

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if registry == nil {
		t.Fatal("NewRegistry returned nil")
	}
}

func TestRegistryGet(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	tests := []struct {
		id                  string
		wantErr             bool
		wantCuration        bool
		wantDirectPublish   bool
	}{
		{id: "own", wantCuration: false, wantDirectPublish: true},
		{id: "curated", wantCuration: true, wantDirectPublish: true},
		{id: "inspiration", wantCuration: false, wantDirectPublish: true},
		{id: "bogus", wantErr: true},
		{id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rules, err := registry.Get(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Get(%q) expected error", tt.id)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tt.id, err)
			}
			if rules.ID != tt.id {
				t.Errorf("ID = %q, want %q", rules.ID, tt.id)
			}
			if rules.RequiresCuration != tt.wantCuration {
				t.Errorf("RequiresCuration = %v, want %v", rules.RequiresCuration, tt.wantCuration)
			}
			if rules.AllowsDirectPublish != tt.wantDirectPublish {
				t.Errorf("AllowsDirectPublish = %v, want %v", rules.AllowsDirectPublish, tt.wantDirectPublish)
			}
		})
	}
}

func TestRegistryIsValid(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	for _, id := range []string{"own", "curated", "inspiration"} {
		if !registry.IsValid(id) {
			t.Errorf("IsValid(%q) = false, want true", id)
		}
	}
	if registry.IsValid("bogus") {
		t.Error("IsValid(\"bogus\") = true, want false")
	}
}

func TestRegistryList(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	list := registry.List()
	if len(list) != 3 {
		t.Fatalf("List() returned %d types, want 3", len(list))
	}
	// Sorted by ID.
	want := []string{"curated", "inspiration", "own"}
	for i, rules := range list {
		if rules.ID != want[i] {
			t.Errorf("List()[%d].ID = %q, want %q", i, rules.ID, want[i])
		}
	}
}
