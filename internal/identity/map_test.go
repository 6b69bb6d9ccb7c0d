package identity_test

import (
	"testing"

	"staff_reviews/internal/identity"
)

type item struct{ name string }

func TestMap_PutGetDelete(t *testing.T) {
	m := identity.New[*item]()
	a := &item{name: "a"}
	m.Put(1, a)

	got, ok := m.Get(1)
	if !ok || got != a {
		t.Fatalf("expected same instance back, got %v ok=%v", got, ok)
	}

	// replacing keeps one entry per key
	b := &item{name: "b"}
	m.Put(1, b)
	if m.Len() != 1 {
		t.Fatalf("len: %d", m.Len())
	}

	m.Delete(1)
	if _, ok := m.Get(1); ok {
		t.Fatalf("expected entry to be gone")
	}
	m.Delete(1) // no-op
}

func TestMap_Clear(t *testing.T) {
	m := identity.New[*item]()
	for i := int64(1); i <= 3; i++ {
		m.Put(i, &item{})
	}
	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %d", m.Len())
	}
}
