package app

import (
	"testing"

	"github.com/rindev0901/video-group-meeting/internal/domain"
)

func TestRegistryPutGetDelete(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("A"); ok {
		t.Fatalf("empty registry must not resolve ids")
	}

	p, err := domain.NewPresence("Alice")
	if err != nil {
		t.Fatalf("new presence: %v", err)
	}
	r.Put("A", p)

	got, ok := r.Get("A")
	if !ok || got.UserName != "Alice" || !got.Video || !got.Audio {
		t.Fatalf("unexpected record: %+v ok=%v", got, ok)
	}
	if r.Len() != 1 {
		t.Fatalf("expected one record, got %d", r.Len())
	}

	r.Delete("A")
	if _, ok := r.Get("A"); ok {
		t.Fatalf("record must be gone after delete")
	}
	// Deleting again is a no-op.
	r.Delete("A")
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	p, _ := domain.NewPresence("Alice")
	r.Put("A", p)

	got, _ := r.Get("A")
	got.Video = false

	again, _ := r.Get("A")
	if !again.Video {
		t.Fatalf("mutating a Get result must not affect the stored record")
	}
}

func TestRegistryUpdateFlipsOnlyNamedFlag(t *testing.T) {
	r := NewRegistry()
	p, _ := domain.NewPresence("Alice")
	r.Put("A", p)

	if !r.Update("A", func(pr *domain.Presence) { _ = pr.Toggle(domain.MediaVideo) }) {
		t.Fatalf("update of existing record must report true")
	}
	got, _ := r.Get("A")
	if got.Video || !got.Audio {
		t.Fatalf("exactly one flag must flip: %+v", got)
	}

	if r.Update("ghost", func(pr *domain.Presence) {}) {
		t.Fatalf("update of unknown id must report false")
	}
}
