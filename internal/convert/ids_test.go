package convert

import (
	"strings"
	"testing"
)

func TestIDSource_ElementID(t *testing.T) {
	t.Run("produces 21-character ids from the alphabet", func(t *testing.T) {
		src := NewIDSource(1)
		for i := 0; i < 100; i++ {
			id := src.ElementID()
			if len(id) != 21 {
				t.Fatalf("Expected id length 21, got %d (%q)", len(id), id)
			}
			for _, c := range id {
				if !strings.ContainsRune(idAlphabet, c) {
					t.Fatalf("Id %q contains character %q outside the alphabet", id, c)
				}
			}
		}
	})

	t.Run("same seed reproduces the same sequence", func(t *testing.T) {
		a := NewIDSource(42)
		b := NewIDSource(42)
		for i := 0; i < 10; i++ {
			if got, want := a.ElementID(), b.ElementID(); got != want {
				t.Fatalf("Sequence diverged at step %d: %q vs %q", i, got, want)
			}
		}
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		a := NewIDSource(1)
		b := NewIDSource(2)
		if a.ElementID() == b.ElementID() {
			t.Error("Expected different first ids for different seeds")
		}
	})
}

func TestBlobID(t *testing.T) {
	t.Run("is the hex sha1 of the payload", func(t *testing.T) {
		// Known SHA-1 vector.
		if got := BlobID("abc"); got != "a9993e364706816aba3e25717850c26c9cd0d89d" {
			t.Errorf("Expected sha1 of 'abc', got %s", got)
		}
	})

	t.Run("identical payloads yield identical ids", func(t *testing.T) {
		payload := "data:image/svg+xml;base64,PD94bWwgdmVyc2lvbj0iMS4wIj8+"
		if BlobID(payload) != BlobID(payload) {
			t.Error("Expected content-addressed ids to be deterministic")
		}
	})

	t.Run("different payloads yield different ids", func(t *testing.T) {
		if BlobID("a") == BlobID("b") {
			t.Error("Expected different ids for different payloads")
		}
	})
}
