package models

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewScene(t *testing.T) {
	s := NewScene()

	if s.Type != "excalidraw" {
		t.Errorf("Expected type 'excalidraw', got %s", s.Type)
	}
	if s.Version != 2 {
		t.Errorf("Expected version 2, got %d", s.Version)
	}
	if s.Source != "idaes" {
		t.Errorf("Expected source 'idaes', got %s", s.Source)
	}
	if s.AppState.GridSize != 20 || s.AppState.GridStep != 5 {
		t.Errorf("Unexpected grid defaults: %+v", s.AppState)
	}
	if s.AppState.ViewBackgroundColor != "#ffffff" {
		t.Errorf("Expected white background, got %s", s.AppState.ViewBackgroundColor)
	}
}

func TestScene_Encode(t *testing.T) {
	t.Run("empty collections marshal as empty, not null", func(t *testing.T) {
		s := NewScene()
		s.Add(NewRectangle("rect1", Bounds{X: 1, Y: 2, Width: 3, Height: 4}, 1700000000, DefaultStyle()))

		var buf bytes.Buffer
		if err := s.Encode(&buf, ""); err != nil {
			t.Fatalf("Failed to encode scene: %v", err)
		}
		out := buf.String()

		for _, want := range []string{
			`"elements":[{`,
			`"files":{}`,
			`"points":[]`,
			`"boundElements":[]`,
			`"groupIds":[]`,
			`"roundness":{"type":3}`,
			`"originalText":null`,
			`"frameId":null`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected output to contain %s", want)
			}
		}
	})

	t.Run("integer coordinates carry no decimal point", func(t *testing.T) {
		s := NewScene()
		s.Add(NewRectangle("rect1", Bounds{X: 286, Y: 120, Width: 132, Height: 66}, 1700000000, DefaultStyle()))

		var buf bytes.Buffer
		if err := s.Encode(&buf, ""); err != nil {
			t.Fatalf("Failed to encode scene: %v", err)
		}
		if !strings.Contains(buf.String(), `"x":286,"y":120,"width":132,"height":66`) {
			t.Errorf("Expected integral coordinates, got %s", buf.String())
		}
	})

	t.Run("indent is honored", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewScene().Encode(&buf, "  "); err != nil {
			t.Fatalf("Failed to encode scene: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"type\": \"excalidraw\"") {
			t.Error("Expected indented output")
		}
	})
}

func TestScene_Validate(t *testing.T) {
	now := int64(1700000000)
	style := DefaultStyle()

	t.Run("accepts consistent references", func(t *testing.T) {
		s := NewScene()
		rect := NewRectangle("rect1", Bounds{}, now, style)
		label := NewText("text1", "a", 0, 0, 10, 10, 12, now, style)
		rect.Bind(BoundElement{Type: "text", ID: "text1"})
		label.ContainerID = &rect.ID
		s.Add(rect)
		s.Add(label)

		if err := s.Validate(); err != nil {
			t.Errorf("Expected valid scene, got %v", err)
		}
	})

	t.Run("rejects dangling containerId", func(t *testing.T) {
		s := NewScene()
		label := NewText("text1", "a", 0, 0, 10, 10, 12, now, style)
		missing := "nope"
		label.ContainerID = &missing
		s.Add(label)

		if err := s.Validate(); err == nil {
			t.Error("Expected validation error for dangling containerId")
		}
	})

	t.Run("rejects dangling boundElements entry", func(t *testing.T) {
		s := NewScene()
		rect := NewRectangle("rect1", Bounds{}, now, style)
		rect.Bind(BoundElement{Type: "arrow", ID: "ghost"})
		s.Add(rect)

		if err := s.Validate(); err == nil {
			t.Error("Expected validation error for dangling boundElements id")
		}
	})

	t.Run("rejects arrow bound to unknown element", func(t *testing.T) {
		s := NewScene()
		arrow := NewArrow("arrow1", Point{0, 0}, 10, 10, []Point{{0, 0}, {10, 10}}, "ghostA", "ghostB", now, style)
		s.Add(arrow)

		if err := s.Validate(); err == nil {
			t.Error("Expected validation error for unknown binding target")
		}
	})

	t.Run("rejects image without stored blob", func(t *testing.T) {
		s := NewScene()
		s.Add(NewImage("img1", Bounds{}, "missing-blob", now, style))

		if err := s.Validate(); err == nil {
			t.Error("Expected validation error for missing blob")
		}
	})

	t.Run("accepts image with stored blob", func(t *testing.T) {
		s := NewScene()
		blob := NewImageBlob("blob1", "data:image/svg+xml;base64,AAAA", now)
		img := NewImage("img1", Bounds{}, "blob1", now, style)
		s.Add(img)
		s.AttachBlob(blob)

		if err := s.Validate(); err != nil {
			t.Errorf("Expected valid scene, got %v", err)
		}
	})
}
