// Package models defines the Excalidraw scene document and its element records.
package models

import (
	"encoding/json"
	"fmt"
	"io"
)

// SceneType is the schema tag Excalidraw expects at the top of a scene file.
const SceneType = "excalidraw"

// SceneVersion is the schema version this package emits.
const SceneVersion = 2

// SceneSource identifies the tool that produced the scene.
const SceneSource = "idaes"

// AppState holds the editor-state defaults written into every scene.
type AppState struct {
	GridSize            int    `json:"gridSize"`
	GridStep            int    `json:"gridStep"`
	GridModeEnabled     bool   `json:"gridModeEnabled"`
	ViewBackgroundColor string `json:"viewBackgroundColor"`
}

// ImageBlob is an embedded image payload, keyed in the scene by its
// content-addressed id.
type ImageBlob struct {
	MimeType      string `json:"mimeType"`
	ID            string `json:"id"`
	DataURL       string `json:"dataURL"`
	Created       int64  `json:"created"`
	LastRetrieved int64  `json:"lastRetrieved"`
}

// NewImageBlob builds a blob record for an embedded SVG image payload.
func NewImageBlob(id, dataURL string, now int64) ImageBlob {
	return ImageBlob{
		MimeType:      "image/svg+xml",
		ID:            id,
		DataURL:       dataURL,
		Created:       now,
		LastRetrieved: now,
	}
}

// Scene is the full Excalidraw document: an ordered element list (document
// order is rendering stack order, later elements on top) plus embedded files.
type Scene struct {
	Type     string               `json:"type"`
	Version  int                  `json:"version"`
	Source   string               `json:"source"`
	Elements []Element            `json:"elements"`
	AppState AppState             `json:"appState"`
	Files    map[string]ImageBlob `json:"files"`
}

// NewScene creates an empty scene with the preset defaults.
func NewScene() *Scene {
	return &Scene{
		Type:     SceneType,
		Version:  SceneVersion,
		Source:   SceneSource,
		Elements: []Element{},
		AppState: AppState{
			GridSize:            20,
			GridStep:            5,
			GridModeEnabled:     false,
			ViewBackgroundColor: "#ffffff",
		},
		Files: map[string]ImageBlob{},
	}
}

// Add appends an element in encounter order.
func (s *Scene) Add(el Element) {
	s.Elements = append(s.Elements, el)
}

// AttachBlob stores an image blob, deduplicating by its content-addressed id.
func (s *Scene) AttachBlob(blob ImageBlob) {
	s.Files[blob.ID] = blob
}

// Validate is the single boundary check performed before a scene is handed
// out: every id referenced by a containerId, a boundElements entry, an arrow
// binding, or a fileId must resolve to an element or a stored blob.
func (s *Scene) Validate() error {
	known := make(map[string]bool, len(s.Elements))
	for _, el := range s.Elements {
		known[el.ElementID()] = true
	}

	check := func(kind, from, id string) error {
		if !known[id] {
			return fmt.Errorf("scene validation: %s on element %s references unknown id %s", kind, from, id)
		}
		return nil
	}

	for _, el := range s.Elements {
		switch e := el.(type) {
		case *Rectangle:
			for _, be := range e.BoundElements {
				if err := check("boundElements", e.ID, be.ID); err != nil {
					return err
				}
			}
		case *Image:
			for _, be := range e.BoundElements {
				if err := check("boundElements", e.ID, be.ID); err != nil {
					return err
				}
			}
			if _, ok := s.Files[e.FileID]; !ok {
				return fmt.Errorf("scene validation: image %s references unknown file %s", e.ID, e.FileID)
			}
		case *Text:
			if e.ContainerID != nil {
				if err := check("containerId", e.ID, *e.ContainerID); err != nil {
					return err
				}
			}
		case *Arrow:
			if e.StartBinding != nil {
				if err := check("startBinding", e.ID, e.StartBinding.ElementID); err != nil {
					return err
				}
			}
			if e.EndBinding != nil {
				if err := check("endBinding", e.ID, e.EndBinding.ElementID); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Encode writes the scene as JSON. An empty indent produces compact output.
func (s *Scene) Encode(w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	return nil
}
