package convert

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/dangunter/idaes-model-conn/internal/models"
)

const testPath = "M 110.000000 25.000000 C 150.000000 25.000000 180.000000 25.000000 220.000000 25.000000"

// document wraps top-level groups in the nested-svg convention D2 emits.
func document(groups ...string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><svg>`)
	for _, g := range groups {
		sb.WriteString(g)
	}
	sb.WriteString(`</svg></svg>`)
	return sb.String()
}

func rectUnit(id string, x, y int) string {
	return `<g id="` + id + `"><g class="shape"><rect x="` + strconv.Itoa(x) + `.000000" y="` + strconv.Itoa(y) + `.000000" width="100.000000" height="50.000000" stroke="#0D32B2" fill="#F7F8FE"/></g>` +
		`<text x="60.000000" y="30.500000" style="text-anchor:middle;font-size:16px"> ` + id + ` </text></g>`
}

func imageUnit(id, payload string) string {
	return `<g id="` + id + `"><g class="shape"><image href="` + payload + `" x="10.000000" y="20.000000" width="128.000000" height="128.000000"/></g>` +
		`<text x="74.000000" y="84.000000" style="font-size:16px">` + id + `</text></g>`
}

func edgeGroup(id, pathAttrs string) string {
	return `<g id="` + id + `"><path ` + pathAttrs + `/></g>`
}

func translate(t *testing.T, svg string) *models.Scene {
	t.Helper()
	scene, err := New(WithIDSource(NewIDSource(7))).Translate(strings.NewReader(svg))
	if err != nil {
		t.Fatalf("Failed to translate: %v", err)
	}
	return scene
}

func TestTranslate_EndToEnd(t *testing.T) {
	svg := document(
		rectUnit("Unit_A", 10, 0),
		rectUnit("Unit_B", 220, 0),
		edgeGroup("(Unit_A -&gt; Unit_B)[0]", `d="`+testPath+`"`),
	)
	scene := translate(t, svg)

	if len(scene.Elements) != 5 {
		t.Fatalf("Expected 5 elements (2 rectangles, 2 labels, 1 connector), got %d", len(scene.Elements))
	}
	if len(scene.Files) != 0 {
		t.Errorf("Expected empty blob map, got %d entries", len(scene.Files))
	}

	rectA, ok := scene.Elements[0].(*models.Rectangle)
	if !ok {
		t.Fatalf("Expected element 0 to be a rectangle, got %T", scene.Elements[0])
	}
	labelA, ok := scene.Elements[1].(*models.Text)
	if !ok {
		t.Fatalf("Expected element 1 to be a label, got %T", scene.Elements[1])
	}
	rectB := scene.Elements[2].(*models.Rectangle)
	arrow, ok := scene.Elements[4].(*models.Arrow)
	if !ok {
		t.Fatalf("Expected element 4 to be a connector, got %T", scene.Elements[4])
	}

	if arrow.StartBinding.ElementID != rectA.ID {
		t.Errorf("Expected startBinding %s, got %s", rectA.ID, arrow.StartBinding.ElementID)
	}
	if arrow.EndBinding.ElementID != rectB.ID {
		t.Errorf("Expected endBinding %s, got %s", rectB.ID, arrow.EndBinding.ElementID)
	}
	if labelA.ContainerID == nil || *labelA.ContainerID != rectA.ID {
		t.Errorf("Expected label containerId %s, got %v", rectA.ID, labelA.ContainerID)
	}

	// The source rectangle carries back-references to its label and the arrow.
	wantBound := []models.BoundElement{
		{Type: "text", ID: labelA.ID},
		{Type: "arrow", ID: arrow.ID},
	}
	if len(rectA.BoundElements) != 2 {
		t.Fatalf("Expected 2 boundElements on source, got %d", len(rectA.BoundElements))
	}
	for i, want := range wantBound {
		if rectA.BoundElements[i] != want {
			t.Errorf("boundElements[%d]: expected %+v, got %+v", i, want, rectA.BoundElements[i])
		}
	}

	if arrow.Points[0] != (models.Point{0, 0}) {
		t.Errorf("Expected first connector point (0, 0), got %v", arrow.Points[0])
	}
}

func TestTranslate_RectangleLabelBinding(t *testing.T) {
	scene := translate(t, document(rectUnit("leach_mixer", 286, 120)))

	rect := scene.Elements[0].(*models.Rectangle)
	label := scene.Elements[1].(*models.Text)

	if len(rect.BoundElements) != 1 {
		t.Fatalf("Expected exactly 1 boundElement, got %d", len(rect.BoundElements))
	}
	if be := rect.BoundElements[0]; be.Type != "text" || be.ID != label.ID {
		t.Errorf("Expected {text, %s}, got %+v", label.ID, be)
	}
	if label.ContainerID == nil || *label.ContainerID != rect.ID {
		t.Errorf("Expected containerId %s, got %v", rect.ID, label.ContainerID)
	}
	if label.Text != "leach_mixer" {
		t.Errorf("Expected trimmed text 'leach_mixer', got %q", label.Text)
	}
	if label.FontSize != 16 {
		t.Errorf("Expected font size 16, got %d", label.FontSize)
	}
}

func TestTranslate_ImageLabelGrouping(t *testing.T) {
	payload := "data:image/svg+xml;base64,PD94bWwgdmVyc2lvbj0iMS4wIj8+"
	scene := translate(t, document(imageUnit("mixer", payload)))

	if len(scene.Elements) != 2 {
		t.Fatalf("Expected image and label, got %d elements", len(scene.Elements))
	}
	image := scene.Elements[0].(*models.Image)
	label := scene.Elements[1].(*models.Text)

	if len(image.GroupIDs) != 1 || len(label.GroupIDs) != 1 {
		t.Fatal("Expected image and label to carry one group id each")
	}
	if image.GroupIDs[0] != label.GroupIDs[0] {
		t.Errorf("Expected shared group id, got %s and %s", image.GroupIDs[0], label.GroupIDs[0])
	}
	if label.ContainerID != nil {
		t.Errorf("Expected no containerId for image labels, got %v", *label.ContainerID)
	}
	if label.Y <= image.Y+image.Height/2 {
		t.Errorf("Expected label below the image midline, got y=%v (image y=%v h=%v)", label.Y, image.Y, image.Height)
	}

	blob, ok := scene.Files[image.FileID]
	if !ok {
		t.Fatalf("Expected blob %s in files map", image.FileID)
	}
	if blob.DataURL != payload {
		t.Error("Blob payload does not match the embedded href")
	}
	if blob.MimeType != "image/svg+xml" {
		t.Errorf("Expected mime type image/svg+xml, got %s", blob.MimeType)
	}
}

func TestTranslate_BlobDeduplication(t *testing.T) {
	payload := "data:image/svg+xml;base64,PD94bWwgdmVyc2lvbj0iMS4wIj8+"
	scene := translate(t, document(imageUnit("pump_1", payload), imageUnit("pump_2", payload)))

	if len(scene.Files) != 1 {
		t.Fatalf("Expected identical payloads to share one blob, got %d", len(scene.Files))
	}
	img1 := scene.Elements[0].(*models.Image)
	img2 := scene.Elements[2].(*models.Image)
	if img1.FileID != img2.FileID {
		t.Errorf("Expected identical file ids, got %s and %s", img1.FileID, img2.FileID)
	}
	if img1.ID == img2.ID {
		t.Error("Expected distinct element ids for the two images")
	}
}

func TestTranslate_StraightLineFallback(t *testing.T) {
	svg := document(
		rectUnit("Unit_A", 0, 0),
		rectUnit("Unit_B", 200, 80),
		edgeGroup("(Unit_A -&gt; Unit_B)", ""),
	)
	scene := translate(t, svg)

	arrow := scene.Elements[4].(*models.Arrow)
	if len(arrow.Points) != 2 {
		t.Fatalf("Expected 2-point fallback polyline, got %d points", len(arrow.Points))
	}
	// Target is to the right, so the line leaves from the source's right edge
	// at half its height.
	if arrow.Points[0] != (models.Point{100, 25}) {
		t.Errorf("Expected start offset (100, 25), got %v", arrow.Points[0])
	}
	if arrow.Points[1] != (models.Point{200, 80}) {
		t.Errorf("Expected waypoint (200, 80), got %v", arrow.Points[1])
	}
	if arrow.X != 0 || arrow.Y != 0 {
		t.Errorf("Expected arrow anchored at source bounds, got (%v, %v)", arrow.X, arrow.Y)
	}
}

func TestTranslate_MultipleConnectorsAccumulate(t *testing.T) {
	svg := document(
		rectUnit("Unit_A", 0, 0),
		rectUnit("Unit_B", 200, 0),
		edgeGroup("(Unit_A -&gt; Unit_B)[0]", `d="`+testPath+`"`),
		edgeGroup("(Unit_A -&gt; Unit_B)[1]", `d="`+testPath+`"`),
	)
	scene := translate(t, svg)

	rectA := scene.Elements[0].(*models.Rectangle)
	var arrows int
	for _, be := range rectA.BoundElements {
		if be.Type == "arrow" {
			arrows++
		}
	}
	if arrows != 2 {
		t.Errorf("Expected 2 accumulated arrow back-references, got %d", arrows)
	}
}

func TestTranslate_SeededRunsAreReproducible(t *testing.T) {
	svg := document(rectUnit("Unit_A", 0, 0), rectUnit("Unit_B", 200, 0))

	first := translate(t, svg)
	second := translate(t, svg)

	for i := range first.Elements {
		if first.Elements[i].ElementID() != second.Elements[i].ElementID() {
			t.Fatalf("Element %d ids differ between identically seeded runs", i)
		}
	}
}

func TestTranslate_Errors(t *testing.T) {
	t.Run("missing canvas", func(t *testing.T) {
		svg := `<svg xmlns="http://www.w3.org/2000/svg"><g id="Unit_A"/></svg>`
		_, err := New().Translate(strings.NewReader(svg))
		var docErr *MalformedDocumentError
		if !errors.As(err, &docErr) {
			t.Errorf("Expected MalformedDocumentError, got %v", err)
		}
	})

	t.Run("empty shape container", func(t *testing.T) {
		svg := document(`<g id="Unit_A"><g class="shape"><circle r="5"/></g></g>`)
		_, err := New().Translate(strings.NewReader(svg))
		var shapeErr *MissingShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("Expected MissingShapeError, got %v", err)
		}
		if shapeErr.Group != "Unit_A" {
			t.Errorf("Expected group Unit_A in error, got %q", shapeErr.Group)
		}
	})

	t.Run("short cubic path", func(t *testing.T) {
		svg := document(
			rectUnit("Unit_A", 0, 0),
			rectUnit("Unit_B", 200, 0),
			edgeGroup("(Unit_A -&gt; Unit_B)", `d="M 1 2 C 3 4"`),
		)
		_, err := New().Translate(strings.NewReader(svg))
		var pathErr *PathFormatError
		if !errors.As(err, &pathErr) {
			t.Errorf("Expected PathFormatError, got %v", err)
		}
	})

	t.Run("undeclared endpoint", func(t *testing.T) {
		svg := document(
			rectUnit("Unit_A", 0, 0),
			edgeGroup("(Unit_A -&gt; Unit_Z)", `d="`+testPath+`"`),
		)
		_, err := New().Translate(strings.NewReader(svg))
		var refErr *UnresolvedReferenceError
		if !errors.As(err, &refErr) {
			t.Fatalf("Expected UnresolvedReferenceError, got %v", err)
		}
		if refErr.Name != "Unit_Z" {
			t.Errorf("Expected undeclared name Unit_Z, got %q", refErr.Name)
		}
	})

	t.Run("edge id without endpoint pattern", func(t *testing.T) {
		svg := document(
			rectUnit("Unit_A", 0, 0),
			edgeGroup("not_an_edge", `d="`+testPath+`"`),
		)
		_, err := New().Translate(strings.NewReader(svg))
		var refErr *UnresolvedReferenceError
		if !errors.As(err, &refErr) {
			t.Errorf("Expected UnresolvedReferenceError, got %v", err)
		}
	})
}

func TestTranslate_IgnoresNonGroupChildren(t *testing.T) {
	svg := document(
		`<style>.fill-B6 { fill: #F7F8FE; }</style>`,
		rectUnit("Unit_A", 0, 0),
		`<defs><marker id="arrowhead"/></defs>`,
	)
	scene := translate(t, svg)
	if len(scene.Elements) != 2 {
		t.Errorf("Expected only the unit's 2 elements, got %d", len(scene.Elements))
	}
}
