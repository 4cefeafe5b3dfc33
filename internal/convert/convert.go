// Package convert translates rendered connectivity-diagram SVG documents
// (the structural convention emitted by D2) into Excalidraw scene documents.
//
// The translation is a single forward pass over the document's top-level
// groups. Unit groups register their name and shape first; edge groups
// resolve those names later in the same pass, so the input must declare
// shapes before the connectors that reference them.
package convert

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/dangunter/idaes-model-conn/internal/models"
)

// Translator converts SVG documents into scenes. A Translator is cheap to
// create; each Translate call runs independently over its own context.
type Translator struct {
	ids   *IDSource
	style models.Style
}

// Option configures a Translator.
type Option func(*Translator)

// WithIDSource injects a seedable id source so runs are reproducible.
func WithIDSource(src *IDSource) Option {
	return func(t *Translator) { t.ids = src }
}

// WithStyle overrides the element style defaults, e.g. from a YAML preset.
func WithStyle(st models.Style) Option {
	return func(t *Translator) { t.style = st }
}

// New creates a Translator with random ids and the fixed style defaults.
func New(opts ...Option) *Translator {
	t := &Translator{
		ids:   NewRandomIDSource(),
		style: models.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// translationContext carries the shared lookup state for one run: the
// name-to-id map populated by unit groups and consumed by edge groups, plus
// the bounds and shape records needed for connector geometry and bindings.
type translationContext struct {
	ids    *IDSource
	names  map[string]string
	bounds map[string]models.Bounds
	shapes map[string]models.Shape
}

func newTranslationContext(ids *IDSource) *translationContext {
	return &translationContext{
		ids:    ids,
		names:  make(map[string]string),
		bounds: make(map[string]models.Bounds),
		shapes: make(map[string]models.Shape),
	}
}

// Translate reads one SVG document and produces the corresponding scene.
// Any classification, geometry, or reference failure aborts the run; no
// partial scene is returned.
func (t *Translator) Translate(r io.Reader) (*models.Scene, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading svg document: %w", err)
	}

	canvas, err := findCanvas(doc)
	if err != nil {
		return nil, err
	}

	tc := newTranslationContext(t.ids)
	scene := models.NewScene()

	for _, item := range canvas.ChildElements() {
		if item.Tag != "g" {
			continue
		}
		if err := t.translateGroup(item, tc, scene); err != nil {
			return nil, err
		}
	}

	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

// findCanvas locates the drawable canvas: D2 wraps the diagram in an inner
// <svg> element under the document root.
func findCanvas(doc *etree.Document) (*etree.Element, error) {
	root := doc.Root()
	if root == nil {
		return nil, &MalformedDocumentError{Reason: "document has no root element"}
	}
	for _, child := range root.ChildElements() {
		if child.Tag == "svg" {
			return child, nil
		}
	}
	return nil, &MalformedDocumentError{Reason: "cannot find <svg> canvas element"}
}

// translateGroup classifies one top-level group and emits its elements.
// A unit group yields a shape and optionally a label; an edge group yields
// a connector. Emission order within a group is shape, label, connector.
func (t *Translator) translateGroup(group *etree.Element, tc *translationContext, scene *models.Scene) error {
	name := group.SelectAttrValue("id", "")
	elementID := tc.ids.ElementID()
	tc.names[name] = elementID

	var rectEl, imageEl, textEl, pathEl *etree.Element
	for _, sub := range group.ChildElements() {
		switch {
		case sub.Tag == "g" && sub.SelectAttrValue("class", "") == "shape":
			for _, inner := range sub.ChildElements() {
				if inner.Tag == "rect" {
					rectEl = inner
					break
				}
				if inner.Tag == "image" {
					imageEl = inner
					break
				}
			}
			if rectEl == nil && imageEl == nil {
				return &MissingShapeError{Group: name}
			}
		case sub.Tag == "text":
			textEl = sub
		case sub.Tag == "path":
			pathEl = sub
		}
	}

	now := time.Now().Unix()

	var (
		rect        *models.Rectangle
		image       *models.Image
		label       *models.Text
		arrow       *models.Arrow
		blob        models.ImageBlob
		shapeBounds models.Bounds
		fontSize    int
	)

	if rectEl != nil {
		b, err := parseBounds(rectEl)
		if err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
		rect = models.NewRectangle(elementID, b, now, t.style)
		tc.bounds[elementID] = b
		tc.shapes[elementID] = rect
		shapeBounds = b
	}

	if imageEl != nil {
		b, err := parseBounds(imageEl)
		if err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
		data := imageEl.SelectAttrValue("href", "")
		fileID := BlobID(data)
		blob = models.NewImageBlob(fileID, data, now)
		image = models.NewImage(elementID, b, fileID, now, t.style)
		tc.bounds[elementID] = b
		tc.shapes[elementID] = image
		shapeBounds = b
	}

	if textEl != nil && (rect != nil || image != nil) {
		textID := tc.ids.ElementID()
		value := strings.TrimSpace(textEl.Text())
		fontSize = fontSizeFromStyle(textEl.SelectAttrValue("style", ""))
		x, y, width, height := labelGeometry(shapeBounds, fontSize)
		label = models.NewText(textID, value, x, y, width, height, fontSize, now, t.style)
	}

	if pathEl != nil {
		a, err := t.translateEdge(name, pathEl, tc, now)
		if err != nil {
			return err
		}
		arrow = a
	}

	switch {
	case label != nil && rect != nil:
		rect.Bind(models.BoundElement{Type: "text", ID: label.ID})
		label.ContainerID = &rect.ID
	case label != nil && image != nil:
		// Images cannot contain bound text, so group the pair instead and
		// render the label beneath the image.
		groupID := tc.ids.ElementID()
		image.GroupIDs = []string{groupID}
		label.GroupIDs = []string{groupID}
		label.Y += image.Height/2 + float64(fontSize)/2
	}

	if rect != nil {
		scene.Add(rect)
	}
	if image != nil {
		scene.Add(image)
		scene.AttachBlob(blob)
	}
	if label != nil {
		scene.Add(label)
	}
	if arrow != nil {
		scene.Add(arrow)
	}
	return nil
}

// translateEdge builds a connector from an edge group. Both endpoint names
// must have been registered by unit groups earlier in the document.
func (t *Translator) translateEdge(groupID string, pathEl *etree.Element, tc *translationContext, now int64) (*models.Arrow, error) {
	arrowID := tc.ids.ElementID()

	source, target, ok := edgeEndpoints(groupID)
	if !ok {
		return nil, &UnresolvedReferenceError{Group: groupID}
	}
	startID, ok := tc.names[source]
	if !ok {
		return nil, &UnresolvedReferenceError{Group: groupID, Name: source}
	}
	endID, ok := tc.names[target]
	if !ok {
		return nil, &UnresolvedReferenceError{Group: groupID, Name: target}
	}

	var (
		origin        models.Point
		width, height float64
		points        []models.Point
	)
	if attr := pathEl.SelectAttr("d"); attr == nil {
		// No explicit curve data: connect with a straight line.
		startBounds, ok := tc.bounds[startID]
		if !ok {
			return nil, &UnresolvedReferenceError{Group: groupID, Name: source}
		}
		endBounds, ok := tc.bounds[endID]
		if !ok {
			return nil, &UnresolvedReferenceError{Group: groupID, Name: target}
		}
		origin, width, height, points = straightLine(startBounds, endBounds)
	} else {
		var err error
		origin, width, height, points, err = samplePath(attr.Value)
		if err != nil {
			return nil, err
		}
	}

	arrow := models.NewArrow(arrowID, origin, width, height, points, startID, endID, now, t.style)

	startShape, ok := tc.shapes[startID]
	if !ok {
		return nil, &UnresolvedReferenceError{Group: groupID, Name: source}
	}
	endShape, ok := tc.shapes[endID]
	if !ok {
		return nil, &UnresolvedReferenceError{Group: groupID, Name: target}
	}
	// Append-only: multiple connectors between the same pair accumulate.
	startShape.Bind(models.BoundElement{Type: "arrow", ID: arrow.ID})
	endShape.Bind(models.BoundElement{Type: "arrow", ID: arrow.ID})

	return arrow, nil
}
