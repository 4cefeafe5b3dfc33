package convert

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/beevik/etree"

	"github.com/dangunter/idaes-model-conn/internal/models"
)

// labelMargin is the fixed visual gap between a label and its shape edge.
const labelMargin = 4

// defaultFontSize is used when a text element carries no font-size style.
const defaultFontSize = 12

var (
	fontSizePattern = regexp.MustCompile(`font-size:\s*(\d+)px`)
	edgePattern     = regexp.MustCompile(`\((\S+)\s*->\s*(\S+)\)`)
	pathSeparators  = regexp.MustCompile(`[, ]+`)
)

// parseBounds reads the x/y/width/height attributes of a rect or image
// element, truncating to integer pixels.
func parseBounds(el *etree.Element) (models.Bounds, error) {
	var vals [4]float64
	for i, name := range [4]string{"x", "y", "width", "height"} {
		raw := el.SelectAttrValue(name, "")
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Bounds{}, fmt.Errorf("attribute %s=%q on <%s>: %w", name, raw, el.Tag, err)
		}
		vals[i] = math.Trunc(f)
	}
	return models.Bounds{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// fontSizeFromStyle extracts the pixel font size from an inline style
// attribute such as "text-anchor:middle;font-size:16px".
func fontSizeFromStyle(style string) int {
	m := fontSizePattern.FindStringSubmatch(style)
	if m == nil {
		return defaultFontSize
	}
	size, err := strconv.Atoi(m[1])
	if err != nil {
		return defaultFontSize
	}
	return size
}

// labelGeometry places a label inside its shape: centered vertically with the
// fixed margin, width padded by the font size, height 1.5 lines.
func labelGeometry(shape models.Bounds, fontSize int) (x, y, width, height float64) {
	fs := float64(fontSize)
	x = shape.X
	y = shape.Y + shape.Height/2 - labelMargin - fs/2
	width = shape.Width + fs
	height = fs * 1.5
	return
}

// edgeEndpoints parses the source and target names from an edge group id of
// the form "(source -> target)", ignoring any trailing index suffix.
func edgeEndpoints(groupID string) (source, target string, ok bool) {
	m := edgePattern.FindStringSubmatch(groupID)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// straightLine connects two shapes when the edge carries no path data. The
// start offset leaves the source shape on the side facing the target, at half
// the source's height.
func straightLine(start, end models.Bounds) (origin models.Point, width, height float64, points []models.Point) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	startX := 0.0
	if dx > 0 {
		startX = start.Width
	}
	startY := start.Height / 2
	origin = models.Point{start.X, start.Y}
	width = math.Abs(dx)
	height = math.Abs(dy)
	points = []models.Point{{startX, startY}, {dx, dy}}
	return
}

// samplePath reduces a cubic path "M x y C x1 y1 x2 y2 x3 y3 ..." to a
// 3-point relative polyline: the origin, the first control point, and the
// final endpoint. The second control point is deliberately dropped; consuming
// tools expect this specific simplified shape.
func samplePath(d string) (origin models.Point, width, height float64, points []models.Point, err error) {
	tokens := pathSeparators.Split(d, -1)
	if len(tokens) < 10 {
		err = &PathFormatError{Data: d, Reason: fmt.Sprintf("got %d items, expected 10 or more", len(tokens))}
		return
	}
	if tokens[0] != "M" {
		err = &PathFormatError{Data: d, Reason: "expected 'M' as first item"}
		return
	}
	if tokens[3] != "C" {
		err = &PathFormatError{Data: d, Reason: "expected 'C' as fourth item"}
		return
	}

	coord := func(i int) float64 {
		if err != nil {
			return 0
		}
		f, perr := strconv.ParseFloat(tokens[i], 64)
		if perr != nil {
			err = &PathFormatError{Data: d, Reason: fmt.Sprintf("item %d is not a number: %q", i, tokens[i])}
		}
		return f
	}

	startX, startY := coord(1), coord(2)
	endX, endY := coord(8), coord(9)
	n := len(tokens)
	points = []models.Point{
		{0, 0},
		{coord(4) - startX, coord(5) - startY},
		{coord(n-2) - startX, coord(n-1) - startY},
	}
	if err != nil {
		points = nil
		return
	}

	origin = models.Point{startX, startY}
	width = math.Abs(endX - startX)
	height = math.Abs(endY - startY)
	return
}
