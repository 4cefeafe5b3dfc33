package convert

import "fmt"

// MalformedDocumentError reports an input document with no drawable canvas.
type MalformedDocumentError struct {
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

// MissingShapeError reports a unit group whose shape container holds neither
// a rectangle nor an embedded image.
type MissingShapeError struct {
	Group string
}

func (e *MissingShapeError) Error() string {
	return fmt.Sprintf("shape container in group %q has neither <rect> nor <image>", e.Group)
}

// PathFormatError reports curve data that violates the expected
// "M x y C x1 y1 x2 y2 x3 y3" cubic path convention.
type PathFormatError struct {
	Data   string
	Reason string
}

func (e *PathFormatError) Error() string {
	return fmt.Sprintf("bad cubic path %q: %s", e.Data, e.Reason)
}

// UnresolvedReferenceError reports an edge whose endpoint name was never
// registered by an earlier unit group.
type UnresolvedReferenceError struct {
	Group string
	Name  string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("could not find edge endpoints in group id %q", e.Group)
	}
	return fmt.Sprintf("edge group %q references undeclared shape %q", e.Group, e.Name)
}
