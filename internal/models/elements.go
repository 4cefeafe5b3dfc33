package models

// Element is any drawable record in a scene.
type Element interface {
	ElementID() string
	ElementType() string
}

// Shape is an element that can carry back-references to attached labels and
// connectors.
type Shape interface {
	Element
	Bind(be BoundElement)
}

// Point is a coordinate pair serialized as a two-item array.
type Point [2]float64

// Bounds is the (x, y, width, height) box describing an element's position
// and extent.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BoundElement is a back-reference linking a shape to an attached label or
// connector.
type BoundElement struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Binding attaches one end of an arrow to a shape.
type Binding struct {
	ElementID  string  `json:"elementId"`
	Focus      float64 `json:"focus"`
	Gap        float64 `json:"gap"`
	FixedPoint *Point  `json:"fixedPoint"`
}

// Roundness selects one of Excalidraw's corner-rounding modes.
type Roundness struct {
	Type int `json:"type"`
}

// Style holds the default visual attributes applied to new elements. The
// zero-config values match what Excalidraw writes for hand-drawn diagrams.
type Style struct {
	StrokeColor     string `yaml:"strokeColor"`
	ArrowColor      string `yaml:"arrowColor"`
	BackgroundColor string `yaml:"backgroundColor"`
	FillStyle       string `yaml:"fillStyle"`
	StrokeWidth     int    `yaml:"strokeWidth"`
	StrokeStyle     string `yaml:"strokeStyle"`
	Roughness       int    `yaml:"roughness"`
	Opacity         int    `yaml:"opacity"`
	FontFamily      int    `yaml:"fontFamily"`
}

// DefaultStyle returns the fixed style defaults used when no preset is loaded.
func DefaultStyle() Style {
	return Style{
		StrokeColor:     "#000000",
		ArrowColor:      "#1e1e1e",
		BackgroundColor: "transparent",
		FillStyle:       "solid",
		StrokeWidth:     2,
		StrokeStyle:     "solid",
		Roughness:       1,
		Opacity:         100,
		FontFamily:      6,
	}
}

// Rectangle is a box shape created from a unit group.
type Rectangle struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	X               float64        `json:"x"`
	Y               float64        `json:"y"`
	Width           float64        `json:"width"`
	Height          float64        `json:"height"`
	Angle           float64        `json:"angle"`
	StrokeColor     string         `json:"strokeColor"`
	BackgroundColor string         `json:"backgroundColor"`
	FillStyle       string         `json:"fillStyle"`
	StrokeWidth     int            `json:"strokeWidth"`
	StrokeStyle     string         `json:"strokeStyle"`
	Roughness       int            `json:"roughness"`
	Opacity         int            `json:"opacity"`
	Roundness       *Roundness     `json:"roundness"`
	IsDeleted       bool           `json:"isDeleted"`
	Updated         int64          `json:"updated"`
	Locked          bool           `json:"locked"`
	Points          []Point        `json:"points"`
	OriginalText    *string        `json:"originalText"`
	AutoResize      bool           `json:"autoResize"`
	LineHeight      float64        `json:"lineHeight"`
	GroupIDs        []string       `json:"groupIds"`
	FrameID         *string        `json:"frameId"`
	Link            *string        `json:"link"`
	BoundElements   []BoundElement `json:"boundElements"`
}

// NewRectangle builds a rectangle with the given bounds and style defaults.
func NewRectangle(id string, b Bounds, now int64, st Style) *Rectangle {
	return &Rectangle{
		ID:              id,
		Type:            "rectangle",
		X:               b.X,
		Y:               b.Y,
		Width:           b.Width,
		Height:          b.Height,
		StrokeColor:     st.StrokeColor,
		BackgroundColor: st.BackgroundColor,
		FillStyle:       st.FillStyle,
		StrokeWidth:     st.StrokeWidth,
		StrokeStyle:     st.StrokeStyle,
		Roughness:       st.Roughness,
		Opacity:         st.Opacity,
		Roundness:       &Roundness{Type: 3},
		Updated:         now,
		Points:          []Point{},
		AutoResize:      true,
		LineHeight:      1.25,
		GroupIDs:        []string{},
		BoundElements:   []BoundElement{},
	}
}

func (r *Rectangle) ElementID() string    { return r.ID }
func (r *Rectangle) ElementType() string  { return r.Type }
func (r *Rectangle) Bind(be BoundElement) { r.BoundElements = append(r.BoundElements, be) }

// Image is an embedded-image shape; its pixels live in the scene's blob map.
type Image struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	X               float64        `json:"x"`
	Y               float64        `json:"y"`
	Width           float64        `json:"width"`
	Height          float64        `json:"height"`
	Angle           float64        `json:"angle"`
	StrokeColor     string         `json:"strokeColor"`
	BackgroundColor string         `json:"backgroundColor"`
	FillStyle       string         `json:"fillStyle"`
	StrokeWidth     int            `json:"strokeWidth"`
	StrokeStyle     string         `json:"strokeStyle"`
	Roughness       int            `json:"roughness"`
	Opacity         int            `json:"opacity"`
	Roundness       *Roundness     `json:"roundness"`
	IsDeleted       bool           `json:"isDeleted"`
	Updated         int64          `json:"updated"`
	Locked          bool           `json:"locked"`
	Points          []Point        `json:"points"`
	OriginalText    *string        `json:"originalText"`
	AutoResize      bool           `json:"autoResize"`
	LineHeight      float64        `json:"lineHeight"`
	GroupIDs        []string       `json:"groupIds"`
	FrameID         *string        `json:"frameId"`
	Link            *string        `json:"link"`
	BoundElements   []BoundElement `json:"boundElements"`
	Scale           [2]float64     `json:"scale"`
	Crop            *Bounds        `json:"crop"`
	FileID          string         `json:"fileId"`
}

// NewImage builds an image element referencing a stored blob.
func NewImage(id string, b Bounds, fileID string, now int64, st Style) *Image {
	return &Image{
		ID:              id,
		Type:            "image",
		X:               b.X,
		Y:               b.Y,
		Width:           b.Width,
		Height:          b.Height,
		StrokeColor:     st.StrokeColor,
		BackgroundColor: st.BackgroundColor,
		FillStyle:       st.FillStyle,
		StrokeWidth:     st.StrokeWidth,
		StrokeStyle:     st.StrokeStyle,
		Roughness:       st.Roughness,
		Opacity:         st.Opacity,
		Updated:         now,
		Points:          []Point{},
		AutoResize:      true,
		LineHeight:      1.25,
		GroupIDs:        []string{},
		BoundElements:   []BoundElement{},
		Scale:           [2]float64{1, 1},
		FileID:          fileID,
	}
}

func (i *Image) ElementID() string    { return i.ID }
func (i *Image) ElementType() string  { return i.Type }
func (i *Image) Bind(be BoundElement) { i.BoundElements = append(i.BoundElements, be) }

// Text is a label, either contained in a rectangle or grouped with an image.
type Text struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	X               float64        `json:"x"`
	Y               float64        `json:"y"`
	Width           float64        `json:"width"`
	Height          float64        `json:"height"`
	Angle           float64        `json:"angle"`
	StrokeColor     string         `json:"strokeColor"`
	BackgroundColor string         `json:"backgroundColor"`
	FillStyle       string         `json:"fillStyle"`
	StrokeWidth     int            `json:"strokeWidth"`
	StrokeStyle     string         `json:"strokeStyle"`
	Roughness       int            `json:"roughness"`
	Opacity         int            `json:"opacity"`
	GroupIDs        []string       `json:"groupIds"`
	FrameID         *string        `json:"frameId"`
	Roundness       *Roundness     `json:"roundness"`
	IsDeleted       bool           `json:"isDeleted"`
	BoundElements   []BoundElement `json:"boundElements"`
	Updated         int64          `json:"updated"`
	Link            *string        `json:"link"`
	Locked          bool           `json:"locked"`
	Text            string         `json:"text"`
	FontSize        int            `json:"fontSize"`
	FontFamily      int            `json:"fontFamily"`
	TextAlign       string         `json:"textAlign"`
	VerticalAlign   string         `json:"verticalAlign"`
	ContainerID     *string        `json:"containerId"`
	OriginalText    string         `json:"originalText"`
	AutoResize      bool           `json:"autoResize"`
	LineHeight      float64        `json:"lineHeight"`
}

// NewText builds a label element. Position and size are computed by the
// geometry translator from the owning shape's bounds.
func NewText(id, value string, x, y, width, height float64, fontSize int, now int64, st Style) *Text {
	return &Text{
		ID:              id,
		Type:            "text",
		X:               x,
		Y:               y,
		Width:           width,
		Height:          height,
		StrokeColor:     st.StrokeColor,
		BackgroundColor: st.BackgroundColor,
		FillStyle:       st.FillStyle,
		StrokeWidth:     st.StrokeWidth,
		StrokeStyle:     st.StrokeStyle,
		Roughness:       st.Roughness,
		Opacity:         st.Opacity,
		GroupIDs:        []string{},
		Updated:         now,
		Text:            value,
		FontSize:        fontSize,
		FontFamily:      st.FontFamily,
		TextAlign:       "center",
		VerticalAlign:   "middle",
		OriginalText:    value,
		AutoResize:      true,
		LineHeight:      1,
	}
}

func (t *Text) ElementID() string   { return t.ID }
func (t *Text) ElementType() string { return t.Type }

// Arrow is a connector between two shapes. Its point list is relative to the
// first point, which is always (0, 0).
type Arrow struct {
	ID                 string         `json:"id"`
	Type               string         `json:"type"`
	X                  float64        `json:"x"`
	Y                  float64        `json:"y"`
	Width              float64        `json:"width"`
	Height             float64        `json:"height"`
	Angle              float64        `json:"angle"`
	StrokeColor        string         `json:"strokeColor"`
	BackgroundColor    string         `json:"backgroundColor"`
	FillStyle          string         `json:"fillStyle"`
	StrokeWidth        int            `json:"strokeWidth"`
	StrokeStyle        string         `json:"strokeStyle"`
	Roughness          int            `json:"roughness"`
	Opacity            int            `json:"opacity"`
	GroupIDs           []string       `json:"groupIds"`
	FrameID            *string        `json:"frameId"`
	Roundness          *Roundness     `json:"roundness"`
	IsDeleted          bool           `json:"isDeleted"`
	BoundElements      []BoundElement `json:"boundElements"`
	Updated            int64          `json:"updated"`
	Link               *string        `json:"link"`
	Locked             bool           `json:"locked"`
	Points             []Point        `json:"points"`
	LastCommittedPoint *Point         `json:"lastCommittedPoint"`
	StartBinding       *Binding       `json:"startBinding"`
	EndBinding         *Binding       `json:"endBinding"`
	StartArrowhead     *string        `json:"startArrowhead"`
	EndArrowhead       string         `json:"endArrowhead"`
	Elbowed            bool           `json:"elbowed"`
}

// NewArrow builds a connector bound to the given start and end shape ids.
func NewArrow(id string, origin Point, width, height float64, points []Point, startID, endID string, now int64, st Style) *Arrow {
	return &Arrow{
		ID:              id,
		Type:            "arrow",
		X:               origin[0],
		Y:               origin[1],
		Width:           width,
		Height:          height,
		StrokeColor:     st.ArrowColor,
		BackgroundColor: st.BackgroundColor,
		FillStyle:       st.FillStyle,
		StrokeWidth:     st.StrokeWidth,
		StrokeStyle:     st.StrokeStyle,
		Roughness:       st.Roughness,
		Opacity:         st.Opacity,
		GroupIDs:        []string{},
		Roundness:       &Roundness{Type: 2},
		Updated:         now,
		Points:          points,
		StartBinding:    &Binding{ElementID: startID, Focus: 0, Gap: 1},
		EndBinding:      &Binding{ElementID: endID, Focus: 0, Gap: 1},
		EndArrowhead:    "arrow",
	}
}

func (a *Arrow) ElementID() string   { return a.ID }
func (a *Arrow) ElementType() string { return a.Type }
