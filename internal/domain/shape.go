package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownShapeKind is returned for a kind outside ShapeKinds
var ErrUnknownShapeKind = errors.New("unknown shape kind")

// ShapeKind identifies a population of decorative background elements
type ShapeKind string

const (
	ShapeDot     ShapeKind = "dot"     // Small drifting particles
	ShapeCircle  ShapeKind = "circle"  // Soft floating circles
	ShapePolygon ShapeKind = "polygon" // Rotating polygons
	ShapeBlob    ShapeKind = "blob"    // Large morphing blobs
	ShapeLine    ShapeKind = "line"    // Faint grid lines
	ShapeAccent  ShapeKind = "accent"  // Coloured accent shapes
)

// ShapeKinds lists every kind the generator understands, in render order
var ShapeKinds = []ShapeKind{ShapeBlob, ShapeLine, ShapeAccent, ShapeCircle, ShapePolygon, ShapeDot}

// ParseShapeKind converts a query value into a ShapeKind
func ParseShapeKind(s string) (ShapeKind, error) {
	for _, k := range ShapeKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShapeKind, s)
}

// PolygonType is the outline drawn for a polygon or accent
type PolygonType string

const (
	PolygonCircle   PolygonType = "circle"
	PolygonSquare   PolygonType = "square"
	PolygonTriangle PolygonType = "triangle"
	PolygonHexagon  PolygonType = "hexagon"
)

// PolygonTypes are the outlines a rotating polygon can take
var PolygonTypes = []PolygonType{PolygonSquare, PolygonTriangle, PolygonHexagon}

// AccentTypes are the outlines an accent shape can take
var AccentTypes = []PolygonType{PolygonCircle, PolygonSquare, PolygonTriangle, PolygonHexagon}

// BlobPalette is the fixed palette morphing blobs draw from
var BlobPalette = []string{
	"#0052cc", // Blue
	"#0065ff", // Bright blue
	"#00875a", // Green
	"#ff5630", // Red
	"#6554c0", // Purple
}

// AccentPalette is the fixed palette accent shapes draw from
var AccentPalette = []string{"#0052cc", "#0065ff", "#00875a"}

// Shape is one immutable background descriptor.
// Concrete types: Dot, Polygon, Blob, Line, Accent.
type Shape interface {
	ShapeKind() ShapeKind
	Position() (left, top float64)
}

// Dot is a small round element. Both the "dot" and the "circle"
// populations produce Dots; they differ only in their sampling ranges.
type Dot struct {
	Kind     ShapeKind `json:"kind"`
	ID       int       `json:"id"`
	Left     float64   `json:"left"`
	Top      float64   `json:"top"`
	Delay    float64   `json:"delay"`    // seconds
	Duration float64   `json:"duration"` // seconds
	Size     float64   `json:"size"`     // px
	Opacity  float64   `json:"opacity"`
}

// Polygon is a slowly rotating outline
type Polygon struct {
	Kind     ShapeKind   `json:"kind"`
	ID       int         `json:"id"`
	Left     float64     `json:"left"`
	Top      float64     `json:"top"`
	Delay    float64     `json:"delay"`
	Duration float64     `json:"duration"`
	Size     float64     `json:"size"`
	Rotation float64     `json:"rotation"` // degrees
	Type     PolygonType `json:"shape"`
}

// Blob is a large translucent morphing square
type Blob struct {
	Kind  ShapeKind `json:"kind"`
	ID    int       `json:"id"`
	Left  float64   `json:"left"`
	Top   float64   `json:"top"`
	Size  float64   `json:"size"`
	Delay float64   `json:"delay"`
	Color string    `json:"color"`
}

// Line is a thin rotated stroke
type Line struct {
	Kind    ShapeKind `json:"kind"`
	ID      int       `json:"id"`
	Left    float64   `json:"left"`
	Top     float64   `json:"top"`
	Length  float64   `json:"length"` // px
	Angle   float64   `json:"angle"`  // degrees
	Delay   float64   `json:"delay"`
	Opacity float64   `json:"opacity"`
}

// Accent is a coloured polygon layered under the main shapes
type Accent struct {
	Kind     ShapeKind   `json:"kind"`
	ID       int         `json:"id"`
	Left     float64     `json:"left"`
	Top      float64     `json:"top"`
	Size     float64     `json:"size"`
	Rotation float64     `json:"rotation"`
	Delay    float64     `json:"delay"`
	Type     PolygonType `json:"shape"`
	Color    string      `json:"color"`
}

func (d Dot) ShapeKind() ShapeKind     { return d.Kind }
func (p Polygon) ShapeKind() ShapeKind { return p.Kind }
func (b Blob) ShapeKind() ShapeKind    { return b.Kind }
func (l Line) ShapeKind() ShapeKind    { return l.Kind }
func (a Accent) ShapeKind() ShapeKind  { return a.Kind }

func (d Dot) Position() (float64, float64)     { return d.Left, d.Top }
func (p Polygon) Position() (float64, float64) { return p.Left, p.Top }
func (b Blob) Position() (float64, float64)    { return b.Left, b.Top }
func (l Line) Position() (float64, float64)    { return l.Left, l.Top }
func (a Accent) Position() (float64, float64)  { return a.Left, a.Top }

// Background is the full set of decorative layers for one page
type Background struct {
	Blobs    []Shape `json:"blobs"`
	Lines    []Shape `json:"lines"`
	Accents  []Shape `json:"accents"`
	Circles  []Shape `json:"circles"`
	Polygons []Shape `json:"polygons"`
	Dots     []Shape `json:"dots"`
}

// Layer returns the descriptors generated for kind
func (b Background) Layer(kind ShapeKind) []Shape {
	switch kind {
	case ShapeBlob:
		return b.Blobs
	case ShapeLine:
		return b.Lines
	case ShapeAccent:
		return b.Accents
	case ShapeCircle:
		return b.Circles
	case ShapePolygon:
		return b.Polygons
	case ShapeDot:
		return b.Dots
	}
	return nil
}
