package usecase

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

// ErrInvalidArgument is returned for a negative count or an unknown kind
var ErrInvalidArgument = errors.New("invalid argument")

// RandomSource yields uniform draws in [0, 1).
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type RandomSource interface {
	Float64() float64
}

// globalSource draws from the math/rand/v2 global generator
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// span is a half-open sampling range [lo, hi)
type span struct{ lo, hi float64 }

// Sampling ranges per population
var (
	positionSpan = span{0, 100}

	dotSize     = span{1, 4}
	dotOpacity  = span{0.2, 0.6}
	dotDelay    = span{0, 6}
	dotDuration = span{15, 25}

	circleSize     = span{6, 18}
	circleOpacity  = span{0.1, 0.4}
	circleDelay    = span{0, 4}
	circleDuration = span{8, 12}

	polygonSize     = span{20, 60}
	polygonRotation = span{0, 360}
	polygonDelay    = span{0, 3}
	polygonDuration = span{12, 18}

	blobSize  = span{80, 200}
	blobDelay = span{0, 4}

	lineLength  = span{50, 150}
	lineAngle   = span{0, 360}
	lineDelay   = span{0, 3}
	lineOpacity = span{0.1, 0.3}

	accentSize     = span{20, 60}
	accentRotation = span{0, 360}
	accentDelay    = span{0, 5}
)

// ShapeGenerator produces randomized background descriptors
type ShapeGenerator struct {
	mu  sync.Mutex
	src RandomSource
}

// NewShapeGenerator creates a generator backed by the global random source
func NewShapeGenerator() *ShapeGenerator {
	return &ShapeGenerator{src: globalSource{}}
}

// NewShapeGeneratorWithSource creates a generator drawing from src.
// A nil src falls back to the global source.
func NewShapeGeneratorWithSource(src RandomSource) *ShapeGenerator {
	if src == nil {
		src = globalSource{}
	}
	return &ShapeGenerator{src: src}
}

// NewSeededShapeGenerator creates a generator with reproducible output
func NewSeededShapeGenerator(seed uint64) *ShapeGenerator {
	return NewShapeGeneratorWithSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate returns exactly count descriptors of the given kind, with ids
// 0..count-1 in generation order.
func (g *ShapeGenerator) Generate(count int, kind domain.ShapeKind) ([]domain.Shape, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: count %d is negative", ErrInvalidArgument, count)
	}

	var sample func(id int) domain.Shape
	switch kind {
	case domain.ShapeDot:
		sample = g.dot
	case domain.ShapeCircle:
		sample = g.circle
	case domain.ShapePolygon:
		sample = g.polygon
	case domain.ShapeBlob:
		sample = g.blob
	case domain.ShapeLine:
		sample = g.line
	case domain.ShapeAccent:
		sample = g.accent
	default:
		return nil, fmt.Errorf("%w: unknown shape kind %q", ErrInvalidArgument, kind)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	shapes := make([]domain.Shape, count)
	for i := range shapes {
		shapes[i] = sample(i)
	}
	return shapes, nil
}

// BackgroundCounts is the number of descriptors per layer of a page background
type BackgroundCounts struct {
	Blobs    int
	Lines    int
	Accents  int
	Circles  int
	Polygons int
	Dots     int
}

// DefaultBackgroundCounts is the layer density used on every page
var DefaultBackgroundCounts = BackgroundCounts{
	Blobs:    6,
	Lines:    20,
	Accents:  12,
	Circles:  15,
	Polygons: 8,
	Dots:     50,
}

// Background generates every layer of one page background
func (g *ShapeGenerator) Background(counts BackgroundCounts) (domain.Background, error) {
	var bg domain.Background
	layers := []struct {
		kind  domain.ShapeKind
		count int
		dst   *[]domain.Shape
	}{
		{domain.ShapeBlob, counts.Blobs, &bg.Blobs},
		{domain.ShapeLine, counts.Lines, &bg.Lines},
		{domain.ShapeAccent, counts.Accents, &bg.Accents},
		{domain.ShapeCircle, counts.Circles, &bg.Circles},
		{domain.ShapePolygon, counts.Polygons, &bg.Polygons},
		{domain.ShapeDot, counts.Dots, &bg.Dots},
	}
	for _, l := range layers {
		shapes, err := g.Generate(l.count, l.kind)
		if err != nil {
			return domain.Background{}, fmt.Errorf("%s layer: %w", l.kind, err)
		}
		*l.dst = shapes
	}
	return bg, nil
}

func (g *ShapeGenerator) dot(id int) domain.Shape {
	return domain.Dot{
		Kind:     domain.ShapeDot,
		ID:       id,
		Left:     g.uniform(positionSpan),
		Top:      g.uniform(positionSpan),
		Delay:    g.uniform(dotDelay),
		Duration: g.uniform(dotDuration),
		Size:     g.uniform(dotSize),
		Opacity:  g.uniform(dotOpacity),
	}
}

func (g *ShapeGenerator) circle(id int) domain.Shape {
	return domain.Dot{
		Kind:     domain.ShapeCircle,
		ID:       id,
		Left:     g.uniform(positionSpan),
		Top:      g.uniform(positionSpan),
		Delay:    g.uniform(circleDelay),
		Duration: g.uniform(circleDuration),
		Size:     g.uniform(circleSize),
		Opacity:  g.uniform(circleOpacity),
	}
}

func (g *ShapeGenerator) polygon(id int) domain.Shape {
	return domain.Polygon{
		Kind:     domain.ShapePolygon,
		ID:       id,
		Left:     g.uniform(positionSpan),
		Top:      g.uniform(positionSpan),
		Delay:    g.uniform(polygonDelay),
		Duration: g.uniform(polygonDuration),
		Size:     g.uniform(polygonSize),
		Rotation: g.uniform(polygonRotation),
		Type:     domain.PolygonTypes[g.index(len(domain.PolygonTypes))],
	}
}

func (g *ShapeGenerator) blob(id int) domain.Shape {
	return domain.Blob{
		Kind:  domain.ShapeBlob,
		ID:    id,
		Left:  g.uniform(positionSpan),
		Top:   g.uniform(positionSpan),
		Size:  g.uniform(blobSize),
		Delay: g.uniform(blobDelay),
		Color: domain.BlobPalette[g.index(len(domain.BlobPalette))],
	}
}

func (g *ShapeGenerator) line(id int) domain.Shape {
	return domain.Line{
		Kind:    domain.ShapeLine,
		ID:      id,
		Left:    g.uniform(positionSpan),
		Top:     g.uniform(positionSpan),
		Length:  g.uniform(lineLength),
		Angle:   g.uniform(lineAngle),
		Delay:   g.uniform(lineDelay),
		Opacity: g.uniform(lineOpacity),
	}
}

func (g *ShapeGenerator) accent(id int) domain.Shape {
	return domain.Accent{
		Kind:     domain.ShapeAccent,
		ID:       id,
		Left:     g.uniform(positionSpan),
		Top:      g.uniform(positionSpan),
		Size:     g.uniform(accentSize),
		Rotation: g.uniform(accentRotation),
		Delay:    g.uniform(accentDelay),
		Type:     domain.AccentTypes[g.index(len(domain.AccentTypes))],
		Color:    domain.AccentPalette[g.index(len(domain.AccentPalette))],
	}
}

// draw returns the next value from the source, forced into [0, 1)
func (g *ShapeGenerator) draw() float64 {
	x := g.src.Float64()
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x >= 1 {
		return math.Nextafter(1, 0)
	}
	return x
}

// uniform samples s; the result is always < s.hi even after rounding
func (g *ShapeGenerator) uniform(s span) float64 {
	v := s.lo + g.draw()*(s.hi-s.lo)
	if v >= s.hi {
		v = math.Nextafter(s.hi, s.lo)
	}
	return v
}

// index picks uniformly from [0, n)
func (g *ShapeGenerator) index(n int) int {
	i := int(g.draw() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
