package usecase

import (
	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

// BackgroundProvider supplies the decorative layers for a page render
type BackgroundProvider interface {
	Background() (domain.Background, error)
}

// FreshBackground regenerates the background on every page view, so each
// navigation shows a different arrangement.
type FreshBackground struct {
	gen    *ShapeGenerator
	counts BackgroundCounts
}

// NewFreshBackground creates a per-view provider
func NewFreshBackground(gen *ShapeGenerator, counts BackgroundCounts) *FreshBackground {
	return &FreshBackground{gen: gen, counts: counts}
}

// Background generates a new set of layers
func (f *FreshBackground) Background() (domain.Background, error) {
	return f.gen.Background(f.counts)
}

// StableBackground generates once at start-up and serves the same layers for
// the life of the process.
type StableBackground struct {
	bg domain.Background
}

// NewStableBackground generates the process-wide background immediately
func NewStableBackground(gen *ShapeGenerator, counts BackgroundCounts) (*StableBackground, error) {
	bg, err := gen.Background(counts)
	if err != nil {
		return nil, err
	}
	return &StableBackground{bg: bg}, nil
}

// Background returns the layers generated at start-up
func (s *StableBackground) Background() (domain.Background, error) {
	return s.bg, nil
}
