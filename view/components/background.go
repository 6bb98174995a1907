package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

const (
	clipTriangle = "clip-path:polygon(50% 0%, 0% 100%, 100% 100%);"
	clipHexagon  = "clip-path:polygon(25% 0%, 75% 0%, 100% 50%, 75% 100%, 25% 100%, 0% 50%);"
)

// polygonClip returns the extra style that cuts a square box to t
func polygonClip(t domain.PolygonType) string {
	switch t {
	case domain.PolygonCircle:
		return "border-radius:50%;"
	case domain.PolygonTriangle:
		return clipTriangle
	case domain.PolygonHexagon:
		return clipHexagon
	default:
		return ""
	}
}

// Background renders every decorative layer, back to front
func Background(bg domain.Background) templ.Component {
	return Component(func(ctx context.Context, h *HTML) {
		h.Raw(`<div class="absolute inset-0 overflow-hidden bg-gradient-hero" aria-hidden="true">`)
		for _, kind := range domain.ShapeKinds {
			for _, s := range bg.Layer(kind) {
				renderShape(h, s)
			}
		}
		h.Raw(`<div class="absolute bottom-0 left-0 right-0 h-32 animate-wave wave-overlay"></div>`)
		h.Raw(`</div>`)
	})
}

// renderShape writes one positioned element. Numbers come from the
// generator and colours from fixed palettes, so nothing here is user input.
func renderShape(h *HTML, s domain.Shape) {
	switch v := s.(type) {
	case domain.Blob:
		h.Rawf(`<div class="absolute animate-morph" data-kind="blob" style="left:%.2f%%;top:%.2f%%;width:%.1fpx;height:%.1fpx;background-color:%s;opacity:0.1;animation-delay:%.2fs;animation-duration:8s;"></div>`,
			v.Left, v.Top, v.Size, v.Size, v.Color, v.Delay)

	case domain.Line:
		h.Rawf(`<div class="absolute bg-blue-200" data-kind="line" style="left:%.2f%%;top:%.2f%%;width:%.1fpx;height:1px;transform:rotate(%.1fdeg);opacity:%.2f;animation-delay:%.2fs;animation-duration:10s;"></div>`,
			v.Left, v.Top, v.Length, v.Angle, v.Opacity, v.Delay)

	case domain.Accent:
		h.Rawf(`<div class="absolute animate-rotate-slow" data-kind="accent" style="left:%.2f%%;top:%.2f%%;width:%.1fpx;height:%.1fpx;background-color:%s;opacity:0.15;animation-delay:%.2fs;animation-duration:20s;transform:rotate(%.1fdeg);%s"></div>`,
			v.Left, v.Top, v.Size, v.Size, v.Color, v.Delay, v.Rotation, polygonClip(v.Type))

	case domain.Polygon:
		h.Rawf(`<div class="absolute animate-rotate-slow animate-pulse-glow" data-kind="polygon" style="left:%.2f%%;top:%.2f%%;width:%.1fpx;height:%.1fpx;background-color:#0065ff;opacity:0.2;animation-delay:%.2fs;animation-duration:%.2fs;transform:rotate(%.1fdeg);%s"></div>`,
			v.Left, v.Top, v.Size, v.Size, v.Delay, v.Duration, v.Rotation, polygonClip(v.Type))

	case domain.Dot:
		class := "absolute bg-blue-400 rounded-full animate-bounce-gentle"
		if v.Kind == domain.ShapeCircle {
			class = "absolute rounded-full bg-blue-300 animate-float animate-pulse-glow"
		}
		h.Rawf(`<div class="%s" data-kind="%s" style="left:%.2f%%;top:%.2f%%;width:%.1fpx;height:%.1fpx;opacity:%.2f;animation-delay:%.2fs;animation-duration:%.2fs;"></div>`,
			class, v.Kind, v.Left, v.Top, v.Size, v.Size, v.Opacity, v.Delay, v.Duration)
	}
}
