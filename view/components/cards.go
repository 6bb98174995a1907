package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

// StatsGrid renders headline numbers
func StatsGrid(stats []domain.Stat) templ.Component {
	return Component(func(ctx context.Context, h *HTML) {
		h.Raw(`<div class="stats-grid">`)
		for _, s := range stats {
			h.Raw(`<div class="card stat"`)
			h.Attr("data-icon", s.Icon)
			h.Raw(`><div class="text-2xl font-bold`)
			if s.Color != "" {
				h.Raw(" ")
				h.Text(s.Color)
			}
			h.Raw(`">`)
			h.Text(s.Number)
			h.Raw(`</div><div class="text-sm text-gray-600">`)
			h.Text(s.Label)
			h.Raw(`</div></div>`)
		}
		h.Raw(`</div>`)
	})
}

// FeatureCards renders marketing cards; active marks the highlighted one,
// -1 for none
func FeatureCards(features []domain.Feature, active int) templ.Component {
	return Component(func(ctx context.Context, h *HTML) {
		h.Rawf(`<div class="feature-grid" data-rotate-ms="%d">`, domain.FeatureRotation.Milliseconds())
		for i, f := range features {
			h.Raw(`<div class="card feature`)
			if i == active {
				h.Raw(` active`)
			}
			h.Raw(`"`)
			h.Attr("data-icon", f.Icon)
			h.Raw(`><h3 class="font-semibold">`)
			h.Text(f.Title)
			h.Raw(`</h3><p class="text-sm text-gray-600">`)
			h.Text(f.Description)
			h.Raw(`</p></div>`)
		}
		h.Raw(`</div>`)
	})
}
