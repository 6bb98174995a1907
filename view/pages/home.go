// Package pages renders the full HTML documents served by the web handlers.
package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/view/components"
)

// Home is the landing page
func Home(d domain.Dashboard, bg domain.Background) templ.Component {
	body := components.Component(func(ctx context.Context, h *components.HTML) {
		h.Render(ctx, components.Nav(""))
		h.Raw(`<main class="relative z-10 max-w-7xl mx-auto px-4 pt-16 pb-8">`)
		h.Raw(`<section class="hero text-center"><h1 class="text-5xl font-bold">City Pulse</h1>`)
		h.Raw(`<p class="text-xl text-gray-600">Real-time city intelligence powered by citizens and AI</p>`)
		h.Raw(`<div class="hero-actions"><a href="/auth?mode=signup" class="btn-primary">Get Started</a>`)
		h.Raw(`<a href="/dashboard" class="btn-secondary">View Dashboard</a></div></section>`)

		h.Render(ctx, components.StatsGrid(d.HomeStats))

		h.Raw(`<section class="features"><h2 class="text-3xl font-bold">Core Features</h2>`)
		h.Render(ctx, components.FeatureCards(d.Features, 0))
		h.Raw(`</section>`)

		h.Raw(`<section class="features"><h2 class="text-3xl font-bold">Unique Capabilities</h2>`)
		h.Render(ctx, components.FeatureCards(d.ExtraFeatures, -1))
		h.Raw(`</section></main>`)
	})
	return components.Layout("Home", bg, body)
}
