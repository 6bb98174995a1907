package pages

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/mmuslimabdulj/city-pulse/internal/dashboard"
	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/view/components"
)

// Dashboard is the mock city dashboard with tab as the selected panel
func Dashboard(d domain.Dashboard, tab domain.DashboardTab, bg domain.Background) templ.Component {
	body := components.Component(func(ctx context.Context, h *components.HTML) {
		h.Render(ctx, components.Nav(d.User))
		h.Raw(`<main class="relative z-10 max-w-7xl mx-auto px-4 pt-8 pb-8">`)
		h.Raw(`<header class="flex items-center justify-between mb-8"><div>`)
		h.Raw(`<h1 class="text-3xl font-bold text-gray-900">City Dashboard</h1>`)
		h.Raw(`<p class="text-gray-600">Real-time monitoring and insights</p></div>`)
		h.Raw(`<a href="/" class="link">Back to Home</a></header>`)

		h.Render(ctx, components.StatsGrid(d.Stats))
		renderTabs(h, tab)

		h.Raw(`<div class="dashboard-grid"><div class="dashboard-main">`)
		switch tab {
		case domain.TabReports:
			renderReports(h, d.Reports)
		case domain.TabPredictions:
			renderPredictions(h, d.Predictions)
		case domain.TabAnalytics:
			renderAnalytics(h, d.Reports)
		default:
			h.Raw(`<section class="card map-panel"><h3 class="text-lg font-semibold">Live City Map</h3>`)
			h.Raw(`<span class="text-sm text-gray-600">Live Updates</span></section>`)
			renderReports(h, d.Reports)
			renderPredictions(h, d.Predictions)
		}
		h.Raw(`</div><aside class="dashboard-side">`)
		renderSidebar(h, d)
		h.Raw(`</aside></div></main>`)
	})
	return components.Layout("Dashboard", bg, body)
}

func renderTabs(h *components.HTML, active domain.DashboardTab) {
	h.Raw(`<nav class="tabs">`)
	for _, t := range domain.DashboardTabs {
		h.Raw(`<a`)
		h.Attr("href", "/dashboard?tab="+string(t))
		if t == active {
			h.Raw(` class="tab active" aria-current="page"`)
		} else {
			h.Raw(` class="tab"`)
		}
		h.Raw(`>`)
		name := string(t)
		h.Text(strings.ToUpper(name[:1]) + name[1:])
		h.Raw(`</a>`)
	}
	h.Raw(`</nav>`)
}

func renderReports(h *components.HTML, reports []domain.Report) {
	h.Raw(`<section class="card"><h3 class="text-lg font-semibold mb-4">Recent Reports</h3><ul class="reports">`)
	for _, r := range reports {
		h.Rawf(`<li class="report" data-report-id="%d"><div><div class="font-medium">`, r.ID)
		h.Text(r.Type)
		h.Raw(`</div><div class="text-sm text-gray-600">`)
		h.Text(r.Location + " · " + r.Time)
		h.Raw(`</div></div><div class="text-right"><div class="text-sm font-medium `)
		h.Text(dashboard.SeverityClass(r.Severity))
		h.Raw(`">`)
		h.Text(string(r.Severity))
		h.Raw(`</div><div class="text-xs text-gray-500">`)
		h.Text(r.Status)
		h.Raw(`</div></div></li>`)
	}
	h.Raw(`</ul></section>`)
}

func renderPredictions(h *components.HTML, predictions []domain.Prediction) {
	h.Raw(`<section class="card"><h3 class="text-lg font-semibold mb-4">AI Predictions</h3><ul class="predictions">`)
	for _, p := range predictions {
		h.Raw(`<li class="prediction"><div class="font-medium">`)
		h.Text(p.Type)
		h.Raw(`</div><div class="text-sm text-gray-600">`)
		h.Text(p.Location + " · in " + p.Time)
		h.Raw(`</div><div class="probability">`)
		h.Text(p.Probability)
		h.Raw(`</div></li>`)
	}
	h.Raw(`</ul></section>`)
}

// renderAnalytics summarises reports by severity
func renderAnalytics(h *components.HTML, reports []domain.Report) {
	counts := make(map[domain.Severity]int)
	for _, r := range reports {
		counts[r.Severity]++
	}
	h.Raw(`<section class="card"><h3 class="text-lg font-semibold mb-4">Reports by Severity</h3><ul class="analytics">`)
	for _, s := range []domain.Severity{domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		h.Raw(`<li><span class="`)
		h.Text(dashboard.SeverityClass(s))
		h.Raw(`">`)
		h.Text(string(s))
		h.Rawf(`</span><span class="count">%d</span></li>`, counts[s])
	}
	h.Raw(`</ul></section>`)
}

func renderSidebar(h *components.HTML, d domain.Dashboard) {
	h.Raw(`<section class="card"><h3 class="text-lg font-semibold mb-4">Quick Actions</h3>`)
	for i, a := range d.QuickActions {
		if i == 0 {
			h.Raw(`<button type="button" class="btn-primary w-full">`)
		} else {
			h.Raw(`<button type="button" class="btn-secondary w-full">`)
		}
		h.Text(a)
		h.Raw(`</button>`)
	}
	h.Raw(`</section>`)

	h.Raw(`<section class="card"><h3 class="text-lg font-semibold mb-4">Live Streams</h3>`)
	for _, s := range d.Streams {
		if s.Live {
			h.Raw(`<div class="stream live"><span class="status-dot bg-red-500 animate-pulse"></span>`)
		} else {
			h.Raw(`<div class="stream"><span class="status-dot bg-green-500"></span>`)
		}
		h.Raw(`<div><div class="font-medium">`)
		h.Text(s.Title)
		h.Raw(`</div><div class="text-sm text-gray-600">`)
		h.Text(s.Location)
		h.Raw(`</div></div></div>`)
	}
	h.Raw(`</section>`)

	h.Raw(`<section class="card"><h3 class="text-lg font-semibold mb-4">System Status</h3>`)
	for _, s := range d.Systems {
		h.Raw(`<div class="system"><span class="text-sm text-gray-600">`)
		h.Text(s.Name)
		if s.Online {
			h.Raw(`</span><span class="text-sm text-green-600">`)
		} else {
			h.Raw(`</span><span class="text-sm text-red-600">`)
		}
		h.Text(s.Status)
		h.Raw(`</span></div>`)
	}
	h.Raw(`</section>`)
}
