package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

// Layout wraps a page body with the document shell and its background
func Layout(title string, bg domain.Background, body templ.Component) templ.Component {
	return Component(func(ctx context.Context, h *HTML) {
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		h.Raw(`<title>`)
		h.Text(title)
		h.Raw(` | City Pulse</title>`)
		h.Raw(`<link rel="stylesheet" href="/static/css/app.css">`)
		h.Raw(`</head><body class="min-h-screen">`)
		h.Raw(`<div class="relative min-h-screen overflow-hidden">`)
		h.Render(ctx, Background(bg))
		h.Render(ctx, body)
		h.Raw(`</div><script src="/static/js/app.js" defer></script></body></html>`)
	})
}

// Nav is the top bar with the brand and the signed-in user
func Nav(user string) templ.Component {
	return Component(func(ctx context.Context, h *HTML) {
		h.Raw(`<nav class="relative z-20 w-full bg-white/80 backdrop-blur-md border-b border-gray-200">`)
		h.Raw(`<div class="max-w-7xl mx-auto px-4 flex justify-between items-center h-16">`)
		h.Raw(`<a href="/" class="flex items-center gap-3"><span class="brand-mark"></span>`)
		h.Raw(`<span class="text-xl font-bold text-gray-900">City Pulse</span></a>`)
		if user != "" {
			h.Raw(`<span class="text-sm font-medium text-gray-700" data-user>`)
			h.Text(user)
			h.Raw(`</span>`)
		} else {
			h.Raw(`<a href="/auth" class="btn-primary">Sign in</a>`)
		}
		h.Raw(`</div></nav>`)
	})
}

// NoticeBanner shows a finished-submission notice. The notice id lets the
// page script skip a copy that also arrives over the WebSocket.
func NoticeBanner(n *domain.Notice) templ.Component {
	return Component(func(ctx context.Context, h *HTML) {
		h.Raw(`<div id="notices" class="notices">`)
		if n != nil {
			h.Raw(`<div class="notice notice-`)
			h.Text(string(n.Level))
			h.Raw(`"`)
			h.Attr("data-notice-id", n.ID)
			h.Raw(` role="status">`)
			h.Text(n.Text)
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)
	})
}
