// Package components holds the shared page fragments: layout, background
// layers, navigation and cards.
package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup and keeps the first write error
type HTML struct {
	w   io.Writer
	err error
}

// NewHTML wraps w
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes trusted markup as is
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Rawf formats trusted markup; string arguments are not escaped
func (h *HTML) Rawf(format string, args ...any) {
	h.Raw(fmt.Sprintf(format, args...))
}

// Text writes escaped text
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes name="value" with value escaped, preceded by a space
func (h *HTML) Attr(name, value string) {
	h.Rawf(` %s="%s"`, name, templ.EscapeString(value))
}

// Render renders a child component into the same writer
func (h *HTML) Render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first write error
func (h *HTML) Err() error {
	return h.err
}

// Component adapts a markup function to templ.Component
func Component(fn func(ctx context.Context, h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		fn(ctx, h)
		return h.Err()
	})
}
