// Package render holds the helpers behind the hand-written templ components
// in export and web/views.
package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// NBSP is written for empty cells so they keep their height.
const NBSP = "&nbsp;"

// Writer keeps the first write error so a component can write
// unconditionally and report once via Err.
type Writer struct {
	w   io.Writer
	err error
}

// New wraps w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes s unescaped.
func (h *Writer) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s HTML-escaped.
func (h *Writer) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// TextOrBlank writes s escaped, or NBSP when s is empty.
func (h *Writer) TextOrBlank(s string) {
	if s == "" {
		h.Raw(NBSP)
		return
	}
	h.Text(s)
}

// Int writes n in decimal.
func (h *Writer) Int(n int) {
	h.Raw(strconv.Itoa(n))
}

// Attr writes ` name="value"` with value escaped.
func (h *Writer) Attr(name, value string) {
	h.Raw(" " + name + `="`)
	h.Text(value)
	h.Raw(`"`)
}

// Render renders a child component into the same writer.
func (h *Writer) Render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error seen.
func (h *Writer) Err() error {
	return h.err
}

// Component adapts a body function to templ.Component.
func Component(body func(ctx context.Context, h *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := New(w)
		body(ctx, h)
		return h.Err()
	})
}
