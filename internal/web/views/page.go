// Package views holds the HTML pages of the order wizard.
package views

import (
	"context"
	_ "embed"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/OrderSheet/internal/render"
)

//go:embed page.css
var pageCSS string

// Page wraps body in the common document shell.
func Page(title string, body templ.Component) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		h.Raw(`<!doctype html><html lang="ja"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<title>`)
		h.Text(title)
		h.Raw(`</title><style>`)
		h.Raw(pageCSS)
		h.Raw(`</style></head><body><div class="topbar">`)
		h.Text(title)
		h.Raw(`</div><main>`)
		h.Render(ctx, body)
		h.Raw(`</main></body></html>`)
	})
}
