package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/OrderSheet/internal/render"
)

// ErrorAlert is the error fragment returned to htmx requests and embedded in
// the error page.
func ErrorAlert(message, action, code string) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		h.Raw(`<div class="alert" role="alert"><div class="message">`)
		h.Text(message)
		h.Raw(`</div>`)
		if action != "" {
			h.Raw(`<div class="action">`)
			h.Text(action)
			h.Raw(`</div>`)
		}
		if code != "" {
			h.Raw(`<div class="code">`)
			h.Text(code)
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)
	})
}

// ErrorPage is a full page around ErrorAlert with a way back home.
func ErrorPage(message, action, code string) templ.Component {
	body := render.Component(func(ctx context.Context, h *render.Writer) {
		h.Render(ctx, ErrorAlert(message, action, code))
		h.Raw(`<div class="actions"><a class="button secondary" href="/">ホームへ戻る</a></div>`)
	})
	return Page("エラー", body)
}
