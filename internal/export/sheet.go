package export

import (
	"context"
	_ "embed"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/OrderSheet/internal/render"
)

//go:embed sheet.css
var sheetCSS string

// RenderSheet writes the printable HTML order sheet.
func RenderSheet(ctx context.Context, w io.Writer, p PrintPayload) error {
	return Sheet(p).Render(ctx, w)
}

// Sheet is the full print document.
func Sheet(p PrintPayload) templ.Component {
	rows := Layout(p)
	return render.Component(func(ctx context.Context, h *render.Writer) {
		h.Raw(`<!doctype html><html lang="ja"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<title>`)
		h.Text(p.Title)
		h.Raw(`</title><style>`)
		h.Raw(sheetCSS)
		h.Raw(`</style></head><body><div class="wrap">`)

		h.Raw(`<div class="sheet-head"><h1>`)
		h.Text(p.Title)
		h.Raw(`</h1>`)
		if p.DateLabel != "" {
			h.Raw(`<span class="date">`)
			h.Text(p.DateLabel)
			h.Raw(`</span>`)
		}
		h.Raw(`</div><div class="sheet">`)
		for _, r := range rows {
			h.Render(ctx, sheetRow(r))
		}
		h.Raw(`</div><div class="footnote">`)
		h.Text(Footnote)
		h.Raw(`</div></div></body></html>`)
	})
}

func sheetRow(r Row) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		h.Raw(`<div class="band-row"><div></div>`)
		for _, b := range r.Bands {
			h.Raw(`<div class="band `)
			h.Text(b.Class)
			h.Raw(`" style="grid-column: span `)
			h.Int(b.Span)
			h.Raw(`">`)
			h.Text(b.Label)
			h.Raw(`</div>`)
		}
		h.Raw(`</div><div class="row"><div class="side"><div></div><div>在庫</div><div class="divider"></div><div>発注</div><div></div></div>`)
		for _, c := range r.Cells {
			switch c.Kind {
			case CellSplit:
				h.Render(ctx, splitCell(c))
			case CellSponge:
				h.Render(ctx, spongeWideCell(c))
			default:
				h.Render(ctx, singleCell(c))
			}
		}
		h.Raw(`</div>`)
	})
}

func singleCell(c Cell) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		h.Raw(`<div class="cell`)
		if c.Warn {
			h.Raw(` warn`)
		}
		h.Raw(`" data-item="`)
		h.Text(c.ID)
		h.Raw(`"><div class="name">`)
		h.TextOrBlank(c.Name)
		h.Raw(`</div><div class="target">`)
		h.TextOrBlank(c.Target)
		h.Raw(`</div><div class="stock">`)
		h.Int(c.Stock)
		h.Raw(`</div><div class="divider"></div><div class="order`)
		if c.HideOrder {
			h.Raw(` hidden`)
		}
		h.Raw(`"><span class="circle">`)
		h.Int(c.Order)
		h.Raw(`</span></div><div class="note">`)
		h.TextOrBlank(c.Note)
		h.Raw(`</div></div>`)
	})
}

func splitCell(c Cell) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		h.Raw(`<div class="cell split" data-item="`)
		h.Text(c.ID)
		h.Raw(`"><div class="name">`)
		h.Text(c.Name)
		h.Raw(`</div><div class="halves">`)
		for i, half := range c.Halves {
			if i > 0 {
				h.Raw(`<div class="divider"></div>`)
			}
			h.Raw(`<div class="half`)
			if half.Warn {
				h.Raw(` warn`)
			}
			h.Raw(`"><div class="half-head"><div class="tag">`)
			h.Text(half.Tag)
			h.Raw(`</div><div class="target">`)
			h.TextOrBlank(half.Target)
			h.Raw(`</div></div><div class="half-body"><div class="stock">`)
			h.Int(half.Stock)
			h.Raw(`</div><div class="order"><span class="circle">`)
			h.Int(half.Order)
			h.Raw(`</span></div></div></div>`)
		}
		h.Raw(`</div><div class="note">` + render.NBSP + `</div></div>`)
	})
}

func spongeWideCell(c Cell) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		h.Raw(`<div class="cell sponge span2" data-item="`)
		h.Text(c.ID)
		h.Raw(`"><div class="name">`)
		h.Text(c.Name)
		h.Raw(`</div><div class="target">`)
		h.Text(c.Target)
		h.Raw(`</div><div class="sponge-stock">`)
		h.Raw(`<div class="box"><div class="tag">未加工</div><div class="stock">`)
		h.Int(c.SpongeRaw)
		h.Raw(`</div></div><div class="box"><div class="tag">加工済</div><div class="stock">`)
		h.Int(c.SpongeDone)
		h.Raw(`</div></div></div><div class="divider"></div><div class="sponge-orders">`)
		for _, o := range c.SpongeOrders {
			h.Raw(`<div class="tag">`)
			h.Int(o.Unit)
			h.Raw(`</div><div class="order" data-unit="`)
			h.Int(o.Unit)
			h.Raw(`"><span class="circle">`)
			h.Int(o.Qty)
			h.Raw(`</span></div>`)
		}
		h.Raw(`<div class="total"><span class="circle">`)
		h.Int(c.TotalPieces)
		h.Raw(`</span></div></div><div class="note">` + render.NBSP + `</div></div>`)
	})
}
