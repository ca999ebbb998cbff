package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/core"
	"github.com/JonMunkholm/OrderSheet/internal/render"
	"github.com/JonMunkholm/OrderSheet/internal/state"
)

// HomeTitle is the heading of the wizard page.
const HomeTitle = "ホーム画面"

// StockField is the form field name carrying the stock count of id.
func StockField(id string) string {
	return "stock_" + id
}

// Flash is a one-shot status line shown above the steps.
type Flash struct {
	Text  string
	Error bool
}

// HomeData is everything the wizard page shows.
type HomeData struct {
	Catalog  *catalog.Catalog
	State    state.State
	Flash    Flash
	Activity []core.ActivityEntry
}

func (d HomeData) canGoStock() bool  { return d.State.CSVDone }
func (d HomeData) canGoExport() bool { return d.State.CSVDone && d.State.StockDone }

// activeStep is the first step not yet done.
func (d HomeData) activeStep() int {
	switch {
	case !d.State.CSVDone:
		return 1
	case !d.State.StockDone:
		return 2
	default:
		return 3
	}
}

type stepCard struct {
	n        int
	title    string
	desc     string
	done     bool
	disabled bool
	active   bool
	body     templ.Component
}

// Home renders the three-step wizard.
func Home(d HomeData) templ.Component {
	active := d.activeStep()
	steps := []stepCard{
		{
			n:      1,
			title:  "CSVを読み込む",
			desc:   "CSVを選択して読み込みます",
			done:   d.State.CSVDone,
			active: active == 1,
			body:   importStep(d),
		},
		{
			n:        2,
			title:    "現在の在庫を入力",
			desc:     "前の手順を完了させてください",
			done:     d.State.StockDone,
			disabled: !d.canGoStock(),
			active:   active == 2 && d.canGoStock(),
			body:     stockStep(d),
		},
		{
			n:        3,
			title:    "発注書を出力する",
			desc:     "前の手順を完了させてください",
			done:     d.State.ExportDoneAt != nil,
			disabled: !d.canGoExport(),
			active:   active == 3 && d.canGoExport(),
			body:     exportStep(d),
		},
	}

	body := render.Component(func(ctx context.Context, h *render.Writer) {
		if d.Flash.Text != "" {
			h.Raw(`<div class="flash`)
			if d.Flash.Error {
				h.Raw(` error`)
			}
			h.Raw(`">`)
			h.Text(d.Flash.Text)
			h.Raw(`</div>`)
		}
		for _, s := range steps {
			h.Render(ctx, step(s))
		}
		h.Raw(`<form class="reset" method="post" action="/reset">`)
		h.Raw(`<button type="submit" class="secondary">すべてリセット</button></form>`)
		h.Render(ctx, activityList(d.Activity))
	})
	return Page(HomeTitle, body)
}

func step(s stepCard) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		class := "step"
		if s.active {
			class += " active"
		}
		if s.disabled {
			class += " disabled"
		}
		h.Raw(`<section`)
		h.Attr("class", class)
		h.Raw(` data-step="`)
		h.Int(s.n)
		h.Raw(`"><h2><span>`)
		h.Int(s.n)
		h.Raw(`. `)
		h.Text(s.title)
		h.Raw(`</span>`)
		if s.done {
			h.Raw(`<span class="badge done">完了</span>`)
		} else {
			h.Raw(`<span class="badge">未完了</span>`)
		}
		h.Raw(`</h2>`)
		if s.disabled {
			h.Raw(`<p class="desc">`)
			h.Text(s.desc)
			h.Raw(`</p></section>`)
			return
		}
		h.Render(ctx, s.body)
		h.Raw(`</section>`)
	})
}

func importStep(d HomeData) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		if d.State.CSVFileName != nil {
			h.Raw(`<p class="desc file">`)
			h.Text(*d.State.CSVFileName)
			h.Raw(`</p>`)
		} else {
			h.Raw(`<p class="desc">CSVを選択して読み込みます</p>`)
		}
		h.Raw(`<form method="post" action="/import" enctype="multipart/form-data">`)
		h.Raw(`<input type="file" name="file" accept=".csv,text/csv" required>`)
		h.Raw(`<div class="actions"><button type="submit">CSVを選ぶ</button></div></form>`)

		if !d.State.CSVDone {
			return
		}
		h.Raw(`<table class="orders">`)
		for _, it := range d.Catalog.Items() {
			n := d.State.Orders[it.ID]
			if n <= 0 {
				continue
			}
			h.Raw(`<tr`)
			h.Attr("data-item", it.ID)
			h.Raw(`><td>`)
			h.Text(it.DisplayName)
			h.Raw(`</td><td class="qty">`)
			h.Int(n)
			h.Raw(`</td></tr>`)
		}
		h.Raw(`</table>`)
	})
}

func stockStep(d HomeData) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		items := d.Catalog.StockInputItems()
		h.Raw(`<form method="post" action="/stock">`)
		for _, sec := range catalog.Sections() {
			first := true
			for _, it := range items {
				if it.Section != sec {
					continue
				}
				if first {
					h.Raw(`<h3>`)
					h.Text(sec.Label())
					h.Raw(`</h3>`)
					first = false
				}
				h.Raw(`<label class="stock-row"><span>`)
				h.Text(it.DisplayName)
				h.Raw(`<span class="target">`)
				h.Text(it.TargetStockLabel)
				h.Raw(`</span></span><input type="number" min="0" inputmode="numeric"`)
				h.Attr("name", StockField(it.ID))
				h.Raw(` value="`)
				h.Int(d.State.Stock[it.ID])
				h.Raw(`"></label>`)
			}
		}
		h.Raw(`<div class="actions"><button type="submit">入力完了</button></div></form>`)
	})
}

func exportStep(d HomeData) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		if d.State.ExportDoneAt != nil {
			h.Raw(`<p class="desc">出力済み `)
			h.Text(*d.State.ExportDoneAt)
			h.Raw(`</p>`)
		}
		h.Raw(`<div class="actions">`)
		h.Raw(`<a class="button" href="/print" target="_blank">PDF（印刷）を開く</a>`)
		h.Raw(`<a class="button secondary" href="/export.xlsx">Excelをダウンロード</a>`)
		h.Raw(`</div>`)
	})
}

var activityLabels = map[core.ActivityAction]string{
	core.ActionImport:      "CSV読み込み",
	core.ActionStockUpdate: "在庫入力",
	core.ActionStockDone:   "在庫入力完了",
	core.ActionExport:      "発注書出力",
	core.ActionReset:       "リセット",
}

func activityList(entries []core.ActivityEntry) templ.Component {
	return render.Component(func(ctx context.Context, h *render.Writer) {
		if len(entries) == 0 {
			return
		}
		h.Raw(`<ul class="activity">`)
		for _, e := range entries {
			h.Raw(`<li>`)
			h.Text(e.CreatedAt.Format("01/02 15:04"))
			h.Raw(` `)
			label, ok := activityLabels[e.Action]
			if !ok {
				label = string(e.Action)
			}
			h.Text(label)
			if e.FileName != "" {
				h.Raw(` `)
				h.Text(e.FileName)
			}
			h.Raw(`</li>`)
		}
		h.Raw(`</ul>`)
	})
}
