package export

import (
	"testing"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/state"
)

func samplePayload() PrintPayload {
	st := state.Default().
		WithOrders("order.csv", map[string]int{
			catalog.Choco:        3,
			catalog.EggS:         1,
			catalog.RuskCoffee:   2,
			catalog.RuskPlain:    96,
			catalog.DanishRusk5:  4,
			catalog.Sponge60:     5,
			catalog.Sponge144:    288,
			catalog.Yamapan:      7,
			catalog.ChiffonPlain: 2,
		}).
		WithStock(map[string]int{
			catalog.Choco:      5,
			catalog.EggS:       0,
			catalog.RuskCoffee: 1,
			catalog.RuskPlain:  3,
			catalog.SpongeRaw:  2,
			catalog.SpongeDone: 1,
			catalog.Yamapan:    1,
		})

	cat := catalog.Default()
	return BuildPayload(cat, st, catalog.Notes(catalog.DefaultMapping()), "", "2024/05/01")
}

func TestBuildPayload(t *testing.T) {
	p := samplePayload()

	if p.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", p.Title, DefaultTitle)
	}
	if len(p.Items) != catalog.Default().Len() {
		t.Fatalf("len(Items) = %d, want %d", len(p.Items), catalog.Default().Len())
	}
	if p.Items[0].ID != catalog.Choco {
		t.Errorf("Items[0] = %s, want catalog order", p.Items[0].ID)
	}

	tests := []struct {
		id        string
		wantStock int
		wantOrder int
		wantWarn  bool
	}{
		{catalog.Choco, 5, 3, false},
		{catalog.EggS, 0, 1, true},
		{catalog.SpongeRaw, 12, 0, false},
		{catalog.SpongeDone, 36, 0, false},
		{catalog.RuskPlain, 3, 96, true},
		{catalog.Nuts, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			it, ok := p.Item(tt.id)
			if !ok {
				t.Fatalf("Item(%s) missing", tt.id)
			}
			if it.Stock != tt.wantStock {
				t.Errorf("Stock = %d, want %d", it.Stock, tt.wantStock)
			}
			if it.Order != tt.wantOrder {
				t.Errorf("Order = %d, want %d", it.Order, tt.wantOrder)
			}
			if it.Warn != tt.wantWarn {
				t.Errorf("Warn = %v, want %v", it.Warn, tt.wantWarn)
			}
		})
	}

	if it, _ := p.Item(catalog.SpongeRaw); it.Note == "" {
		t.Error("sponge_raw note is empty, want the mapping note")
	}
	if it, _ := p.Item(catalog.Choco); it.Note != "" {
		t.Errorf("choco note = %q, want empty", it.Note)
	}
}

func TestBuildPayload_CustomTitle(t *testing.T) {
	p := BuildPayload(catalog.Default(), state.Default(), nil, "店舗A", "")
	if p.Title != "店舗A" {
		t.Errorf("Title = %q, want 店舗A", p.Title)
	}
}

func TestNormalizeRuskPacks(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{47, 47},
		{48, 1},
		{96, 2},
		{100, 100},
	}
	for _, tt := range tests {
		if got := NormalizeRuskPacks(tt.in); got != tt.want {
			t.Errorf("NormalizeRuskPacks(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeSpongeQty(t *testing.T) {
	tests := []struct {
		order, unit, want int
	}{
		{5, 60, 5},
		{120, 60, 2},
		{0, 60, 0},
		{-1, 60, 0},
		{70, 60, 70},
		{7, 0, 7},
		{144 * 10000, 144, 144 * 10000},
	}
	for _, tt := range tests {
		if got := NormalizeSpongeQty(tt.order, tt.unit); got != tt.want {
			t.Errorf("NormalizeSpongeQty(%d, %d) = %d, want %d", tt.order, tt.unit, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	rows := Layout(samplePayload())
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	for i, r := range rows {
		span := 0
		for _, c := range r.Cells {
			span += c.Span
		}
		bands := 0
		for _, b := range r.Bands {
			bands += b.Span
		}
		if span != 6 || bands != 6 {
			t.Errorf("row %d spans cells=%d bands=%d, want 6/6", i, span, bands)
		}
	}

	rusk := rows[1].Cells[1]
	if rusk.Kind != CellSplit || len(rusk.Halves) != 2 {
		t.Fatalf("rusk cell = %+v", rusk)
	}
	coffee, plain := rusk.Halves[0], rusk.Halves[1]
	if coffee.Stock != 48 || coffee.Order != 2 || !coffee.Warn {
		t.Errorf("coffee half = %+v, want stock 48 order 2 warn", coffee)
	}
	// 96 pieces are 2 packs, below the 3 packs in stock
	if plain.Stock != 144 || plain.Order != 2 || plain.Warn {
		t.Errorf("plain half = %+v, want stock 144 order 2 no warn", plain)
	}

	danish := rows[1].Cells[3]
	if danish.Halves[0].Order != 4 || !danish.Halves[0].Warn {
		t.Errorf("danish 5 half = %+v", danish.Halves[0])
	}
	if danish.Halves[1].Warn {
		t.Errorf("danish 10 half warns with no order")
	}

	sponge := rows[1].Cells[4]
	if sponge.Kind != CellSponge || sponge.Span != 2 {
		t.Fatalf("sponge cell = %+v", sponge)
	}
	if sponge.SpongeRaw != 12 || sponge.SpongeDone != 36 {
		t.Errorf("sponge stock = %d/%d, want 12/36", sponge.SpongeRaw, sponge.SpongeDone)
	}
	wantQty := map[int]int{60: 5, 36: 0, 49: 0, 144: 2}
	for _, o := range sponge.SpongeOrders {
		if o.Qty != wantQty[o.Unit] {
			t.Errorf("sponge %d = %d, want %d", o.Unit, o.Qty, wantQty[o.Unit])
		}
	}
	if want := 5*60 + 2*144; sponge.TotalPieces != want {
		t.Errorf("TotalPieces = %d, want %d", sponge.TotalPieces, want)
	}

	yamapan := rows[2].Cells[0]
	if !yamapan.HideOrder || yamapan.Warn {
		t.Errorf("yamapan = %+v, want hidden order and no warn", yamapan)
	}
}
