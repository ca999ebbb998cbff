package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
)

// Result is the output of one import.
type Result struct {
	Quantities QuantityMap `json:"orders"`
	Notes      NoteMap     `json:"notes"`
	SubSKUs    []SubSKU    `json:"subSkus,omitempty"`

	Rows       int `json:"rows"`
	Skipped    int `json:"skipped"`
	Unresolved int `json:"unresolved"`
}

// Aggregator folds outcomes into one Result. Use a new Aggregator per import.
type Aggregator struct {
	cat *catalog.Catalog
	res Result
}

// NewAggregator seeds every catalog id with zero.
func NewAggregator(cat *catalog.Catalog) *Aggregator {
	return &Aggregator{
		cat: cat,
		res: Result{
			Quantities: QuantityMap(cat.ZeroQuantities()),
			Notes:      NoteMap{},
		},
	}
}

// Add applies one row's outcome. Contributions to ids outside the catalog or
// with a quantity below one are dropped, so the key set never changes and no
// total goes negative. Totals saturate instead of wrapping. Notes overwrite
// earlier notes with the same key.
func (a *Aggregator) Add(o Outcome) {
	a.res.Rows++
	if o.Skipped {
		a.res.Skipped++
		return
	}
	if o.Unresolved() {
		a.res.Unresolved++
	}

	for _, c := range o.Contributions {
		cur, ok := a.res.Quantities[c.ItemID]
		if !ok || c.Qty <= 0 {
			continue
		}
		a.res.Quantities[c.ItemID] = addSaturating(cur, c.Qty)
	}
	for _, n := range o.Notes {
		a.res.Notes[n.Key] = n.Text
	}
	a.res.SubSKUs = append(a.res.SubSKUs, o.SubSKUs...)
}

// Result returns the totals with the sub-SKU breakdown note attached. The
// Aggregator must not be used afterwards.
func (a *Aggregator) Result() Result {
	if len(a.res.SubSKUs) > 0 {
		a.res.Notes[NoteSponge] = SubSKUBreakdown(a.res.SubSKUs)
	}
	return a.res
}

// addSaturating adds two non-negative totals, stopping at math.MaxInt.
func addSaturating(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// SubSKUBreakdown renders sub-SKU entries in row order as "内訳(数量): 60×5 / 36×2".
func SubSKUBreakdown(bags []SubSKU) string {
	parts := make([]string, len(bags))
	for i, b := range bags {
		parts[i] = fmt.Sprintf("%s×%d", b.Kind, b.Qty)
	}
	return "内訳(数量): " + strings.Join(parts, " / ")
}

// Aggregate classifies every row and totals the outcomes.
func Aggregate(cat *catalog.Catalog, eng *Engine, rows []Row) Result {
	agg := NewAggregator(cat)
	for _, row := range rows {
		agg.Add(eng.Classify(row))
	}
	return agg.Result()
}
