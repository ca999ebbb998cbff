package core

// Column names the engine reads from the export.
const (
	ColumnProductName = "商品名"
	ColumnOrderQty    = "発注数量"
	ColumnSpec        = "規格・入数／単位"
)

// Row maps header field name to the raw cell value of one data line.
type Row map[string]string

// QuantityMap maps catalog item id to its aggregated order quantity.
type QuantityMap map[string]int

// NoteMap maps a diagnostic key (e.g. "sponge_unknown") to the description of
// the last row filed under it.
type NoteMap map[string]string

// Note keys written by the default rules.
const (
	NoteSponge            = "sponge"
	NoteSpongeUnknown     = "sponge_unknown"
	NoteFruitUnknown      = "fruit_unknown"
	NoteEggUnknown        = "egg_unknown"
	NoteDanishRuskUnknown = "danish_rusk_unknown"
	NoteUnmatched         = "unmatched"
)

// Contribution adds Qty to one catalog item.
type Contribution struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty"`
}

// Note is one diagnostic entry.
type Note struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// SubSKU records a packaging-size variant that was counted, for the
// consolidated breakdown note.
type SubSKU struct {
	Kind string `json:"kind"`
	Qty  int    `json:"qty"`
}
