// Package export turns a wizard snapshot into the printable order sheet and
// its spreadsheet twin.
package export

import (
	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/state"
)

// DefaultTitle is the sheet heading when none is configured.
const DefaultTitle = "もちミックス"

// Display multipliers for stock counts entered in packs.
const (
	SpongeRawPieces  = 6
	SpongeDonePieces = 36
)

// PrintItem is one catalog item as it appears on the sheet.
type PrintItem struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	TargetLabel string `json:"targetLabel"`
	Stock       int    `json:"stock"`
	Order       int    `json:"order"`
	Note        string `json:"note,omitempty"`
	Warn        bool   `json:"warn"`
}

// PrintPayload is everything the renderers need.
type PrintPayload struct {
	Title     string      `json:"title"`
	DateLabel string      `json:"dateLabel"`
	Items     []PrintItem `json:"items"`
}

// Item looks up an item by id.
func (p PrintPayload) Item(id string) (PrintItem, bool) {
	for _, it := range p.Items {
		if it.ID == id {
			return it, true
		}
	}
	return PrintItem{}, false
}

// BuildPayload lays out every catalog item in catalog order. Stock for the
// sponge packs is converted to pieces; orders are passed through as stored.
func BuildPayload(cat *catalog.Catalog, st state.State, notes map[string]string, title, date string) PrintPayload {
	if title == "" {
		title = DefaultTitle
	}

	items := cat.Items()
	out := PrintPayload{
		Title:     title,
		DateLabel: date,
		Items:     make([]PrintItem, 0, len(items)),
	}
	for _, it := range items {
		stock := DisplayStock(it.ID, st.Stock[it.ID])
		order := st.Orders[it.ID]
		out.Items = append(out.Items, PrintItem{
			ID:          it.ID,
			Label:       it.DisplayName,
			TargetLabel: it.TargetStockLabel,
			Stock:       stock,
			Order:       order,
			Note:        notes[it.ID],
			Warn:        order > stock,
		})
	}
	return out
}

// DisplayStock converts an entered stock count to what the sheet shows.
func DisplayStock(id string, raw int) int {
	switch id {
	case catalog.SpongeRaw:
		return raw * SpongeRawPieces
	case catalog.SpongeDone:
		return raw * SpongeDonePieces
	}
	return raw
}

// NormalizeRuskPacks turns an order that was recorded in pieces back into
// packs. Multiples of the pack size are divided; anything else is already a
// pack count.
func NormalizeRuskPacks(order int) int {
	if order <= 0 {
		return 0
	}
	if order >= catalog.RuskPiecesPerPack && order%catalog.RuskPiecesPerPack == 0 {
		return order / catalog.RuskPiecesPerPack
	}
	return order
}

// NormalizeSpongeQty turns a piece count back into a bag count for the given
// bag size, when it divides evenly into a plausible quantity.
func NormalizeSpongeQty(order, unit int) int {
	if unit <= 0 {
		return order
	}
	if order <= 0 {
		return 0
	}
	if order >= unit && order%unit == 0 {
		if q := order / unit; q >= 1 && q <= 9999 {
			return q
		}
	}
	return order
}
