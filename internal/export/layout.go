package export

import "github.com/JonMunkholm/OrderSheet/internal/catalog"

// CellKind selects how a sheet cell is drawn.
type CellKind int

const (
	CellSingle CellKind = iota
	CellSplit
	CellSponge
)

// Band is a coloured heading above a run of cells.
type Band struct {
	Label string
	Class string
	Span  int
}

// Half is one side of a split cell.
type Half struct {
	Tag    string
	Target string
	Stock  int
	Order  int
	Warn   bool
}

// SpongeOrder is one bag size in the sponge cell.
type SpongeOrder struct {
	Unit int
	Qty  int
}

// Cell is a laid-out sheet cell. Which fields are set depends on Kind.
type Cell struct {
	Kind      CellKind
	ID        string
	Name      string
	Target    string
	Stock     int
	Order     int
	Note      string
	Warn      bool
	HideOrder bool
	Span      int

	Halves []Half

	SpongeRaw    int
	SpongeDone   int
	SpongeOrders []SpongeOrder
	TotalPieces  int
}

// Row is one band heading plus its cells.
type Row struct {
	Bands []Band
	Cells []Cell
}

const (
	bandFridge  = "fridge"
	bandRoom    = "room"
	bandFreezer = "freezer"
)

// Footnote is printed under the sheet.
const Footnote = "※適正在庫が無い場合は必ず報告する！！"

const ruskTargetFallback = "換算×48（PDF表示）"

// SpongeUnits are the bag sizes in print order.
var SpongeUnits = []int{60, 36, 49, 144}

var spongeUnitItems = map[int]string{
	60:  catalog.Sponge60,
	36:  catalog.Sponge36,
	49:  catalog.Sponge49,
	144: catalog.Sponge144,
}

// bread orders are placed by the bakery, the sheet only records stock.
var hiddenOrders = map[string]bool{
	catalog.Yamapan: true,
	catalog.Chigiri: true,
	catalog.Danish:  true,
}

// Layout arranges the payload into the three sheet rows.
func Layout(p PrintPayload) []Row {
	byID := make(map[string]PrintItem, len(p.Items))
	for _, it := range p.Items {
		byID[it.ID] = it
	}

	single := func(id string) Cell {
		it, ok := byID[id]
		if !ok {
			return Cell{Kind: CellSingle, ID: id, Span: 1}
		}
		hide := hiddenOrders[id]
		return Cell{
			Kind:      CellSingle,
			ID:        id,
			Name:      it.Label,
			Target:    it.TargetLabel,
			Stock:     it.Stock,
			Order:     it.Order,
			Note:      it.Note,
			Warn:      !hide && it.Order > it.Stock,
			HideOrder: hide,
			Span:      1,
		}
	}

	return []Row{
		{
			Bands: []Band{{Label: "冷蔵庫", Class: bandFridge, Span: 6}},
			Cells: []Cell{
				single(catalog.Choco),
				single(catalog.WhiteOnion),
				single(catalog.RedOnion),
				single(catalog.FruitPeach),
				single(catalog.FruitAngel),
				single(catalog.EggS),
			},
		},
		{
			Bands: []Band{
				{Label: "常温", Class: bandRoom, Span: 3},
				{Label: "冷凍庫", Class: bandFreezer, Span: 3},
			},
			Cells: []Cell{
				single(catalog.Crumble),
				ruskCell(byID),
				single(catalog.Nuts),
				danishRuskCell(byID),
				spongeCell(byID),
			},
		},
		{
			Bands: []Band{{Label: "冷凍庫", Class: bandFreezer, Span: 6}},
			Cells: []Cell{
				single(catalog.Yamapan),
				single(catalog.Chigiri),
				single(catalog.Danish),
				single(catalog.ChiffonPlain),
				single(catalog.ChiffonTea),
				single(catalog.ChiffonSeason),
			},
		},
	}
}

// ruskCell shows stock in pieces but orders in packs, and warns against the
// pack count the user entered.
func ruskCell(byID map[string]PrintItem) Cell {
	half := func(tag, id string) Half {
		it := byID[id]
		order := NormalizeRuskPacks(it.Order)
		target := it.TargetLabel
		if target == "" {
			target = ruskTargetFallback
		}
		return Half{
			Tag:    tag,
			Target: target,
			Stock:  it.Stock * catalog.RuskPiecesPerPack,
			Order:  order,
			Warn:   order > it.Stock,
		}
	}
	return Cell{
		Kind:   CellSplit,
		ID:     "rusk",
		Name:   "ラスク",
		Span:   1,
		Halves: []Half{half("珈琲", catalog.RuskCoffee), half("プレーン", catalog.RuskPlain)},
	}
}

func danishRuskCell(byID map[string]PrintItem) Cell {
	half := func(tag, id string) Half {
		it := byID[id]
		return Half{
			Tag:    tag,
			Target: it.TargetLabel,
			Stock:  it.Stock,
			Order:  it.Order,
			Warn:   it.Order > it.Stock,
		}
	}
	return Cell{
		Kind:   CellSplit,
		ID:     "danish_rusk",
		Name:   "デニッシュラスク",
		Span:   1,
		Halves: []Half{half("5枚", catalog.DanishRusk5), half("10枚", catalog.DanishRusk10)},
	}
}

func spongeCell(byID map[string]PrintItem) Cell {
	c := Cell{
		Kind:       CellSponge,
		ID:         "sponge",
		Name:       "スポンジ",
		Target:     "（内訳あり）",
		Span:       2,
		SpongeRaw:  byID[catalog.SpongeRaw].Stock,
		SpongeDone: byID[catalog.SpongeDone].Stock,
	}
	for _, unit := range SpongeUnits {
		q := NormalizeSpongeQty(byID[spongeUnitItems[unit]].Order, unit)
		c.SpongeOrders = append(c.SpongeOrders, SpongeOrder{Unit: unit, Qty: q})
		c.TotalPieces += q * unit
	}
	return c
}
