package core

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
)

// Line is one row prepared for rule matching.
type Line struct {
	RawName string
	Name    string // normalized
	RawSpec string
	Spec    string // normalized
	Qty     int
}

// NewLine extracts and normalizes the columns the rules read.
func NewLine(row Row) Line {
	return Line{
		RawName: row[ColumnProductName],
		Name:    NormalizeName(row[ColumnProductName]),
		RawSpec: row[ColumnSpec],
		Spec:    NormalizeName(row[ColumnSpec]),
		Qty:     ParseQuantity(row[ColumnOrderQty]),
	}
}

// Has reports whether the name contains every one of subs.
func (l *Line) Has(subs ...string) bool {
	for _, s := range subs {
		if !strings.Contains(l.Name, s) {
			return false
		}
	}
	return true
}

// HasAny reports whether the name contains at least one of subs.
func (l *Line) HasAny(subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(l.Name, s) {
			return true
		}
	}
	return false
}

// SpecHas reports whether the spec cell contains any of subs.
func (l *Line) SpecHas(subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(l.Spec, s) {
			return true
		}
	}
	return false
}

// Flow tells the engine what to do after a rule applied.
type Flow int

const (
	// Stop ends evaluation for the row.
	Stop Flow = iota
	// FallThrough lets later rules see the row as well.
	FallThrough
)

// Rule is one (predicate, handler) pair.
type Rule struct {
	Name  string
	Match func(l *Line) bool
	Apply func(l *Line, out *Outcome) Flow
}

// Outcome is everything one row contributed.
type Outcome struct {
	Skipped       bool           `json:"skipped"`
	Rule          string         `json:"rule,omitempty"`
	Contributions []Contribution `json:"contributions,omitempty"`
	Notes         []Note         `json:"notes,omitempty"`
	SubSKUs       []SubSKU       `json:"subSkus,omitempty"`

	pending []Note
}

// Add routes qty to one catalog item.
func (o *Outcome) Add(itemID string, qty int) {
	o.Contributions = append(o.Contributions, Contribution{ItemID: itemID, Qty: qty})
}

// Note files a diagnostic under key.
func (o *Outcome) Note(key, text string) {
	o.Notes = append(o.Notes, Note{Key: key, Text: text})
}

// Defer files a diagnostic only if no later rule handles the row.
func (o *Outcome) Defer(key, text string) {
	o.pending = append(o.pending, Note{Key: key, Text: text})
}

// Unresolved reports whether the row produced notes but no quantity.
func (o *Outcome) Unresolved() bool {
	return !o.Skipped && len(o.Contributions) == 0 && len(o.Notes) > 0
}

// Engine classifies rows with an ordered rule list. It holds no mutable
// state and may be shared between goroutines.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine over rules, or over DefaultRules when none are
// given.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: append([]Rule(nil), rules...)}
}

// RuleNames returns the rule names in evaluation order.
func (e *Engine) RuleNames() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Classify routes one row.
func (e *Engine) Classify(row Row) Outcome {
	l := NewLine(row)
	return e.ClassifyLine(&l)
}

// ClassifyLine routes one prepared line. Rows with an empty name or a
// quantity below one are skipped. A row no rule handles is filed under
// NoteUnmatched so its quantity stays visible.
func (e *Engine) ClassifyLine(l *Line) Outcome {
	var out Outcome
	if l.Name == "" || l.Qty <= 0 {
		out.Skipped = true
		return out
	}

	for _, r := range e.rules {
		if !r.Match(l) {
			continue
		}
		out.Rule = r.Name
		if r.Apply(l, &out) == Stop {
			return out
		}
	}

	if len(out.Contributions) > 0 || len(out.Notes) > 0 {
		return out
	}
	if len(out.pending) > 0 {
		out.Notes = append(out.Notes, out.pending...)
		return out
	}
	out.Rule = NoteUnmatched
	out.Note(NoteUnmatched, fmt.Sprintf("未対応商品: %s / 数量:%d", l.RawName, l.Qty))
	return out
}

// DefaultRules returns the production rule list. The order is load-bearing:
// several product names are substrings of others, so specific rules must run
// before general ones.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "bread-exclusion", Match: isBread, Apply: excludeBread},
		{Name: "danish-rusk-width", Match: isDanishRusk, Apply: splitDanishRusk},
		{Name: "rusk-coffee-branded", Match: isBrandedCoffeeRusk, Apply: addRusk(catalog.RuskCoffee)},
		{Name: "rusk-plain-branded", Match: isBrandedPlainRusk, Apply: addRusk(catalog.RuskPlain)},
		{Name: "rusk-catch-all", Match: isRusk, Apply: addRuskByFlavor},
		{Name: "crumble-nuts", Match: isCrumbleNuts, Apply: addFixed(catalog.Nuts)},
		{Name: "angel-sponge", Match: isAngelSponge, Apply: routeSponge},
		{Name: "egg-s", Match: isEgg, Apply: routeEgg},
		{Name: "seasonal-fruit", Match: isFruit, Apply: routeFruit},
		{Name: "staples", Match: isStaple, Apply: addStaples},
		{Name: "chiffon", Match: isChiffon, Apply: routeChiffon},
	}
}

// ---- bread ----

// Loaves are counted on the stock sheet only, never ordered.
func isBread(l *Line) bool {
	return l.HasAny("山パン", "ちぎり") || (l.Has("デニッシュ") && !l.Has("デニッシュラスク"))
}

func excludeBread(*Line, *Outcome) Flow { return Stop }

// ---- rusk ----

func isDanishRusk(l *Line) bool { return l.Has("ミルフィーユデニッシュラスク") }

func splitDanishRusk(l *Line, out *Outcome) Flow {
	switch {
	case l.SpecHas("5枚"):
		out.Add(catalog.DanishRusk5, l.Qty)
	case l.SpecHas("10枚"):
		out.Add(catalog.DanishRusk10, l.Qty)
	default:
		out.Note(NoteDanishRuskUnknown,
			fmt.Sprintf("未対応デニッシュラスク: %s / 規格:%s / 数量:%d", l.RawName, l.RawSpec, l.Qty))
	}
	return Stop
}

func isCoffee(l *Line) bool { return l.HasAny("珈琲", "コーヒ") }

func isBrandedCoffeeRusk(l *Line) bool {
	return l.Has("伊勢", "ラスク") && isCoffee(l)
}

func isBrandedPlainRusk(l *Line) bool { return l.Has("なぎさ", "ラスク") }

func isRusk(l *Line) bool { return l.Has("ラスク") }

func addRusk(itemID string) func(*Line, *Outcome) Flow {
	return func(l *Line, out *Outcome) Flow {
		out.Add(itemID, RuskToPacks(l.Qty))
		return Stop
	}
}

func addRuskByFlavor(l *Line, out *Outcome) Flow {
	if isCoffee(l) {
		out.Add(catalog.RuskCoffee, RuskToPacks(l.Qty))
	} else {
		out.Add(catalog.RuskPlain, RuskToPacks(l.Qty))
	}
	return Stop
}

// ---- nuts ----

func isCrumbleNuts(l *Line) bool { return l.Has("クランブルナッツ200g") }

func addFixed(itemID string) func(*Line, *Outcome) Flow {
	return func(l *Line, out *Outcome) Flow {
		out.Add(itemID, l.Qty)
		return Stop
	}
}

// ---- sponge ----

var spongeUnits = map[int]struct {
	itemID string
	kind   string
}{
	60:  {catalog.Sponge60, "60"},
	36:  {catalog.Sponge36, "36"},
	144: {catalog.Sponge144, "144"},
}

func isAngelSponge(l *Line) bool { return l.Has("エンジェルスポンジ") }

func routeSponge(l *Line, out *Outcome) Flow {
	unit := SpongeUnit(l.Name, l.Spec)

	if u, ok := spongeUnits[unit]; ok {
		out.Add(u.itemID, l.Qty)
		out.SubSKUs = append(out.SubSKUs, SubSKU{Kind: u.kind, Qty: l.Qty})
		return Stop
	}
	// direct-ship lines sometimes omit the unit
	if unit == 49 || l.Has("直送") {
		out.Add(catalog.Sponge49, l.Qty)
		out.SubSKUs = append(out.SubSKUs, SubSKU{Kind: "49直", Qty: l.Qty})
		return Stop
	}

	out.Note(NoteSpongeUnknown,
		fmt.Sprintf("未対応スポンジ: %s / 規格:%s / 数量:%d", l.RawName, l.RawSpec, l.Qty))
	return Stop
}

// ---- egg ----

func isEgg(l *Line) bool { return l.Has("たまご") }

// An egg line without the S marker is left to later rules; if none of them
// takes it, the deferred note explains why it was not counted.
func routeEgg(l *Line, out *Outcome) Flow {
	if l.HasAny("S", "Ｓ") || l.SpecHas("S", "Ｓ") {
		out.Add(catalog.EggS, l.Qty)
		return Stop
	}
	out.Defer(NoteEggUnknown,
		fmt.Sprintf("未対応たまご: %s / 規格:%s / 数量:%d", l.RawName, l.RawSpec, l.Qty))
	return FallThrough
}

// ---- fruit ----

func isFruit(l *Line) bool { return l.Has("フルーツ") }

func routeFruit(l *Line, out *Outcome) Flow {
	switch {
	case l.HasAny("桃", "もも"):
		out.Add(catalog.FruitPeach, l.Qty)
	case l.HasAny("イチゴ", "いちご", "苺"):
		out.Add(catalog.FruitAngel, l.Qty)
	default:
		out.Note(NoteFruitUnknown, fmt.Sprintf("未対応フルーツ: %s / 数量:%d", l.RawName, l.Qty))
	}
	return Stop
}

// ---- staples ----

var staples = []struct {
	name   string
	itemID string
}{
	{"クランブル200g", catalog.Crumble},
	{"チョコレート500g", catalog.Choco},
	{"白玉ねぎ", catalog.WhiteOnion},
	{"赤玉ねぎ", catalog.RedOnion},
}

func isStaple(l *Line) bool {
	for _, s := range staples {
		if l.Has(s.name) {
			return true
		}
	}
	return false
}

// Staple names are tested independently and the row continues to the chiffon
// rule afterwards.
func addStaples(l *Line, out *Outcome) Flow {
	for _, s := range staples {
		if l.Has(s.name) {
			out.Add(s.itemID, l.Qty)
		}
	}
	return FallThrough
}

// ---- chiffon ----

func isChiffon(l *Line) bool { return l.Has("シフォン") }

func routeChiffon(l *Line, out *Outcome) Flow {
	switch {
	case l.Has("紅茶"):
		out.Add(catalog.ChiffonTea, l.Qty)
	case l.Has("期間限定"):
		out.Add(catalog.ChiffonSeason, l.Qty)
	default:
		out.Add(catalog.ChiffonPlain, l.Qty)
	}
	return Stop
}
