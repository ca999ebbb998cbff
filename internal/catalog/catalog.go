// Package catalog defines the fixed, ordered list of canonical inventory items
// the order sheet tracks. A Catalog is built once at startup and passed to every
// component that needs it; it is never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Section is the shelving area an item is stored in.
type Section int

const (
	Cold Section = iota
	Ambient
	Frozen
	Stocker
)

var sectionLabels = [...]string{
	Cold:    "冷蔵庫",
	Ambient: "常温",
	Frozen:  "冷凍庫",
	Stocker: "ストッカー",
}

var sectionNames = [...]string{
	Cold:    "cold",
	Ambient: "ambient",
	Frozen:  "frozen",
	Stocker: "stocker",
}

// Label returns the shelf label printed on the sheet.
func (s Section) Label() string {
	if s < Cold || s > Stocker {
		return ""
	}
	return sectionLabels[s]
}

// String returns the lower-case English name of the section.
func (s Section) String() string {
	if s < Cold || s > Stocker {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// Sections returns every section in display order.
func Sections() []Section {
	return []Section{Cold, Ambient, Frozen, Stocker}
}

// ParseSection accepts either the English name or the shelf label.
func ParseSection(s string) (Section, error) {
	s = strings.TrimSpace(s)
	for i := range sectionNames {
		if strings.EqualFold(s, sectionNames[i]) || s == sectionLabels[i] {
			return Section(i), nil
		}
	}
	return 0, fmt.Errorf("unknown section %q", s)
}

// MarshalText encodes the section by its English name.
func (s Section) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a section from its English name or shelf label.
func (s *Section) UnmarshalText(b []byte) error {
	v, err := ParseSection(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Item is one canonical inventory line.
type Item struct {
	ID               string  `json:"id" yaml:"id"`
	DisplayName      string  `json:"displayName" yaml:"displayName"`
	Section          Section `json:"section" yaml:"section"`
	TargetStockLabel string  `json:"targetStockLabel" yaml:"targetStockLabel"`
}

// Catalog is an immutable ordered set of items. Order drives layout only.
type Catalog struct {
	items []Item
	index map[string]int
}

var (
	ErrEmptyCatalog = errors.New("catalog has no items")
	ErrDuplicateID  = errors.New("duplicate item id")
	ErrEmptyID      = errors.New("item id is empty")
)

// New builds a catalog from items, preserving their order.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		items: make([]Item, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return nil, fmt.Errorf("item %d: %w", i, ErrEmptyID)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		it.ID = id
		c.items[i] = it
		c.index[id] = i
	}
	return c, nil
}

// MustNew is New for static tables; it panics on error.
func MustNew(items []Item) *Catalog {
	c, err := New(items)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns item ids in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.items))
	for i, it := range c.items {
		out[i] = it.ID
	}
	return out
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Has reports whether id belongs to the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// BySection returns the items stored in s, in catalog order.
func (c *Catalog) BySection(s Section) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Section == s {
			out = append(out, it)
		}
	}
	return out
}

// ZeroQuantities returns a fresh map holding exactly the catalog ids, all zero.
func (c *Catalog) ZeroQuantities() map[string]int {
	m := make(map[string]int, len(c.items))
	for _, it := range c.items {
		m[it.ID] = 0
	}
	return m
}

// StockInputItems returns the items a user enters stock for. Sponge sub-SKUs
// are order-only buckets and have no stock of their own.
func (c *Catalog) StockInputItems() []Item {
	var out []Item
	for _, it := range c.items {
		if orderOnly[it.ID] {
			continue
		}
		out = append(out, it)
	}
	return out
}
