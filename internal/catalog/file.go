package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog overlay.
//
//	items:
//	  - id: choco
//	    displayName: チョコレート500g
//	    section: cold
//	    targetStockLabel: 適正在庫:12袋
//
// Fields left empty keep the built-in value. Items are laid out in file order.
type File struct {
	Items []FileItem `yaml:"items"`
}

// FileItem overrides one built-in item.
type FileItem struct {
	ID               string `yaml:"id"`
	DisplayName      string `yaml:"displayName"`
	Section          string `yaml:"section"`
	TargetStockLabel string `yaml:"targetStockLabel"`
}

// LoadFile reads a YAML overlay and applies it to the built-in catalog.
// The overlay must list every built-in id exactly once and nothing else.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse applies a YAML overlay held in memory.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return f.apply(Default())
}

func (f File) apply(base *Catalog) (*Catalog, error) {
	seen := make(map[string]bool, len(f.Items))
	items := make([]Item, 0, len(f.Items))
	var unknown []string

	for _, over := range f.Items {
		id := strings.TrimSpace(over.ID)
		it, ok := base.Item(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = true

		if over.DisplayName != "" {
			it.DisplayName = over.DisplayName
		}
		if over.TargetStockLabel != "" {
			it.TargetStockLabel = over.TargetStockLabel
		}
		if over.Section != "" {
			sec, err := ParseSection(over.Section)
			if err != nil {
				return nil, fmt.Errorf("catalog file: item %s: %w", id, err)
			}
			it.Section = sec
		}
		items = append(items, it)
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("catalog file: unknown item ids: %s", strings.Join(unknown, ", "))
	}

	var missing []string
	for _, id := range base.IDs() {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("catalog file: missing item ids: %s", strings.Join(missing, ", "))
	}

	return New(items)
}
