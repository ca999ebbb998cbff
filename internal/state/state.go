// Package state persists the order wizard's progress: which steps are done,
// the last imported file, the imported order quantities and the stock counts
// the user entered.
//
// A State is stored as one JSON document under a namespaced key. Loading never
// fails on bad data: anything unreadable falls back to Default.
package state

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Key is the storage key of the wizard snapshot. The version suffix changes
// whenever the document shape does.
const Key = "order-support-state:v2"

// KeyFor namespaces Key by session.
func KeyFor(session string) string {
	if session == "" {
		return Key
	}
	return Key + ":" + session
}

// State is one wizard snapshot.
type State struct {
	CSVDone      bool           `json:"csvDone"`
	StockDone    bool           `json:"stockDone"`
	ExportDoneAt *string        `json:"exportDoneAt"`
	CSVFileName  *string        `json:"csvFileName"`
	Orders       map[string]int `json:"orders"`
	Stock        map[string]int `json:"stock"`
}

// Default is the empty wizard.
func Default() State {
	return State{
		Orders: map[string]int{},
		Stock:  map[string]int{},
	}
}

// raw mirrors State with loosely typed fields so one bad value does not
// throw the whole document away.
type raw struct {
	CSVDone      json.RawMessage `json:"csvDone"`
	StockDone    json.RawMessage `json:"stockDone"`
	ExportDoneAt json.RawMessage `json:"exportDoneAt"`
	CSVFileName  json.RawMessage `json:"csvFileName"`
	Orders       json.RawMessage `json:"orders"`
	Stock        json.RawMessage `json:"stock"`
}

// Decode reads a stored document. Missing or corrupt input yields Default;
// individual bad fields fall back to their zero value.
func Decode(data []byte) State {
	if len(data) == 0 {
		return Default()
	}

	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return Default()
	}

	return State{
		CSVDone:      truthy(r.CSVDone),
		StockDone:    truthy(r.StockDone),
		ExportDoneAt: optString(r.ExportDoneAt),
		CSVFileName:  optString(r.CSVFileName),
		Orders:       SafeNumberMap(r.Orders),
		Stock:        SafeNumberMap(r.Stock),
	}
}

// Encode serialises s. Nil maps are written as empty objects.
func Encode(s State) ([]byte, error) {
	if s.Orders == nil {
		s.Orders = map[string]int{}
	}
	if s.Stock == nil {
		s.Stock = map[string]int{}
	}
	return json.Marshal(s)
}

// SafeNumberMap reads a JSON object of numbers. Values that are numeric
// strings are converted; anything else, including non-finite numbers, becomes
// 0. A non-object yields an empty map.
func SafeNumberMap(data json.RawMessage) map[string]int {
	out := map[string]int{}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return out
	}
	for k, v := range m {
		out[k] = number(v)
	}
	return out
}

func number(v json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return finite(f)
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return finite(f)
		}
	}
	return 0
}

func finite(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// truthy follows JavaScript-style coercion for the flags written by older
// clients: true, non-zero numbers and non-empty strings are true.
func truthy(v json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f != 0 && !math.IsNaN(f)
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s != ""
	}
	var a []json.RawMessage
	if err := json.Unmarshal(v, &a); err == nil {
		return true
	}
	var o map[string]json.RawMessage
	if err := json.Unmarshal(v, &o); err == nil {
		return true
	}
	return false
}

func optString(v json.RawMessage) *string {
	if len(v) == 0 || string(v) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil
	}
	return &s
}

// ---- actions ----
//
// Actions never modify the receiver's maps; each returns a new State.

// WithOrders records a finished import and marks the CSV step done.
func (s State) WithOrders(fileName string, orders map[string]int) State {
	s.CSVDone = true
	s.CSVFileName = &fileName
	s.Orders = clampCopy(orders)
	return s
}

// WithStock replaces the stock counts. Negative counts become 0.
func (s State) WithStock(stock map[string]int) State {
	s.Stock = clampCopy(stock)
	return s
}

// WithCSVDone sets the CSV step flag.
func (s State) WithCSVDone(done bool) State {
	s.CSVDone = done
	return s
}

// WithStockDone sets the stock step flag.
func (s State) WithStockDone(done bool) State {
	s.StockDone = done
	return s
}

// WithExportDone stamps the export time in RFC 3339.
func (s State) WithExportDone(at time.Time) State {
	ts := at.UTC().Format(time.RFC3339)
	s.ExportDoneAt = &ts
	return s
}

func clampCopy(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		if v < 0 {
			v = 0
		}
		out[k] = v
	}
	return out
}
