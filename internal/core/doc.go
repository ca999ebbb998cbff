// Package core turns a weekly shipment-planning CSV export into order
// quantities against the fixed item catalog.
//
// The package holds no transport or storage code of its own beyond the
// [Service], which ties the import pipeline to a state store. Everything
// from [Decode] through [Aggregate] is a pure function of its input and is
// safe to call from many goroutines at once.
//
// # Pipeline
//
//  1. [Decode] turns raw bytes into text: UTF-8, then Shift-JIS, then a
//     per-character Shift-JIS table walk that always succeeds.
//  2. [ParseTable] finds the header line (the first line naming both
//     商品名 and 発注数量) and zips each data line into a [Row].
//  3. [Engine.Classify] routes one row through the ordered [Rule] list.
//  4. [Aggregate] folds every [Outcome] into a [QuantityMap] seeded with
//     exactly the catalog ids, and a [NoteMap] of diagnostics.
//
// [Import] and [ImportReader] run all four steps. The only error that ever
// leaves the pipeline is [ErrImportFailed]; malformed rows, unknown products
// and bad numbers are absorbed as notes or zero quantities.
//
// # Rule Order
//
// Product names are substrings of each other (ラスク appears in
// デニッシュラスク, デニッシュ in both), so [DefaultRules] is an ordered
// contract. Reordering it changes classification results.
//
// # Error Handling
//
// Technical errors are mapped to user messages with [MapError]:
//
//   - FILE001-FILE005: file errors (import failure, missing file, size)
//   - IMP001-IMP005: import slot and request lifecycle errors
//   - VAL001-VAL002: stock input validation
//   - DB001-DB006: state store errors
package core
