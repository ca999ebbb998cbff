package core

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
)

// ErrImportFailed is the one failure the pipeline reports. Callers show it as
// is, without pointing at a row.
var ErrImportFailed = errors.New("import failed, verify file format/encoding")

// Report is a Result plus how the bytes were decoded.
type Report struct {
	Result
	Encoding Encoding `json:"encoding"`
}

// Import runs decode, parse, classify and aggregate over one file. It cannot
// fail: every anomaly inside the file is absorbed.
func Import(cat *catalog.Catalog, eng *Engine, data []byte) Report {
	dec := Decode(data)
	rows := ParseTable(dec.Text)
	return Report{
		Result:   Aggregate(cat, eng, rows),
		Encoding: dec.Encoding,
	}
}

// ImportReader reads r fully and imports it. maxBytes <= 0 means no limit.
// Every error wraps ErrImportFailed.
func ImportReader(ctx context.Context, cat *catalog.Catalog, eng *Engine, r io.Reader, maxBytes int64) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	if r == nil {
		return Report{}, fmt.Errorf("%w: no file provided", ErrImportFailed)
	}

	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("%w: read: %w", ErrImportFailed, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return Report{}, fmt.Errorf("%w: file too large (limit %d bytes)", ErrImportFailed, maxBytes)
	}

	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	return Import(cat, eng, data), nil
}
