package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/export"
	"github.com/JonMunkholm/OrderSheet/internal/state"
)

// DefaultImportTimeout bounds one import, including the wait for a slot.
const DefaultImportTimeout = 30 * time.Second

// DefaultMaxImportBytes is the largest file ImportCSV accepts.
const DefaultMaxImportBytes = 10 << 20

// ErrUnknownItem is returned when a stock update names an id outside the
// catalog.
var ErrUnknownItem = errors.New("unknown item")

// ErrInvalidStock is returned for negative stock counts.
var ErrInvalidStock = errors.New("invalid stock")

// Options configures a Service. Zero fields get defaults.
type Options struct {
	Catalog       *catalog.Catalog
	Engine        *Engine
	Store         state.Store
	Limiter       *ImportLimiter
	Activity      *ActivityLog
	Notes         map[string]string
	Title         string
	MaxBytes      int64
	ImportTimeout time.Duration
	Now           func() time.Time
}

// Service runs the order wizard for many sessions. Each session's state is
// stored under state.KeyFor(session).
type Service struct {
	catalog       *catalog.Catalog
	engine        *Engine
	store         state.Store
	limiter       *ImportLimiter
	activity      *ActivityLog
	notes         map[string]string
	title         string
	maxBytes      int64
	importTimeout time.Duration
	now           func() time.Time

	// mu serialises load-modify-save cycles
	mu sync.Mutex
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	s := &Service{
		catalog:       opts.Catalog,
		engine:        opts.Engine,
		store:         opts.Store,
		limiter:       opts.Limiter,
		activity:      opts.Activity,
		notes:         opts.Notes,
		title:         opts.Title,
		maxBytes:      opts.MaxBytes,
		importTimeout: opts.ImportTimeout,
		now:           opts.Now,
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.engine == nil {
		s.engine = NewEngine()
	}
	if s.store == nil {
		s.store = state.NewMemoryStore()
	}
	if s.limiter == nil {
		s.limiter = NewImportLimiter(DefaultMaxConcurrentImports, DefaultMaxWaitTime)
	}
	if s.activity == nil {
		s.activity = NewActivityLog(DefaultActivityCapacity)
	}
	if s.notes == nil {
		s.notes = catalog.Notes(catalog.DefaultMapping())
	}
	if s.title == "" {
		s.title = export.DefaultTitle
	}
	if s.maxBytes <= 0 {
		s.maxBytes = DefaultMaxImportBytes
	}
	if s.importTimeout <= 0 {
		s.importTimeout = DefaultImportTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Catalog returns the item catalog.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Limiter returns the import limiter, for health reporting and shutdown.
func (s *Service) Limiter() *ImportLimiter { return s.limiter }

// ImportSummary is what ImportCSV reports back.
type ImportSummary struct {
	ImportID   string      `json:"importId"`
	FileName   string      `json:"fileName"`
	Encoding   Encoding    `json:"encoding"`
	Orders     QuantityMap `json:"orders"`
	Notes      NoteMap     `json:"notes"`
	Rows       int         `json:"rows"`
	Skipped    int         `json:"skipped"`
	Unresolved int         `json:"unresolved"`
}

// ImportCSV imports one order export for session and stores the resulting
// order quantities. Stock counts are kept.
func (s *Service) ImportCSV(ctx context.Context, session, fileName string, r io.Reader) (ImportSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	if err := s.limiter.Acquire(ctx); err != nil {
		return ImportSummary{}, err
	}
	defer s.limiter.Release()

	start := time.Now()
	report, err := ImportReader(ctx, s.catalog, s.engine, r, s.maxBytes)
	if err != nil {
		slog.Warn("import failed",
			"session", session,
			"file", fileName,
			"error", err,
		)
		return ImportSummary{}, err
	}

	_, err = s.update(ctx, session, func(st state.State) state.State {
		return st.WithOrders(fileName, report.Quantities)
	})
	if err != nil {
		return ImportSummary{}, err
	}

	summary := ImportSummary{
		ImportID:   uuid.New().String(),
		FileName:   fileName,
		Encoding:   report.Encoding,
		Orders:     report.Quantities,
		Notes:      report.Notes,
		Rows:       report.Rows,
		Skipped:    report.Skipped,
		Unresolved: report.Unresolved,
	}

	slog.Info("import completed",
		"import_id", summary.ImportID,
		"session", session,
		"file", fileName,
		"encoding", report.Encoding,
		"rows", report.Rows,
		"skipped", report.Skipped,
		"unresolved", report.Unresolved,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	s.activity.Record(ctx, ActivityEntry{
		Action:   ActionImport,
		Session:  session,
		FileName: fileName,
		ImportID: summary.ImportID,
		Items:    countPositive(report.Quantities),
	})
	return summary, nil
}

// State returns the session's wizard state.
func (s *Service) State(ctx context.Context, session string) (state.State, error) {
	return s.store.Load(ctx, state.KeyFor(session))
}

// SetStock replaces the session's stock counts. Every id must be in the
// catalog and every count non-negative; the update is all or nothing.
func (s *Service) SetStock(ctx context.Context, session string, stock map[string]int) (state.State, error) {
	for id, n := range stock {
		if !s.catalog.Has(id) {
			return state.State{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
		}
		if n < 0 {
			return state.State{}, fmt.Errorf("%w: %s = %d", ErrInvalidStock, id, n)
		}
	}

	st, err := s.update(ctx, session, func(st state.State) state.State {
		return st.WithStock(stock)
	})
	if err != nil {
		return state.State{}, err
	}
	s.activity.Record(ctx, ActivityEntry{Action: ActionStockUpdate, Session: session, Items: len(stock)})
	return st, nil
}

// SetStockDone marks the stock step done or not done.
func (s *Service) SetStockDone(ctx context.Context, session string, done bool) (state.State, error) {
	st, err := s.update(ctx, session, func(st state.State) state.State {
		return st.WithStockDone(done)
	})
	if err != nil {
		return state.State{}, err
	}
	s.activity.Record(ctx, ActivityEntry{Action: ActionStockDone, Session: session})
	return st, nil
}

// MarkExported stamps the export time.
func (s *Service) MarkExported(ctx context.Context, session string) (state.State, error) {
	st, err := s.update(ctx, session, func(st state.State) state.State {
		return st.WithExportDone(s.now())
	})
	if err != nil {
		return state.State{}, err
	}
	s.activity.Record(ctx, ActivityEntry{Action: ActionExport, Session: session})
	return st, nil
}

// Reset discards the session's state.
func (s *Service) Reset(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, state.KeyFor(session)); err != nil {
		return fmt.Errorf("reset state: %w", err)
	}
	s.activity.Record(ctx, ActivityEntry{Action: ActionReset, Session: session})
	return nil
}

// PrintPayload builds the sheet for the session's current state. dateLabel
// is printed as given.
func (s *Service) PrintPayload(ctx context.Context, session, dateLabel string) (export.PrintPayload, error) {
	st, err := s.State(ctx, session)
	if err != nil {
		return export.PrintPayload{}, err
	}
	return export.BuildPayload(s.catalog, st, s.notes, s.title, dateLabel), nil
}

// Activity returns the session's recent actions, newest first.
func (s *Service) Activity(session string, limit int) []ActivityEntry {
	return s.activity.Recent(session, limit)
}

func (s *Service) update(ctx context.Context, session string, fn func(state.State) state.State) (state.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := state.KeyFor(session)
	st, err := s.store.Load(ctx, key)
	if err != nil {
		return state.State{}, fmt.Errorf("load state: %w", err)
	}
	st = fn(st)
	if err := s.store.Save(ctx, key, st); err != nil {
		return state.State{}, fmt.Errorf("save state: %w", err)
	}
	return st, nil
}

func countPositive(m QuantityMap) int {
	n := 0
	for _, v := range m {
		if v > 0 {
			n++
		}
	}
	return n
}
