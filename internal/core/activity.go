package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ActivityAction is a state-changing wizard step.
type ActivityAction string

const (
	ActionImport      ActivityAction = "import"
	ActionStockUpdate ActivityAction = "stock_update"
	ActionStockDone   ActivityAction = "stock_done"
	ActionExport      ActivityAction = "export"
	ActionReset       ActivityAction = "reset"
)

// ActivitySeverity ranks how much an action changes.
type ActivitySeverity string

const (
	SeverityLow    ActivitySeverity = "low"
	SeverityMedium ActivitySeverity = "medium"
	SeverityHigh   ActivitySeverity = "high"
)

// ActivityEntry is one recorded action.
type ActivityEntry struct {
	ID        string           `json:"id"`
	Action    ActivityAction   `json:"action"`
	Severity  ActivitySeverity `json:"severity"`
	Session   string           `json:"session"`
	FileName  string           `json:"fileName,omitempty"`
	ImportID  string           `json:"importId,omitempty"`
	Items     int              `json:"items,omitempty"`
	IPAddress string           `json:"ipAddress,omitempty"`
	UserAgent string           `json:"userAgent,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Requester identifies who sent the request behind an action. The web layer
// attaches it once per request; the CLI records without one.
type Requester struct {
	Session   string
	IP        string
	UserAgent string
}

type requesterKey struct{}

// WithRequester attaches rq to ctx.
func WithRequester(ctx context.Context, rq Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, rq)
}

// RequesterFrom returns the requester attached by WithRequester.
func RequesterFrom(ctx context.Context) (Requester, bool) {
	rq, ok := ctx.Value(requesterKey{}).(Requester)
	return rq, ok
}

func determineSeverity(action ActivityAction) ActivitySeverity {
	switch action {
	case ActionReset:
		return SeverityHigh
	case ActionImport, ActionStockUpdate:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// DefaultActivityCapacity is how many entries an ActivityLog keeps.
const DefaultActivityCapacity = 500

// ActivityLog keeps the most recent entries in memory and mirrors each one
// to slog.
type ActivityLog struct {
	mu      sync.RWMutex
	entries []ActivityEntry
	next    int
	full    bool
}

// NewActivityLog keeps at most capacity entries.
func NewActivityLog(capacity int) *ActivityLog {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	return &ActivityLog{entries: make([]ActivityEntry, capacity)}
}

// Record stores e, filling in ID, severity, time and whatever the entry
// lacks from the requester in ctx.
func (a *ActivityLog) Record(ctx context.Context, e ActivityEntry) ActivityEntry {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.Severity = determineSeverity(e.Action)
	if rq, ok := RequesterFrom(ctx); ok {
		if e.Session == "" {
			e.Session = rq.Session
		}
		if e.IPAddress == "" {
			e.IPAddress = rq.IP
		}
		if e.UserAgent == "" {
			e.UserAgent = rq.UserAgent
		}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	a.mu.Lock()
	a.entries[a.next] = e
	a.next = (a.next + 1) % len(a.entries)
	if a.next == 0 {
		a.full = true
	}
	a.mu.Unlock()

	slog.Info("activity",
		"action", e.Action,
		"severity", e.Severity,
		"session", e.Session,
		"file", e.FileName,
		"items", e.Items,
		"ip", e.IPAddress,
	)
	return e
}

// Recent returns up to limit entries for session, newest first. An empty
// session matches every entry; limit <= 0 means all.
func (a *ActivityLog) Recent(session string, limit int) []ActivityEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	n := a.next
	if a.full {
		n = len(a.entries)
	}

	var out []ActivityEntry
	for i := 1; i <= n; i++ {
		e := a.entries[(a.next-i+len(a.entries))%len(a.entries)]
		if session != "" && e.Session != session {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
