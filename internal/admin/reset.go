// Package admin provides administrative operations on the wizard state store.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/OrderSheet/internal/state"
)

// ResetTimeout is the maximum duration for one administrative operation.
const ResetTimeout = 30 * time.Second

// ErrPurgeUnsupported is returned for stores that cannot list by age.
var ErrPurgeUnsupported = errors.New("store does not support purging")

// Purge deletes every session state last saved more than olderThan ago and
// returns how many were removed.
func Purge(ctx context.Context, store state.Store, olderThan time.Duration, now time.Time) (int64, error) {
	purger, ok := store.(state.Purger)
	if !ok {
		return 0, ErrPurgeUnsupported
	}
	if olderThan <= 0 {
		return 0, fmt.Errorf("purge: age must be positive, got %s", olderThan)
	}

	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	n, err := purger.PurgeBefore(ctx, now.Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("purge: %w", err)
	}
	return n, nil
}

// ResetSessions deletes the state of each named session. It stops at the
// first failure.
func ResetSessions(ctx context.Context, store state.Store, sessions ...string) error {
	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	for _, s := range sessions {
		if err := store.Delete(ctx, state.KeyFor(s)); err != nil {
			return fmt.Errorf("reset session %s: %w", s, err)
		}
	}
	return nil
}
