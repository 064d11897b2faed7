// Package state holds the two pieces of view-state machinery every screen
// shares: the optimistic toggle and the view-scoped task runner.
package state

import (
	"context"
	"errors"

	"github.com/nivelabs/loop/client/internal/gateway"
)

// Toggle is the one shape behind like/unlike, follow/unfollow and community
// join/leave: a boolean relation between the current user and a target plus a
// visible counter derived from it. Local state flips before the remote write
// is issued; a failed write re-applies the pre-toggle values. The rollback
// guarantee lives here and nowhere else.
type Toggle struct {
	// Read returns the current local state.
	Read func() (active bool, count int64)
	// Apply writes local state. It is called optimistically before the
	// remote write and again with the old values on rollback.
	Apply func(active bool, count int64)
	// Perform issues the remote write: create the relation row when active,
	// delete it when not.
	Perform func(ctx context.Context, active bool) error
}

// Flip toggles the relation. Rapid flips are deliberately not serialized:
// each call issues an independent write and the last write to land determines
// remote state. No automatic retry happens on failure.
func (t *Toggle) Flip(ctx context.Context) error {
	active, count := t.Read()

	next := !active
	nextCount := count
	if next {
		nextCount++
	} else {
		nextCount--
	}
	t.Apply(next, nextCount)

	if err := t.Perform(ctx, next); err != nil {
		// The relation already being in the requested state is success:
		// a duplicate create or a delete of an absent row both mean the
		// store agrees with the local flip.
		if next && errors.Is(err, gateway.ErrAlreadyExists) {
			return nil
		}
		if !next && errors.Is(err, gateway.ErrNotFound) {
			return nil
		}
		t.Apply(active, count)
		return err
	}
	return nil
}
