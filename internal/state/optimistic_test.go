package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivelabs/loop/client/internal/gateway"
)

type toggleState struct {
	active bool
	count  int64
}

func newToggle(st *toggleState, perform func(ctx context.Context, active bool) error) *Toggle {
	return &Toggle{
		Read:    func() (bool, int64) { return st.active, st.count },
		Apply:   func(active bool, count int64) { st.active, st.count = active, count },
		Perform: perform,
	}
}

func TestFlipActivates(t *testing.T) {
	st := &toggleState{active: false, count: 3}
	tg := newToggle(st, func(ctx context.Context, active bool) error {
		require.True(t, active)
		return nil
	})

	require.NoError(t, tg.Flip(context.Background()))
	assert.True(t, st.active)
	assert.Equal(t, int64(4), st.count)
}

func TestFlipDeactivates(t *testing.T) {
	st := &toggleState{active: true, count: 4}
	tg := newToggle(st, func(ctx context.Context, active bool) error {
		require.False(t, active)
		return nil
	})

	require.NoError(t, tg.Flip(context.Background()))
	assert.False(t, st.active)
	assert.Equal(t, int64(3), st.count)
}

func TestFlipRollsBackOnFailure(t *testing.T) {
	boom := errors.New("network down")
	st := &toggleState{active: false, count: 7}

	var observedOptimistic bool
	tg := newToggle(st, func(ctx context.Context, active bool) error {
		// Local state must already reflect the flip when the write goes out.
		observedOptimistic = st.active && st.count == 8
		return boom
	})

	err := tg.Flip(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, observedOptimistic, "apply must happen before the remote write")
	assert.False(t, st.active, "state must revert to pre-toggle values")
	assert.Equal(t, int64(7), st.count)
}

func TestFlipTreatsExistingRelationAsSuccess(t *testing.T) {
	st := &toggleState{active: false, count: 2}
	tg := newToggle(st, func(ctx context.Context, active bool) error {
		return gateway.ErrAlreadyExists
	})

	require.NoError(t, tg.Flip(context.Background()))
	assert.True(t, st.active)
	assert.Equal(t, int64(3), st.count)
}

func TestFlipTreatsAbsentRelationAsSuccess(t *testing.T) {
	st := &toggleState{active: true, count: 2}
	tg := newToggle(st, func(ctx context.Context, active bool) error {
		return gateway.ErrNotFound
	})

	require.NoError(t, tg.Flip(context.Background()))
	assert.False(t, st.active)
	assert.Equal(t, int64(1), st.count)
}

func TestRepeatedFlipsLastWriteWins(t *testing.T) {
	st := &toggleState{}
	var writes []bool
	tg := newToggle(st, func(ctx context.Context, active bool) error {
		writes = append(writes, active)
		return nil
	})

	ctx := context.Background()
	require.NoError(t, tg.Flip(ctx))
	require.NoError(t, tg.Flip(ctx))
	require.NoError(t, tg.Flip(ctx))

	// Three independent writes went out; displayed state matches the last.
	assert.Equal(t, []bool{true, false, true}, writes)
	assert.True(t, st.active)
	assert.Equal(t, int64(1), st.count)
}
