package state

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScopeCancelsOnClose(t *testing.T) {
	s := NewScope()

	var canceled atomic.Bool
	started := make(chan struct{})
	s.Go(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		canceled.Store(true)
	})

	<-started
	s.Close()
	assert.True(t, canceled.Load(), "Close must cancel and wait for in-flight tasks")
}

func TestScopeDropsWorkAfterClose(t *testing.T) {
	s := NewScope()
	s.Close()

	ran := false
	s.Go(func(ctx context.Context) { ran = true })
	time.Sleep(10 * time.Millisecond)
	assert.False(t, ran, "work submitted after teardown must not run")
}

func TestScopeCloseIsIdempotent(t *testing.T) {
	s := NewScope()
	s.Close()
	s.Close()
}
