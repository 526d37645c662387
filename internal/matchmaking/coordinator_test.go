package matchmaking

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passRecorder struct {
	mu      sync.Mutex
	targets []*uuid.UUID
}

func (r *passRecorder) run(target *uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
}

func (r *passRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.targets)
}

func (r *passRecorder) last() *uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.targets) == 0 {
		return nil
	}
	return r.targets[len(r.targets)-1]
}

func TestCoordinatorCoalescesBurst(t *testing.T) {
	rec := &passRecorder{}
	c := newCoordinator(30*time.Millisecond, rec.run)

	id := uuid.New()
	for i := 0; i < 10; i++ {
		c.notify(&id)
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, rec.count(), "a burst of notifies should trigger exactly one pass")
}

func TestCoordinatorLastWriterWins(t *testing.T) {
	rec := &passRecorder{}
	c := newCoordinator(20*time.Millisecond, rec.run)

	specific := uuid.New()
	c.notify(&specific)
	c.notify(nil)

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, 1, rec.count())
	assert.Nil(t, rec.last(), "a later full-scan notify should override the specific target")

	c.notify(nil)
	c.notify(&specific)

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, 2, rec.count())
	require.NotNil(t, rec.last())
	assert.Equal(t, specific, *rec.last())
}

func TestCoordinatorSeparateWindows(t *testing.T) {
	rec := &passRecorder{}
	c := newCoordinator(15*time.Millisecond, rec.run)

	c.notify(nil)
	time.Sleep(60 * time.Millisecond)
	c.notify(nil)
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, 2, rec.count(), "notifies in distinct quiet windows each run a pass")
}

func TestCoordinatorStopCancelsPending(t *testing.T) {
	rec := &passRecorder{}
	c := newCoordinator(20*time.Millisecond, rec.run)

	c.notify(nil)
	c.stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, rec.count())
}
