package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineTimerFires(t *testing.T) {
	dl := newDeadline(10 * time.Millisecond)
	defer dl.Stop()

	assert.False(t, dl.Cancelled())
	require.Eventually(t, dl.Cancelled, time.Second, time.Millisecond)
}

func TestDeadlineWallClockRecheck(t *testing.T) {
	// The wall-clock guard must detect expiry even if the timer has
	// not fired, as a second line of defense.
	dl := &deadline{start: time.Now().Add(-time.Second), budget: 10 * time.Millisecond}

	assert.False(t, dl.Cancelled(), "the flag alone is not yet set")
	assert.True(t, dl.CheckElapsed())
	assert.True(t, dl.Cancelled(), "CheckElapsed sets the flag")
}

func TestDeadlineZeroBudgetNeverExpires(t *testing.T) {
	dl := newDeadline(0)
	defer dl.Stop()

	assert.False(t, dl.CheckElapsed())
	assert.False(t, dl.Cancelled())
}

func TestDeadlineCancel(t *testing.T) {
	dl := newDeadline(time.Hour)
	defer dl.Stop()

	dl.Cancel()
	assert.True(t, dl.Cancelled())
}

func TestDeadlineElapsed(t *testing.T) {
	dl := newDeadline(time.Hour)
	defer dl.Stop()

	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, dl.Elapsed(), 5*time.Millisecond)
}
