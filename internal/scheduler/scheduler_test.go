package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"airport_traffic/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTicker struct {
	n   atomic.Int64
	err error
}

func (c *countingTicker) Tick() error {
	c.n.Add(1)
	return c.err
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, time.Second, nil)
	assert.Error(t, err)
	_, err = New(&countingTicker{}, 0, nil)
	assert.ErrorIs(t, err, models.ErrOutOfRange)
}

func TestEnableDisable(t *testing.T) {
	s, err := New(&countingTicker{}, DefaultInterval, nil)
	require.NoError(t, err)
	assert.False(t, s.Enabled())

	require.NoError(t, s.Enable())
	require.NoError(t, s.Enable())
	assert.True(t, s.Enabled())
	assert.Len(t, s.cron.Entries(), 1)

	require.NoError(t, s.SetEnabled(false))
	assert.False(t, s.Enabled())
	assert.Empty(t, s.cron.Entries())

	require.NoError(t, s.SetEnabled(true))
	assert.Len(t, s.cron.Entries(), 1)
}

func TestTriggerNowRunsWhileDisabled(t *testing.T) {
	tk := &countingTicker{}
	s, err := New(tk, DefaultInterval, nil)
	require.NoError(t, err)
	assert.True(t, s.LastRun().IsZero())

	require.NoError(t, s.TriggerNow())
	assert.EqualValues(t, 1, tk.n.Load())
	assert.False(t, s.LastRun().IsZero())

	tk.err = errors.New("tick failed")
	assert.EqualError(t, s.TriggerNow(), "tick failed")
	st := s.Status()
	assert.Equal(t, 2, st.Runs)
	assert.Equal(t, "tick failed", st.LastError)
	assert.Equal(t, "30s", st.Interval)
}

func TestPeriodicRefresh(t *testing.T) {
	tk := &countingTicker{}
	s, err := New(tk, time.Second, nil)
	require.NoError(t, err)
	require.NoError(t, s.Enable())
	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return tk.n.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	s.Disable()
	// let a tick that was already dispatched finish
	time.Sleep(100 * time.Millisecond)
	seen := tk.n.Load()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, seen, tk.n.Load(), "disabled scheduler must not tick")
}

func TestStopHonorsContext(t *testing.T) {
	s, err := New(&countingTicker{}, time.Second, nil)
	require.NoError(t, err)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
