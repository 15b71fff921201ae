package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestRunner_RunsUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewReasoner(observeOnlyParams(), 1, zap.NewNop())
	out := NewOutbox(nil, zap.NewNop())
	r.SetPublisher(out)
	w := NewRunner(r, out, zap.NewNop())
	w.SetSnapshotInterval(10)

	out.Start()
	w.Start()

	require.NoError(t, r.SubmitLine("<robin --> bird>."))
	require.NoError(t, r.SubmitLine("<robin --> bird>?"))

	require.Eventually(t, func() bool {
		return len(out.Recent(10)) == 1
	}, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		s, ok := out.LatestSnapshot()
		return ok && s.ConceptCount == 3
	}, 2*time.Second, 5*time.Millisecond)

	w.Stop()
	out.Stop()

	assert.Equal(t, "<robin --> bird>. %1.00;0.90%", out.Recent(1)[0].Text)
}

func TestRunner_IdlesWithoutInput(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewReasoner(observeOnlyParams(), 1, zap.NewNop())
	w := NewRunner(r, nil, zap.NewNop())
	w.Start()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, uint64(0), r.Cycle())

	require.NoError(t, r.SubmitLine("<a --> b>."))
	require.Eventually(t, func() bool { return r.Cycle() > 0 }, time.Second, time.Millisecond)

	w.Stop()
}

func TestRunner_PauseAndResume(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewReasoner(observeOnlyParams(), 1, zap.NewNop())
	out := NewOutbox(nil, zap.NewNop())
	w := NewRunner(r, out, zap.NewNop())
	out.Start()
	w.Start()
	require.NoError(t, r.SubmitLine("<a --> b>."))
	require.Eventually(t, func() bool { return r.Cycle() > 0 }, time.Second, time.Millisecond)

	w.Pause()
	assert.True(t, w.Status().Paused)
	// the cycle in flight may still finish
	time.Sleep(10 * time.Millisecond)
	paused := r.Cycle()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, paused, r.Cycle())

	require.Eventually(t, func() bool {
		s, ok := out.LatestSnapshot()
		return ok && s.Cycle == paused
	}, time.Second, time.Millisecond)

	w.Resume()
	assert.False(t, w.Paused())
	require.Eventually(t, func() bool { return r.Cycle() > paused }, time.Second, time.Millisecond)

	w.Stop()
	out.Stop()
}

func TestRunner_CycleDelay(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewReasoner(observeOnlyParams(), 1, zap.NewNop())
	w := NewRunner(r, nil, zap.NewNop())
	w.SetCycleDelay(10 * time.Millisecond)
	require.NoError(t, r.SubmitLine("<a --> b>."))

	w.Start()
	time.Sleep(55 * time.Millisecond)
	w.Stop()

	assert.LessOrEqual(t, r.Cycle(), uint64(8))
	assert.Greater(t, r.Cycle(), uint64(0))
}

func TestRunner_StopWithoutStart(t *testing.T) {
	w := NewRunner(NewReasoner(observeOnlyParams(), 1, zap.NewNop()), nil, zap.NewNop())
	assert.NotPanics(t, w.Stop)
}
