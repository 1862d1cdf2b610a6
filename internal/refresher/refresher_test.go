package refresher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libtool/internal/api"
)

type fakeSweeper struct {
	sweep *api.OverdueSweep
	err   error
	calls int
}

func (f *fakeSweeper) CheckOverdue(context.Context) (*api.OverdueSweep, error) {
	f.calls++
	return f.sweep, f.err
}

type fakeReloader struct {
	calls int
	err   error
}

func (f *fakeReloader) ReloadAll(context.Context) error {
	f.calls++
	return f.err
}

func TestRunOnce(t *testing.T) {
	sweeper := &fakeSweeper{sweep: &api.OverdueSweep{UpdatedCount: 2}}
	reloader := &fakeReloader{}

	r := New(sweeper, reloader, "*/15 * * * *", true)
	r.RunOnce(context.Background())

	assert.Equal(t, 1, sweeper.calls)
	assert.Equal(t, 1, reloader.calls)
}

func TestRunOnceReloadsEvenWhenSweepFails(t *testing.T) {
	sweeper := &fakeSweeper{err: &api.TransportError{StatusCode: 503, Message: "unavailable"}}
	reloader := &fakeReloader{}

	r := New(sweeper, reloader, "*/15 * * * *", true)
	r.RunOnce(context.Background())

	assert.Equal(t, 1, reloader.calls, "a failed sweep must not block the reload")
}

func TestStartDisabledDoesNothing(t *testing.T) {
	r := New(&fakeSweeper{sweep: &api.OverdueSweep{}}, &fakeReloader{}, "*/15 * * * *", false)

	require.NoError(t, r.Start(context.Background()))
	r.Stop()
}

func TestStartRejectsBadSchedule(t *testing.T) {
	r := New(&fakeSweeper{sweep: &api.OverdueSweep{}}, &fakeReloader{}, "not a schedule", true)

	err := r.Start(context.Background())
	assert.Error(t, err)
}

func TestStartIsIdempotent(t *testing.T) {
	r := New(&fakeSweeper{sweep: &api.OverdueSweep{}}, &fakeReloader{}, "*/15 * * * *", true)
	defer r.Stop()

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Start(context.Background()))
}
