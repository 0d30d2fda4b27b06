//go:build unit

package errgroup_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LerianStudio/payment-engine/payments/errgroup"
	"github.com/LerianStudio/payment-engine/payments/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilReceiverSetters(t *testing.T) {
	t.Parallel()

	var g *errgroup.Group

	assert.NotPanics(t, func() {
		g.SetLogger(log.NewNop())
		g.SetComponent("engine")
	})
}

func TestZeroValueGroup(t *testing.T) {
	t.Parallel()

	var g errgroup.Group

	expected := errors.New("zero-value error")

	g.Go(func() error { return nil })
	g.Go(func() error { return expected })

	require.ErrorIs(t, g.Wait(), expected)
}

func TestWithContext_FirstErrorCancels(t *testing.T) {
	t.Parallel()

	g, ctx := errgroup.WithContext(context.Background())

	first := errors.New("decoder failed")

	g.Go(func() error { return first })
	g.Go(func() error {
		select {
		case <-ctx.Done():
			return errors.New("late")
		case <-time.After(5 * time.Second):
			return nil
		}
	})

	require.ErrorIs(t, g.Wait(), first)
	require.Error(t, ctx.Err())
}

func TestWait_CancelsContextOnSuccess(t *testing.T) {
	t.Parallel()

	g, ctx := errgroup.WithContext(context.Background())

	var ran atomic.Int32

	for range 4 {
		g.Go(func() error {
			ran.Add(1)
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int32(4), ran.Load())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestGoNamed_PanicBecomesError(t *testing.T) {
	t.Parallel()

	g, _ := errgroup.WithContext(context.Background())
	g.SetLogger(log.NewNop())
	g.SetComponent("engine")

	g.GoNamed("stream_decoder", func() error {
		panic("bad row")
	})

	err := g.Wait()
	require.ErrorIs(t, err, errgroup.ErrPanicRecovered)
	assert.Contains(t, err.Error(), "bad row")
}
