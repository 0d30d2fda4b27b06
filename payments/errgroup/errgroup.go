package errgroup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LerianStudio/payment-engine/payments/log"
	"github.com/LerianStudio/payment-engine/payments/runtime"
)

// ErrPanicRecovered is returned when a goroutine in the group panics.
var ErrPanicRecovered = errors.New("errgroup: panic recovered")

const defaultComponent = "errgroup"

// Group manages goroutines that share a cancellation context.
// The first error returned by any goroutine cancels the context and is
// returned by Wait. Later errors are discarded.
type Group struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	errOnce   sync.Once
	err       error
	logger    log.Logger
	component string
}

// SetLogger sets the logger used when a goroutine panics.
func (grp *Group) SetLogger(logger log.Logger) {
	if grp == nil {
		return
	}

	grp.logger = logger
}

// SetComponent sets the component label attached to recovered panics.
func (grp *Group) SetComponent(component string) {
	if grp == nil {
		return
	}

	grp.component = component
}

func (grp *Group) effectiveCtx() context.Context {
	if grp.ctx != nil {
		return grp.ctx
	}

	return context.Background()
}

func (grp *Group) effectiveComponent() string {
	if grp.component != "" {
		return grp.component
	}

	return defaultComponent
}

// WithContext returns a new Group and a derived context. The context is
// canceled when the first goroutine fails or when Wait returns.
func WithContext(ctx context.Context) (*Group, context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	return &Group{ctx: ctx, cancel: cancel}, ctx
}

// Go starts fn in a new goroutine.
func (grp *Group) Go(fn func() error) {
	grp.GoNamed("group.Go", fn)
}

// GoNamed starts fn in a new goroutine. name identifies it in panic reports.
func (grp *Group) GoNamed(name string, fn func() error) {
	grp.wg.Add(1)

	go func() {
		defer grp.wg.Done()
		defer func() {
			if recovered := recover(); recovered != nil {
				runtime.HandlePanicValue(grp.effectiveCtx(), grp.logger, recovered, grp.effectiveComponent(), name)
				grp.fail(fmt.Errorf("%w: %v", ErrPanicRecovered, recovered))
			}
		}()

		if err := fn(); err != nil {
			grp.fail(err)
		}
	}()
}

func (grp *Group) fail(err error) {
	grp.errOnce.Do(func() {
		grp.err = err
		if grp.cancel != nil {
			grp.cancel()
		}
	})
}

// Wait blocks until every goroutine has returned, cancels the group context
// and returns the first recorded error.
func (grp *Group) Wait() error {
	grp.wg.Wait()

	if grp.cancel != nil {
		grp.cancel()
	}

	return grp.err
}
