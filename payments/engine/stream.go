package engine

import (
	"context"
	"errors"
	"io"

	"github.com/LerianStudio/payment-engine/payments"
	"github.com/LerianStudio/payment-engine/payments/csvio"
	"github.com/LerianStudio/payment-engine/payments/errgroup"
	"github.com/LerianStudio/payment-engine/payments/transaction"
)

// channelSource adapts a record channel to transaction.Source.
type channelSource struct {
	ctx     context.Context
	records <-chan transaction.Record
}

func (s *channelSource) Next() (transaction.Record, error) {
	select {
	case <-s.ctx.Done():
		return transaction.Record{}, s.ctx.Err()
	case rec, ok := <-s.records:
		if !ok {
			return transaction.Record{}, io.EOF
		}

		return rec, nil
	}
}

// stream decodes r on one goroutine and applies records on another. The
// first failure on either side cancels the other.
func (e *Engine) stream(ctx context.Context, r io.Reader) (Result, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLogger(payments.NewLoggerFromContext(ctx))
	g.SetComponent("engine")

	records := make(chan transaction.Record, payments.SafeInt64ToInt(e.cfg.StreamBuffer))

	g.GoNamed("stream_decoder", func() error {
		defer close(records)

		reader := csvio.NewReader(r)

		for {
			rec, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}

			if err != nil {
				return err
			}

			select {
			case records <- rec:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	var result Result

	g.GoNamed("stream_applier", func() error {
		var err error

		result, err = e.Process(gctx, &channelSource{ctx: gctx, records: records})

		return err
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return result, nil
}
