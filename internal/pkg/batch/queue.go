package batch

import (
	"context"
	"fmt"
	"time"
)

// ProcessFunc applies one remote mutation to a contiguous slice of items.
// It must return an error for the whole slice or nil; partial application is
// the remote side's problem, not modelled here.
type ProcessFunc[T any] func(ctx context.Context, items []T) error

// ProgressFunc is invoked after every successfully processed batch.
type ProgressFunc func(processed, total, batchSize int)

// Describer, when implemented by an item type, names the item in error
// entries. Otherwise the item's position is used.
type Describer interface {
	Describe() string
}

type Options struct {
	// InitialSize is the first batch size tried. Default 20.
	InitialSize int
	// MaxSize caps batch growth. Default 500.
	MaxSize int
	// GrowBy is added to the batch size after each success. Default 5.
	GrowBy int
	// SuccessDelay is slept between successful batches so the remote
	// endpoint is not saturated. Default 150ms.
	SuccessDelay time.Duration
	// FailureDelay is slept before retrying a failed batch at half size.
	// Default 600ms.
	FailureDelay time.Duration
	// MaxIterations aborts the run with a synthetic error once exceeded.
	// Default 10000.
	MaxIterations int
}

func (o Options) withDefaults() Options {
	if o.InitialSize <= 0 {
		o.InitialSize = 20
	}
	if o.MaxSize <= 0 {
		o.MaxSize = 500
	}
	if o.InitialSize > o.MaxSize {
		o.InitialSize = o.MaxSize
	}
	if o.GrowBy <= 0 {
		o.GrowBy = 5
	}
	if o.SuccessDelay <= 0 {
		o.SuccessDelay = 150 * time.Millisecond
	}
	if o.FailureDelay <= 0 {
		o.FailureDelay = 600 * time.Millisecond
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = 10000
	}
	return o
}

// Run applies fn to every item in order, in adaptively sized contiguous
// batches. The batch grows after each success and is halved after a failure;
// a failure at size 1 records the item as permanently failed and skips it, so
// one poisoned row never blocks the rest of a bulk operation.
//
// Batches never overlap and are strictly sequential. Run returns the number
// of items actually applied and one error string per permanently failed item
// (plus a synthetic entry if the iteration ceiling or the context cut the run
// short). When the run aborts, items past the abort point are neither applied
// nor individually recorded, so callers must report the applied count and not
// infer it from the error count.
func Run[T any](ctx context.Context, items []T, fn ProcessFunc[T], onProgress ProgressFunc, opts Options) (int, []string) {
	opts = opts.withDefaults()

	var errs []string
	total := len(items)
	applied := 0
	index := 0
	size := opts.InitialSize
	iterations := 0

	for index < total {
		iterations++
		if iterations > opts.MaxIterations {
			errs = append(errs, fmt.Sprintf("safety limit reached after %d iterations, %d of %d items processed", opts.MaxIterations, index, total))
			return applied, errs
		}

		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Sprintf("run aborted: %v, %d of %d items processed", err, index, total))
			return applied, errs
		}

		if size < 1 {
			size = 1
		}
		if size > opts.MaxSize {
			size = opts.MaxSize
		}

		end := index + size
		if end > total {
			end = total
		}
		chunk := items[index:end]

		err := fn(ctx, chunk)
		if err == nil {
			index = end
			applied += len(chunk)
			if onProgress != nil {
				onProgress(index, total, len(chunk))
			}
			size += opts.GrowBy
			if size > opts.MaxSize {
				size = opts.MaxSize
			}
			if index < total {
				sleep(ctx, opts.SuccessDelay)
			}
			continue
		}

		if len(chunk) <= 1 {
			errs = append(errs, fmt.Sprintf("%s: %v", describe(chunk[0], index), err))
			index++
			if onProgress != nil {
				onProgress(index, total, 1)
			}
			continue
		}

		// Shrink and retry the same offset.
		size = len(chunk) / 2
		sleep(ctx, opts.FailureDelay)
	}

	return applied, errs
}

func describe[T any](item T, position int) string {
	if d, ok := any(item).(Describer); ok {
		return d.Describe()
	}
	return fmt.Sprintf("item %d", position)
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
