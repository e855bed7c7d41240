package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOptions() Options {
	return Options{
		InitialSize:  4,
		MaxSize:      16,
		GrowBy:       2,
		SuccessDelay: time.Millisecond,
		FailureDelay: time.Millisecond,
	}
}

func intItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestRun_CoversAllItemsInOrder(t *testing.T) {
	t.Parallel()
	items := intItems(53)

	var seen []int
	applied, errs := Run(context.Background(), items, func(_ context.Context, chunk []int) error {
		seen = append(seen, chunk...)
		return nil
	}, nil, fastOptions())

	assert.Empty(t, errs)
	assert.Equal(t, 53, applied)
	assert.Equal(t, items, seen, "concatenated chunks must reconstruct the input with no gaps or duplicates")
}

func TestRun_ReportsFinalProgress(t *testing.T) {
	t.Parallel()
	items := intItems(20)

	var lastProcessed, lastTotal int
	_, errs := Run(context.Background(), items, func(_ context.Context, chunk []int) error {
		return nil
	}, func(processed, total, batchSize int) {
		lastProcessed, lastTotal = processed, total
		assert.LessOrEqual(t, batchSize, 16)
		assert.GreaterOrEqual(t, batchSize, 1)
	}, fastOptions())

	assert.Empty(t, errs)
	assert.Equal(t, 20, lastProcessed)
	assert.Equal(t, 20, lastTotal)
}

func TestRun_GrowsBatchSizeUpToCap(t *testing.T) {
	t.Parallel()
	items := intItems(200)

	maxSeen := 0
	_, errs := Run(context.Background(), items, func(_ context.Context, chunk []int) error {
		if len(chunk) > maxSeen {
			maxSeen = len(chunk)
		}
		return nil
	}, nil, fastOptions())

	assert.Empty(t, errs)
	assert.Equal(t, 16, maxSeen, "batch size should reach MaxSize and never exceed it")
}

func TestRun_BacksOffToSingleItems(t *testing.T) {
	t.Parallel()
	// Fails for every batch larger than one item; succeeds at size 1. The
	// queue must still finish every item with zero recorded errors.
	items := intItems(9)

	var seen []int
	applied, errs := Run(context.Background(), items, func(_ context.Context, chunk []int) error {
		if len(chunk) > 1 {
			return errors.New("payload too large")
		}
		seen = append(seen, chunk...)
		return nil
	}, nil, fastOptions())

	assert.Empty(t, errs)
	assert.Equal(t, 9, applied)
	assert.Equal(t, items, seen)
}

func TestRun_SkipsPoisonedItem(t *testing.T) {
	t.Parallel()
	items := intItems(10)

	var seen []int
	applied, errs := Run(context.Background(), items, func(_ context.Context, chunk []int) error {
		for _, it := range chunk {
			if it == 7 {
				return fmt.Errorf("row %d violates constraint", it)
			}
		}
		seen = append(seen, chunk...)
		return nil
	}, nil, fastOptions())

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "violates constraint")
	assert.Equal(t, 9, applied, "the skipped item must not count as applied")
	assert.NotContains(t, seen, 7)
	assert.Len(t, seen, 9, "all healthy items must still be applied")
}

func TestRun_TransientFailureEventuallySucceeds(t *testing.T) {
	t.Parallel()
	items := intItems(30)

	failures := 3
	var seen []int
	_, errs := Run(context.Background(), items, func(_ context.Context, chunk []int) error {
		if failures > 0 && len(chunk) > 1 {
			failures--
			return errors.New("timeout")
		}
		seen = append(seen, chunk...)
		return nil
	}, nil, fastOptions())

	assert.Empty(t, errs)
	assert.Equal(t, items, seen)
}

func TestRun_SafetyLimitAborts(t *testing.T) {
	t.Parallel()
	opts := fastOptions()
	opts.MaxIterations = 25

	// Never succeeds for any batch of size > 1, and MaxIterations is too low
	// to ever reach size 1 progress across all items: must abort, not hang.
	items := intItems(100000)
	applied, errs := Run(context.Background(), items, func(_ context.Context, chunk []int) error {
		return errors.New("persistent failure")
	}, nil, opts)

	require.NotEmpty(t, errs)
	assert.Contains(t, errs[len(errs)-1], "safety limit")
	assert.Zero(t, applied, "no batch ever succeeded")
}

func TestRun_ContextCancellationStopsRun(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())

	items := intItems(1000)
	calls := 0
	seen := 0
	applied, errs := Run(ctx, items, func(_ context.Context, chunk []int) error {
		calls++
		seen += len(chunk)
		if calls == 2 {
			cancel()
		}
		return nil
	}, nil, fastOptions())

	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "aborted")
	assert.Less(t, calls, 10)
	assert.Equal(t, seen, applied, "the applied count must match what the process function actually received")
}

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()
	applied, errs := Run(context.Background(), nil, func(_ context.Context, chunk []int) error {
		t.Fatal("processFn must not be called for empty input")
		return nil
	}, nil, fastOptions())
	assert.Zero(t, applied)
	assert.Empty(t, errs)
}

type namedRow struct {
	Code string
}

func (r namedRow) Describe() string { return "row " + r.Code }

func TestRun_DescriberNamesFailedItems(t *testing.T) {
	t.Parallel()
	items := []namedRow{{Code: "EMP-001"}}

	_, errs := Run(context.Background(), items, func(_ context.Context, chunk []namedRow) error {
		return errors.New("duplicate key")
	}, nil, fastOptions())

	require.Len(t, errs, 1)
	assert.True(t, strings.HasPrefix(errs[0], "row EMP-001:"), errs[0])
}

func TestRun_AbortAppliedCountIsNotASubtraction(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())

	opts := fastOptions()
	opts.InitialSize = 2

	// One chunk of 2 lands, then the caller goes away. Only 2 of the 10
	// items were applied even though just one error entry is recorded.
	items := intItems(10)
	applied, errs := Run(ctx, items, func(_ context.Context, chunk []int) error {
		cancel()
		return nil
	}, nil, opts)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "2 of 10 items processed")
	assert.Equal(t, 2, applied)
	assert.NotEqual(t, len(items)-len(errs), applied, "subtracting errors from the total would overcount")
}
