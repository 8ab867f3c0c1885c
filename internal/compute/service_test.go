package compute

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"calculator-api/internal/cache"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCache records calls and can be made to fail.
type countingCache struct {
	mu      sync.Mutex
	entries map[string]string
	gets    atomic.Int32
	sets    atomic.Int32
	failGet bool
	failSet bool
	setErrs []error
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[string]string)}
}

func (c *countingCache) Name() string { return "counting" }

func (c *countingCache) Get(_ context.Context, key string) (string, error) {
	c.gets.Add(1)
	if c.failGet {
		return "", errors.New("backend down")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (c *countingCache) Set(ctx context.Context, key, value string) error {
	c.sets.Add(1)
	if c.failSet {
		return errors.New("backend down")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setErrs = append(c.setErrs, ctx.Err())
	c.entries[key] = value
	return nil
}

func TestService_Calculate(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		req  Request
		want string
	}{
		{Request{OpFactorial, 5}, "120"},
		{Request{OpFibonacci, 10}, "55"},
		{Request{OpNthPrime, 6}, "13"},
	}

	for _, tt := range tests {
		out, err := svc.Calculate(context.Background(), tt.req)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out.Result.String())
		assert.False(t, out.Cached)
	}
	assert.Equal(t, "none", svc.CacheName())
}

func TestService_NthPrimeZeroIsValidationError(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Calculate(context.Background(), Request{OpNthPrime, 0})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "Number must be at least 1 for nthPrime", verr.Errors[0].Msg)
}

func TestService_UnsupportedOperationIsComputationError(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Calculate(context.Background(), Request{Operation: "cube", Number: 3})

	var cerr *ComputationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, Operation("cube"), cerr.Operation)
}

func TestService_CachesResults(t *testing.T) {
	c := newCountingCache()
	svc := NewService(c)
	ctx := context.Background()

	first, err := svc.Calculate(ctx, Request{OpFactorial, 30})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Calculate(ctx, Request{OpFactorial, 30})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Zero(t, first.Result.Cmp(second.Result))

	assert.Equal(t, int32(1), c.sets.Load())
	assert.Equal(t, "265252859812191058636308480000000", c.entries["compute:factorial:30"])
}

func TestService_StoresResultAfterCallerCancels(t *testing.T) {
	c := newCountingCache()
	svc := NewService(c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := svc.Calculate(ctx, Request{OpFactorial, 10})
	require.NoError(t, err)
	assert.Equal(t, "3628800", out.Result.String())

	require.Len(t, c.setErrs, 1)
	assert.NoError(t, c.setErrs[0], "cache write should not see the caller's cancellation")
	assert.Equal(t, "3628800", c.entries["compute:factorial:10"])
}

func TestService_CacheFailuresFallBackToComputation(t *testing.T) {
	c := newCountingCache()
	c.failGet = true
	c.failSet = true
	svc := NewService(c)

	out, err := svc.Calculate(context.Background(), Request{OpFibonacci, 20})
	require.NoError(t, err)
	assert.Equal(t, "6765", out.Result.String())
	assert.False(t, out.Cached)
}

func TestService_IgnoresMalformedCacheEntries(t *testing.T) {
	c := newCountingCache()
	c.entries["compute:fibonacci:20"] = "not-a-number"
	svc := NewService(c)

	out, err := svc.Calculate(context.Background(), Request{OpFibonacci, 20})
	require.NoError(t, err)
	assert.Equal(t, "6765", out.Result.String())
	assert.False(t, out.Cached)
}

func TestService_WithMemoryCache(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := NewService(cache.NewMemory(8, time.Minute, clock))
	ctx := context.Background()

	_, err := svc.Calculate(ctx, Request{OpNthPrime, 1000})
	require.NoError(t, err)

	out, err := svc.Calculate(ctx, Request{OpNthPrime, 1000})
	require.NoError(t, err)
	assert.True(t, out.Cached)
	assert.Equal(t, "7919", out.Result.String())

	clock.Advance(2 * time.Minute)

	out, err = svc.Calculate(ctx, Request{OpNthPrime, 1000})
	require.NoError(t, err)
	assert.False(t, out.Cached)
}

func TestService_ConcurrentCallsReturnIndependentResults(t *testing.T) {
	svc := NewService(nil)

	var wg sync.WaitGroup
	results := make([]Outcome, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := svc.Calculate(context.Background(), Request{OpFactorial, 500})
			assert.NoError(t, err)
			results[i] = out
		}()
	}
	wg.Wait()

	want := Factorial(500)
	for i, out := range results {
		require.NotNil(t, out.Result, "result %d", i)
		assert.Zero(t, want.Cmp(out.Result), "result %d", i)
	}

	// Mutating one result must not affect another.
	results[0].Result.SetInt64(0)
	assert.Zero(t, want.Cmp(results[1].Result))
}
