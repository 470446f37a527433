package evaluate_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/sourceeval/evaluate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first request is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := evaluate.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "www.ansa.it")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := evaluate.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "www.ansa.it"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "www.ansa.it")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are independent", func(t *testing.T) {
		t.Parallel()

		limiter := evaluate.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "www.ansa.it"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "www.corriere.it")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("zero rate disables limiting", func(t *testing.T) {
		t.Parallel()

		limiter := evaluate.NewDomainLimiter(0)

		start := time.Now()
		for range 20 {
			require.NoError(t, limiter.Wait(context.Background(), "www.ansa.it"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := evaluate.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "www.ansa.it"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "www.ansa.it")

		require.Error(t, err)
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		limiter := evaluate.NewDomainLimiter(1000)

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = limiter.Wait(context.Background(), "www.ansa.it")
			}()
		}
		wg.Wait()
	})
}
