package scrapegraph_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/sourceeval"
	"github.com/fwojciec/sourceeval/mock"
	"github.com/fwojciec/sourceeval/scrapegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryFetcher_Fetch(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{time.Millisecond, time.Millisecond}

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			calls++
			if calls < 2 {
				return "", errors.New("connection reset")
			}
			return "<html>ok</html>", nil
		}}

		html, err := scrapegraph.NewRetryFetcher(f, delays, nil).Fetch(context.Background(), "https://www.ansa.it")

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, 2, calls)
	})

	t.Run("returns last error after all retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			calls++
			return "", errors.New("HTTP 503")
		}}

		_, err := scrapegraph.NewRetryFetcher(f, delays, nil).Fetch(context.Background(), "https://www.ansa.it")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 503")
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry invalid requests", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			calls++
			return "", sourceeval.Errorf(sourceeval.EINVALID, "fetcher closed")
		}}

		_, err := scrapegraph.NewRetryFetcher(f, delays, nil).Fetch(context.Background(), "https://www.ansa.it")

		assert.Equal(t, sourceeval.EINVALID, sourceeval.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			calls++
			cancel()
			return "", errors.New("connection reset")
		}}

		_, err := scrapegraph.NewRetryFetcher(f, []time.Duration{time.Hour}, nil).Fetch(ctx, "https://www.ansa.it")

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("no delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) {
			calls++
			return "", errors.New("boom")
		}}

		_, err := scrapegraph.NewRetryFetcher(f, nil, nil).Fetch(context.Background(), "https://www.ansa.it")

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestRetryFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	f := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

	require.NoError(t, scrapegraph.NewRetryFetcher(f, nil, nil).Close())
	assert.True(t, closed)
}
