package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/leetmommy/leetmommy"
	"github.com/leetmommy/leetmommy/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ leetmommy.DomainLimiter = (*crawl.DomainLimiter)(nil)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("spaces requests to the lecture host", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "curric.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "curric.example.com"))

		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("limits each host separately", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "curric.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "cdn.example.com"))

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("zero rate disables throttling", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0)

		start := time.Now()
		for range 20 {
			require.NoError(t, limiter.Wait(context.Background(), "curric.example.com"))
		}

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("gives up when crawl deadline passes", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "curric.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "curric.example.com"))
	})
}
