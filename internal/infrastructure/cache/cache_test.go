package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, 5*time.Minute)
}

func TestFetchJSONPopulatesAndReuses(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	key, err := c.BuildKey(ctx, DomainProducts, "list")
	require.NoError(t, err)

	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return map[string]string{"nombre": "Pan Francés"}, nil
	}

	var got map[string]string
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, "Pan Francés", got["nombre"])
	assert.Equal(t, 1, calls)

	// Segunda lectura sale de Redis, no del loader.
	var again map[string]string
	require.NoError(t, c.FetchJSON(ctx, key, &again, loader))
	assert.Equal(t, "Pan Francés", again["nombre"])
	assert.Equal(t, 1, calls)
}

func TestInvalidateRotatesKeys(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	before, err := c.BuildKey(ctx, DomainSales, "list")
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, DomainSales))

	after, err := c.BuildKey(ctx, DomainSales, "list")
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestInvalidateIsPerDomain(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	productsBefore, err := c.BuildKey(ctx, DomainProducts, "list")
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, DomainSales))

	productsAfter, err := c.BuildKey(ctx, DomainProducts, "list")
	require.NoError(t, err)
	assert.Equal(t, productsBefore, productsAfter)
}

func TestNilCachePassthrough(t *testing.T) {
	ctx := context.Background()
	var c *Cache

	key, err := c.BuildKey(ctx, DomainReports, "dashboard")
	require.NoError(t, err)

	calls := 0
	var got map[string]int
	loader := func(context.Context) (interface{}, error) {
		calls++
		return map[string]int{"total": 7}, nil
	}
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 7, got["total"])
	assert.NoError(t, c.Invalidate(ctx, DomainReports))
}
