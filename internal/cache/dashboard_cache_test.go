package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/laundry-service/internal/domain"
)

func TestDashboardKeyNormalizesEmail(t *testing.T) {
	assert.Equal(t, "dashboard:ana@chitkara.edu.in:PI-A", DashboardKey("  Ana@Chitkara.edu.in ", domain.HostelPIA))
}

func TestGenerationKeySitsBesideDashboardKey(t *testing.T) {
	assert.Equal(t, "dashboard:ana@chitkara.edu.in:PI-A:gen", GenerationKey("Ana@chitkara.edu.in", domain.HostelPIA))
}

func TestParseGeneration(t *testing.T) {
	n, err := parseGeneration(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = parseGeneration("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, err = parseGeneration("seven")
	assert.Error(t, err)
	_, err = parseGeneration(7)
	assert.Error(t, err)
}

func TestNewRedisDashboardCacheFallsBackToNoop(t *testing.T) {
	assert.IsType(t, Noop{}, NewRedisDashboardCache(nil, time.Minute))

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })
	assert.IsType(t, Noop{}, NewRedisDashboardCache(client, 0))
}

func TestNoopNeverHits(t *testing.T) {
	ctx := context.Background()
	c := Noop{}
	require.NoError(t, c.Set(ctx, "a@chitkara.edu.in", domain.HostelPIA, 0, domain.EmptyDashboard()))

	view, generation, ok, err := c.Get(ctx, "a@chitkara.edu.in", domain.HostelPIA)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, view)
	assert.Zero(t, generation)
}

func TestRedisCacheSurfacesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisDashboardCache(client, time.Minute)
	_, _, ok, err := c.Get(context.Background(), "a@chitkara.edu.in", domain.HostelPIA)
	require.Error(t, err)
	assert.False(t, ok)
}
