package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/laundry-service/internal/domain"
)

// DashboardCache stores aggregated dashboards per owner and hostel.
//
// Every key carries a generation that Invalidate bumps. Get reports the generation it
// observed and Set stores only while that generation is still current, so a view read
// before an invalidation is never written back after it.
type DashboardCache interface {
	// Get returns the cached dashboard, the current generation and whether the view was present.
	Get(ctx context.Context, email string, hostel domain.Hostel) (*domain.Dashboard, int64, bool, error)
	Set(ctx context.Context, email string, hostel domain.Hostel, generation int64, view *domain.Dashboard) error
	Invalidate(ctx context.Context, email string, hostel domain.Hostel) error
}

// DashboardKey builds the cache key for one owner and hostel.
func DashboardKey(email string, hostel domain.Hostel) string {
	return fmt.Sprintf("dashboard:%s:%s", domain.NormalizeEmail(email), hostel)
}

// GenerationKey builds the key holding the invalidation counter for one owner and hostel.
func GenerationKey(email string, hostel domain.Hostel) string {
	return DashboardKey(email, hostel) + ":gen"
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDashboardCache returns a redis-backed cache. A nil client or zero ttl yields a Noop.
func NewRedisDashboardCache(client *redis.Client, ttl time.Duration) DashboardCache {
	if client == nil || ttl <= 0 {
		return Noop{}
	}
	return &redisDashboardCache{client: client, ttl: ttl}
}

func (c *redisDashboardCache) Get(ctx context.Context, email string, hostel domain.Hostel) (*domain.Dashboard, int64, bool, error) {
	values, err := c.client.MGet(ctx, DashboardKey(email, hostel), GenerationKey(email, hostel)).Result()
	if err != nil {
		return nil, 0, false, err
	}
	generation, err := parseGeneration(values[1])
	if err != nil {
		return nil, 0, false, err
	}
	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, false, nil
	}
	var view domain.Dashboard
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, generation, false, fmt.Errorf("decode cached dashboard: %w", err)
	}
	if view.History == nil {
		view.History = []domain.LaundryOrder{}
	}
	return &view, generation, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, email string, hostel domain.Hostel, generation int64, view *domain.Dashboard) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	genKey := GenerationKey(email, hostel)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, DashboardKey(email, hostel), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		// Invalidated while writing; the next read rebuilds the view.
		return nil
	}
	return err
}

func (c *redisDashboardCache) Invalidate(ctx context.Context, email string, hostel domain.Hostel) error {
	genKey := GenerationKey(email, hostel)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL(c.ttl))
		pipe.Del(ctx, DashboardKey(email, hostel))
		return nil
	})
	return err
}

// generationTTL keeps the counter around well past any view written under it.
func generationTTL(ttl time.Duration) time.Duration {
	return 10 * ttl
}

func parseGeneration(v any) (int64, error) {
	switch g := v.(type) {
	case nil:
		return 0, nil
	case string:
		n, err := strconv.ParseInt(g, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("decode dashboard generation: %w", err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected dashboard generation type %T", v)
	}
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, domain.Hostel) (*domain.Dashboard, int64, bool, error) {
	return nil, 0, false, nil
}

func (Noop) Set(context.Context, string, domain.Hostel, int64, *domain.Dashboard) error { return nil }

func (Noop) Invalidate(context.Context, string, domain.Hostel) error { return nil }
