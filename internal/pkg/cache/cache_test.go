package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-process Cache for exercising Remember.
type memoryCache struct {
	data     map[string][]byte
	failRead bool
}

func (m *memoryCache) GetJSON(ctx context.Context, key string, target any) (bool, error) {
	if m.failRead {
		return false, errors.New("connection reset")
	}
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, target)
}

func (m *memoryCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
		}
	}
	return nil
}

type metrics struct {
	Total int `json:"total"`
}

func TestRemember_LoadsOnceThenHits(t *testing.T) {
	c := &memoryCache{data: map[string][]byte{}}
	calls := 0
	load := func(context.Context) (metrics, error) {
		calls++
		return metrics{Total: 42}, nil
	}

	for range 3 {
		got, err := Remember(context.Background(), c, "dashboard:metrics", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 42, got.Total)
	}
	assert.Equal(t, 1, calls)

	require.NoError(t, c.DeletePattern(context.Background(), "dashboard:*"))
	_, err := Remember(context.Background(), c, "dashboard:metrics", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemember_ReadFailureFallsBackToLoad(t *testing.T) {
	c := &memoryCache{data: map[string][]byte{}, failRead: true}

	got, err := Remember(context.Background(), c, "k", time.Minute, func(context.Context) (metrics, error) {
		return metrics{Total: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Total)
}

func TestRemember_LoadErrorNotCached(t *testing.T) {
	c := &memoryCache{data: map[string][]byte{}}

	_, err := Remember(context.Background(), c, "k", time.Minute, func(context.Context) (metrics, error) {
		return metrics{}, errors.New("db down")
	})
	assert.Error(t, err)
	assert.Empty(t, c.data)
}

func TestNoop(t *testing.T) {
	var target metrics
	found, err := Noop{}.GetJSON(context.Background(), "k", &target)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, Noop{}.SetJSON(context.Background(), "k", target, time.Second))
}

func TestRedisCache_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr, Prefix: "nmep-test:"})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.SetJSON(ctx, "dashboard:metrics", metrics{Total: 3}, time.Minute))

	var got metrics
	found, err := c.GetJSON(ctx, "dashboard:metrics", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, got.Total)

	require.NoError(t, c.DeletePattern(ctx, "dashboard:*"))
	found, err = c.GetJSON(ctx, "dashboard:metrics", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
