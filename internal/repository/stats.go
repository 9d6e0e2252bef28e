package repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

const statsKey = "stats"

type StatsRepository interface {
	Increment(ctx context.Context, counter string, delta int64) error
	GetAll(ctx context.Context) (map[string]int64, error)
}

type dbStats struct {
	client *redis.Client
}

// NewStatsRepository - counters stored as fields of a single Redis hash.
func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) Increment(ctx context.Context, counter string, delta int64) error {
	if err := that.client.HIncrBy(ctx, statsKey, counter, delta).Err(); err != nil {
		return fmt.Errorf("failed to increment %s: %w", counter, err)
	}

	return nil
}

func (that *dbStats) GetAll(ctx context.Context) (map[string]int64, error) {
	response, err := that.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	counters := make(map[string]int64, len(response))
	for counter, raw := range response {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse counter %s: %w", counter, err)
		}
		counters[counter] = value
	}

	return counters, nil
}

type memoryStats struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewMemoryStatsRepository - used when Redis is disabled; counters are lost on restart.
func NewMemoryStatsRepository() StatsRepository {
	return &memoryStats{
		counters: make(map[string]int64),
	}
}

func (that *memoryStats) Increment(_ context.Context, counter string, delta int64) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.counters[counter] += delta

	return nil
}

func (that *memoryStats) GetAll(_ context.Context) (map[string]int64, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	counters := make(map[string]int64, len(that.counters))
	for counter, value := range that.counters {
		counters[counter] = value
	}

	return counters, nil
}
