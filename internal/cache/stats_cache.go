package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"quizmaster/internal/model"
)

const (
	statsKey   = "quiz:stats"
	winnersKey = "quiz:winners"
	statsTTL   = 5 * time.Minute
)

// WinnerEntry is one row of the all-time winners board.
type WinnerEntry struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
	Rank int    `json:"rank"`
}

// StatsCache keeps the read-side aggregates hot: a short-lived global stats
// blob and an all-time winners ZSET.
type StatsCache interface {
	GetStats(ctx context.Context) (*model.GlobalStats, error)
	SetStats(ctx context.Context, stats *model.GlobalStats) error
	InvalidateStats(ctx context.Context) error
	RecordWin(ctx context.Context, playerName string) error
	TopWinners(ctx context.Context, limit int) ([]WinnerEntry, error)
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a Redis-backed stats cache.
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{client: client}
}

func (c *statsCache) GetStats(ctx context.Context) (*model.GlobalStats, error) {
	data, err := c.client.Get(ctx, statsKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats model.GlobalStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *statsCache) SetStats(ctx context.Context, stats *model.GlobalStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, data, statsTTL).Err()
}

func (c *statsCache) InvalidateStats(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}

func (c *statsCache) RecordWin(ctx context.Context, playerName string) error {
	return c.client.ZIncrBy(ctx, winnersKey, 1, playerName).Err()
}

func (c *statsCache) TopWinners(ctx context.Context, limit int) ([]WinnerEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, winnersKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]WinnerEntry, len(results))
	for i, z := range results {
		entries[i] = WinnerEntry{
			Name: z.Member.(string),
			Wins: int(z.Score),
			Rank: i + 1,
		}
	}
	return entries, nil
}
