package stats_cache

import (
	"gachapon_backend/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Зеркало счетчиков игр в Redis. Лучшее усилие: обновляется после коммита
// транзакции игры, источником истины остается Postgres
type cache struct {
	client *redis.Client
}

func NewStatsCache(client *redis.Client) repository.StatsCache {
	return &cache{
		client: client,
	}
}

func playsKey(cabinetID int) string {
	return fmt.Sprintf("cabinet:%d:plays", cabinetID)
}

func revenueKey(cabinetID int) string {
	return fmt.Sprintf("cabinet:%d:revenue", cabinetID)
}

// RecordPlay - инкрементирует счетчики игр кабинета в Redis
func (c *cache) RecordPlay(ctx context.Context, cabinetID int, price int64) error {
	if err := c.client.Incr(ctx, playsKey(cabinetID)).Err(); err != nil {
		return fmt.Errorf("failed to record play in cache: %w", err)
	}
	if err := c.client.IncrBy(ctx, revenueKey(cabinetID), price).Err(); err != nil {
		return fmt.Errorf("failed to record revenue in cache: %w", err)
	}
	return nil
}

// GetTotalPlays - счетчик игр кабинета из Redis. 0, если ключа нет
func (c *cache) GetTotalPlays(ctx context.Context, cabinetID int) (int64, error) {
	plays, err := c.client.Get(ctx, playsKey(cabinetID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return plays, nil
}
