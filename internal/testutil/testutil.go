// Package testutil 整合測試共用的連線設定；DB 或 Redis 連不上時由呼叫端 skip
package testutil

import (
	"context"
	"fmt"
	"time"

	"event-platform/config"
	"event-platform/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const connectTimeout = 3 * time.Second

// SetupDatabase 連線測試 DB 並跑 migration
func SetupDatabase() (*pgxpool.Pool, func(), error) {
	cfg := config.LoadTestConfig()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	if err := database.MigrateUp(cfg.Database.URL()); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return pool, pool.Close, nil
}

// SetupRedisOnly 僅初始化 Redis，用於只依賴 Redis 的測試（如 queue 整合測試）
func SetupRedisOnly() (*redis.Client, func(), error) {
	cfg := config.LoadTestConfig()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	cleanup := func() { _ = rdb.Close() }
	return rdb, cleanup, nil
}

// Truncate 清空所有資料表，保留 schema
func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE activities, tickets, events, users RESTART IDENTITY CASCADE")
	return err
}
