// Package cache implementa el cache de estimaciones de consumo sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appforecast "github.com/jhoicas/Nido-api/internal/application/forecast"
	"github.com/jhoicas/Nido-api/internal/application/inventory"
	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
)

const (
	estimateKeyPrefix = "estimate:"
	estimateTTL       = 30 * time.Second
)

var (
	_ appforecast.EstimateCache     = (*RedisEstimateCache)(nil)
	_ inventory.EstimateInvalidator = (*RedisEstimateCache)(nil)
)

// RedisEstimateCache cache con TTL corto de estimaciones de consumo.
// La clave es estimate:{niño}:{categoría}:{ventana}; el TTL acota la
// obsolescencia, así que la invalidación explícita es mejora, no requisito.
type RedisEstimateCache struct {
	client *redis.Client
}

// NewRedisEstimateCache construye el cache con un cliente ya conectado.
func NewRedisEstimateCache(client *redis.Client) *RedisEstimateCache {
	return &RedisEstimateCache{client: client}
}

func estimateKey(childID, categoryKey string, windowDays int) string {
	return fmt.Sprintf("%s%s:%s:%d", estimateKeyPrefix, childID, categoryKey, windowDays)
}

// Get devuelve la estimación cacheada o (nil, nil) en miss.
func (c *RedisEstimateCache) Get(ctx context.Context, childID, categoryKey string, windowDays int) (*domforecast.ConsumptionEstimate, error) {
	raw, err := c.client.Get(ctx, estimateKey(childID, categoryKey, windowDays)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get estimación: %w", err)
	}
	var est domforecast.ConsumptionEstimate
	if err := json.Unmarshal(raw, &est); err != nil {
		// Entrada corrupta: tratarla como miss y dejar que el TTL la expire.
		return nil, nil
	}
	return &est, nil
}

// Set guarda la estimación con TTL corto.
func (c *RedisEstimateCache) Set(ctx context.Context, est domforecast.ConsumptionEstimate) error {
	raw, err := json.Marshal(est)
	if err != nil {
		return fmt.Errorf("cache serializar estimación: %w", err)
	}
	key := estimateKey(est.ChildID, est.CategoryKey, est.WindowDays)
	if err := c.client.Set(ctx, key, raw, estimateTTL).Err(); err != nil {
		return fmt.Errorf("cache set estimación: %w", err)
	}
	return nil
}

// Invalidate borra todas las ventanas de (niño, categoría) vía SCAN incremental.
func (c *RedisEstimateCache) Invalidate(ctx context.Context, childID, categoryKey string) error {
	pattern := fmt.Sprintf("%s%s:%s:*", estimateKeyPrefix, childID, categoryKey)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan estimaciones: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidar estimaciones: %w", err)
	}
	return nil
}
