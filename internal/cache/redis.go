// Package cache — кеш списков поверх Redis. Ключи строятся по виду ресурса и
// параметрам выборки; мутация инвалидирует весь префикс ресурса, а не латает
// закешированные страницы — порядок и total на сервере могли сдвинуться.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"zhurnal/internal/config"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	Db  *redis.Client
	TTL time.Duration
}

// InitServer подключается к Redis. Пустой адрес — кеш выключен, возвращаем nil
// (все методы nil-безопасны).
func InitServer(ctx context.Context, cfg *config.Config) (*Cache, error) {
	const op = "cache.InitServer"
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	dbNum, _ := strconv.Atoi(cfg.RedisDB)
	db := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       dbNum,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db, TTL: cfg.GetCacheTTL()}, nil
}

// Key — ключ вида "kind:параметры", например "comments:af12…:p1:s10".
func Key(kind string, parts ...interface{}) string {
	k := kind
	for _, p := range parts {
		k += fmt.Sprintf(":%v", p)
	}
	return k
}

func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	if c == nil {
		return false, nil
	}
	val, err := c.Db.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Db.Set(ctx, key, jsonData, c.TTL).Err()
}

// InvalidatePrefix удаляет все ключи ресурса (SCAN + DEL).
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if c == nil {
		return nil
	}
	iter := c.Db.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Db.Del(ctx, keys...).Err()
}
