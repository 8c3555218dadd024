package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/malusev998/currency-converter"
)

const DefaultRedisPrefix = "cconverter:"

type redisStorage struct {
	client *redis.Client
	prefix string
}

func NewRedisStorage(config RedisConfig) (currency.Storage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(config.context()).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisStorageWithClient(client, config.Prefix), nil
}

func NewRedisStorageWithClient(client *redis.Client, prefix string) currency.Storage {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return redisStorage{client: client, prefix: prefix}
}

func (r redisStorage) key(key string) string {
	return r.prefix + key
}

func (r redisStorage) Has(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, cacheError("has", key, err)
	}

	return n > 0, nil
}

func (r redisStorage) Get(ctx context.Context, key string) (currency.RateTable, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return currency.RateTable{}, currency.ErrCacheMiss
	}

	if err != nil {
		return currency.RateTable{}, cacheError("get", key, err)
	}

	var table currency.RateTable

	if err := json.Unmarshal(val, &table); err != nil {
		return currency.RateTable{}, cacheError("get", key, err)
	}

	return table, nil
}

func (r redisStorage) AddIfAbsent(ctx context.Context, key string, table currency.RateTable, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}

	data, err := json.Marshal(table)
	if err != nil {
		return false, cacheError("add", key, err)
	}

	added, err := r.client.SetNX(ctx, r.key(key), data, ttl).Result()
	if err != nil {
		return false, cacheError("add", key, err)
	}

	return added, nil
}

func (r redisStorage) Migrate(context.Context) error {
	return nil
}

func (r redisStorage) Close() error {
	return r.client.Close()
}

func (r redisStorage) GetStorageProviderName() string {
	return string(Redis)
}
