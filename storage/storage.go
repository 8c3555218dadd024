package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/malusev998/currency-converter"
)

type (
	Provider   string
	BaseConfig struct {
		Ctx     context.Context
		Migrate bool
	}
	MemoryConfig struct {
		BaseConfig
	}
	MySQLConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
	}
	MongoDBConfig struct {
		BaseConfig
		ConnectionString string
		Database         string
		Collection       string
	}
	RedisConfig struct {
		BaseConfig
		Addr     string
		Password string
		DB       int
		Prefix   string
	}
)

const (
	Memory  Provider = "memory"
	MySQL   Provider = "mysql"
	MongoDB Provider = "mongodb"
	Redis   Provider = "redis"
)

var (
	ErrStorageNotFound = errors.New("storage is not found")
)

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(str) {
	case "", "memory":
		return Memory, nil
	case "mysql":
		return MySQL, nil
	case "mongodb", "mongo":
		return MongoDB, nil
	case "redis":
		return Redis, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}

func NewStorage(provider Provider, config interface{}) (currency.Storage, error) {
	switch provider {
	case Memory:
		return NewMemoryStorage(), nil
	case MySQL:
		return NewMySQLStorage(config.(MySQLConfig))
	case MongoDB:
		return NewMongoStorage(config.(MongoDBConfig))
	case Redis:
		return NewRedisStorage(config.(RedisConfig))
	}

	return nil, ErrStorageNotFound
}

func (b BaseConfig) context() context.Context {
	if b.Ctx == nil {
		return context.Background()
	}

	return b.Ctx
}

func cacheError(op, key string, err error) error {
	return &currency.CacheError{Key: key, Op: op, Err: err}
}

func expiresAt(now time.Time, ttl time.Duration) time.Time {
	return now.Add(ttl).UTC()
}
