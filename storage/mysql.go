package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/malusev998/currency-converter"
)

const DefaultMySQLTable = "currency_rates"

type mysqlStorage struct {
	db        *sql.DB
	tableName string
	now       func() time.Time
}

func NewMySQLStorage(config MySQLConfig) (currency.Storage, error) {
	dsn, err := mysql.ParseDSN(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	dsn.ParseTime = true
	dsn.Loc = time.UTC

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, err
	}

	ctx := config.context()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := NewSQLStorage(db, config.TableName)

	if config.Migrate {
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return s, nil
}

// NewSQLStorage wraps an already opened MySQL handle.
func NewSQLStorage(db *sql.DB, tableName string) currency.Storage {
	if tableName == "" {
		tableName = DefaultMySQLTable
	}

	return mysqlStorage{
		db:        db,
		tableName: tableName,
		now:       time.Now,
	}
}

func (m mysqlStorage) Has(ctx context.Context, key string) (bool, error) {
	var count int64

	row := m.db.QueryRowContext(
		ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE cache_key = ? AND expires_at > ?;", m.tableName),
		key, m.now().UTC(),
	)

	if err := row.Scan(&count); err != nil {
		return false, cacheError("has", key, err)
	}

	return count > 0, nil
}

func (m mysqlStorage) Get(ctx context.Context, key string) (currency.RateTable, error) {
	var payload []byte

	row := m.db.QueryRowContext(
		ctx,
		fmt.Sprintf("SELECT payload FROM %s WHERE cache_key = ? AND expires_at > ? LIMIT 1;", m.tableName),
		key, m.now().UTC(),
	)

	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return currency.RateTable{}, currency.ErrCacheMiss
		}

		return currency.RateTable{}, cacheError("get", key, err)
	}

	var table currency.RateTable

	if err := json.Unmarshal(payload, &table); err != nil {
		return currency.RateTable{}, cacheError("get", key, err)
	}

	return table, nil
}

func (m mysqlStorage) AddIfAbsent(ctx context.Context, key string, table currency.RateTable, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}

	payload, err := json.Marshal(table)
	if err != nil {
		return false, cacheError("add", key, err)
	}

	now := m.now().UTC()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return false, cacheError("add", key, err)
	}

	_, err = tx.ExecContext(
		ctx,
		fmt.Sprintf("DELETE FROM %s WHERE cache_key = ? AND expires_at <= ?;", m.tableName),
		key, now,
	)

	if err != nil {
		_ = tx.Rollback()
		return false, cacheError("add", key, err)
	}

	result, err := tx.ExecContext(
		ctx,
		fmt.Sprintf("INSERT IGNORE INTO %s(id, cache_key, payload, expires_at) VALUES(?,?,?,?);", m.tableName),
		uuid.New().String(), key, payload, expiresAt(now, ttl),
	)

	if err != nil {
		_ = tx.Rollback()
		return false, cacheError("add", key, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return false, cacheError("add", key, err)
	}

	if err := tx.Commit(); err != nil {
		return false, cacheError("add", key, err)
	}

	return affected == 1, nil
}

func (m mysqlStorage) Migrate(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(
	id CHAR(36) NOT NULL PRIMARY KEY,
	cache_key VARCHAR(191) NOT NULL,
	payload TEXT NOT NULL,
	expires_at DATETIME(6) NOT NULL,
	UNIQUE KEY %s_cache_key_unique (cache_key)
);`, m.tableName, m.tableName))

	return err
}

func (m mysqlStorage) Close() error {
	return m.db.Close()
}

func (m mysqlStorage) GetStorageProviderName() string {
	return string(MySQL)
}
