package cmd

import (
	"context"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	"github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/fetchers"
	"github.com/malusev998/currency-converter/storage"
)

type (
	StorageConfig map[storage.Provider]interface{}

	LogConfig struct {
		Level  string
		Format string
	}

	AppConfig struct {
		Settings      currency.Settings
		Timeout       time.Duration
		Log           LogConfig
		Storage       storage.Provider
		StorageConfig StorageConfig
	}
)

func setDefaults(v *viper.Viper) {
	defaults := currency.DefaultSettings()

	v.SetDefault("api_source", string(defaults.APISource))
	v.SetDefault("use_https", defaults.UseHTTPS)
	v.SetDefault("enable_cache", defaults.EnableCache)
	v.SetDefault("cache_minutes", defaults.CacheMinutes)
	v.SetDefault("enable_log", defaults.EnableLog)
	v.SetDefault("openexchange.use_real_base", defaults.OpenExchange.UseRealBase)
	v.SetDefault("yahoo.currencies", defaults.Yahoo.Currencies)
	v.SetDefault("http.timeout", fetchers.DefaultTimeout)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("storage.driver", string(storage.Memory))
	v.SetDefault("storage.mysql.table", storage.DefaultMySQLTable)
	v.SetDefault("storage.mongodb.database", storage.DefaultMongoDatabase)
	v.SetDefault("storage.mongodb.collection", storage.DefaultMongoCollection)
	v.SetDefault("storage.redis.prefix", storage.DefaultRedisPrefix)
}

func getMysqlDSN(v *viper.Viper) string {
	if dsn := v.GetString("storage.mysql.dsn"); dsn != "" {
		return dsn
	}

	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = v.GetString("storage.mysql.user")
	mysqlDriverConfig.Passwd = v.GetString("storage.mysql.password")
	mysqlDriverConfig.Addr = v.GetString("storage.mysql.addr")
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = v.GetString("storage.mysql.db")

	return mysqlDriverConfig.FormatDSN()
}

func getConfig(ctx context.Context, v *viper.Viper) (*AppConfig, error) {
	apiSource, err := currency.ConvertToProviderFromString(v.GetString("api_source"))
	if err != nil {
		return nil, &currency.ConfigurationError{Field: "api_source", Message: err.Error()}
	}

	storageProvider, err := storage.ConvertToProviderFromString(v.GetString("storage.driver"))
	if err != nil {
		return nil, &currency.ConfigurationError{Field: "storage.driver", Message: err.Error()}
	}

	storageBaseConfig := storage.BaseConfig{
		Ctx:     ctx,
		Migrate: v.GetBool("storage.migrate"),
	}

	return &AppConfig{
		Settings: currency.Settings{
			APISource:    apiSource,
			UseHTTPS:     v.GetBool("use_https"),
			EnableCache:  v.GetBool("enable_cache"),
			CacheMinutes: v.GetInt("cache_minutes"),
			EnableLog:    v.GetBool("enable_log"),
			OpenExchange: currency.OpenExchangeSettings{
				AppID:       v.GetString("openexchange.app_id"),
				UseRealBase: v.GetBool("openexchange.use_real_base"),
				Host:        v.GetString("openexchange.host"),
			},
			Yahoo: currency.YahooSettings{
				Currencies: v.GetStringSlice("yahoo.currencies"),
				Host:       v.GetString("yahoo.host"),
			},
		},
		Timeout: v.GetDuration("http.timeout"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Storage: storageProvider,
		StorageConfig: StorageConfig{
			storage.Memory: storage.MemoryConfig{BaseConfig: storageBaseConfig},
			storage.MySQL: storage.MySQLConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: getMysqlDSN(v),
				TableName:        v.GetString("storage.mysql.table"),
			},
			storage.MongoDB: storage.MongoDBConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: v.GetString("storage.mongodb.uri"),
				Database:         v.GetString("storage.mongodb.database"),
				Collection:       v.GetString("storage.mongodb.collection"),
			},
			storage.Redis: storage.RedisConfig{
				BaseConfig: storageBaseConfig,
				Addr:       v.GetString("storage.redis.addr"),
				Password:   v.GetString("storage.redis.password"),
				DB:         v.GetInt("storage.redis.db"),
				Prefix:     v.GetString("storage.redis.prefix"),
			},
		},
	}, nil
}
