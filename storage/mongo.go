package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/malusev998/currency-converter"
)

const (
	DefaultMongoDatabase   = "cconverter"
	DefaultMongoCollection = "currency_rates"
)

type (
	mongoStorage struct {
		client     *mongo.Client
		collection *mongo.Collection
		now        func() time.Time
	}

	mongoDocument struct {
		Key       string             `bson:"_id"`
		Base      string             `bson:"base"`
		Timestamp int64              `bson:"timestamp"`
		Rates     map[string]float64 `bson:"rates"`
		ExpiresAt time.Time          `bson:"expiresAt"`
	}
)

func NewMongoStorage(config MongoDBConfig) (currency.Storage, error) {
	ctx := config.context()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	database := config.Database
	if database == "" {
		database = DefaultMongoDatabase
	}

	collection := config.Collection
	if collection == "" {
		collection = DefaultMongoCollection
	}

	s := mongoStorage{
		client:     client,
		collection: client.Database(database).Collection(collection),
		now:        time.Now,
	}

	if config.Migrate {
		if err := s.Migrate(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return s, nil
}

func (m mongoStorage) filter(key string) bson.M {
	return bson.M{
		"_id":       key,
		"expiresAt": bson.M{"$gt": m.now().UTC()},
	}
}

func (m mongoStorage) Has(ctx context.Context, key string) (bool, error) {
	count, err := m.collection.CountDocuments(ctx, m.filter(key), options.Count().SetLimit(1))
	if err != nil {
		return false, cacheError("has", key, err)
	}

	return count > 0, nil
}

func (m mongoStorage) Get(ctx context.Context, key string) (currency.RateTable, error) {
	var doc mongoDocument

	err := m.collection.FindOne(ctx, m.filter(key)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return currency.RateTable{}, currency.ErrCacheMiss
	}

	if err != nil {
		return currency.RateTable{}, cacheError("get", key, err)
	}

	return currency.RateTable{
		Base:      doc.Base,
		Timestamp: doc.Timestamp,
		Rates:     doc.Rates,
	}, nil
}

func (m mongoStorage) AddIfAbsent(ctx context.Context, key string, table currency.RateTable, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}

	now := m.now().UTC()

	// The TTL monitor runs once a minute, expired documents can still be present.
	_, err := m.collection.DeleteOne(ctx, bson.M{
		"_id":       key,
		"expiresAt": bson.M{"$lte": now},
	})

	if err != nil {
		return false, cacheError("add", key, err)
	}

	_, err = m.collection.InsertOne(ctx, mongoDocument{
		Key:       key,
		Base:      table.Base,
		Timestamp: table.Timestamp,
		Rates:     table.Rates,
		ExpiresAt: expiresAt(now, ttl),
	})

	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}

	if err != nil {
		return false, cacheError("add", key, err)
	}

	return true, nil
}

func (m mongoStorage) Migrate(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})

	return err
}

func (m mongoStorage) Close() error {
	return m.client.Disconnect(context.Background())
}

func (m mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}
