package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/existflow/flowboard/internal/model"
)

const connectTimeout = 10 * time.Second

// Mongo is a Store backed by a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to MongoDB, verifies the connection, and creates the
// indexes the list queries depend on.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m := &Mongo{client: client, db: client.Database(database)}
	if err := m.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(model.ProjectsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}},
	})
	return err
}

// Close disconnects from the database.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Get(ctx context.Context, collection, id string, out any) error {
	err := m.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (m *Mongo) Set(ctx context.Context, collection, id string, doc any) error {
	_, err := m.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc,
		options.Replace().SetUpsert(true))
	return err
}

func (m *Mongo) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := m.db.Collection(collection).UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Query(ctx context.Context, collection, field string, value any, orderBy string, out any) error {
	cur, err := m.db.Collection(collection).Find(ctx, bson.M{field: value},
		options.Find().SetSort(bson.D{{Key: orderBy, Value: -1}}))
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}
