package catalog

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("property not found")

type Repository interface {
	LoadAll(ctx context.Context) ([]Property, error)
	Upsert(ctx context.Context, property Property) error
	Delete(ctx context.Context, id string) error
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) LoadAll(ctx context.Context) ([]Property, error) {
	cursor, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Property, 0)
	for cursor.Next(ctx) {
		var p Property
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository) Upsert(ctx context.Context, property Property) error {
	filter := bson.M{"_id": property.ID}
	update := bson.M{"$set": property}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadTable reads the catalog once at startup. An empty collection is
// not an error: the built-in listings keep the assistant stocked until
// the seeder has run.
func LoadTable(ctx context.Context, repo Repository) (*Table, error) {
	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	items, err := repo.LoadAll(loadCtx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items = Defaults()
	}
	return NewTable(items), nil
}
