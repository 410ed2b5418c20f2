package repository

import (
	"bingolive/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OptionRepo stores the option pool in MongoDB.
type OptionRepo interface {
	GetAll(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, texts []string) (int, error)
}

type optionRepo struct {
	collection *mongo.Collection
}

func NewOptionRepo(db *mongo.Database) OptionRepo {
	return &optionRepo{
		collection: db.Collection("options"),
	}
}

// GetAll returns every option text in insertion order.
func (r *optionRepo) GetAll(ctx context.Context) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var texts []string
	for cursor.Next(ctx) {
		var opt model.Option
		if err := cursor.Decode(&opt); err != nil {
			return nil, err
		}
		texts = append(texts, opt.Text)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return texts, nil
}

func (r *optionRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// InsertMany adds options, skipping any text already present. Returns the
// number actually inserted.
func (r *optionRepo) InsertMany(ctx context.Context, texts []string) (int, error) {
	inserted := 0
	for _, text := range texts {
		res, err := r.collection.UpdateOne(ctx,
			bson.M{"text": text},
			bson.M{"$setOnInsert": bson.M{"text": text}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return inserted, err
		}
		if res.UpsertedCount > 0 {
			inserted++
		}
	}
	return inserted, nil
}
