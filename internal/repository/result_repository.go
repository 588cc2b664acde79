package repository

import (
	"context"

	"prepmaster/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("results")}
}

// Create appends a completed result to the history.
func (r *ResultRepository) Create(ctx context.Context, result *models.TestResult) error {
	_, err := r.Col.InsertOne(ctx, result)
	return err
}

// FindByUser returns the user's result history, newest first.
func (r *ResultRepository) FindByUser(ctx context.Context, userID string) ([]models.TestResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.TestResult
	for cur.Next(ctx) {
		var res models.TestResult
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// FindByID returns a single stored result.
func (r *ResultRepository) FindByID(ctx context.Context, id string) (*models.TestResult, error) {
	var result models.TestResult
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
