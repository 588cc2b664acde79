package repository

import (
	"context"
	"time"

	"prepmaster/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// currentUserKey is the fixed storage identifier for the single active user
// record. Login overwrites it, logout removes it.
const currentUserKey = "current_user"

type currentUserDoc struct {
	Key       string      `bson:"_id"`
	User      models.User `bson:"user"`
	UpdatedAt time.Time   `bson:"updated_at"`
}

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

// SaveCurrentUser overwrites the current-user record.
func (r *UserRepository) SaveCurrentUser(ctx context.Context, user *models.User) error {
	doc := currentUserDoc{
		Key:       currentUserKey,
		User:      *user,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": currentUserKey}, doc, opts)
	return err
}

// GetCurrentUser reads the current-user record. mongo.ErrNoDocuments when no
// user is logged in.
func (r *UserRepository) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var doc currentUserDoc
	if err := r.Col.FindOne(ctx, bson.M{"_id": currentUserKey}).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc.User, nil
}

// DeleteCurrentUser removes the record on logout. Deleting an absent record
// is not an error.
func (r *UserRepository) DeleteCurrentUser(ctx context.Context) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": currentUserKey})
	return err
}
