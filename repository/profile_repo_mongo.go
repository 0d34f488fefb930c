package repository

import (
	"context"
	"errors"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProfileRepo struct {
	DB *mongo.Client
}

func NewMongoProfileRepo(db *mongo.Client) *MongoProfileRepo {
	return &MongoProfileRepo{DB: db}
}

// SaveProfile upserts the single mill profile document.
func (r *MongoProfileRepo) SaveProfile(profile *models.MillProfile) error {
	ctx := context.Background()
	if profile.ID == 0 {
		profile.ID = 1
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Database(mongoDBName).Collection("mill_profile").
		ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoProfileRepo) GetProfile() (*models.MillProfile, error) {
	ctx := context.Background()
	var p models.MillProfile
	err := r.DB.Database(mongoDBName).Collection("mill_profile").
		FindOne(ctx, bson.M{}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
