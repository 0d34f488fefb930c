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

type MongoPartyRepo struct {
	DB *mongo.Client
}

func NewMongoPartyRepo(db *mongo.Client) *MongoPartyRepo {
	return &MongoPartyRepo{DB: db}
}

func (r *MongoPartyRepo) CreateParty(party *models.Party) error {
	ctx := context.Background()
	if party.ID == 0 {
		party.ID = time.Now().UnixNano()
	}
	if party.CreatedAt.IsZero() {
		party.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Database(mongoDBName).Collection("parties").InsertOne(ctx, party)
	return err
}

func (r *MongoPartyRepo) ListParties() ([]*models.Party, error) {
	ctx := context.Background()
	cur, err := r.DB.Database(mongoDBName).Collection("parties").
		Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Party
	for cur.Next(ctx) {
		var p models.Party
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, nil
}

func (r *MongoPartyRepo) GetParty(id int64) (*models.Party, error) {
	ctx := context.Background()
	var p models.Party
	err := r.DB.Database(mongoDBName).Collection("parties").
		FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
