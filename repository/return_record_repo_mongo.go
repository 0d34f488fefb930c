package repository

import (
	"context"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoReturnRecordRepo struct {
	DB *mongo.Client
}

func NewMongoReturnRecordRepo(db *mongo.Client) *MongoReturnRecordRepo {
	return &MongoReturnRecordRepo{DB: db}
}

func (r *MongoReturnRecordRepo) SaveReturnRecord(record *models.ReturnRecord) error {
	ctx := context.Background()
	if record.ID == 0 {
		record.ID = time.Now().UnixNano()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Database(mongoDBName).Collection("return_records").InsertOne(ctx, record)
	return err
}

func (r *MongoReturnRecordRepo) ListReturnRecords() ([]*models.ReturnRecord, error) {
	ctx := context.Background()
	cur, err := r.DB.Database(mongoDBName).Collection("return_records").
		Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.ReturnRecord
	for cur.Next(ctx) {
		var rec models.ReturnRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, nil
}

func (r *MongoReturnRecordRepo) DeleteReturnRecord(id int64) error {
	ctx := context.Background()
	_, err := r.DB.Database(mongoDBName).Collection("return_records").
		DeleteOne(ctx, bson.M{"_id": id})
	return err
}
