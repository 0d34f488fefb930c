package repository

import (
	"context"
	"errors"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const mongoDBName = "shyamaerp"

type MongoLotRepo struct {
	DB *mongo.Client
}

func NewMongoLotRepo(db *mongo.Client) *MongoLotRepo {
	return &MongoLotRepo{DB: db}
}

// CreateLot inserts a lot document with its items embedded. Items are the
// lot's ordered children; they never live in their own collection, so every
// later save replaces the whole document in one write.
func (r *MongoLotRepo) CreateLot(lot *models.Lot) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDBName)

	if lot.ID == 0 {
		lot.ID = time.Now().UnixNano()
	}
	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = time.Now().UTC()
	}
	for i := range lot.Items {
		it := &lot.Items[i]
		if it.ID == "" {
			it.ID = primitive.NewObjectID().Hex()
		}
		if it.Status == "" {
			it.Status = models.StatusPending
		}
	}

	_, err := db.Collection("lots").InsertOne(ctx, lot)
	return err
}

// GetLot fetches lots; single=true fetches one record
func (r *MongoLotRepo) GetLot(filters map[string]interface{}, single bool) ([]*models.Lot, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDBName)

	bsonFilter := bson.M{}
	dateRange := bson.M{}
	for k, v := range filters {
		switch k {
		case "id":
			bsonFilter["_id"] = v
		case "from":
			dateRange["$gte"] = v
		case "to": // exclusive
			dateRange["$lt"] = v
		default:
			bsonFilter[k] = v
		}
	}
	if len(dateRange) > 0 {
		bsonFilter["inward_date"] = dateRange
	}

	if single {
		var lot models.Lot
		err := db.Collection("lots").FindOne(ctx, bsonFilter).Decode(&lot)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return []*models.Lot{}, nil
			}
			return nil, err
		}
		return []*models.Lot{r.populateNested(ctx, db, &lot)}, nil
	}

	cur, err := db.Collection("lots").Find(ctx, bsonFilter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Lot
	for cur.Next(ctx) {
		var lot models.Lot
		if err := cur.Decode(&lot); err != nil {
			return nil, err
		}
		out = append(out, r.populateNested(ctx, db, &lot))
	}
	return out, nil
}

// SaveLot replaces the whole lot document.
func (r *MongoLotRepo) SaveLot(lot *models.Lot) error {
	ctx := context.Background()
	res, err := r.DB.Database(mongoDBName).Collection("lots").
		ReplaceOne(ctx, bson.M{"_id": lot.ID}, lot)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoLotRepo) UpdatePDFCreatedAt(lotID int64, t time.Time) error {
	ctx := context.Background()
	_, err := r.DB.Database(mongoDBName).Collection("lots").
		UpdateOne(ctx, bson.M{"_id": lotID}, bson.M{"$set": bson.M{"pdf_created_at": t}})
	return err
}

func (r *MongoLotRepo) DeleteLot(lotID int64) error {
	ctx := context.Background()
	_, err := r.DB.Database(mongoDBName).Collection("lots").
		DeleteOne(ctx, bson.M{"_id": lotID})
	return err
}

func (r *MongoLotRepo) DeleteLotItem(lotID int64, itemID string) error {
	ctx := context.Background()
	_, err := r.DB.Database(mongoDBName).Collection("lots").
		UpdateOne(ctx, bson.M{"_id": lotID}, bson.M{"$pull": bson.M{"items": bson.M{"id": itemID}}})
	return err
}

// populateNested loads the party and created_by user for responses
func (r *MongoLotRepo) populateNested(ctx context.Context, db *mongo.Database, lot *models.Lot) *models.Lot {
	if lot.PartyID != nil && *lot.PartyID != 0 {
		var p models.Party
		if err := db.Collection("parties").FindOne(ctx, bson.M{"_id": *lot.PartyID}).Decode(&p); err == nil {
			lot.Party = &p
		}
	}
	if lot.CreatedBy != 0 {
		var u models.AppUser
		if err := db.Collection("app_user").FindOne(ctx, bson.M{"_id": lot.CreatedBy}).Decode(&u); err == nil {
			u.Password = ""
			lot.CreatedByUser = &u
		}
	}
	return lot
}
