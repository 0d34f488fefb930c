package models

import "time"

// Party is a dyeing house the mill sends grey fabric to and receives dyed
// lots back from.
type Party struct {
	ID        int64     `json:"id" bson:"_id,omitempty" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	GSTIN     *string   `json:"gstin,omitempty" bson:"gstin,omitempty" db:"gstin"`
	City      string    `json:"city,omitempty" bson:"city,omitempty" db:"city"`
	Mobile    string    `json:"mobile,omitempty" bson:"mobile,omitempty" db:"mobile"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
