package models

import "time"

// Lot is one inbound shipment of dyed fabric from a dyeing house. It is the
// aggregate root: items live inside the lot document and are replaced with it
// on every save.
type Lot struct {
	ID         int64     `json:"id" bson:"_id,omitempty" db:"id"`
	LotNo      string    `json:"lot_no" bson:"lot_no" db:"lot_no"`
	ChallanNo  string    `json:"challan_no" bson:"challan_no" db:"challan_no"`
	PartyID    *int64    `json:"party_id,omitempty" bson:"party_id,omitempty" db:"party_id"`
	InwardDate time.Time `json:"inward_date" bson:"inward_date" db:"inward_date"`
	Images     []string  `json:"images,omitempty" bson:"images,omitempty" db:"-"`
	Items      []LotItem `json:"items" bson:"items" db:"-"`

	CreatedBy    int64      `json:"created_by" bson:"created_by" db:"created_by"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" db:"updated_at"`
	PdfCreatedAt *time.Time `json:"pdf_created_at,omitempty" bson:"pdf_created_at,omitempty" db:"pdf_created_at"`

	// Nested objects for responses (denormalized)
	Party         *Party   `json:"party,omitempty" bson:"-" db:"-"`
	CreatedByUser *AppUser `json:"created_by_user,omitempty" bson:"-" db:"-"`
}

// Item returns a pointer into Items by item id, or nil.
func (l *Lot) Item(itemID string) *LotItem {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			return &l.Items[i]
		}
	}
	return nil
}
