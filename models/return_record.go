package models

import "time"

// ReturnRecord is the permanent snapshot of one completed return/rereceive
// cycle. It is created from the item's pre-rereceive state when an operator
// explicitly archives the cycle, and is never mutated afterwards (deletion
// only).
type ReturnRecord struct {
	ID     int64  `json:"id" bson:"_id,omitempty" db:"id"`
	LotID  int64  `json:"lot_id" bson:"lot_id" db:"lot_id"`
	ItemID string `json:"item_id" bson:"item_id" db:"item_id"`

	PartyID   *int64 `json:"party_id,omitempty" bson:"party_id,omitempty" db:"party_id"`
	PartyName string `json:"party_name" bson:"party_name" db:"party_name"`

	Material string `json:"material" bson:"material" db:"material"`
	Diameter string `json:"diameter" bson:"diameter" db:"diameter"`
	Pieces   int    `json:"pieces" bson:"pieces" db:"pieces"`

	OriginalColor    string  `json:"original_color" bson:"original_color" db:"original_color"`
	NewColor         string  `json:"new_color" bson:"new_color" db:"new_color"`
	OriginalQuantity float64 `json:"original_quantity" bson:"original_quantity" db:"original_quantity"`
	ReceivedQuantity float64 `json:"received_quantity" bson:"received_quantity" db:"received_quantity"`

	ReturnChallanNo    string     `json:"return_challan_no" bson:"return_challan_no" db:"return_challan_no"`
	ReturnDate         *time.Time `json:"return_date,omitempty" bson:"return_date,omitempty" db:"return_date"`
	RereceiveChallanNo string     `json:"rereceive_challan_no" bson:"rereceive_challan_no" db:"rereceive_challan_no"`
	RereceiveDate      *time.Time `json:"rereceive_date,omitempty" bson:"rereceive_date,omitempty" db:"rereceive_date"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
