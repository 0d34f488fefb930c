package models

import "time"

// Inspection status of a lot item.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Rejection cause, meaningful only while Status is Rejected.
const (
	CauseColor  = "Color"
	CauseWeight = "Weight"
)

// Return status, meaningful only while RejectionCause is Color.
const (
	ReturnAwaiting = "Pending"
	ReturnReturned = "Returned"
)

// WeighEntry is one append-only audit record of a weight correction.
type WeighEntry struct {
	Action    string    `json:"action" bson:"action" db:"action"`
	OldWeight float64   `json:"old_weight" bson:"old_weight" db:"old_weight"`
	NewWeight float64   `json:"new_weight" bson:"new_weight" db:"new_weight"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp" db:"created_at"`
}

// LotItem is one fabric roll/batch inside a lot, the unit of inspection.
//
// Status, RejectionCause and ReturnStatus are persisted as flat fields so the
// document round-trips bson/json/sql, but every write goes through the
// transition methods below, which keep the combination legal:
// RejectionCause is set only while Rejected, ReturnStatus only while
// color-rejected.
type LotItem struct {
	ID         string  `json:"id" bson:"id" db:"id"`
	MaterialID *int64  `json:"material_id,omitempty" bson:"material_id,omitempty" db:"material_id"`
	Material   string  `json:"material" bson:"material" db:"material"`
	Color      string  `json:"color" bson:"color" db:"color"`
	Diameter   string  `json:"diameter" bson:"diameter" db:"diameter"`
	Pieces     int     `json:"pieces" bson:"pieces" db:"pieces"`
	Quantity   float64 `json:"quantity" bson:"quantity" db:"quantity"`
	Unit       string  `json:"unit" bson:"unit" db:"unit"`

	Status         string `json:"status" bson:"status" db:"status"`
	RejectionCause string `json:"rejection_cause,omitempty" bson:"rejection_cause,omitempty" db:"rejection_cause"`
	ReturnStatus   string `json:"return_status,omitempty" bson:"return_status,omitempty" db:"return_status"`

	// Return dispatch details, editable until the redyed fabric is received.
	ReturnChallanNo string     `json:"return_challan_no,omitempty" bson:"return_challan_no,omitempty" db:"return_challan_no"`
	ReturnDate      *time.Time `json:"return_date,omitempty" bson:"return_date,omitempty" db:"return_date"`
	ReturnImages    []string   `json:"return_images,omitempty" bson:"return_images,omitempty" db:"-"`

	// Rereceive details, kept on the item for traceability.
	RereceiveChallanNo string     `json:"rereceive_challan_no,omitempty" bson:"rereceive_challan_no,omitempty" db:"rereceive_challan_no"`
	RereceiveDate      *time.Time `json:"rereceive_date,omitempty" bson:"rereceive_date,omitempty" db:"rereceive_date"`
	RereceiveImages    []string   `json:"rereceive_images,omitempty" bson:"rereceive_images,omitempty" db:"-"`

	// Pre-rereceive snapshot, kept so a completed cycle can still be
	// archived into a ReturnRecord after the item has moved on.
	PreviousColor    string   `json:"previous_color,omitempty" bson:"previous_color,omitempty" db:"previous_color"`
	PreviousQuantity *float64 `json:"previous_quantity,omitempty" bson:"previous_quantity,omitempty" db:"previous_quantity"`

	// GSM is recorded at approval time only.
	GSM *float64 `json:"gsm,omitempty" bson:"gsm,omitempty" db:"gsm"`

	History []WeighEntry `json:"history,omitempty" bson:"history,omitempty" db:"-"`
}

// Approve moves the item to Approved from any state and records gsm if
// supplied. Approving an already-approved item is a no-op apart from the gsm
// overwrite.
func (it *LotItem) Approve(gsm *float64) {
	it.Status = StatusApproved
	it.RejectionCause = ""
	it.ReturnStatus = ""
	if gsm != nil {
		it.GSM = gsm
	}
}

// Reject moves the item to Rejected with the given cause. A Color rejection
// opens the return sub-flow by marking the item awaiting physical return.
func (it *LotItem) Reject(cause string) {
	it.Status = StatusRejected
	it.RejectionCause = cause
	if cause == CauseColor {
		it.ReturnStatus = ReturnAwaiting
	} else {
		it.ReturnStatus = ""
	}
}

// ResetToPending moves the item back to Pending from any state. Return and
// rereceive challan details are voided, not archived; History is kept.
func (it *LotItem) ResetToPending() {
	it.Status = StatusPending
	it.clearRejection()
	it.RereceiveChallanNo = ""
	it.RereceiveDate = nil
	it.RereceiveImages = nil
	it.PreviousColor = ""
	it.PreviousQuantity = nil
}

// MarkReturned records the physical dispatch back to the dyeing house.
// Calling it again on an already-returned item is how return details are
// amended, so it overwrites rather than appends.
func (it *LotItem) MarkReturned(challanNo string, date time.Time, images []string) {
	it.ReturnStatus = ReturnReturned
	it.ReturnChallanNo = challanNo
	d := date
	it.ReturnDate = &d
	it.ReturnImages = images
}

// Rereceive accepts the redyed fabric back into inspection: the item goes
// back to Pending under its new color, optionally with a replacement weight.
// No weigh history entry is written here; the fabric physically changed, the
// recorded number was never wrong.
func (it *LotItem) Rereceive(newColor string, challanNo string, date time.Time, images []string, newQuantity *float64) {
	it.Status = StatusPending
	it.RejectionCause = ""
	it.ReturnStatus = ""
	it.PreviousColor = it.Color
	prevQty := it.Quantity
	it.PreviousQuantity = &prevQty
	it.Color = newColor
	if newQuantity != nil {
		it.Quantity = *newQuantity
	}
	it.RereceiveChallanNo = challanNo
	d := date
	it.RereceiveDate = &d
	it.RereceiveImages = images
}

// Reweigh corrects the recorded weight of a weight-rejected item and
// reinstates it to Pending. Exactly one history entry is appended, capturing
// the prior value before the overwrite.
func (it *LotItem) Reweigh(newQuantity float64, now time.Time) {
	it.History = append(it.History, WeighEntry{
		Action:    "Reweighted",
		OldWeight: it.Quantity,
		NewWeight: newQuantity,
		Timestamp: now,
	})
	it.Quantity = newQuantity
	it.Status = StatusPending
	it.RejectionCause = ""
}

func (it *LotItem) clearRejection() {
	it.RejectionCause = ""
	it.ReturnStatus = ""
	it.ReturnChallanNo = ""
	it.ReturnDate = nil
	it.ReturnImages = nil
}

// IsColorRejected reports whether the item sits in the color-return sub-flow.
func (it *LotItem) IsColorRejected() bool {
	return it.Status == StatusRejected && it.RejectionCause == CauseColor
}

// IsWeightRejected reports whether the item is eligible for reweigh.
func (it *LotItem) IsWeightRejected() bool {
	return it.Status == StatusRejected && it.RejectionCause == CauseWeight
}
