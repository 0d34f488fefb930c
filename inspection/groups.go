package inspection

import (
	"strings"

	"github.com/atanum62/shyama-erp-sub000/models"
)

// State buckets for grouping. Color-rejected items are split by return
// status instead of inspection status, because bulk actions on "awaiting
// return" and "returned" batches of the same color must stay separate.
const (
	BucketAwaitingReturn = "AwaitingReturn"
	BucketReturned       = "Returned"
)

// ColorGroup is one (color, sub-state) batch inside a lot, the unit of bulk
// approve/reject/reset.
type ColorGroup struct {
	Key            string           `json:"key"`
	Color          string           `json:"color"`
	Bucket         string           `json:"bucket"`
	RejectionCause string           `json:"rejection_cause,omitempty"`
	Items          []models.LotItem `json:"items"`
	TotalQuantity  float64          `json:"total_quantity"`
	TotalPieces    int              `json:"total_pieces"`
}

func stateBucket(it *models.LotItem) string {
	if it.IsColorRejected() {
		if it.ReturnStatus == models.ReturnReturned {
			return BucketReturned
		}
		return BucketAwaitingReturn
	}
	return it.Status
}

// GroupKey derives the group key for an item, unique within its lot. Colors
// are matched case-insensitively; the declared spelling is kept for display.
func GroupKey(it *models.LotItem) string {
	return strings.ToLower(strings.TrimSpace(it.Color)) + "|" + stateBucket(it)
}

// GroupLotItems folds a lot's items into color groups, in order of first
// appearance.
func GroupLotItems(lot *models.Lot) []ColorGroup {
	var groups []ColorGroup
	index := make(map[string]int)

	for i := range lot.Items {
		it := &lot.Items[i]
		key := GroupKey(it)
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, ColorGroup{
				Key:            key,
				Color:          it.Color,
				Bucket:         stateBucket(it),
				RejectionCause: it.RejectionCause,
			})
		}
		g := &groups[gi]
		g.Items = append(g.Items, *it)
		g.TotalQuantity += it.Quantity
		g.TotalPieces += it.Pieces
	}

	return groups
}

// groupMembers returns pointers to every item of the lot whose group key is
// in keys. The union is computed once so a multi-group bulk action becomes a
// single lot write.
func groupMembers(lot *models.Lot, keys []string) []*models.LotItem {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	var members []*models.LotItem
	for i := range lot.Items {
		if want[GroupKey(&lot.Items[i])] {
			members = append(members, &lot.Items[i])
		}
	}
	return members
}
