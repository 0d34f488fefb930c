package models

import (
	"testing"
	"time"
)

func pendingItem() LotItem {
	return LotItem{
		ID:       "it1",
		Material: "Cotton Lycra",
		Color:    "Red",
		Diameter: "30",
		Pieces:   10,
		Quantity: 50,
		Unit:     "Kg",
		Status:   StatusPending,
	}
}

func checkInvariants(t *testing.T, it *LotItem) {
	t.Helper()
	if it.RejectionCause != "" && it.Status != StatusRejected {
		t.Fatalf("rejection cause %q present while status is %q", it.RejectionCause, it.Status)
	}
	if it.ReturnStatus != "" && it.RejectionCause != CauseColor {
		t.Fatalf("return status %q present while rejection cause is %q", it.ReturnStatus, it.RejectionCause)
	}
	if it.Quantity < 0 {
		t.Fatalf("negative quantity %v", it.Quantity)
	}
}

func TestRejectColorOpensReturnFlow(t *testing.T) {
	it := pendingItem()
	it.Reject(CauseColor)

	if it.Status != StatusRejected || it.RejectionCause != CauseColor {
		t.Fatalf("expected Rejected/Color, got %s/%s", it.Status, it.RejectionCause)
	}
	if it.ReturnStatus != ReturnAwaiting {
		t.Fatalf("expected return status %q, got %q", ReturnAwaiting, it.ReturnStatus)
	}
	checkInvariants(t, &it)
}

func TestRejectWeightHasNoReturnFlow(t *testing.T) {
	it := pendingItem()
	it.Reject(CauseWeight)

	if it.ReturnStatus != "" {
		t.Fatalf("weight rejection must not set return status, got %q", it.ReturnStatus)
	}
	checkInvariants(t, &it)
}

func TestApproveClearsRejection(t *testing.T) {
	it := pendingItem()
	it.Reject(CauseColor)

	gsm := 180.0
	it.Approve(&gsm)

	if it.Status != StatusApproved {
		t.Fatalf("expected Approved, got %s", it.Status)
	}
	if it.RejectionCause != "" || it.ReturnStatus != "" {
		t.Fatalf("approve must clear cause and return status")
	}
	if it.GSM == nil || *it.GSM != 180.0 {
		t.Fatalf("expected gsm 180 recorded")
	}
	checkInvariants(t, &it)
}

func TestApproveIsIdempotent(t *testing.T) {
	it := pendingItem()
	gsm := 175.0
	it.Approve(&gsm)
	it.Approve(nil)

	if it.Status != StatusApproved {
		t.Fatalf("expected Approved, got %s", it.Status)
	}
	if it.GSM == nil || *it.GSM != 175.0 {
		t.Fatalf("second approve without gsm must keep the recorded value")
	}
	if len(it.History) != 0 {
		t.Fatalf("approve must never touch history, got %d entries", len(it.History))
	}
}

func TestResetVoidsReturnDetailsButKeepsHistory(t *testing.T) {
	it := pendingItem()
	it.Reject(CauseWeight)
	it.Reweigh(48, time.Now())
	it.Reject(CauseColor)
	it.MarkReturned("RET-7", time.Now(), []string{"img1"})

	it.ResetToPending()

	if it.Status != StatusPending || it.RejectionCause != "" || it.ReturnStatus != "" {
		t.Fatalf("expected clean Pending state, got %s/%s/%s", it.Status, it.RejectionCause, it.ReturnStatus)
	}
	if it.ReturnChallanNo != "" || it.ReturnDate != nil || it.ReturnImages != nil {
		t.Fatalf("reset must void return challan details")
	}
	if len(it.History) != 1 {
		t.Fatalf("reset must keep weigh history, got %d entries", len(it.History))
	}
	checkInvariants(t, &it)
}

func TestReweighAppendsExactlyOneEntry(t *testing.T) {
	it := pendingItem()
	it.Reject(CauseWeight)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	it.Reweigh(47.5, now)

	if it.Status != StatusPending || it.RejectionCause != "" || it.ReturnStatus != "" {
		t.Fatalf("expected reinstated Pending item, got %s/%s/%s", it.Status, it.RejectionCause, it.ReturnStatus)
	}
	if it.Quantity != 47.5 {
		t.Fatalf("expected quantity 47.5, got %v", it.Quantity)
	}
	if len(it.History) != 1 {
		t.Fatalf("expected exactly one history entry, got %d", len(it.History))
	}
	h := it.History[0]
	if h.Action != "Reweighted" || h.OldWeight != 50 || h.NewWeight != 47.5 || !h.Timestamp.Equal(now) {
		t.Fatalf("unexpected history entry %+v", h)
	}
	checkInvariants(t, &it)
}

func TestRereceiveChangesColorWithoutHistory(t *testing.T) {
	it := pendingItem()
	it.Reject(CauseColor)
	it.MarkReturned("RET-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil)

	w := 48.0
	it.Rereceive("Maroon", "DY-99", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), nil, &w)

	if it.Status != StatusPending || it.RejectionCause != "" || it.ReturnStatus != "" {
		t.Fatalf("expected Pending after rereceive, got %s/%s/%s", it.Status, it.RejectionCause, it.ReturnStatus)
	}
	if it.Color != "Maroon" || it.Quantity != 48 {
		t.Fatalf("expected Maroon/48, got %s/%v", it.Color, it.Quantity)
	}
	if len(it.History) != 0 {
		t.Fatalf("rereceive must not write weigh history")
	}
	if it.PreviousColor != "Red" || it.PreviousQuantity == nil || *it.PreviousQuantity != 50 {
		t.Fatalf("rereceive must snapshot the pre-rereceive color and quantity")
	}
	if it.RereceiveChallanNo != "DY-99" {
		t.Fatalf("expected rereceive challan recorded")
	}
	checkInvariants(t, &it)
}

// Random transition sequences must never produce an illegal field
// combination.
func TestTransitionSequencesKeepInvariants(t *testing.T) {
	causes := []string{CauseColor, CauseWeight}
	for seed := 0; seed < 200; seed++ {
		it := pendingItem()
		n := seed
		histLen := 0
		for step := 0; step < 12; step++ {
			n = n*1103515245 + 12345
			switch (n >> 8) % 5 {
			case 0:
				it.Approve(nil)
			case 1:
				it.Reject(causes[(n>>16)%2])
			case 2:
				it.ResetToPending()
			case 3:
				if it.IsColorRejected() {
					it.MarkReturned("RET", time.Now(), nil)
				}
			case 4:
				if it.IsWeightRejected() {
					it.Reweigh(float64((n>>16)%100), time.Now())
					histLen++
				}
			}
			checkInvariants(t, &it)
			if len(it.History) != histLen {
				t.Fatalf("seed %d step %d: history length %d, expected %d (only reweigh may append)",
					seed, step, len(it.History), histLen)
			}
		}
	}
}
