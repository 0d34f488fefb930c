package inspection

import (
	"strings"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

// Selectable dashboard windows, in days against the inward date.
var dashboardWindows = map[int]bool{7: true, 30: true, 90: true, 180: true, 365: true}

const defaultWindowDays = 30

// DashboardSummary is the inspection roll-up shown on the dashboard.
// Pending figures span all lots; approved and rejected figures are
// restricted to the window.
type DashboardSummary struct {
	WindowDays           int     `json:"window_days"`
	PendingLots          int     `json:"pending_lots"`
	PendingWeight        float64 `json:"pending_weight"`
	ApprovedLots         int     `json:"approved_lots"`
	RejectedColorBatches int     `json:"rejected_color_batches"`
}

// ComputeDashboardStats derives the summary from a slice of lots. Pure and
// stateless; lots with zero items count toward nothing.
func ComputeDashboardStats(lots []*models.Lot, windowDays int, now time.Time) DashboardSummary {
	if !dashboardWindows[windowDays] {
		windowDays = defaultWindowDays
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	summary := DashboardSummary{WindowDays: windowDays}

	for _, lot := range lots {
		if len(lot.Items) == 0 {
			continue
		}
		inWindow := !lot.InwardDate.Before(cutoff)

		hasPending := false
		allApproved := true
		rejectedColors := make(map[string]bool)

		for i := range lot.Items {
			it := &lot.Items[i]
			switch it.Status {
			case models.StatusPending:
				hasPending = true
				allApproved = false
				summary.PendingWeight += it.Quantity
			case models.StatusRejected:
				allApproved = false
				if it.RejectionCause == models.CauseColor {
					rejectedColors[strings.ToLower(strings.TrimSpace(it.Color))] = true
				}
			}
		}

		if hasPending {
			summary.PendingLots++
		}
		if inWindow {
			if allApproved {
				summary.ApprovedLots++
			}
			summary.RejectedColorBatches += len(rejectedColors)
		}
	}

	return summary
}

// DashboardStats reads every lot and computes the summary for the window.
func (s *Service) DashboardStats(windowDays int) (DashboardSummary, error) {
	lots, err := s.Lots.GetLot(nil, false)
	if err != nil {
		return DashboardSummary{}, err
	}
	return ComputeDashboardStats(lots, windowDays, s.now().UTC()), nil
}
