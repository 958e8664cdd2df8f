// Package warranty derives the lifecycle label of an asset's warranty
// coverage. The label is never persisted; it is recomputed from the date
// windows and "now" on every read.
package warranty

import (
	"time"

	"github.com/ikarolaborda/open-asm-sub000/internal/model"
)

// Status is the derived warranty lifecycle label.
type Status string

const (
	StatusNoWarranty   Status = "no_warranty"
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// ExpiringSoonWindow is the number of days before expiry during which a
// warranty is reported as expiring soon.
const ExpiringSoonWindow = 30

// DeriveStatus returns the lifecycle label for an asset's warranties at the
// given instant. The current warranty is the active record that started on
// or before now with the latest end date; a lapsed current warranty reports
// expired rather than no_warranty, so callers can tell "coverage ran out"
// from "never covered". This asset-level derivation is the authoritative
// one; the per-record predicates below are the narrower derivation used only
// for list filtering.
//
// The function is total: any input, including an empty or nil slice, yields
// a valid status.
func DeriveStatus(warranties []model.Warranty, now time.Time) Status {
	current := currentWarranty(warranties, now)
	if current == nil {
		return StatusNoWarranty
	}

	daysUntilExpiry := int(current.EndDate.Sub(now).Hours() / 24)
	if current.EndDate.Before(now) {
		daysUntilExpiry = -1
	}
	switch {
	case daysUntilExpiry < 0:
		return StatusExpired
	case daysUntilExpiry <= ExpiringSoonWindow:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}

// currentWarranty picks the active record that has already started and ends
// last. Records that have not started yet never qualify.
func currentWarranty(warranties []model.Warranty, now time.Time) *model.Warranty {
	var current *model.Warranty
	for i := range warranties {
		w := &warranties[i]
		if !w.IsActive || w.StartDate.After(now) {
			continue
		}
		if current == nil || w.EndDate.After(current.EndDate) {
			current = w
		}
	}
	return current
}

// IsExpired reports whether a single warranty record's window has lapsed,
// independent of any other record on the asset.
func IsExpired(w *model.Warranty, now time.Time) bool {
	if w == nil {
		return false
	}
	return w.EndDate.Before(now)
}

// IsExpiringSoon reports whether a single warranty record expires within the
// expiring-soon window, independent of any other record on the asset.
func IsExpiringSoon(w *model.Warranty, now time.Time) bool {
	if w == nil {
		return false
	}
	if w.EndDate.Before(now) {
		return false
	}
	return !w.EndDate.After(now.AddDate(0, 0, ExpiringSoonWindow))
}
