// Package quality computes the derived data-quality score of an asset
// record. The score is a pure function of the asset's fields: it never
// errors and degrades to zero on an empty record.
package quality

import (
	"math"
	"time"

	"github.com/ikarolaborda/open-asm-sub000/internal/model"
)

const (
	// The four required fields share 70 points evenly.
	requiredWeight = 70.0 / 4.0
	// The thirteen optional fields share the remaining 30 points evenly.
	optionalWeight = 30.0 / 13.0
)

// ComputeScore returns the completeness score of an asset in [0, 100].
//
// A field counts as present only when it is non-nil and non-empty. Numeric
// zero counts as absent, so a purchase price of 0 earns no points even when
// the asset was genuinely free; this mirrors the registry's historical
// behavior and is relied on by existing consumers.
func ComputeScore(a *model.Asset) int {
	if a == nil {
		return 0
	}

	score := 0.0

	// Required group: name, serial number, customer, type.
	for _, present := range []bool{
		a.Name != "",
		a.SerialNumber != "",
		a.CustomerID != 0,
		refPresent(a.TypeID),
	} {
		if present {
			score += requiredWeight
		}
	}

	// Optional group.
	for _, present := range []bool{
		a.AssetTag != "",
		a.ModelNumber != "",
		a.PartNumber != "",
		a.Description != "",
		datePresent(a.PurchaseDate),
		datePresent(a.InstallDate),
		datePresent(a.WarrantyStartDate),
		datePresent(a.WarrantyEndDate),
		a.PurchasePrice != 0,
		refPresent(a.LocationID),
		refPresent(a.ManufacturerID),
		refPresent(a.ProductID),
		refPresent(a.StatusID),
	} {
		if present {
			score += optionalWeight
		}
	}

	rounded := int(math.Floor(score + 0.5)) // round half up
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func refPresent(id *uint) bool {
	return id != nil && *id != 0
}

func datePresent(t *time.Time) bool {
	return t != nil && !t.IsZero()
}
