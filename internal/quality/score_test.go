package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ikarolaborda/open-asm-sub000/internal/model"
)

func uintPtr(v uint) *uint           { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func fullAsset() *model.Asset {
	now := time.Now()
	return &model.Asset{
		Name:              "Core switch",
		SerialNumber:      "SN-001",
		CustomerID:        1,
		TypeID:            uintPtr(2),
		AssetTag:          "TAG-42",
		ModelNumber:       "MX-480",
		PartNumber:        "PN-9",
		Description:       "rack 4, row 2",
		PurchaseDate:      timePtr(now),
		InstallDate:       timePtr(now),
		WarrantyStartDate: timePtr(now),
		WarrantyEndDate:   timePtr(now.AddDate(1, 0, 0)),
		PurchasePrice:     1299.99,
		LocationID:        uintPtr(3),
		ManufacturerID:    uintPtr(4),
		ProductID:         uintPtr(5),
		StatusID:          uintPtr(6),
	}
}

func TestComputeScoreFullRecord(t *testing.T) {
	assert.Equal(t, 100, ComputeScore(fullAsset()))
}

func TestComputeScoreEmptyRecord(t *testing.T) {
	assert.Equal(t, 0, ComputeScore(&model.Asset{}))
}

func TestComputeScoreNilAsset(t *testing.T) {
	assert.Equal(t, 0, ComputeScore(nil))
}

func TestComputeScoreRequiredFieldsOnly(t *testing.T) {
	a := &model.Asset{
		Name:         "Switch",
		SerialNumber: "SN-001",
		CustomerID:   1,
		TypeID:       uintPtr(2),
	}
	assert.Equal(t, 70, ComputeScore(a))
}

func TestComputeScoreRoundsHalfUp(t *testing.T) {
	// Three of four required fields: 3 * 17.5 = 52.5, rounds to 53.
	a := &model.Asset{
		Name:         "Switch",
		SerialNumber: "SN-001",
		CustomerID:   1,
	}
	assert.Equal(t, 53, ComputeScore(a))
}

func TestComputeScoreSingleOptionalField(t *testing.T) {
	// One optional field: 30/13 ≈ 2.31, rounds to 2.
	a := &model.Asset{AssetTag: "TAG-1"}
	assert.Equal(t, 2, ComputeScore(a))
}

func TestComputeScoreZeroValuesCountAsAbsent(t *testing.T) {
	// A free asset scores the same as one with no recorded price.
	freeAsset := fullAsset()
	freeAsset.PurchasePrice = 0
	assert.Less(t, ComputeScore(freeAsset), ComputeScore(fullAsset()))

	zeroRef := fullAsset()
	zeroRef.TypeID = uintPtr(0)
	assert.Less(t, ComputeScore(zeroRef), 100)

	zeroDate := fullAsset()
	zeroDate.PurchaseDate = timePtr(time.Time{})
	assert.Less(t, ComputeScore(zeroDate), 100)
}

func TestComputeScoreIsMonotonic(t *testing.T) {
	a := &model.Asset{}
	prev := ComputeScore(a)

	a.Name = "Switch"
	cur := ComputeScore(a)
	assert.Greater(t, cur, prev)
	prev = cur

	a.SerialNumber = "SN-001"
	cur = ComputeScore(a)
	assert.Greater(t, cur, prev)
	prev = cur

	a.Description = "rack 4"
	cur = ComputeScore(a)
	assert.Greater(t, cur, prev)
}
