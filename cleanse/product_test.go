package cleanse

import (
	"testing"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCleanser_DerivesKeysFromBusinessKey(t *testing.T) {
	cleanser := NewProductCleanser(testLogger())

	cleansed, rejections := cleanser.Cleanse([]models.RawRecord{
		rawRecord(map[string]*string{
			"prd_id":       sp("210"),
			"prd_key":      sp("AC-HE-HL-U509-R"),
			"prd_nm":       sp("Sport-100 Helmet- Red"),
			"prd_cost":     sp("13"),
			"prd_line":     sp("S"),
			"prd_start_dt": sp("2011-07-01"),
		}),
	})
	require.Len(t, cleansed, 1)
	require.Empty(t, rejections)

	product := cleansed[0]
	assert.Equal(t, "AC_HE", product.CategoryID)
	assert.Equal(t, "HL-U509-R", product.SalesKey)
	assert.Equal(t, "Other Sales", product.Line)
}

func TestProductCleanser_LineCodeMapping(t *testing.T) {
	cleanser := NewProductCleanser(testLogger())

	cases := map[string]struct {
		raw      *string
		expected string
	}{
		"mountain":     {sp("M"), "Mountain"},
		"road":         {sp("R"), "Road"},
		"other_sales":  {sp("S"), "Other Sales"},
		"touring":      {sp("T"), "Touring"},
		"unrecognized": {sp("Q"), "n/a"},
		"null":         {nil, "n/a"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cleansed, _ := cleanser.Cleanse([]models.RawRecord{
				rawRecord(map[string]*string{
					"prd_id":   sp("1"),
					"prd_key":  sp("BK-R93R-62"),
					"prd_line": tc.raw,
				}),
			})
			require.Len(t, cleansed, 1)
			assert.Equal(t, tc.expected, cleansed[0].Line)
		})
	}
}

func TestProductCleanser_CostDefaults(t *testing.T) {
	cleanser := NewProductCleanser(testLogger())

	records := []models.RawRecord{
		rawRecord(map[string]*string{"prd_id": sp("1"), "prd_key": sp("BK-R93R-62"), "prd_cost": nil}),
		rawRecord(map[string]*string{"prd_id": sp("2"), "prd_key": sp("BK-R93R-62"), "prd_cost": sp("-5")}),
		rawRecord(map[string]*string{"prd_id": sp("3"), "prd_key": sp("BK-R93R-62"), "prd_cost": sp("1251.98")}),
	}

	cleansed, _ := cleanser.Cleanse(records)
	require.Len(t, cleansed, 3)

	// NULL и отрицательная стоимость приводятся к нулю
	assert.True(t, cleansed[0].Cost.IsZero())
	assert.True(t, cleansed[1].Cost.IsZero())
	assert.Equal(t, "1251.98", cleansed[2].Cost.String())
}

func TestProductCleanser_RejectsShortBusinessKey(t *testing.T) {
	cleanser := NewProductCleanser(testLogger())

	records := []models.RawRecord{
		rawRecord(map[string]*string{"prd_id": sp("1"), "prd_key": nil}),
		rawRecord(map[string]*string{"prd_id": sp("2"), "prd_key": sp("AB-12")}),
	}

	cleansed, rejections := cleanser.Cleanse(records)
	assert.Empty(t, cleansed)
	require.Len(t, rejections, 2)
	for _, rejection := range rejections {
		assert.Equal(t, models.RejectMissingBusinessKey, rejection.Reason)
	}
}
