package cleanse

import (
	"testing"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCleanser_NormalizesFields(t *testing.T) {
	cleanser := NewCustomerCleanser(testLogger())

	records := []models.RawRecord{
		rawRecord(map[string]*string{
			"cst_id":             sp("11000"),
			"cst_key":            sp("AW00011000"),
			"cst_firstname":      sp("  Jon  "),
			"cst_lastname":       sp("Yang "),
			"cst_marital_status": sp("M"),
			"cst_gndr":           sp("M"),
			"cst_create_date":    sp("2025-10-06"),
		}),
	}

	cleansed, rejections := cleanser.Cleanse(records)
	require.Len(t, cleansed, 1)
	require.Empty(t, rejections)

	customer := cleansed[0]
	assert.Equal(t, 11000, customer.ID)
	assert.Equal(t, "AW00011000", customer.Key)
	assert.Equal(t, "Jon", customer.FirstName)
	assert.Equal(t, "Yang", customer.LastName)
	assert.Equal(t, "Married", customer.MaritalStatus)
	assert.Equal(t, "Male", customer.Gender)
	require.NotNil(t, customer.CreateDate)
	assert.Equal(t, "2025-10-06", customer.CreateDate.Format("2006-01-02"))
}

func TestCustomerCleanser_GenderDomain(t *testing.T) {
	cleanser := NewCustomerCleanser(testLogger())

	// Пустое или нераспознанное значение пола стандартизируется в n/a
	cases := map[string]struct {
		raw      *string
		expected string
	}{
		"male":         {sp("M"), "Male"},
		"female":       {sp("F"), "Female"},
		"lowercase":    {sp("  f "), "Female"},
		"empty":        {sp(""), "n/a"},
		"unrecognized": {sp("X"), "n/a"},
		"null":         {nil, "n/a"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			records := []models.RawRecord{
				rawRecord(map[string]*string{
					"cst_id":   sp("1"),
					"cst_key":  sp("AW1"),
					"cst_gndr": tc.raw,
				}),
			}

			cleansed, _ := cleanser.Cleanse(records)
			require.Len(t, cleansed, 1)
			assert.Equal(t, tc.expected, cleansed[0].Gender)
		})
	}
}

func TestCustomerCleanser_RejectsMissingBusinessKey(t *testing.T) {
	cleanser := NewCustomerCleanser(testLogger())

	records := []models.RawRecord{
		rawRecord(map[string]*string{"cst_id": nil, "cst_key": sp("AW-orphan")}),
		rawRecord(map[string]*string{"cst_id": sp("abc"), "cst_key": sp("AW-garbage")}),
		rawRecord(map[string]*string{"cst_id": sp("42"), "cst_key": sp("AW42")}),
	}

	cleansed, rejections := cleanser.Cleanse(records)
	require.Len(t, cleansed, 1)
	require.Len(t, rejections, 2)

	for _, rejection := range rejections {
		assert.Equal(t, models.RejectMissingBusinessKey, rejection.Reason)
		assert.Equal(t, models.TableCrmCustInfo, rejection.Table)
	}
}

func TestCustomerCleanser_MalformedCreateDateIsNulled(t *testing.T) {
	cleanser := NewCustomerCleanser(testLogger())

	records := []models.RawRecord{
		rawRecord(map[string]*string{
			"cst_id":          sp("7"),
			"cst_key":         sp("AW7"),
			"cst_create_date": sp("not-a-date"),
		}),
	}

	// Некорректная дата — восстановимый дефект: поле обнуляется, запись остается
	cleansed, rejections := cleanser.Cleanse(records)
	require.Len(t, cleansed, 1)
	require.Empty(t, rejections)
	assert.Nil(t, cleansed[0].CreateDate)
}
