package merge

import (
	"testing"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *utils.ETLLogger {
	return utils.NewDiscardLogger()
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestMerger_ErpFillsOnlyMissingCustomerAttributes(t *testing.T) {
	merger := NewMerger(testLogger())
	report := models.NewRunReport("test-run", time.Now())

	data := &models.CleansedData{
		Customers: []models.CleansedCustomer{
			{ID: 11000, Key: "AW00011000", FirstName: "Jon", LastName: "Yang", MaritalStatus: "Married", Gender: "Male"},
			{ID: 11001, Key: "AW00011001", FirstName: "Eugene", LastName: "Huang", MaritalStatus: "Single", Gender: "n/a"},
		},
		CustomerExtras: []models.CleansedCustomerExtra{
			{Key: "AW00011000", Birthdate: date(1971, 10, 6), Gender: "Female"},
			{Key: "AW00011001", Birthdate: date(1976, 5, 10), Gender: "Male"},
		},
		Locations: []models.CleansedLocation{
			{Key: "AW00011000", Country: "Australia"},
		},
	}

	merged := merger.Merge(data, report)
	require.Len(t, merged.Customers, 2)

	first := merged.Customers[0]
	// CRM уже знает пол — значение ERP не перезаписывает его
	assert.Equal(t, "Male", first.Gender)
	require.NotNil(t, first.Birthdate)
	assert.Equal(t, "1971-10-06", first.Birthdate.Format("2006-01-02"))
	assert.Equal(t, "Australia", first.Country)

	second := merged.Customers[1]
	// Пропуск в CRM заполняется из ERP
	assert.Equal(t, "Male", second.Gender)
	assert.Equal(t, "n/a", second.Country)
}

func TestMerger_DuplicateCustomerLatestCreateDateWins(t *testing.T) {
	merger := NewMerger(testLogger())
	report := models.NewRunReport("test-run", time.Now())

	data := &models.CleansedData{
		Customers: []models.CleansedCustomer{
			{ID: 29466, Key: "AW00029466", FirstName: "Old", CreateDate: date(2026, 1, 1), SourceRow: 0},
			{ID: 29466, Key: "AW00029466", FirstName: "New", CreateDate: date(2026, 1, 27), SourceRow: 1},
			{ID: 29466, Key: "AW00029466", FirstName: "Stale", CreateDate: date(2025, 12, 1), SourceRow: 2},
		},
	}

	merged := merger.Merge(data, report)
	require.Len(t, merged.Customers, 1)
	assert.Equal(t, "New", merged.Customers[0].FirstName)
	assert.Equal(t, 2, report.TotalWarnings())
}

func TestMerger_DuplicateCustomerEqualDatesLastSeenWins(t *testing.T) {
	merger := NewMerger(testLogger())
	report := models.NewRunReport("test-run", time.Now())

	data := &models.CleansedData{
		Customers: []models.CleansedCustomer{
			{ID: 1, Key: "AW1", FirstName: "First", CreateDate: date(2026, 1, 1), SourceRow: 0},
			{ID: 1, Key: "AW1", FirstName: "Second", CreateDate: date(2026, 1, 1), SourceRow: 1},
		},
	}

	merged := merger.Merge(data, report)
	require.Len(t, merged.Customers, 1)
	assert.Equal(t, "Second", merged.Customers[0].FirstName)
}

func TestMerger_ErpOnlyCustomersSurviveOuterUnion(t *testing.T) {
	merger := NewMerger(testLogger())
	report := models.NewRunReport("test-run", time.Now())

	data := &models.CleansedData{
		Customers: []models.CleansedCustomer{
			{ID: 11000, Key: "AW00011000", FirstName: "Jon"},
		},
		CustomerExtras: []models.CleansedCustomerExtra{
			{Key: "AW00099999", Birthdate: date(1980, 3, 15), Gender: "Female"},
		},
		Locations: []models.CleansedLocation{
			{Key: "AW00088888", Country: "Germany"},
		},
	}

	merged := merger.Merge(data, report)
	require.Len(t, merged.Customers, 3)

	// CRM-клиенты идут первыми, затем известные только ERP в порядке ключа
	assert.Equal(t, "AW00011000", merged.Customers[0].Key)
	assert.Equal(t, "AW00088888", merged.Customers[1].Key)
	assert.Equal(t, "Germany", merged.Customers[1].Country)
	assert.Equal(t, "AW00099999", merged.Customers[2].Key)
	assert.Equal(t, "Female", merged.Customers[2].Gender)
	assert.Equal(t, 0, merged.Customers[1].ID)
}

func TestMerger_ProductCategoryJoinWithFallback(t *testing.T) {
	merger := NewMerger(testLogger())
	report := models.NewRunReport("test-run", time.Now())

	data := &models.CleansedData{
		Products: []models.CleansedProduct{
			{ID: 210, Key: "AC-HE-HL-U509-R", SalesKey: "HL-U509-R", CategoryID: "AC_HE", StartDate: date(2011, 7, 1)},
			{ID: 330, Key: "ZZ-XX-BK-R93R-62", SalesKey: "BK-R93R-62", CategoryID: "ZZ_XX", StartDate: date(2012, 7, 1)},
		},
		Categories: []models.CleansedCategory{
			{ID: "AC_HE", Category: "Accessories", Subcategory: "Helmets", Maintenance: "No"},
		},
	}

	merged := merger.Merge(data, report)
	require.Len(t, merged.Products, 2)

	assert.Equal(t, "Accessories", merged.Products[0].Category)
	assert.Equal(t, "Helmets", merged.Products[0].Subcategory)

	// Несопоставленная категория не теряет продукт
	assert.Equal(t, "n/a", merged.Products[1].Category)
	assert.Equal(t, "n/a", merged.Products[1].Subcategory)
}

func TestMerger_ProductVersionsAreNotDuplicates(t *testing.T) {
	merger := NewMerger(testLogger())
	report := models.NewRunReport("test-run", time.Now())

	data := &models.CleansedData{
		Products: []models.CleansedProduct{
			{ID: 330, Key: "CO-RF-FR-R92B-58", SalesKey: "FR-R92B-58", CategoryID: "CO_RF", StartDate: date(2011, 7, 1), SourceRow: 0},
			{ID: 331, Key: "CO-RF-FR-R92B-58", SalesKey: "FR-R92B-58", CategoryID: "CO_RF", StartDate: date(2012, 7, 1), SourceRow: 1},
			{ID: 332, Key: "CO-RF-FR-R92B-58", SalesKey: "FR-R92B-58", CategoryID: "CO_RF", StartDate: date(2012, 7, 1), SourceRow: 2},
		},
	}

	merged := merger.Merge(data, report)

	// Разные даты начала — история версий; совпадающие — дубль
	require.Len(t, merged.Products, 2)
	assert.Equal(t, 330, merged.Products[0].ID)
	assert.Equal(t, 332, merged.Products[1].ID)
	assert.Equal(t, 1, report.TotalWarnings())
}
