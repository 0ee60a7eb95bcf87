package facts

import (
	"testing"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"github.com/shopspring/decimal"
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

func salesLine(order, productNumber string, customerID int, orderDate *time.Time) models.CleansedSalesLine {
	return models.CleansedSalesLine{
		OrderNumber: order,
		ProductKey:  productNumber,
		CustomerID:  customerID,
		OrderDate:   orderDate,
		Quantity:    1,
		Price:       decimal.NewFromInt(20),
		Amount:      decimal.NewFromInt(20),
	}
}

func testDimensions() ([]models.DimCustomer, []models.DimProductVersion) {
	customers := []models.DimCustomer{
		{CustomerKey: 1, CustomerID: 11000, CustomerNumber: "AW00011000"},
		{CustomerKey: 2, CustomerID: 11001, CustomerNumber: "AW00011001"},
	}
	productVersions := []models.DimProductVersion{
		{ProductKey: 10, ProductNumber: "FR-R92B-58", EffectiveStart: date(2011, 7, 1), EffectiveEnd: date(2012, 6, 30)},
		{ProductKey: 11, ProductNumber: "FR-R92B-58", EffectiveStart: date(2012, 7, 1), IsCurrent: true},
	}
	return customers, productVersions
}

func TestSalesFactBuilder_ResolvesVersionEffectiveOnOrderDate(t *testing.T) {
	builder := NewSalesFactBuilder(testLogger())
	customers, productVersions := testDimensions()
	report := models.NewRunReport("test-run", time.Now())

	facts := builder.Build([]models.CleansedSalesLine{
		salesLine("SO43697", "FR-R92B-58", 11000, date(2011, 12, 29)),
		salesLine("SO51522", "FR-R92B-58", 11001, date(2013, 6, 15)),
	}, customers, productVersions, report)
	require.Len(t, facts, 2)

	require.NotNil(t, facts[0].ProductKey)
	assert.Equal(t, 10, *facts[0].ProductKey)
	require.NotNil(t, facts[0].CustomerKey)
	assert.Equal(t, 1, *facts[0].CustomerKey)

	require.NotNil(t, facts[1].ProductKey)
	assert.Equal(t, 11, *facts[1].ProductKey)

	assert.Equal(t, 0, report.TotalWarnings())
}

func TestSalesFactBuilder_NullOrderDateTakesCurrentVersion(t *testing.T) {
	builder := NewSalesFactBuilder(testLogger())
	customers, productVersions := testDimensions()
	report := models.NewRunReport("test-run", time.Now())

	facts := builder.Build([]models.CleansedSalesLine{
		salesLine("SO43697", "FR-R92B-58", 11000, nil),
	}, customers, productVersions, report)
	require.Len(t, facts, 1)

	require.NotNil(t, facts[0].ProductKey)
	assert.Equal(t, 11, *facts[0].ProductKey)
}

func TestSalesFactBuilder_UnresolvedReferencesKeepLineWithNullKeys(t *testing.T) {
	builder := NewSalesFactBuilder(testLogger())
	customers, productVersions := testDimensions()
	report := models.NewRunReport("test-run", time.Now())

	facts := builder.Build([]models.CleansedSalesLine{
		salesLine("SO43697", "BK-UNKNOWN", 99999, date(2012, 1, 1)),
	}, customers, productVersions, report)
	require.Len(t, facts, 1)

	// Строка сохраняется: меры остаются пригодными для агрегации
	assert.Nil(t, facts[0].ProductKey)
	assert.Nil(t, facts[0].CustomerKey)
	assert.Equal(t, "SO43697", facts[0].OrderNumber)
	assert.Equal(t, 2, report.TotalWarnings())
	for _, w := range report.Warnings {
		assert.Equal(t, models.WarningUnresolvedReference, w.Kind)
	}
}

func TestSalesFactBuilder_OrderDateOutsideAllVersions(t *testing.T) {
	builder := NewSalesFactBuilder(testLogger())
	customers, productVersions := testDimensions()
	report := models.NewRunReport("test-run", time.Now())

	// Заказ раньше первой версии продукта — ссылка неразрешима
	facts := builder.Build([]models.CleansedSalesLine{
		salesLine("SO40000", "FR-R92B-58", 11000, date(2010, 1, 1)),
	}, customers, productVersions, report)
	require.Len(t, facts, 1)

	assert.Nil(t, facts[0].ProductKey)
	assert.Equal(t, 1, report.TotalWarnings())
}

func TestSalesFactBuilder_DuplicateGrainIsFlaggedNotCollapsed(t *testing.T) {
	builder := NewSalesFactBuilder(testLogger())
	customers, productVersions := testDimensions()
	report := models.NewRunReport("test-run", time.Now())

	facts := builder.Build([]models.CleansedSalesLine{
		salesLine("SO43697", "FR-R92B-58", 11000, date(2012, 1, 1)),
		salesLine("SO43697", "FR-R92B-58", 11000, date(2012, 1, 1)),
	}, customers, productVersions, report)

	// Грануляция: одна строка факта на строку заказа, дубль не схлопывается
	require.Len(t, facts, 2)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, models.WarningDuplicateKey, report.Warnings[0].Kind)
}
