package dimension

import (
	"testing"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *utils.ETLLogger {
	return utils.NewDiscardLogger()
}

func TestCustomerDimensionBuilder_DeterministicSurrogates(t *testing.T) {
	builder := NewCustomerDimensionBuilder(testLogger())

	customers := []models.MergedCustomer{
		{ID: 11002, Key: "AW00011002", FirstName: "Ruben", LastName: "Torres"},
		{ID: 11000, Key: "AW00011000", FirstName: "Jon", LastName: "Yang"},
		{ID: 11001, Key: "AW00011001", FirstName: "Eugene", LastName: "Huang"},
	}

	dim := builder.Build(customers)
	require.Len(t, dim, 3)

	// Ключи назначаются по возрастанию бизнес-ключа, а не по порядку входа
	assert.Equal(t, 1, dim[0].CustomerKey)
	assert.Equal(t, 11000, dim[0].CustomerID)
	assert.Equal(t, 2, dim[1].CustomerKey)
	assert.Equal(t, 11001, dim[1].CustomerID)
	assert.Equal(t, 3, dim[2].CustomerKey)
	assert.Equal(t, 11002, dim[2].CustomerID)

	// Повторный запуск на том же срезе воспроизводит те же ключи
	again := builder.Build(customers)
	assert.Equal(t, dim, again)
}

func TestCustomerDimensionBuilder_FullName(t *testing.T) {
	builder := NewCustomerDimensionBuilder(testLogger())

	dim := builder.Build([]models.MergedCustomer{
		{ID: 1, Key: "AW1", FirstName: "Jon", LastName: "Yang"},
		{ID: 2, Key: "AW2", FirstName: "", LastName: "Huang"},
		{ID: 3, Key: "AW3", FirstName: "", LastName: ""},
	})
	require.Len(t, dim, 3)

	assert.Equal(t, "Jon Yang", dim[0].FullName)
	assert.Equal(t, "Huang", dim[1].FullName)
	assert.Equal(t, "", dim[2].FullName)
}

func TestCustomerDimensionBuilder_ErpOnlyCustomersOrderedByNumber(t *testing.T) {
	builder := NewCustomerDimensionBuilder(testLogger())

	// У клиентов, известных только ERP, нет числового ID (ноль) —
	// они упорядочиваются между собой по бизнес-номеру
	dim := builder.Build([]models.MergedCustomer{
		{ID: 11000, Key: "AW00011000"},
		{ID: 0, Key: "AW00099999"},
		{ID: 0, Key: "AW00088888"},
	})
	require.Len(t, dim, 3)

	assert.Equal(t, "AW00088888", dim[0].CustomerNumber)
	assert.Equal(t, "AW00099999", dim[1].CustomerNumber)
	assert.Equal(t, "AW00011000", dim[2].CustomerNumber)
}
