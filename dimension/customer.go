package dimension

import (
	"sort"
	"strings"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// CustomerDimensionBuilder строит измерение клиентов.
// Измерение не версионируется: одна текущая строка на бизнес-ключ,
// перезагружается целиком при каждом запуске.
type CustomerDimensionBuilder struct {
	logger *utils.ETLLogger
}

// NewCustomerDimensionBuilder создает новый экземпляр CustomerDimensionBuilder
func NewCustomerDimensionBuilder(logger *utils.ETLLogger) *CustomerDimensionBuilder {
	return &CustomerDimensionBuilder{logger: logger}
}

// Build назначает суррогатные ключи и вычисляет производные атрибуты.
// Ключи назначаются детерминированно: бизнес-ключи сортируются по
// возрастанию и нумеруются с единицы, поэтому повторный запуск на
// неизменном срезе данных воспроизводит те же ключи.
func (b *CustomerDimensionBuilder) Build(customers []models.MergedCustomer) []models.DimCustomer {
	startTime := time.Now()
	b.logger.LogStageStart("Build dim_customers (Измерение клиентов)")

	sorted := make([]models.MergedCustomer, len(customers))
	copy(sorted, customers)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ID != sorted[j].ID {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Key < sorted[j].Key
	})

	dimension := make([]models.DimCustomer, 0, len(sorted))
	for i, c := range sorted {
		dimension = append(dimension, models.DimCustomer{
			CustomerKey:    i + 1,
			CustomerID:     c.ID,
			CustomerNumber: c.Key,
			FirstName:      c.FirstName,
			LastName:       c.LastName,
			FullName:       strings.TrimSpace(c.FirstName + " " + c.LastName),
			MaritalStatus:  c.MaritalStatus,
			Gender:         c.Gender,
			Country:        c.Country,
			Birthdate:      c.Birthdate,
			CreateDate:     c.CreateDate,
		})
	}

	b.logger.LogStageComplete("Build dim_customers", time.Since(startTime))
	b.logger.Info("Измерение клиентов построено: %d строк", len(dimension))

	return dimension
}
