package cleanse

import (
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// sp возвращает указатель на строку (сырые поля приходят как *string)
func sp(s string) *string {
	return &s
}

// testLogger возвращает логгер, не засоряющий вывод тестов
func testLogger() *utils.ETLLogger {
	return utils.NewDiscardLogger()
}

// rawRecord собирает сырую запись из пар колонка—значение;
// колонки, которых нет в карте, считаются NULL
func rawRecord(values map[string]*string) models.RawRecord {
	record := make(models.RawRecord, len(values))
	for column, value := range values {
		record[column] = value
	}
	return record
}
