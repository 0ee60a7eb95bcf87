package cleanse

import (
	"strings"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"github.com/shopspring/decimal"
)

// ProductCleanser отвечает за очистку записей crm_prd_info
type ProductCleanser struct {
	logger *utils.ETLLogger
}

// NewProductCleanser создает новый экземпляр ProductCleanser
func NewProductCleanser(logger *utils.ETLLogger) *ProductCleanser {
	return &ProductCleanser{logger: logger}
}

// Cleanse применяет правила очистки к сырым записям продуктов.
// Из бизнес-ключа prd_key выводятся два производных ключа:
// category id (первые 5 символов, '-' -> '_') для соединения со
// справочником категорий и sales key (с 7-го символа), по которому
// на продукт ссылаются строки продаж.
func (p *ProductCleanser) Cleanse(records []models.RawRecord) ([]models.CleansedProduct, []models.Rejection) {
	cleansed := make([]models.CleansedProduct, 0, len(records))
	var rejections []models.Rejection

	for i, record := range records {
		key := trimValue(record.Get("prd_key"))

		// Ключ короче 7 символов не содержит ни категории, ни sales key
		if len(key) < 7 {
			rejections = append(rejections, models.Rejection{
				Table:       models.TableCrmPrdInfo,
				BusinessKey: key,
				Reason:      models.RejectMissingBusinessKey,
			})
			continue
		}

		id, _ := parseInt(record.Get("prd_id"))

		// Стоимость: NULL или отрицательное значение — восстановимый дефект, по умолчанию 0
		cost, ok := parseDecimal(record.Get("prd_cost"))
		if !ok || cost.IsNegative() {
			cost = decimal.Zero
		}

		cleansed = append(cleansed, models.CleansedProduct{
			ID:         id,
			Key:        key,
			CategoryID: strings.ReplaceAll(key[:5], "-", "_"),
			SalesKey:   key[6:],
			Name:       trimValue(record.Get("prd_nm")),
			Cost:       cost,
			Line:       normalizeProductLine(record.Get("prd_line")),
			StartDate:  parseDate(record.Get("prd_start_dt")),
			SourceRow:  i,
		})
	}

	p.logger.Debug("Очистка продуктов CRM: %d из %d записей прошли, %d отбраковано",
		len(cleansed), len(records), len(rejections))

	return cleansed, rejections
}
