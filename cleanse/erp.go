package cleanse

import (
	"strings"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// ErpCustomerCleanser отвечает за очистку записей erp_cust_az12
type ErpCustomerCleanser struct {
	logger *utils.ETLLogger

	// now подменяется в тестах для проверки диапазона даты рождения
	now func() time.Time
}

// NewErpCustomerCleanser создает новый экземпляр ErpCustomerCleanser
func NewErpCustomerCleanser(logger *utils.ETLLogger) *ErpCustomerCleanser {
	return &ErpCustomerCleanser{
		logger: logger,
		now:    time.Now,
	}
}

// Cleanse применяет правила очистки к демографическим записям ERP.
// Идентификатор клиента в ERP приходит с техническим префиксом NAS,
// который отбрасывается для соединения с cst_key CRM.
func (e *ErpCustomerCleanser) Cleanse(records []models.RawRecord) ([]models.CleansedCustomerExtra, []models.Rejection) {
	cleansed := make([]models.CleansedCustomerExtra, 0, len(records))
	var rejections []models.Rejection
	now := e.now().UTC()

	for i, record := range records {
		key := strings.TrimPrefix(trimValue(record.Get("cid")), "NAS")
		if key == "" {
			rejections = append(rejections, models.Rejection{
				Table:  models.TableErpCustAz12,
				Reason: models.RejectMissingBusinessKey,
			})
			continue
		}

		cleansed = append(cleansed, models.CleansedCustomerExtra{
			Key:       key,
			Birthdate: normalizeBirthdate(parseDate(record.Get("bdate")), now),
			Gender:    normalizeGender(record.Get("gen")),
			SourceRow: i,
		})
	}

	e.logger.Debug("Очистка клиентов ERP: %d из %d записей прошли, %d отбраковано",
		len(cleansed), len(records), len(rejections))

	return cleansed, rejections
}

// LocationCleanser отвечает за очистку записей erp_loc_a101
type LocationCleanser struct {
	logger *utils.ETLLogger
}

// NewLocationCleanser создает новый экземпляр LocationCleanser
func NewLocationCleanser(logger *utils.ETLLogger) *LocationCleanser {
	return &LocationCleanser{logger: logger}
}

// Cleanse применяет правила очистки к записям локаций.
// Идентификатор клиента в этой таблице содержит дефисы,
// отсутствующие в cst_key CRM, — они удаляются.
func (l *LocationCleanser) Cleanse(records []models.RawRecord) ([]models.CleansedLocation, []models.Rejection) {
	cleansed := make([]models.CleansedLocation, 0, len(records))
	var rejections []models.Rejection

	for i, record := range records {
		key := strings.ReplaceAll(trimValue(record.Get("cid")), "-", "")
		if key == "" {
			rejections = append(rejections, models.Rejection{
				Table:  models.TableErpLocA101,
				Reason: models.RejectMissingBusinessKey,
			})
			continue
		}

		cleansed = append(cleansed, models.CleansedLocation{
			Key:       key,
			Country:   normalizeCountry(record.Get("cntry")),
			SourceRow: i,
		})
	}

	l.logger.Debug("Очистка локаций: %d из %d записей прошли, %d отбраковано",
		len(cleansed), len(records), len(rejections))

	return cleansed, rejections
}

// CategoryCleanser отвечает за очистку справочника категорий erp_px_cat_g1v2
type CategoryCleanser struct {
	logger *utils.ETLLogger
}

// NewCategoryCleanser создает новый экземпляр CategoryCleanser
func NewCategoryCleanser(logger *utils.ETLLogger) *CategoryCleanser {
	return &CategoryCleanser{logger: logger}
}

// Cleanse применяет правила очистки к справочнику категорий
func (c *CategoryCleanser) Cleanse(records []models.RawRecord) ([]models.CleansedCategory, []models.Rejection) {
	cleansed := make([]models.CleansedCategory, 0, len(records))
	var rejections []models.Rejection

	for i, record := range records {
		id := trimValue(record.Get("id"))
		if id == "" {
			rejections = append(rejections, models.Rejection{
				Table:  models.TableErpPxCatG1v2,
				Reason: models.RejectMissingBusinessKey,
			})
			continue
		}

		cleansed = append(cleansed, models.CleansedCategory{
			ID:          id,
			Category:    trimValue(record.Get("cat")),
			Subcategory: trimValue(record.Get("subcat")),
			Maintenance: normalizeMaintenance(record.Get("maintenance")),
			SourceRow:   i,
		})
	}

	c.logger.Debug("Очистка категорий: %d из %d записей прошли, %d отбраковано",
		len(cleansed), len(records), len(rejections))

	return cleansed, rejections
}
