package cleanse

import (
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// CustomerCleanser отвечает за очистку записей crm_cust_info
type CustomerCleanser struct {
	logger *utils.ETLLogger
}

// NewCustomerCleanser создает новый экземпляр CustomerCleanser
func NewCustomerCleanser(logger *utils.ETLLogger) *CustomerCleanser {
	return &CustomerCleanser{logger: logger}
}

// Cleanse применяет правила очистки к сырым записям клиентов CRM.
// Запись без числового бизнес-ключа восстановить нельзя — она
// отбраковывается с кодом missing_business_key.
func (c *CustomerCleanser) Cleanse(records []models.RawRecord) ([]models.CleansedCustomer, []models.Rejection) {
	cleansed := make([]models.CleansedCustomer, 0, len(records))
	var rejections []models.Rejection

	for i, record := range records {
		id, ok := parseInt(record.Get("cst_id"))
		if !ok {
			rejections = append(rejections, models.Rejection{
				Table:       models.TableCrmCustInfo,
				BusinessKey: trimValue(record.Get("cst_key")),
				Reason:      models.RejectMissingBusinessKey,
			})
			continue
		}

		cleansed = append(cleansed, models.CleansedCustomer{
			ID:            id,
			Key:           trimValue(record.Get("cst_key")),
			FirstName:     trimValue(record.Get("cst_firstname")),
			LastName:      trimValue(record.Get("cst_lastname")),
			MaritalStatus: normalizeMaritalStatus(record.Get("cst_marital_status")),
			Gender:        normalizeGender(record.Get("cst_gndr")),
			CreateDate:    parseDate(record.Get("cst_create_date")),
			SourceRow:     i,
		})
	}

	c.logger.Debug("Очистка клиентов CRM: %d из %d записей прошли, %d отбраковано",
		len(cleansed), len(records), len(rejections))

	return cleansed, rejections
}
