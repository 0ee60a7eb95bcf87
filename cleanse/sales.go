package cleanse

import (
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"github.com/shopspring/decimal"
)

// SalesCleanser отвечает за очистку строк заказов crm_sales_details
type SalesCleanser struct {
	logger *utils.ETLLogger
}

// NewSalesCleanser создает новый экземпляр SalesCleanser
func NewSalesCleanser(logger *utils.ETLLogger) *SalesCleanser {
	return &SalesCleanser{logger: logger}
}

// Cleanse применяет правила очистки к сырым строкам заказов.
// Денежные показатели согласовываются между собой: недостающая сумма
// восстанавливается как количество × цена, недостающая цена — как
// сумма ÷ количество. Если после согласования инвариант
// (количество > 0, цена > 0, сумма > 0) не выполняется, строка
// отбраковывается с кодом unrepairable_measure.
func (s *SalesCleanser) Cleanse(records []models.RawRecord) ([]models.CleansedSalesLine, []models.Rejection) {
	cleansed := make([]models.CleansedSalesLine, 0, len(records))
	var rejections []models.Rejection

	for i, record := range records {
		orderNumber := trimValue(record.Get("sls_ord_num"))
		productKey := trimValue(record.Get("sls_prd_key"))
		customerID, customerOk := parseInt(record.Get("sls_cust_id"))

		if orderNumber == "" || productKey == "" || !customerOk {
			rejections = append(rejections, models.Rejection{
				Table:       models.TableCrmSalesDetails,
				BusinessKey: orderNumber,
				Reason:      models.RejectMissingBusinessKey,
			})
			continue
		}

		quantity, _ := parseInt(record.Get("sls_quantity"))
		price, priceOk := parseDecimal(record.Get("sls_price"))
		amount, amountOk := parseDecimal(record.Get("sls_sales"))

		price, amount, repaired := reconcileMeasures(quantity, price, priceOk, amount, amountOk)
		if !repaired {
			rejections = append(rejections, models.Rejection{
				Table:       models.TableCrmSalesDetails,
				BusinessKey: orderNumber,
				Reason:      models.RejectUnrepairableMeasure,
			})
			continue
		}

		cleansed = append(cleansed, models.CleansedSalesLine{
			OrderNumber: orderNumber,
			ProductKey:  productKey,
			CustomerID:  customerID,
			OrderDate:   parseYYYYMMDD(record.Get("sls_order_dt")),
			ShipDate:    parseYYYYMMDD(record.Get("sls_ship_dt")),
			DueDate:     parseYYYYMMDD(record.Get("sls_due_dt")),
			Quantity:    quantity,
			Price:       price,
			Amount:      amount,
			SourceRow:   i,
		})
	}

	s.logger.Debug("Очистка строк продаж: %d из %d записей прошли, %d отбраковано",
		len(cleansed), len(records), len(rejections))

	return cleansed, rejections
}

// reconcileMeasures согласовывает количество, цену и сумму одной строки
// заказа. Возвращает согласованные цену и сумму; третье значение false,
// если строку восстановить невозможно.
func reconcileMeasures(quantity int, price decimal.Decimal, priceOk bool, amount decimal.Decimal, amountOk bool) (decimal.Decimal, decimal.Decimal, bool) {
	qty := decimal.NewFromInt(int64(quantity))

	// Сумма: отсутствует, неположительна или не совпадает с
	// количество × |цена| — пересчитываем из количества и цены
	if priceOk {
		expected := qty.Mul(price.Abs())
		if !amountOk || amount.Sign() <= 0 || !amount.Equal(expected) {
			amount = expected
		}
	} else if !amountOk {
		amount = decimal.Zero
	}

	// Цена: отсутствует или неположительна — восстанавливаем из суммы
	if !priceOk || price.Sign() <= 0 {
		if quantity <= 0 || amount.Sign() <= 0 {
			return price, amount, false
		}
		price = amount.Div(qty)
	}

	// Итоговый инвариант после согласования
	if quantity <= 0 || price.Sign() <= 0 || amount.Sign() <= 0 {
		return price, amount, false
	}

	return price, amount, true
}
