package cleanse

import (
	"sync"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// Cleanser координирует фазу очистки по всем исходным таблицам.
// Очистка каждой таблицы — чистая функция от ее сырых записей,
// поэтому таблицы обрабатываются параллельно без общего
// изменяемого состояния.
type Cleanser struct {
	logger *utils.ETLLogger

	customerCleanser    *CustomerCleanser
	productCleanser     *ProductCleanser
	salesCleanser       *SalesCleanser
	erpCustomerCleanser *ErpCustomerCleanser
	locationCleanser    *LocationCleanser
	categoryCleanser    *CategoryCleanser
}

// NewCleanser создает новый экземпляр Cleanser
func NewCleanser(logger *utils.ETLLogger) *Cleanser {
	return &Cleanser{
		logger:              logger,
		customerCleanser:    NewCustomerCleanser(logger),
		productCleanser:     NewProductCleanser(logger),
		salesCleanser:       NewSalesCleanser(logger),
		erpCustomerCleanser: NewErpCustomerCleanser(logger),
		locationCleanser:    NewLocationCleanser(logger),
		categoryCleanser:    NewCategoryCleanser(logger),
	}
}

// Cleanse выполняет фазу очистки над полным срезом сырых данных.
// Отбраковки и счетчики по каждой сущности фиксируются в отчете;
// очистка никогда не прерывает запуск.
func (c *Cleanser) Cleanse(snapshot *models.RawSnapshot, report *models.RunReport) *models.CleansedData {
	startTime := time.Now()
	c.logger.LogStageStart("Cleanse (Очистка данных)")

	data := &models.CleansedData{}
	rejectionsByTable := make(map[string][]models.Rejection)
	var mu sync.Mutex
	var wg sync.WaitGroup

	record := func(table string, rejections []models.Rejection) {
		mu.Lock()
		defer mu.Unlock()
		rejectionsByTable[table] = rejections
	}

	wg.Add(6)

	go func() {
		defer wg.Done()
		var rej []models.Rejection
		data.Customers, rej = c.customerCleanser.Cleanse(snapshot.CrmCustomers)
		record(models.TableCrmCustInfo, rej)
	}()

	go func() {
		defer wg.Done()
		var rej []models.Rejection
		data.Products, rej = c.productCleanser.Cleanse(snapshot.CrmProducts)
		record(models.TableCrmPrdInfo, rej)
	}()

	go func() {
		defer wg.Done()
		var rej []models.Rejection
		data.Sales, rej = c.salesCleanser.Cleanse(snapshot.CrmSales)
		record(models.TableCrmSalesDetails, rej)
	}()

	go func() {
		defer wg.Done()
		var rej []models.Rejection
		data.CustomerExtras, rej = c.erpCustomerCleanser.Cleanse(snapshot.ErpCustomers)
		record(models.TableErpCustAz12, rej)
	}()

	go func() {
		defer wg.Done()
		var rej []models.Rejection
		data.Locations, rej = c.locationCleanser.Cleanse(snapshot.ErpLocations)
		record(models.TableErpLocA101, rej)
	}()

	go func() {
		defer wg.Done()
		var rej []models.Rejection
		data.Categories, rej = c.categoryCleanser.Cleanse(snapshot.ErpCategories)
		record(models.TableErpPxCatG1v2, rej)
	}()

	wg.Wait()

	// Счетчики и отбраковки фиксируются последовательно после барьера
	c.recordResults(report, models.TableCrmCustInfo, len(snapshot.CrmCustomers), len(data.Customers), rejectionsByTable)
	c.recordResults(report, models.TableCrmPrdInfo, len(snapshot.CrmProducts), len(data.Products), rejectionsByTable)
	c.recordResults(report, models.TableCrmSalesDetails, len(snapshot.CrmSales), len(data.Sales), rejectionsByTable)
	c.recordResults(report, models.TableErpCustAz12, len(snapshot.ErpCustomers), len(data.CustomerExtras), rejectionsByTable)
	c.recordResults(report, models.TableErpLocA101, len(snapshot.ErpLocations), len(data.Locations), rejectionsByTable)
	c.recordResults(report, models.TableErpPxCatG1v2, len(snapshot.ErpCategories), len(data.Categories), rejectionsByTable)

	duration := time.Since(startTime)
	c.logger.LogStageComplete("Cleanse", duration)

	return data
}

// recordResults записывает в отчет счетчики и отбраковки одной таблицы
func (c *Cleanser) recordResults(report *models.RunReport, table string, extracted, cleansed int, rejectionsByTable map[string][]models.Rejection) {
	rejections := rejectionsByTable[table]
	report.RecordCounts(table, extracted, cleansed, len(rejections))
	for _, rej := range rejections {
		report.AddRejection(rej)
	}
}
