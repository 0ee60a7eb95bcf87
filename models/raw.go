package models

// RawRecord представляет одну сырую строку из таблицы bronze-слоя.
// Все значения приходят как строки без валидации; nil означает NULL в источнике.
type RawRecord map[string]*string

// Get возвращает значение колонки или nil, если колонка отсутствует или NULL
func (r RawRecord) Get(column string) *string {
	if v, ok := r[column]; ok {
		return v
	}
	return nil
}

// Имена исходных таблиц bronze-слоя
const (
	TableCrmCustInfo     = "crm_cust_info"
	TableCrmPrdInfo      = "crm_prd_info"
	TableCrmSalesDetails = "crm_sales_details"
	TableErpCustAz12     = "erp_cust_az12"
	TableErpLocA101      = "erp_loc_a101"
	TableErpPxCatG1v2    = "erp_px_cat_g1v2"
)

// SourceColumns содержит список колонок каждой исходной таблицы.
// Контракт с ingestion-слоем фиксированный: колонки известны заранее,
// типы — нет (все поля извлекаются как строки).
var SourceColumns = map[string][]string{
	TableCrmCustInfo:     {"cst_id", "cst_key", "cst_firstname", "cst_lastname", "cst_marital_status", "cst_gndr", "cst_create_date"},
	TableCrmPrdInfo:      {"prd_id", "prd_key", "prd_nm", "prd_cost", "prd_line", "prd_start_dt", "prd_end_dt"},
	TableCrmSalesDetails: {"sls_ord_num", "sls_prd_key", "sls_cust_id", "sls_order_dt", "sls_ship_dt", "sls_due_dt", "sls_sales", "sls_quantity", "sls_price"},
	TableErpCustAz12:     {"cid", "bdate", "gen"},
	TableErpLocA101:      {"cid", "cntry"},
	TableErpPxCatG1v2:    {"id", "cat", "subcat", "maintenance"},
}

// RawSnapshot содержит полный срез сырых данных, извлеченных за один запуск.
// Снимок неизменяем после извлечения: все последующие фазы работают
// только с ним, а не с внешним состоянием базы данных.
type RawSnapshot struct {
	CrmCustomers  []RawRecord
	CrmProducts   []RawRecord
	CrmSales      []RawRecord
	ErpCustomers  []RawRecord
	ErpLocations  []RawRecord
	ErpCategories []RawRecord
}
