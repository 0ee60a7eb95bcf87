package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Коды причин отбраковки записей на фазе очистки
const (
	RejectMissingBusinessKey  = "missing_business_key"
	RejectUnrepairableMeasure = "unrepairable_measure"
)

// Rejection представляет запись, отбракованную фазой очистки.
// Отбракованные записи не попадают дальше по конвейеру, но всегда
// учитываются в отчете о запуске.
type Rejection struct {
	Table       string `json:"table"`
	BusinessKey string `json:"business_key"`
	Reason      string `json:"reason"`
}

// CleansedCustomer представляет очищенную запись клиента из crm_cust_info
type CleansedCustomer struct {
	ID            int
	Key           string
	FirstName     string
	LastName      string
	MaritalStatus string // Single, Married, n/a
	Gender        string // Male, Female, n/a
	CreateDate    *time.Time
	SourceRow     int // порядковый номер строки в источнике (для разрешения дублей)
}

// CleansedProduct представляет очищенную запись продукта из crm_prd_info
type CleansedProduct struct {
	ID         int
	Key        string // исходный prd_key целиком
	CategoryID string // первые 5 символов prd_key, '-' заменен на '_'
	SalesKey   string // prd_key начиная с 7-го символа; по нему строки продаж ссылаются на продукт
	Name       string
	Cost       decimal.Decimal
	Line       string // Mountain, Road, Other Sales, Touring, n/a
	StartDate  *time.Time
	SourceRow  int
}

// CleansedSalesLine представляет очищенную строку заказа из crm_sales_details
type CleansedSalesLine struct {
	OrderNumber string
	ProductKey  string
	CustomerID  int
	OrderDate   *time.Time
	ShipDate    *time.Time
	DueDate     *time.Time
	Quantity    int
	Price       decimal.Decimal
	Amount      decimal.Decimal
	SourceRow   int
}

// CleansedCustomerExtra представляет очищенную запись из erp_cust_az12
// (демографические атрибуты клиента из второй операционной системы)
type CleansedCustomerExtra struct {
	Key       string // cid без префикса NAS, совпадает с cst_key CRM
	Birthdate *time.Time
	Gender    string
	SourceRow int
}

// CleansedLocation представляет очищенную запись из erp_loc_a101
type CleansedLocation struct {
	Key       string
	Country   string
	SourceRow int
}

// CleansedCategory представляет очищенную запись справочника категорий erp_px_cat_g1v2
type CleansedCategory struct {
	ID          string
	Category    string
	Subcategory string
	Maintenance string // Yes / No
	SourceRow   int
}

// CleansedData содержит результат фазы очистки по всем исходным таблицам
type CleansedData struct {
	Customers      []CleansedCustomer
	Products       []CleansedProduct
	Sales          []CleansedSalesLine
	CustomerExtras []CleansedCustomerExtra
	Locations      []CleansedLocation
	Categories     []CleansedCategory
}
