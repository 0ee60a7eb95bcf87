package load

import (
	"database/sql"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// Loader интерфейс для загрузки дименсиональной модели в хранилище
type Loader interface {
	// LoadCustomerDimension перезагружает измерение клиентов целиком
	LoadCustomerDimension(customers []models.DimCustomer) error

	// LoadProductDimension применяет изменение версионированного
	// измерения продуктов: добавляет новые версии и закрывает вытесненные
	LoadProductDimension(delta *models.ProductDimensionDelta) error

	// LoadSalesFacts перезагружает таблицу фактов продаж целиком
	LoadSalesFacts(facts []models.FactSales) error
}

// WarehouseLoader реализация Loader для базы данных хранилища
type WarehouseLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger

	// Загрузчики для отдельных целевых таблиц
	customerLoader *CustomerLoader
	productLoader  *ProductLoader
	salesLoader    *SalesLoader
}

// NewWarehouseLoader создает новый экземпляр WarehouseLoader
func NewWarehouseLoader(db *sql.DB, logger *utils.ETLLogger) *WarehouseLoader {
	loader := &WarehouseLoader{
		db:     db,
		logger: logger,
	}

	// Инициализация загрузчиков для отдельных целевых таблиц
	loader.customerLoader = NewCustomerLoader(db, logger)
	loader.productLoader = NewProductLoader(db, logger)
	loader.salesLoader = NewSalesLoader(db, logger)

	return loader
}

// LoadCustomerDimension перезагружает измерение клиентов целиком
func (l *WarehouseLoader) LoadCustomerDimension(customers []models.DimCustomer) error {
	return l.customerLoader.Load(customers)
}

// LoadProductDimension применяет изменение измерения продуктов
func (l *WarehouseLoader) LoadProductDimension(delta *models.ProductDimensionDelta) error {
	return l.productLoader.Load(delta)
}

// LoadSalesFacts перезагружает таблицу фактов продаж целиком
func (l *WarehouseLoader) LoadSalesFacts(facts []models.FactSales) error {
	return l.salesLoader.Load(facts)
}
