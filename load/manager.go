package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// LoadManager отвечает за управление фазой загрузки в хранилище
type LoadManager struct {
	db     *sql.DB
	logger *utils.ETLLogger
	loader Loader

	productLoader *ProductLoader
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(db *sql.DB, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		db:            db,
		logger:        logger,
		loader:        NewWarehouseLoader(db, logger),
		productLoader: NewProductLoader(db, logger),
	}
}

// EnsureSchema создает целевые таблицы хранилища, если их еще нет
func (m *LoadManager) EnsureSchema() error {
	return EnsureWarehouseSchema(m.db)
}

// ReadProductVersions читает прежнее состояние измерения продуктов
func (m *LoadManager) ReadProductVersions() ([]models.DimProductVersion, error) {
	return m.productLoader.ReadVersions()
}

// Load выполняет фазу загрузки: сначала измерения, затем факты,
// ссылающиеся на их суррогатные ключи
func (m *LoadManager) Load(data *models.WarehouseData) error {
	startTime := time.Now()
	m.logger.LogStageStart("Load (Загрузка в хранилище)")

	// 1. Загружаем измерение клиентов
	m.logger.Info("Загрузка измерения клиентов...")
	if err := m.loader.LoadCustomerDimension(data.Customers); err != nil {
		m.logger.Error("Ошибка при загрузке измерения клиентов: %v", err)
		return fmt.Errorf("ошибка при загрузке измерения клиентов: %w", err)
	}

	// 2. Применяем изменение измерения продуктов
	m.logger.Info("Загрузка измерения продуктов...")
	if err := m.loader.LoadProductDimension(data.ProductDelta); err != nil {
		m.logger.Error("Ошибка при загрузке измерения продуктов: %v", err)
		return fmt.Errorf("ошибка при загрузке измерения продуктов: %w", err)
	}

	// 3. Загружаем факты продаж
	m.logger.Info("Загрузка фактов продаж...")
	if err := m.loader.LoadSalesFacts(data.Sales); err != nil {
		m.logger.Error("Ошибка при загрузке фактов продаж: %v", err)
		return fmt.Errorf("ошибка при загрузке фактов продаж: %w", err)
	}

	duration := time.Since(startTime)
	m.logger.LogStageComplete("Load", duration)

	return nil
}
