package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// SalesLoader отвечает за загрузку таблицы фактов продаж
type SalesLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewSalesLoader создает новый экземпляр SalesLoader
func NewSalesLoader(db *sql.DB, logger *utils.ETLLogger) *SalesLoader {
	return &SalesLoader{
		db:     db,
		logger: logger,
	}
}

// Load перезагружает fact_sales целиком в одной транзакции
func (l *SalesLoader) Load(facts []models.FactSales) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки фактов продаж (всего: %d)", len(facts))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Полная перезагрузка: прежнее содержимое заменяется новым срезом
	if _, err := tx.Exec("DELETE FROM fact_sales"); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при очистке fact_sales: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO fact_sales
		(order_number, product_key, customer_key, product_number, customer_id,
		order_date, ship_date, due_date, quantity, price, sales_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, fact := range facts {
		_, err := stmt.Exec(
			fact.OrderNumber,
			nullInt(fact.ProductKey),
			nullInt(fact.CustomerKey),
			fact.ProductNumber,
			fact.CustomerID,
			nullDate(fact.OrderDate),
			nullDate(fact.ShipDate),
			nullDate(fact.DueDate),
			fact.Quantity,
			fact.Price.StringFixed(2),
			fact.Amount.StringFixed(2),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке факта для заказа %s: %w", fact.OrderNumber, err)
		}

		processed++

		// Логируем прогресс каждые 5000 строк
		if processed%5000 == 0 {
			l.logger.Debug("Загружено %d из %d фактов...", processed, len(facts))
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Загрузка фактов продаж завершена. Загружено строк: %d. Длительность: %v", processed, duration)

	return nil
}
