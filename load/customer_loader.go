package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// CustomerLoader отвечает за загрузку измерения клиентов
type CustomerLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewCustomerLoader создает новый экземпляр CustomerLoader
func NewCustomerLoader(db *sql.DB, logger *utils.ETLLogger) *CustomerLoader {
	return &CustomerLoader{
		db:     db,
		logger: logger,
	}
}

// Load перезагружает dim_customers целиком в одной транзакции:
// читатели никогда не видят частично замененное измерение
func (l *CustomerLoader) Load(customers []models.DimCustomer) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения клиентов (всего: %d)", len(customers))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Полная перезагрузка: прежнее содержимое заменяется новым срезом
	if _, err := tx.Exec("DELETE FROM dim_customers"); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при очистке dim_customers: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO dim_customers
		(customer_key, customer_id, customer_number, first_name, last_name, full_name,
		marital_status, gender, country, birthdate, create_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, customer := range customers {
		_, err := stmt.Exec(
			customer.CustomerKey,
			customer.CustomerID,
			customer.CustomerNumber,
			customer.FirstName,
			customer.LastName,
			customer.FullName,
			customer.MaritalStatus,
			customer.Gender,
			customer.Country,
			nullDate(customer.Birthdate),
			nullDate(customer.CreateDate),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке клиента %s: %w", customer.CustomerNumber, err)
		}

		processed++

		// Логируем прогресс каждые 1000 строк
		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d клиентов...", processed, len(customers))
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Загрузка измерения клиентов завершена. Загружено строк: %d. Длительность: %v", processed, duration)

	return nil
}
