package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"github.com/shopspring/decimal"
)

// ProductLoader отвечает за версионированное измерение продуктов.
// Таблица append-only: новые версии добавляются, вытесненные закрываются
// обновлением интервала действия; строки никогда не удаляются.
type ProductLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewProductLoader создает новый экземпляр ProductLoader
func NewProductLoader(db *sql.DB, logger *utils.ETLLogger) *ProductLoader {
	return &ProductLoader{
		db:     db,
		logger: logger,
	}
}

// ReadVersions читает полное прежнее состояние измерения продуктов.
// Состояние читается один раз на запуск и передается построителю SCD
// как явное значение: конвейер не опирается на неявное состояние базы.
func (l *ProductLoader) ReadVersions() ([]models.DimProductVersion, error) {
	query := `
	SELECT product_key, product_id, product_number, product_name, category_id,
		category, subcategory, maintenance, cost, product_line,
		effective_start, effective_end, is_current
	FROM dim_products
	ORDER BY product_number, product_key
	`

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении dim_products: %w", err)
	}
	defer rows.Close()

	var versions []models.DimProductVersion

	for rows.Next() {
		var v models.DimProductVersion
		var cost string
		var effectiveStart, effectiveEnd sql.NullTime

		err := rows.Scan(
			&v.ProductKey,
			&v.ProductID,
			&v.ProductNumber,
			&v.ProductName,
			&v.CategoryID,
			&v.Category,
			&v.Subcategory,
			&v.Maintenance,
			&cost,
			&v.ProductLine,
			&effectiveStart,
			&effectiveEnd,
			&v.IsCurrent,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании версии продукта: %w", err)
		}

		v.Cost, err = decimal.NewFromString(cost)
		if err != nil {
			return nil, fmt.Errorf("некорректная стоимость версии продукта %d: %w", v.ProductKey, err)
		}

		if effectiveStart.Valid {
			t := effectiveStart.Time
			v.EffectiveStart = &t
		}
		if effectiveEnd.Valid {
			t := effectiveEnd.Time
			v.EffectiveEnd = &t
		}

		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обходе версий продуктов: %w", err)
	}

	l.logger.Debug("Прочитано прежнее состояние dim_products: %d версий", len(versions))
	return versions, nil
}

// Load применяет изменение измерения продуктов в одной транзакции:
// сначала закрываются вытесненные версии, затем вставляются новые
func (l *ProductLoader) Load(delta *models.ProductDimensionDelta) error {
	if len(delta.Inserts) == 0 && len(delta.Closes) == 0 {
		l.logger.Debug("Измерение продуктов не изменилось")
		return nil
	}

	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения продуктов (новых версий: %d, закрывается: %d)",
		len(delta.Inserts), len(delta.Closes))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	closeStmt, err := tx.Prepare(`
		UPDATE dim_products
		SET effective_end = ?, is_current = ?
		WHERE product_key = ?
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса закрытия версий: %w", err)
	}
	defer closeStmt.Close()

	for _, version := range delta.Closes {
		_, err := closeStmt.Exec(nullDate(version.EffectiveEnd), version.IsCurrent, version.ProductKey)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при закрытии версии продукта %d: %w", version.ProductKey, err)
		}
	}

	insertStmt, err := tx.Prepare(`
		INSERT INTO dim_products
		(product_key, product_id, product_number, product_name, category_id,
		category, subcategory, maintenance, cost, product_line,
		effective_start, effective_end, is_current)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса вставки версий: %w", err)
	}
	defer insertStmt.Close()

	for _, version := range delta.Inserts {
		_, err := insertStmt.Exec(
			version.ProductKey,
			version.ProductID,
			version.ProductNumber,
			version.ProductName,
			version.CategoryID,
			version.Category,
			version.Subcategory,
			version.Maintenance,
			version.Cost.StringFixed(2),
			version.ProductLine,
			nullDate(version.EffectiveStart),
			nullDate(version.EffectiveEnd),
			version.IsCurrent,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке версии продукта %s: %w", version.ProductNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Загрузка измерения продуктов завершена. Длительность: %v", duration)

	return nil
}
