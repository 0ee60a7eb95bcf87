package extractors

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"golang.org/x/sync/errgroup"
)

// Extractor координирует извлечение сырых данных из bronze-слоя.
// Все поля извлекаются как строки без валидации: типизация —
// ответственность фазы очистки.
type Extractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(db *sql.DB, logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		db:     db,
		logger: logger,
	}
}

// Extract извлекает полный срез всех исходных таблиц.
// Таблицы независимы, поэтому читаются параллельно; нечитаемая таблица —
// структурная ошибка, запуск прерывается до любой записи в хранилище.
func (e *Extractor) Extract(ctx context.Context) (*models.RawSnapshot, error) {
	startTime := time.Now()
	e.logger.LogStageStart("Extract (Извлечение данных)")

	var snapshot models.RawSnapshot

	g, ctx := errgroup.WithContext(ctx)

	targets := []struct {
		table string
		dest  *[]models.RawRecord
	}{
		{models.TableCrmCustInfo, &snapshot.CrmCustomers},
		{models.TableCrmPrdInfo, &snapshot.CrmProducts},
		{models.TableCrmSalesDetails, &snapshot.CrmSales},
		{models.TableErpCustAz12, &snapshot.ErpCustomers},
		{models.TableErpLocA101, &snapshot.ErpLocations},
		{models.TableErpPxCatG1v2, &snapshot.ErpCategories},
	}

	for _, target := range targets {
		target := target
		g.Go(func() error {
			records, err := e.FetchRaw(ctx, target.table)
			if err != nil {
				return err
			}
			*target.dest = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Error("Ошибка при извлечении данных: %v", err)
		return nil, fmt.Errorf("ошибка извлечения данных: %w", err)
	}

	duration := time.Since(startTime)
	e.logger.LogStageComplete("Extract", duration)
	e.logger.Info("Извлечено: %d клиентов CRM, %d продуктов, %d строк продаж, %d клиентов ERP, %d локаций, %d категорий",
		len(snapshot.CrmCustomers), len(snapshot.CrmProducts), len(snapshot.CrmSales),
		len(snapshot.ErpCustomers), len(snapshot.ErpLocations), len(snapshot.ErpCategories))

	return &snapshot, nil
}

// FetchRaw извлекает все строки одной таблицы bronze-слоя как RawRecord.
// Порядок строк соответствует порядку выдачи источника и используется
// дальше по конвейеру для разрешения дублей ("последняя по порядку
// поступления выигрывает").
func (e *Extractor) FetchRaw(ctx context.Context, table string) ([]models.RawRecord, error) {
	columns, ok := models.SourceColumns[table]
	if !ok {
		return nil, fmt.Errorf("неизвестная исходная таблица: %s", table)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table)

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении таблицы %s: %w", table, err)
	}
	defer rows.Close()

	var records []models.RawRecord

	for rows.Next() {
		// Все колонки сканируются как NULL-совместимые строки
		values := make([]sql.NullString, len(columns))
		scanArgs := make([]interface{}, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании строки таблицы %s: %w", table, err)
		}

		record := make(models.RawRecord, len(columns))
		for i, column := range columns {
			if values[i].Valid {
				v := values[i].String
				record[column] = &v
			} else {
				record[column] = nil
			}
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обходе строк таблицы %s: %w", table, err)
	}

	e.logger.Debug("Таблица %s: извлечено %d строк", table, len(records))
	return records, nil
}
