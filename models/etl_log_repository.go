package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"
)

// MySQLETLLogRepository реализация ETLLogRepository для MySQL
type MySQLETLLogRepository struct {
	db *sql.DB
}

// NewMySQLETLLogRepository создает новый экземпляр MySQLETLLogRepository
func NewMySQLETLLogRepository(db *sql.DB) *MySQLETLLogRepository {
	return &MySQLETLLogRepository{
		db: db,
	}
}

// CreateETLLogTable создает таблицу журнала запусков, если она не существует
func (r *MySQLETLLogRepository) CreateETLLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS etl_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		run_id CHAR(36) NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		customers_loaded INT DEFAULT 0,
		product_versions_added INT DEFAULT 0,
		sales_lines_loaded INT DEFAULT 0,
		rows_rejected INT DEFAULT 0,
		warning_count INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT,
		report_blob MEDIUMBLOB
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске
func (r *MySQLETLLogRepository) CreateLogEntry(runID string, startTime time.Time) (int, error) {
	query := `
	INSERT INTO etl_run_log (run_id, start_time, status)
	VALUES (?, ?, 'in_progress')
	`

	result, err := r.db.Exec(query, runID, startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении запуска.
// Полный отчет о качестве данных сериализуется в JSON и сохраняется
// в сжатом виде (snappy) в колонке report_blob.
func (r *MySQLETLLogRepository) UpdateLogEntrySuccess(id int, endTime time.Time, loaded RunTotals, report *RunReport) error {
	blob, err := CompressReport(report)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации отчета: %w", err)
	}

	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err = r.db.QueryRow("SELECT start_time FROM etl_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала запуска: %w", err)
	}

	query := `
	UPDATE etl_run_log
	SET
		end_time = ?,
		status = 'success',
		customers_loaded = ?,
		product_versions_added = ?,
		sales_lines_loaded = ?,
		rows_rejected = ?,
		warning_count = ?,
		execution_time_seconds = ?,
		report_blob = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query,
		endTime,
		loaded.Customers,
		loaded.ProductVersions,
		loaded.SalesLines,
		report.TotalRejected(),
		report.TotalWarnings(),
		endTime.Sub(startTime).Seconds(),
		blob,
		id,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи журнала: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при ошибке
func (r *MySQLETLLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	query := `
	UPDATE etl_run_log
	SET end_time = ?, status = 'failed', error_message = ?
	WHERE id = ?
	`

	_, err := r.db.Exec(query, endTime, errorMessage, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи журнала: %w", err)
	}

	return nil
}

// GetLastRun возвращает последний запуск
func (r *MySQLETLLogRepository) GetLastRun() (*ETLRunLog, error) {
	query := `
	SELECT id, run_id, start_time, COALESCE(end_time, start_time), status,
		customers_loaded, product_versions_added, sales_lines_loaded,
		rows_rejected, warning_count, COALESCE(error_message, ''),
		COALESCE(execution_time_seconds, 0)
	FROM etl_run_log
	ORDER BY id DESC
	LIMIT 1
	`

	var runLog ETLRunLog
	err := r.db.QueryRow(query).Scan(
		&runLog.ID,
		&runLog.RunID,
		&runLog.StartTime,
		&runLog.EndTime,
		&runLog.Status,
		&runLog.CustomersLoaded,
		&runLog.ProductVersionsAdded,
		&runLog.SalesLinesLoaded,
		&runLog.RowsRejected,
		&runLog.WarningCount,
		&runLog.ErrorMessage,
		&runLog.ExecutionTimeSeconds,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении журнала запусков: %w", err)
	}

	return &runLog, nil
}

// GetLatestReport возвращает отчет последнего успешного запуска
func (r *MySQLETLLogRepository) GetLatestReport() (*RunReport, error) {
	query := `
	SELECT report_blob
	FROM etl_run_log
	WHERE status = 'success' AND report_blob IS NOT NULL
	ORDER BY id DESC
	LIMIT 1
	`

	var blob []byte
	err := r.db.QueryRow(query).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении отчета из журнала: %w", err)
	}

	return DecompressReport(blob)
}

// CompressReport сериализует отчет в JSON и сжимает его snappy
func CompressReport(report *RunReport) ([]byte, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("ошибка при сериализации отчета в JSON: %w", err)
	}
	return snappy.Encode(nil, data), nil
}

// DecompressReport распаковывает и десериализует отчет из журнала
func DecompressReport(blob []byte) (*RunReport, error) {
	data, err := snappy.Decode(nil, blob)
	if err != nil {
		return nil, fmt.Errorf("ошибка при распаковке отчета: %w", err)
	}

	var report RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("ошибка при десериализации отчета: %w", err)
	}

	return &report, nil
}
