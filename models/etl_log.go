package models

import (
	"time"
)

// ETLRunLog представляет запись журнала о запуске перезагрузки хранилища
type ETLRunLog struct {
	ID                   int       `json:"id"`
	RunID                string    `json:"run_id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	CustomersLoaded      int       `json:"customers_loaded"`
	ProductVersionsAdded int       `json:"product_versions_added"`
	SalesLinesLoaded     int       `json:"sales_lines_loaded"`
	RowsRejected         int       `json:"rows_rejected"`
	WarningCount         int       `json:"warning_count"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// ETLLogRepository представляет репозиторий для работы с журналом запусков
type ETLLogRepository interface {
	// CreateLogEntry создает новую запись о запуске
	CreateLogEntry(runID string, startTime time.Time) (int, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении запуска
	// и сохраняет сжатый отчет о качестве данных
	UpdateLogEntrySuccess(id int, endTime time.Time, loaded RunTotals, report *RunReport) error

	// UpdateLogEntryFailure обновляет запись при ошибке
	UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error

	// GetLastRun возвращает последний запуск (успешный или нет)
	GetLastRun() (*ETLRunLog, error)

	// GetLatestReport возвращает отчет последнего успешного запуска
	GetLatestReport() (*RunReport, error)
}

// RunTotals содержит итоговые счетчики загрузки для журнала запусков
type RunTotals struct {
	Customers       int
	ProductVersions int
	SalesLines      int
}
