package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/cleanse"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/config"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/dimension"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/extractors"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/facts"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/load"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/merge"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/routes"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
)

// WarehouseRunner координирует полную перезагрузку хранилища:
// извлечение — очистка — объединение — построение измерений —
// построение фактов — загрузка. Каждая фаза требует полного
// результата предыдущей (строгий барьер между фазами).
type WarehouseRunner struct {
	config          config.ETLConfig
	dbConnections   *config.DBConnections
	logger          *utils.ETLLogger
	extractor       *extractors.Extractor
	cleanser        *cleanse.Cleanser
	merger          *merge.Merger
	customerBuilder *dimension.CustomerDimensionBuilder
	productBuilder  *dimension.ProductSCDBuilder
	factBuilder     *facts.SalesFactBuilder
	loadManager     *load.LoadManager
	etlLogRepo      models.ETLLogRepository
	hub             *routes.ProgressHub

	// Конвейер однописательный: одновременно может идти только один запуск
	mu      sync.Mutex
	running bool
}

// NewWarehouseRunner создает новый экземпляр WarehouseRunner
func NewWarehouseRunner() (*WarehouseRunner, error) {
	// Получаем конфигурацию
	etlConfig := config.GetConfig()

	// Инициализируем логгер
	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	logger.Info("Инициализация Warehouse Runner")

	// Подключаемся к базам данных
	connections, err := config.ConnectDatabases(etlConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базам данных: %w", err)
	}

	// Инициализируем репозиторий журнала запусков
	etlLogRepo := models.NewMySQLETLLogRepository(connections.WarehouseDB)

	// Создаем таблицу журнала, если она еще не существует
	if err := etlLogRepo.CreateETLLogTable(); err != nil {
		return nil, fmt.Errorf("ошибка при создании таблицы журнала запусков: %w", err)
	}

	// Создаем менеджер загрузки и целевые таблицы хранилища
	loadManager := load.NewLoadManager(connections.WarehouseDB, logger)
	if err := loadManager.EnsureSchema(); err != nil {
		return nil, fmt.Errorf("ошибка при создании таблиц хранилища: %w", err)
	}

	return &WarehouseRunner{
		config:          etlConfig,
		dbConnections:   connections,
		logger:          logger,
		extractor:       extractors.NewExtractor(connections.SourceDB, logger),
		cleanser:        cleanse.NewCleanser(logger),
		merger:          merge.NewMerger(logger),
		customerBuilder: dimension.NewCustomerDimensionBuilder(logger),
		productBuilder:  dimension.NewProductSCDBuilder(logger),
		factBuilder:     facts.NewSalesFactBuilder(logger),
		loadManager:     loadManager,
		etlLogRepo:      etlLogRepo,
		hub:             routes.NewProgressHub(logger),
	}, nil
}

// Close закрывает соединения с базами данных
func (r *WarehouseRunner) Close() {
	r.logger.Info("Завершение работы Warehouse Runner")
	config.CloseDatabases(r.dbConnections)
}

// Hub возвращает канал рассылки прогресса для операционного API
func (r *WarehouseRunner) Hub() *routes.ProgressHub {
	return r.hub
}

// ExecuteETL выполняет полную перезагрузку хранилища
func (r *WarehouseRunner) ExecuteETL() error {
	if !r.beginRun() {
		return routes.ErrRunInProgress
	}
	defer r.endRun()

	startTime := time.Now()
	runID := uuid.New().String()
	r.logger.LogRunStart(runID)

	report := models.NewRunReport(runID, startTime)

	// Создаем запись в журнале запусков
	logID, err := r.etlLogRepo.CreateLogEntry(runID, startTime)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале запусков: %v", err)
		return fmt.Errorf("ошибка при создании записи в журнале запусков: %w", err)
	}

	// 1. Фаза извлечения данных. Нечитаемый источник — структурная
	// ошибка: запуск прерывается до любой записи в хранилище.
	r.progress(runID, "extract", "Извлечение сырых данных из bronze-слоя")
	snapshot, err := r.extractor.Extract(context.Background())
	if err != nil {
		return r.failRun(logID, runID, fmt.Errorf("ошибка в фазе Extract: %w", err))
	}

	// 2. Фаза очистки: правила применяются к каждой таблице независимо
	r.progress(runID, "cleanse", "Очистка и типизация записей")
	cleansed := r.cleanser.Cleanse(snapshot, report)

	// 3. Фаза объединения сущностей по бизнес-ключам
	r.progress(runID, "merge", "Объединение сущностей разных источников")
	merged := r.merger.Merge(cleansed, report)

	// 4. Построение измерений. Прежнее состояние версионированного
	// измерения читается один раз и передается построителю явно.
	r.progress(runID, "dimensions", "Построение измерений")
	priorVersions, err := r.loadManager.ReadProductVersions()
	if err != nil {
		return r.failRun(logID, runID, fmt.Errorf("ошибка при чтении прежнего состояния dim_products: %w", err))
	}

	dimCustomers := r.customerBuilder.Build(merged.Customers)
	productDelta := r.productBuilder.Build(merged.Products, priorVersions)

	// 5. Построение фактов с разрешением суррогатных ключей
	r.progress(runID, "facts", "Построение фактов продаж")
	salesFacts := r.factBuilder.Build(cleansed.Sales, dimCustomers, productDelta.Versions, report)

	// 6. Фаза загрузки в хранилище
	r.progress(runID, "load", "Загрузка дименсиональной модели в хранилище")
	warehouseData := &models.WarehouseData{
		Customers:    dimCustomers,
		ProductDelta: productDelta,
		Sales:        salesFacts,
	}
	if err := r.loadManager.Load(warehouseData); err != nil {
		return r.failRun(logID, runID, fmt.Errorf("ошибка в фазе Load: %w", err))
	}

	// Фиксируем успешное завершение в журнале вместе с отчетом
	report.EndTime = time.Now()
	totals := models.RunTotals{
		Customers:       len(dimCustomers),
		ProductVersions: len(productDelta.Inserts),
		SalesLines:      len(salesFacts),
	}
	if err := r.etlLogRepo.UpdateLogEntrySuccess(logID, report.EndTime, totals, report); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}

	r.progress(runID, "done", "Перезагрузка хранилища завершена")
	r.logger.LogRunComplete(startTime, totals.Customers, totals.ProductVersions, totals.SalesLines)
	r.logger.Info("Отбраковано записей: %d, предупреждений о качестве данных: %d",
		report.TotalRejected(), report.TotalWarnings())

	return nil
}

// beginRun помечает запуск активным; false, если запуск уже идет
func (r *WarehouseRunner) beginRun() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

// endRun снимает отметку активного запуска
func (r *WarehouseRunner) endRun() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
}

// failRun фиксирует неудачное завершение запуска в журнале
func (r *WarehouseRunner) failRun(logID int, runID string, runErr error) error {
	r.logger.Error("%v", runErr)
	r.progress(runID, "failed", runErr.Error())

	if err := r.etlLogRepo.UpdateLogEntryFailure(logID, time.Now(), runErr.Error()); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}

	return runErr
}

// progress рассылает событие прогресса подписчикам WebSocket
func (r *WarehouseRunner) progress(runID, stage, message string) {
	r.hub.Broadcast(routes.ProgressEvent{
		RunID:     runID,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// TriggerRun запускает перезагрузку в фоне по запросу операционного API
func (r *WarehouseRunner) TriggerRun() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return routes.ErrRunInProgress
	}
	r.mu.Unlock()

	go func() {
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при выполнении перезагрузки по запросу API: %v", err)
		}
	}()

	return nil
}

// Status возвращает текущее состояние конвейера для операционного API
func (r *WarehouseRunner) Status() (routes.StatusResponse, error) {
	r.mu.Lock()
	running := r.running
	r.mu.Unlock()

	lastRun, err := r.etlLogRepo.GetLastRun()
	if err != nil {
		return routes.StatusResponse{}, err
	}

	return routes.StatusResponse{
		Running: running,
		LastRun: lastRun,
	}, nil
}

// LatestReport возвращает отчет последнего успешного запуска
func (r *WarehouseRunner) LatestReport() (*models.RunReport, error) {
	return r.etlLogRepo.GetLatestReport()
}

// StartScheduler запускает планировщик для регулярной перезагрузки хранилища
func (r *WarehouseRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск перезагрузки хранилища")
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированной перезагрузки: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик остановлен")
}
