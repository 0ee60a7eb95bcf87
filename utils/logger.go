package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// ETLLogger представляет логгер для процесса загрузки хранилища данных
type ETLLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
	quiet       bool
}

// NewETLLogger создает новый экземпляр логгера для ETL
func NewETLLogger(verbose bool) *ETLLogger {
	// Создаем или открываем лог-файл для записи
	currentTime := time.Now().Format("2006-01-02")
	logFileName := fmt.Sprintf("warehouse_etl_%s.log", currentTime)

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Не удалось открыть или создать файл лога: %v", err)
	}

	// Инициализируем логгеры для разных уровней
	infoLogger := log.New(file, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger := log.New(file, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger := log.New(file, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return &ETLLogger{
		infoLogger:  infoLogger,
		errorLogger: errorLogger,
		debugLogger: debugLogger,
		isVerbose:   verbose,
	}
}

// NewDiscardLogger создает логгер, отбрасывающий весь вывод (для тестов)
func NewDiscardLogger() *ETLLogger {
	discard := log.New(io.Discard, "", 0)
	return &ETLLogger{
		infoLogger:  discard,
		errorLogger: discard,
		debugLogger: discard,
		quiet:       true,
	}
}

// Info логирует информационное сообщение
func (l *ETLLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)

	// Также выводим в стандартный вывод
	if !l.quiet {
		log.Println("INFO:", msg)
	}
}

// Error логирует сообщение об ошибке
func (l *ETLLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)

	// Также выводим в стандартный вывод
	if !l.quiet {
		log.Println("ERROR:", msg)
	}
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)

	// Также выводим в стандартный вывод
	if !l.quiet {
		log.Println("DEBUG:", msg)
	}
}

// LogRunStart логирует начало полной перезагрузки хранилища
func (l *ETLLogger) LogRunStart(runID string) {
	l.Info("Начало полной перезагрузки хранилища. Запуск: %s", runID)
}

// LogRunComplete логирует завершение перезагрузки хранилища
func (l *ETLLogger) LogRunComplete(startTime time.Time, customers, productVersions, salesLines int) {
	duration := time.Since(startTime)
	l.Info("Перезагрузка хранилища завершена. Длительность: %v", duration)
	l.Info("Загружено: %d клиентов, %d версий продуктов, %d строк продаж", customers, productVersions, salesLines)
}

// LogStageStart логирует начало фазы ETL-процесса
func (l *ETLLogger) LogStageStart(stage string) {
	l.Info("Начало фазы %s", stage)
}

// LogStageComplete логирует завершение фазы ETL-процесса
func (l *ETLLogger) LogStageComplete(stage string, duration time.Duration) {
	l.Info("Фаза %s завершена. Длительность: %v", stage, duration)
}
