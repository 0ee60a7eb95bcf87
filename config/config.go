package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// ETLConfig содержит конфигурацию конвейера загрузки хранилища
type ETLConfig struct {
	// Конфигурация для подключения к исходной БД (bronze-слой)
	SourceConfig DatabaseConfig `json:"source_config"`

	// Конфигурация для подключения к целевой БД (хранилище, gold-слой)
	WarehouseConfig DatabaseConfig `json:"warehouse_config"`

	// Интервал запуска полной перезагрузки
	RunInterval time.Duration `json:"run_interval"`

	// Адрес HTTP-сервера операционного API
	HTTPAddr string `json:"http_addr"`

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Значения конфигурации по умолчанию
var (
	DefaultSourceConfig = DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "warehouse_bronze",
	}

	DefaultWarehouseConfig = DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "warehouse_gold",
	}

	DefaultETLConfig = ETLConfig{
		SourceConfig:          DefaultSourceConfig,
		WarehouseConfig:       DefaultWarehouseConfig,
		RunInterval:           24 * time.Hour,
		HTTPAddr:              ":8090",
		EnableDetailedLogging: true,
	}
)

// GetConfig возвращает конфигурацию ETL.
// Значения по умолчанию переопределяются переменными окружения;
// файл .env в рабочем каталоге загружается, если присутствует.
func GetConfig() ETLConfig {
	// Отсутствие .env не является ошибкой
	_ = godotenv.Load()

	config := DefaultETLConfig

	applyDatabaseEnv(&config.SourceConfig, "SOURCE")
	applyDatabaseEnv(&config.WarehouseConfig, "WAREHOUSE")

	if v := os.Getenv("ETL_RUN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RunInterval = d
		}
	}

	if v := os.Getenv("ETL_HTTP_ADDR"); v != "" {
		config.HTTPAddr = v
	}

	if v := os.Getenv("ETL_VERBOSE"); v != "" {
		config.EnableDetailedLogging = cast.ToBool(v)
	}

	return config
}

// applyDatabaseEnv переопределяет настройки подключения переменными
// окружения с указанным префиксом (например, SOURCE_DB_HOST)
func applyDatabaseEnv(dbConfig *DatabaseConfig, prefix string) {
	if v := os.Getenv(prefix + "_DB_HOST"); v != "" {
		dbConfig.Host = v
	}
	if v := os.Getenv(prefix + "_DB_PORT"); v != "" {
		if port, err := cast.ToIntE(v); err == nil {
			dbConfig.Port = port
		}
	}
	if v := os.Getenv(prefix + "_DB_USER"); v != "" {
		dbConfig.User = v
	}
	if v := os.Getenv(prefix + "_DB_PASSWORD"); v != "" {
		dbConfig.Password = v
	}
	if v := os.Getenv(prefix + "_DB_NAME"); v != "" {
		dbConfig.DBName = v
	}
}
