package config

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// DBConnections содержит подключения к базам данных
type DBConnections struct {
	SourceDB    *sql.DB
	WarehouseDB *sql.DB
}

// ConnectDatabases устанавливает подключения к исходной БД и хранилищу
func ConnectDatabases(config ETLConfig) (*DBConnections, error) {
	var connections DBConnections
	var err error

	// Подключение к исходной базе данных (bronze-слой)
	connections.SourceDB, err = openDatabase(config.SourceConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к исходной базе данных: %w", err)
	}

	// Подключение к базе данных хранилища (целевая)
	connections.WarehouseDB, err = openDatabase(config.WarehouseConfig)
	if err != nil {
		// Закрываем первое подключение при ошибке
		connections.SourceDB.Close()
		return nil, fmt.Errorf("ошибка подключения к базе данных хранилища: %w", err)
	}

	log.Println("Успешное подключение к исходной базе данных и хранилищу")
	return &connections, nil
}

// openDatabase открывает одно подключение и проверяет его
func openDatabase(dbConfig DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.DBName,
	)

	db, err := sql.Open(dbConfig.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия подключения: %w", err)
	}

	// Настройка параметров пула подключений
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось установить соединение: %w", err)
	}

	return db, nil
}

// CloseDatabases закрывает подключения к базам данных
func CloseDatabases(connections *DBConnections) {
	if connections.SourceDB != nil {
		if err := connections.SourceDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения с исходной базой данных: %v", err)
		}
	}

	if connections.WarehouseDB != nil {
		if err := connections.WarehouseDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения с базой данных хранилища: %v", err)
		}
	}

	log.Println("Соединения с базами данных закрыты")
}
