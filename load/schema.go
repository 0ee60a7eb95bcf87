package load

import (
	"database/sql"
	"fmt"
	"time"
)

// EnsureWarehouseSchema создает целевые таблицы хранилища, если они
// еще не существуют. Измерение продуктов хранит историю версий и
// переживает запуски; остальные таблицы перезагружаются целиком.
func EnsureWarehouseSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dim_customers (
			customer_key INT PRIMARY KEY,
			customer_id INT NOT NULL,
			customer_number VARCHAR(50) NOT NULL,
			first_name VARCHAR(100),
			last_name VARCHAR(100),
			full_name VARCHAR(200),
			marital_status VARCHAR(20) NOT NULL,
			gender VARCHAR(10) NOT NULL,
			country VARCHAR(100) NOT NULL,
			birthdate DATE NULL,
			create_date DATE NULL
		);`,
		`CREATE TABLE IF NOT EXISTS dim_products (
			product_key INT PRIMARY KEY,
			product_id INT NOT NULL,
			product_number VARCHAR(50) NOT NULL,
			product_name VARCHAR(200),
			category_id VARCHAR(20),
			category VARCHAR(100),
			subcategory VARCHAR(100),
			maintenance VARCHAR(10),
			cost DECIMAL(12, 2) NOT NULL,
			product_line VARCHAR(20) NOT NULL,
			effective_start DATE NULL,
			effective_end DATE NULL,
			is_current BOOLEAN NOT NULL,
			INDEX idx_dim_products_number (product_number)
		);`,
		`CREATE TABLE IF NOT EXISTS fact_sales (
			order_number VARCHAR(50) NOT NULL,
			product_key INT NULL,
			customer_key INT NULL,
			product_number VARCHAR(50) NOT NULL,
			customer_id INT NOT NULL,
			order_date DATE NULL,
			ship_date DATE NULL,
			due_date DATE NULL,
			quantity INT NOT NULL,
			price DECIMAL(12, 2) NOT NULL,
			sales_amount DECIMAL(12, 2) NOT NULL,
			INDEX idx_fact_sales_order (order_number)
		);`,
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("ошибка при создании таблиц хранилища: %w", err)
		}
	}

	return nil
}

// nullDate приводит опциональную дату к значению аргумента SQL-запроса
func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

// nullInt приводит опциональное целое к значению аргумента SQL-запроса
func nullInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
