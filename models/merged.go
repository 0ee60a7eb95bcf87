package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MergedCustomer представляет объединенный профиль клиента из обеих
// операционных систем. CRM — основной источник; ERP заполняет только
// те поля, которые CRM оставил пустыми (дата рождения, страна,
// пол при значении n/a).
type MergedCustomer struct {
	ID            int
	Key           string
	FirstName     string
	LastName      string
	MaritalStatus string
	Gender        string
	Country       string
	Birthdate     *time.Time
	CreateDate    *time.Time
}

// MergedProduct представляет продукт, дополненный атрибутами справочника
// категорий (соединение по производному category id)
type MergedProduct struct {
	ID          int
	Key         string
	SalesKey    string
	CategoryID  string
	Name        string
	Cost        decimal.Decimal
	Line        string
	StartDate   *time.Time
	Category    string
	Subcategory string
	Maintenance string
	SourceRow   int
}

// MergedData содержит результат фазы объединения сущностей
type MergedData struct {
	Customers []MergedCustomer
	Products  []MergedProduct
}
