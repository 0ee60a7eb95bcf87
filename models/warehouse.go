package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DimCustomer представляет строку измерения клиентов (dim_customers).
// Измерение перезагружается целиком при каждом запуске; суррогатный
// ключ назначается детерминированно по отсортированным бизнес-ключам.
type DimCustomer struct {
	CustomerKey    int // суррогатный ключ
	CustomerID     int // бизнес-ключ CRM (cst_id)
	CustomerNumber string
	FirstName      string
	LastName       string
	FullName       string
	MaritalStatus  string
	Gender         string
	Country        string
	Birthdate      *time.Time
	CreateDate     *time.Time
}

// DimProductVersion представляет одну версию продукта в измерении
// dim_products (SCD Type 2). Версию идентифицирует пара
// (ProductNumber, EffectiveStart); суррогатный ключ назначается на версию.
type DimProductVersion struct {
	ProductKey     int // суррогатный ключ версии
	ProductID      int
	ProductNumber  string // бизнес-ключ, по которому ссылаются продажи
	ProductName    string
	CategoryID     string
	Category       string
	Subcategory    string
	Maintenance    string
	Cost           decimal.Decimal
	ProductLine    string
	EffectiveStart *time.Time // nil — дата начала неизвестна, версия считается самой ранней
	EffectiveEnd   *time.Time // nil — версия открыта (действует сейчас)
	IsCurrent      bool
}

// ProductDimensionDelta описывает изменение измерения продуктов за запуск.
// Измерение append-only: существующие версии никогда не удаляются,
// у вытесненных закрывается интервал действия.
type ProductDimensionDelta struct {
	// Versions — полное желаемое состояние измерения после применения
	// изменений (используется для разрешения ссылок из фактов)
	Versions []DimProductVersion

	// Inserts — новые версии, которых не было в предыдущем состоянии
	Inserts []DimProductVersion

	// Closes — ранее открытые версии, у которых изменился интервал
	// действия или флаг is_current
	Closes []DimProductVersion
}

// FactSales представляет одну строку заказа в таблице фактов fact_sales.
// Грануляция — ровно одна строка факта на одну входную строку заказа.
// Суррогатные ключи nil, если бизнес-ключ не разрешился в измерение.
type FactSales struct {
	OrderNumber    string
	ProductKey     *int
	CustomerKey    *int
	ProductNumber  string
	CustomerID     int
	OrderDate      *time.Time
	ShipDate       *time.Time
	DueDate        *time.Time
	Quantity       int
	Price          decimal.Decimal
	Amount         decimal.Decimal
}

// WarehouseData содержит полный результат построения дименсиональной модели
// за один запуск конвейера
type WarehouseData struct {
	Customers    []DimCustomer
	ProductDelta *ProductDimensionDelta
	Sales        []FactSales
}
