package facts

import (
	"fmt"
	"sort"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// SalesFactBuilder строит таблицу фактов продаж.
// Бизнес-ключи строк заказов разрешаются в суррогатные ключи измерений;
// для версионированного измерения продуктов берется версия, действующая
// на дату заказа. Неразрешимая ссылка не прерывает запуск: строка факта
// получает NULL вместо суррогатного ключа, а отчет — предупреждение.
type SalesFactBuilder struct {
	logger *utils.ETLLogger
}

// NewSalesFactBuilder создает новый экземпляр SalesFactBuilder
func NewSalesFactBuilder(logger *utils.ETLLogger) *SalesFactBuilder {
	return &SalesFactBuilder{logger: logger}
}

// Build разрешает ссылки и формирует строки фактов.
// Грануляция — ровно одна строка факта на входную строку заказа;
// дубли идентичности строки (номер заказа, ключ продукта) фиксируются
// как предупреждения, но не схлопываются.
func (b *SalesFactBuilder) Build(lines []models.CleansedSalesLine, customers []models.DimCustomer, productVersions []models.DimProductVersion, report *models.RunReport) []models.FactSales {
	startTime := time.Now()
	b.logger.LogStageStart("Build fact_sales (Факты продаж)")

	customerIndex := make(map[int]int, len(customers))
	for _, c := range customers {
		if c.CustomerID != 0 {
			customerIndex[c.CustomerID] = c.CustomerKey
		}
	}

	productIndex := buildProductIndex(productVersions)

	facts := make([]models.FactSales, 0, len(lines))
	lineIdentity := make(map[string]bool, len(lines))

	for _, line := range lines {
		identity := line.OrderNumber + "|" + line.ProductKey
		if lineIdentity[identity] {
			report.AddWarning(models.Warning{
				Kind:   models.WarningDuplicateKey,
				Entity: "fact_sales",
				Key:    identity,
				Detail: "дубль идентичности строки заказа",
			})
		}
		lineIdentity[identity] = true

		fact := models.FactSales{
			OrderNumber:   line.OrderNumber,
			ProductNumber: line.ProductKey,
			CustomerID:    line.CustomerID,
			OrderDate:     line.OrderDate,
			ShipDate:      line.ShipDate,
			DueDate:       line.DueDate,
			Quantity:      line.Quantity,
			Price:         line.Price,
			Amount:        line.Amount,
		}

		if key, ok := customerIndex[line.CustomerID]; ok {
			k := key
			fact.CustomerKey = &k
		} else {
			report.AddWarning(models.Warning{
				Kind:   models.WarningUnresolvedReference,
				Entity: "fact_sales",
				Key:    fmt.Sprintf("%d", line.CustomerID),
				Detail: "клиент отсутствует в измерении",
			})
		}

		if key, ok := productIndex.resolve(line.ProductKey, line.OrderDate); ok {
			k := key
			fact.ProductKey = &k
		} else {
			report.AddWarning(models.Warning{
				Kind:   models.WarningUnresolvedReference,
				Entity: "fact_sales",
				Key:    line.ProductKey,
				Detail: "продукт отсутствует в измерении или нет версии на дату заказа",
			})
		}

		facts = append(facts, fact)
	}

	b.logger.LogStageComplete("Build fact_sales", time.Since(startTime))
	b.logger.Info("Фактов продаж построено: %d строк", len(facts))

	return facts
}

// productIndex индексирует версии продуктов по бизнес-ключу,
// версии каждого ключа отсортированы по дате начала действия
type productIndex struct {
	versions map[string][]models.DimProductVersion
}

// buildProductIndex строит индекс разрешения версий продуктов
func buildProductIndex(productVersions []models.DimProductVersion) *productIndex {
	index := &productIndex{versions: make(map[string][]models.DimProductVersion)}

	for _, v := range productVersions {
		index.versions[v.ProductNumber] = append(index.versions[v.ProductNumber], v)
	}

	for key := range index.versions {
		versions := index.versions[key]
		sort.Slice(versions, func(i, j int) bool {
			a, b := versions[i].EffectiveStart, versions[j].EffectiveStart
			switch {
			case a == nil:
				return true
			case b == nil:
				return false
			default:
				return a.Before(*b)
			}
		})
	}

	return index
}

// resolve возвращает суррогатный ключ версии, действующей на дату заказа.
// Для заказа без даты берется текущая версия: дефект даты уже учтен
// фазой очистки, сама ссылка при этом разрешима.
func (p *productIndex) resolve(productNumber string, orderDate *time.Time) (int, bool) {
	versions, ok := p.versions[productNumber]
	if !ok || len(versions) == 0 {
		return 0, false
	}

	if orderDate == nil {
		for _, v := range versions {
			if v.IsCurrent {
				return v.ProductKey, true
			}
		}
		return 0, false
	}

	for _, v := range versions {
		if v.EffectiveStart != nil && orderDate.Before(*v.EffectiveStart) {
			continue
		}
		if v.EffectiveEnd != nil && orderDate.After(*v.EffectiveEnd) {
			continue
		}
		return v.ProductKey, true
	}

	return 0, false
}
