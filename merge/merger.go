package merge

import (
	"fmt"
	"sort"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// Merger объединяет очищенные записи разных источников в единые
// представления сущностей по бизнес-ключам. CRM — основной источник
// атрибутов клиента; ERP только заполняет пропуски и никогда не
// перезаписывает непустое значение CRM.
type Merger struct {
	logger *utils.ETLLogger
}

// NewMerger создает новый экземпляр Merger
func NewMerger(logger *utils.ETLLogger) *Merger {
	return &Merger{logger: logger}
}

// Merge выполняет фазу объединения сущностей.
// Дубли бизнес-ключей внутри одного источника разрешаются до
// объединения и фиксируются в отчете как предупреждения о качестве данных.
func (m *Merger) Merge(data *models.CleansedData, report *models.RunReport) *models.MergedData {
	startTime := time.Now()
	m.logger.LogStageStart("Merge (Объединение сущностей)")

	customers := m.dedupeCustomers(data.Customers, report)
	extras := m.dedupeExtras(data.CustomerExtras, report)
	locations := m.dedupeLocations(data.Locations, report)
	categories := m.dedupeCategories(data.Categories, report)
	products := m.dedupeProducts(data.Products, report)

	merged := &models.MergedData{
		Customers: m.mergeCustomers(customers, extras, locations),
		Products:  m.mergeProducts(products, categories),
	}

	duration := time.Since(startTime)
	m.logger.LogStageComplete("Merge", duration)
	m.logger.Info("Объединено: %d клиентов, %d версий продуктов", len(merged.Customers), len(merged.Products))

	return merged
}

// dedupeCustomers оставляет по одной записи на бизнес-ключ клиента CRM.
// Выигрывает запись с самой поздней датой создания; при равенстве дат —
// последняя по порядку поступления из источника.
func (m *Merger) dedupeCustomers(customers []models.CleansedCustomer, report *models.RunReport) []models.CleansedCustomer {
	best := make(map[int]models.CleansedCustomer)
	order := make([]int, 0, len(customers))

	for _, c := range customers {
		existing, ok := best[c.ID]
		if !ok {
			best[c.ID] = c
			order = append(order, c.ID)
			continue
		}

		report.AddWarning(models.Warning{
			Kind:   models.WarningDuplicateKey,
			Entity: models.TableCrmCustInfo,
			Key:    fmt.Sprintf("%d", c.ID),
			Detail: "дубль бизнес-ключа внутри источника",
		})

		if customerSupersedes(c, existing) {
			best[c.ID] = c
		}
	}

	result := make([]models.CleansedCustomer, 0, len(best))
	for _, id := range order {
		result = append(result, best[id])
	}
	return result
}

// customerSupersedes сообщает, вытесняет ли запись a запись b
func customerSupersedes(a, b models.CleansedCustomer) bool {
	switch {
	case a.CreateDate == nil && b.CreateDate == nil:
		return a.SourceRow > b.SourceRow
	case a.CreateDate == nil:
		return false
	case b.CreateDate == nil:
		return true
	case a.CreateDate.Equal(*b.CreateDate):
		return a.SourceRow > b.SourceRow
	default:
		return a.CreateDate.After(*b.CreateDate)
	}
}

// dedupeExtras оставляет последнюю по порядку поступления запись ERP на ключ
func (m *Merger) dedupeExtras(extras []models.CleansedCustomerExtra, report *models.RunReport) map[string]models.CleansedCustomerExtra {
	result := make(map[string]models.CleansedCustomerExtra)
	for _, e := range extras {
		if _, ok := result[e.Key]; ok {
			report.AddWarning(models.Warning{
				Kind:   models.WarningDuplicateKey,
				Entity: models.TableErpCustAz12,
				Key:    e.Key,
				Detail: "дубль бизнес-ключа внутри источника",
			})
		}
		result[e.Key] = e
	}
	return result
}

// dedupeLocations оставляет последнюю по порядку поступления запись на ключ
func (m *Merger) dedupeLocations(locations []models.CleansedLocation, report *models.RunReport) map[string]models.CleansedLocation {
	result := make(map[string]models.CleansedLocation)
	for _, l := range locations {
		if _, ok := result[l.Key]; ok {
			report.AddWarning(models.Warning{
				Kind:   models.WarningDuplicateKey,
				Entity: models.TableErpLocA101,
				Key:    l.Key,
				Detail: "дубль бизнес-ключа внутри источника",
			})
		}
		result[l.Key] = l
	}
	return result
}

// dedupeCategories оставляет последнюю по порядку поступления запись на ключ
func (m *Merger) dedupeCategories(categories []models.CleansedCategory, report *models.RunReport) map[string]models.CleansedCategory {
	result := make(map[string]models.CleansedCategory)
	for _, c := range categories {
		if _, ok := result[c.ID]; ok {
			report.AddWarning(models.Warning{
				Kind:   models.WarningDuplicateKey,
				Entity: models.TableErpPxCatG1v2,
				Key:    c.ID,
				Detail: "дубль бизнес-ключа внутри источника",
			})
		}
		result[c.ID] = c
	}
	return result
}

// dedupeProducts оставляет по одной записи на версию продукта.
// Версию идентифицирует пара (бизнес-ключ, дата начала действия);
// продукт с несколькими датами начала — это история версий, а не дубль.
func (m *Merger) dedupeProducts(products []models.CleansedProduct, report *models.RunReport) []models.CleansedProduct {
	seen := make(map[string]int) // идентичность версии -> индекс в result
	result := make([]models.CleansedProduct, 0, len(products))

	for _, p := range products {
		identity := p.Key + "|" + formatVersionDate(p.StartDate)
		if idx, ok := seen[identity]; ok {
			report.AddWarning(models.Warning{
				Kind:   models.WarningDuplicateKey,
				Entity: models.TableCrmPrdInfo,
				Key:    p.Key,
				Detail: "дубль версии продукта внутри источника",
			})
			// Последняя по порядку поступления выигрывает
			result[idx] = p
			continue
		}
		seen[identity] = len(result)
		result = append(result, p)
	}

	return result
}

// formatVersionDate форматирует дату начала версии для ключа идентичности
func formatVersionDate(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Format("2006-01-02")
}

// mergeCustomers строит объединенные профили клиентов.
// Базой служит CRM; ключи, встречающиеся только в ERP, тоже попадают
// в результат (внешнее объединение, а не внутреннее соединение).
func (m *Merger) mergeCustomers(customers []models.CleansedCustomer, extras map[string]models.CleansedCustomerExtra, locations map[string]models.CleansedLocation) []models.MergedCustomer {
	merged := make([]models.MergedCustomer, 0, len(customers))
	seenKeys := make(map[string]bool)

	for _, c := range customers {
		mc := models.MergedCustomer{
			ID:            c.ID,
			Key:           c.Key,
			FirstName:     c.FirstName,
			LastName:      c.LastName,
			MaritalStatus: c.MaritalStatus,
			Gender:        c.Gender,
			Country:       "n/a",
			CreateDate:    c.CreateDate,
		}
		seenKeys[c.Key] = true

		if extra, ok := extras[c.Key]; ok {
			mc.Birthdate = extra.Birthdate
			// CRM — главный источник пола; ERP заполняет только пропуск
			if mc.Gender == "n/a" {
				mc.Gender = extra.Gender
			}
		}

		if location, ok := locations[c.Key]; ok {
			mc.Country = location.Country
		}

		merged = append(merged, mc)
	}

	// Клиенты, известные только ERP: атрибуты CRM остаются пустыми
	erpOnly := make([]models.MergedCustomer, 0)
	for key, extra := range extras {
		if seenKeys[key] {
			continue
		}
		mc := models.MergedCustomer{
			Key:           key,
			MaritalStatus: "n/a",
			Gender:        extra.Gender,
			Birthdate:     extra.Birthdate,
			Country:       "n/a",
		}
		if location, ok := locations[key]; ok {
			mc.Country = location.Country
		}
		erpOnly = append(erpOnly, mc)
		seenKeys[key] = true
	}

	for key, location := range locations {
		if seenKeys[key] {
			continue
		}
		erpOnly = append(erpOnly, models.MergedCustomer{
			Key:           key,
			MaritalStatus: "n/a",
			Gender:        "n/a",
			Country:       location.Country,
		})
	}

	// Обход map недетерминирован — фиксируем порядок по ключу
	sort.Slice(erpOnly, func(i, j int) bool { return erpOnly[i].Key < erpOnly[j].Key })

	return append(merged, erpOnly...)
}

// mergeProducts дополняет продукты атрибутами справочника категорий
func (m *Merger) mergeProducts(products []models.CleansedProduct, categories map[string]models.CleansedCategory) []models.MergedProduct {
	merged := make([]models.MergedProduct, 0, len(products))

	for _, p := range products {
		mp := models.MergedProduct{
			ID:          p.ID,
			Key:         p.Key,
			SalesKey:    p.SalesKey,
			CategoryID:  p.CategoryID,
			Name:        p.Name,
			Cost:        p.Cost,
			Line:        p.Line,
			StartDate:   p.StartDate,
			Category:    "n/a",
			Subcategory: "n/a",
			Maintenance: "n/a",
			SourceRow:   p.SourceRow,
		}

		if category, ok := categories[p.CategoryID]; ok {
			mp.Category = category.Category
			mp.Subcategory = category.Subcategory
			mp.Maintenance = category.Maintenance
		}

		merged = append(merged, mp)
	}

	return merged
}
