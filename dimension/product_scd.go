package dimension

import (
	"sort"
	"time"

	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/models"
	"github.com/PranjalTripatHI07/Data-Warehouse-Analytics-Project/utils"
)

// ProductSCDBuilder строит версионированное измерение продуктов
// (SCD Type 2). Измерение append-only: версии только добавляются или
// закрываются, никогда не удаляются и не переписываются задним числом.
type ProductSCDBuilder struct {
	logger *utils.ETLLogger
}

// NewProductSCDBuilder создает новый экземпляр ProductSCDBuilder
func NewProductSCDBuilder(logger *utils.ETLLogger) *ProductSCDBuilder {
	return &ProductSCDBuilder{logger: logger}
}

// Build сверяет входящие версии продуктов с прежним состоянием измерения
// и вычисляет изменение: какие версии добавить и какие закрыть.
//
// Версию идентифицирует пара (бизнес-ключ, дата начала действия).
// Интервалы действия вычисляются явной сортировкой версий по дате начала:
// конец версии i — день перед началом версии i+1; у последней версии
// конец открыт и is_current = true. Версия с неизвестной датой начала
// считается самой ранней для своего ключа (сентинельный порядок).
func (b *ProductSCDBuilder) Build(products []models.MergedProduct, prior []models.DimProductVersion) *models.ProductDimensionDelta {
	startTime := time.Now()
	b.logger.LogStageStart("Build dim_products (SCD Type 2)")

	// Прежнее состояние индексируется по идентичности версии;
	// суррогатные ключи уже сохраненных версий не изменяются
	priorByIdentity := make(map[string]models.DimProductVersion, len(prior))
	maxKey := 0
	for _, v := range prior {
		priorByIdentity[versionIdentity(v.ProductNumber, v.EffectiveStart)] = v
		if v.ProductKey > maxKey {
			maxKey = v.ProductKey
		}
	}

	desired := b.desiredVersions(products)

	delta := &models.ProductDimensionDelta{}
	consumed := make(map[string]bool, len(desired))
	keysInSnapshot := make(map[string]bool)

	for _, v := range desired {
		identity := versionIdentity(v.ProductNumber, v.EffectiveStart)
		consumed[identity] = true
		keysInSnapshot[v.ProductNumber] = true

		if existing, ok := priorByIdentity[identity]; ok {
			// Уже сохраненная версия: атрибуты остаются прежними,
			// меняться может только интервал действия
			updated := existing
			updated.EffectiveEnd = v.EffectiveEnd
			updated.IsCurrent = v.IsCurrent
			if !sameInterval(existing, updated) {
				delta.Closes = append(delta.Closes, updated)
			}
			delta.Versions = append(delta.Versions, updated)
			continue
		}

		maxKey++
		v.ProductKey = maxKey
		delta.Inserts = append(delta.Inserts, v)
		delta.Versions = append(delta.Versions, v)
	}

	// Прежние версии, отсутствующие во входящем срезе, сохраняются.
	// Открытая прежняя версия ключа, который есть в срезе, закрывается,
	// иначе у ключа окажется две текущие версии.
	for _, v := range prior {
		identity := versionIdentity(v.ProductNumber, v.EffectiveStart)
		if consumed[identity] {
			continue
		}

		if v.IsCurrent && keysInSnapshot[v.ProductNumber] {
			closed := v
			closed.IsCurrent = false
			closed.EffectiveEnd = dayBefore(earliestStartAfter(desired, v))
			delta.Closes = append(delta.Closes, closed)
			delta.Versions = append(delta.Versions, closed)
			continue
		}

		delta.Versions = append(delta.Versions, v)
	}

	b.logger.LogStageComplete("Build dim_products", time.Since(startTime))
	b.logger.Info("Измерение продуктов: %d версий всего, %d новых, %d закрыто",
		len(delta.Versions), len(delta.Inserts), len(delta.Closes))

	return delta
}

// desiredVersions строит желаемый список версий из входящего среза:
// группировка по бизнес-ключу, явная сортировка по дате начала,
// назначение интервалов действия просмотром отсортированного списка
func (b *ProductSCDBuilder) desiredVersions(products []models.MergedProduct) []models.DimProductVersion {
	byKey := make(map[string][]models.MergedProduct)
	for _, p := range products {
		byKey[p.SalesKey] = append(byKey[p.SalesKey], p)
	}

	// Порядок обхода ключей фиксируется для детерминированного
	// назначения суррогатных ключей новым версиям
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var desired []models.DimProductVersion

	for _, key := range keys {
		versions := byKey[key]
		sort.Slice(versions, func(i, j int) bool {
			return versionLess(versions[i], versions[j])
		})

		for i, p := range versions {
			v := models.DimProductVersion{
				ProductID:      p.ID,
				ProductNumber:  p.SalesKey,
				ProductName:    p.Name,
				CategoryID:     p.CategoryID,
				Category:       p.Category,
				Subcategory:    p.Subcategory,
				Maintenance:    p.Maintenance,
				Cost:           p.Cost,
				ProductLine:    p.Line,
				EffectiveStart: p.StartDate,
			}

			if i < len(versions)-1 {
				v.EffectiveEnd = dayBefore(versions[i+1].StartDate)
			} else {
				// Последняя версия ключа открыта
				v.IsCurrent = true
			}

			desired = append(desired, v)
		}
	}

	return desired
}

// versionLess упорядочивает версии одного ключа по дате начала;
// неизвестная дата сортируется раньше любой известной (сентинель),
// при равенстве — по порядку поступления из источника
func versionLess(a, b models.MergedProduct) bool {
	switch {
	case a.StartDate == nil && b.StartDate == nil:
		return a.SourceRow < b.SourceRow
	case a.StartDate == nil:
		return true
	case b.StartDate == nil:
		return false
	case a.StartDate.Equal(*b.StartDate):
		return a.SourceRow < b.SourceRow
	default:
		return a.StartDate.Before(*b.StartDate)
	}
}

// versionIdentity возвращает идентичность версии (бизнес-ключ, дата начала)
func versionIdentity(productNumber string, start *time.Time) string {
	if start == nil {
		return productNumber + "|unknown"
	}
	return productNumber + "|" + start.Format("2006-01-02")
}

// sameInterval сообщает, совпадают ли интервалы действия двух версий
func sameInterval(a, b models.DimProductVersion) bool {
	if a.IsCurrent != b.IsCurrent {
		return false
	}
	switch {
	case a.EffectiveEnd == nil && b.EffectiveEnd == nil:
		return true
	case a.EffectiveEnd == nil || b.EffectiveEnd == nil:
		return false
	default:
		return a.EffectiveEnd.Equal(*b.EffectiveEnd)
	}
}

// dayBefore возвращает день перед указанной датой
func dayBefore(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := t.AddDate(0, 0, -1)
	return &d
}

// earliestStartAfter возвращает самую раннюю дату начала среди желаемых
// версий того же ключа, начинающихся после указанной версии
func earliestStartAfter(desired []models.DimProductVersion, v models.DimProductVersion) *time.Time {
	var earliest *time.Time
	for _, d := range desired {
		if d.ProductNumber != v.ProductNumber || d.EffectiveStart == nil {
			continue
		}
		if v.EffectiveStart != nil && !d.EffectiveStart.After(*v.EffectiveStart) {
			continue
		}
		if earliest == nil || d.EffectiveStart.Before(*earliest) {
			earliest = d.EffectiveStart
		}
	}
	return earliest
}
