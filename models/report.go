package models

import (
	"sync"
	"time"
)

// Виды предупреждений о качестве данных
const (
	WarningDuplicateKey        = "duplicate_key"
	WarningUnresolvedReference = "unresolved_reference"
)

// Warning представляет предупреждение о качестве данных, обнаруженное
// во время запуска. Предупреждения не останавливают конвейер: запись
// обрабатывается по принципу "лучшее из возможного" и попадает в отчет.
type Warning struct {
	Kind   string `json:"kind"`
	Entity string `json:"entity"`
	Key    string `json:"key"`
	Detail string `json:"detail,omitempty"`
}

// EntityCounts содержит счетчики обработки по одной сущности
type EntityCounts struct {
	Extracted int `json:"extracted"`
	Cleansed  int `json:"cleansed"`
	Rejected  int `json:"rejected"`
}

// RunReport агрегирует все нефатальные условия одного запуска:
// счетчики по сущностям, отбракованные записи и предупреждения
// о качестве данных. Отчет сериализуется в журнал запусков.
type RunReport struct {
	RunID      string                   `json:"run_id"`
	StartTime  time.Time                `json:"start_time"`
	EndTime    time.Time                `json:"end_time"`
	Counts     map[string]*EntityCounts `json:"counts"`
	Rejections []Rejection              `json:"rejections"`
	Warnings   []Warning                `json:"warnings"`

	mu sync.Mutex
}

// NewRunReport создает пустой отчет для нового запуска
func NewRunReport(runID string, startTime time.Time) *RunReport {
	return &RunReport{
		RunID:     runID,
		StartTime: startTime,
		Counts:    make(map[string]*EntityCounts),
	}
}

// CountsFor возвращает счетчики для сущности, создавая их при первом обращении
func (r *RunReport) CountsFor(entity string) *EntityCounts {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.Counts[entity]
	if !ok {
		c = &EntityCounts{}
		r.Counts[entity] = c
	}
	return c
}

// RecordCounts записывает счетчики очистки по сущности.
// Метод безопасен для вызова из параллельных фаз очистки.
func (r *RunReport) RecordCounts(entity string, extracted, cleansed, rejected int) {
	c := r.CountsFor(entity)

	r.mu.Lock()
	defer r.mu.Unlock()
	c.Extracted = extracted
	c.Cleansed = cleansed
	c.Rejected = rejected
}

// AddRejection добавляет отбракованную запись в отчет
func (r *RunReport) AddRejection(rej Rejection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rejections = append(r.Rejections, rej)
}

// AddWarning добавляет предупреждение о качестве данных в отчет
func (r *RunReport) AddWarning(w Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, w)
}

// TotalRejected возвращает общее число отбракованных записей
func (r *RunReport) TotalRejected() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Rejections)
}

// TotalWarnings возвращает общее число предупреждений
func (r *RunReport) TotalWarnings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Warnings)
}
