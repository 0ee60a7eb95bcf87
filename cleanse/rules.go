package cleanse

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Стандартное значение для пустых или нераспознанных категориальных полей
const notAvailable = "n/a"

// Нижняя граница допустимой даты рождения
var minBirthdate = time.Date(1924, 1, 1, 0, 0, 0, 0, time.UTC)

// trimValue возвращает значение поля с обрезанными пробелами;
// nil превращается в пустую строку
func trimValue(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

// parseInt приводит сырое строковое поле к целому числу
func parseInt(v *string) (int, bool) {
	s := trimValue(v)
	if s == "" {
		return 0, false
	}

	n, err := cast.ToIntE(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDecimal приводит сырое строковое поле к десятичному числу
func parseDecimal(v *string) (decimal.Decimal, bool) {
	s := trimValue(v)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseDate приводит сырое строковое поле к дате.
// Некорректная дата — восстановимый дефект: поле обнуляется, запись остается.
func parseDate(v *string) *time.Time {
	s := trimValue(v)
	if s == "" {
		return nil
	}

	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}
	return nil
}

// parseYYYYMMDD приводит целочисленную кодировку даты YYYYMMDD к дате.
// Ноль, неверная длина или некорректная кодировка — null.
func parseYYYYMMDD(v *string) *time.Time {
	s := trimValue(v)
	if s == "" || s == "0" || len(s) != 8 {
		return nil
	}

	if _, err := cast.ToIntE(s); err != nil {
		return nil
	}

	t, err := time.Parse("20060102", s)
	if err != nil {
		return nil
	}

	t = t.UTC()
	return &t
}

// normalizeGender стандартизирует значение пола к {Male, Female, n/a}
func normalizeGender(v *string) string {
	switch strings.ToUpper(trimValue(v)) {
	case "M", "MALE":
		return "Male"
	case "F", "FEMALE":
		return "Female"
	default:
		return notAvailable
	}
}

// normalizeMaritalStatus стандартизирует семейное положение к {Single, Married, n/a}
func normalizeMaritalStatus(v *string) string {
	switch strings.ToUpper(trimValue(v)) {
	case "S":
		return "Single"
	case "M":
		return "Married"
	default:
		return notAvailable
	}
}

// normalizeProductLine расшифровывает код продуктовой линейки
func normalizeProductLine(v *string) string {
	switch strings.ToUpper(trimValue(v)) {
	case "M":
		return "Mountain"
	case "R":
		return "Road"
	case "S":
		return "Other Sales"
	case "T":
		return "Touring"
	default:
		return notAvailable
	}
}

// normalizeCountry приводит известные сокращения стран к каноническому
// названию; нераспознанные непустые значения проходят без изменений
func normalizeCountry(v *string) string {
	s := trimValue(v)
	switch strings.ToUpper(s) {
	case "DE":
		return "Germany"
	case "US", "USA":
		return "United States"
	case "":
		return notAvailable
	default:
		return s
	}
}

// normalizeMaintenance стандартизирует флаг обслуживания к {Yes, No}
func normalizeMaintenance(v *string) string {
	s := trimValue(v)
	switch strings.ToUpper(s) {
	case "Y", "YES":
		return "Yes"
	case "N", "NO":
		return "No"
	default:
		return s
	}
}

// normalizeBirthdate обнуляет даты рождения вне допустимого диапазона
// [1924-01-01, сегодня]
func normalizeBirthdate(t *time.Time, now time.Time) *time.Time {
	if t == nil {
		return nil
	}
	if t.Before(minBirthdate) || t.After(now) {
		return nil
	}
	return t
}
