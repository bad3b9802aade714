package calendar

import "time"

// Все функции пакета работают строго в UTC, чтобы исключить дрейф
// локального времени при сравнении дат.

// MonthStart возвращает первый день месяца (месяц 1-индексированный).
func MonthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd возвращает последний календарный день месяца.
func MonthEnd(year, month int) time.Time {
	return MonthStart(year, month).AddDate(0, 1, -1)
}

// DayStart обнуляет время до полуночи UTC.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsPastMonth сообщает, предшествует ли месяц текущему месяцу now.
func IsPastMonth(year, month int, now time.Time) bool {
	now = now.UTC()
	current := MonthStart(now.Year(), int(now.Month()))
	return MonthStart(year, month).Before(current)
}

// IsPastOrToday сообщает, что дата не строго позже сегодняшнего дня.
// Сегодняшний день считается нередактируемым.
func IsPastOrToday(date, now time.Time) bool {
	tomorrow := DayStart(now).AddDate(0, 0, 1)
	return DayStart(date).Before(tomorrow)
}

// FormatDate — YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// FormatTime — HH:MM.
func FormatTime(t time.Time) string {
	return t.UTC().Format("15:04")
}

// ParseDate разбирает дату в формате YYYY-MM-DD как полночь UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
