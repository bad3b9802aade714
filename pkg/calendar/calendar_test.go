package calendar

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	cases := []struct {
		year, month int
		start, end  string
	}{
		{2025, 1, "2025-01-01", "2025-01-31"},
		{2025, 2, "2025-02-01", "2025-02-28"},
		{2024, 2, "2024-02-01", "2024-02-29"},
		{2025, 12, "2025-12-01", "2025-12-31"},
	}

	for _, tc := range cases {
		if got := FormatDate(MonthStart(tc.year, tc.month)); got != tc.start {
			t.Errorf("MonthStart(%d, %d) = %s, ожидалось %s", tc.year, tc.month, got, tc.start)
		}
		if got := FormatDate(MonthEnd(tc.year, tc.month)); got != tc.end {
			t.Errorf("MonthEnd(%d, %d) = %s, ожидалось %s", tc.year, tc.month, got, tc.end)
		}
	}
}

func TestIsPastMonth(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	if !IsPastMonth(2025, 5, now) {
		t.Error("май 2025 должен быть прошедшим месяцем")
	}
	if IsPastMonth(2025, 6, now) {
		t.Error("текущий месяц не является прошедшим")
	}
	if IsPastMonth(2025, 7, now) {
		t.Error("июль 2025 не является прошедшим месяцем")
	}
	if !IsPastMonth(2024, 12, now) {
		t.Error("декабрь 2024 должен быть прошедшим месяцем")
	}
}

func TestIsPastOrToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)

	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	if !IsPastOrToday(yesterday, now) {
		t.Error("вчерашняя дата должна считаться прошедшей")
	}
	if !IsPastOrToday(today, now) {
		t.Error("сегодняшняя дата должна считаться нередактируемой")
	}
	if IsPastOrToday(tomorrow, now) {
		t.Error("завтрашняя дата должна быть редактируемой")
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 6, 15, 8, 5, 0, 0, time.UTC)
	if got := FormatTime(ts); got != "08:05" {
		t.Errorf("FormatTime = %s, ожидалось 08:05", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Errorf("дата должна быть полуночью UTC, получено %v", d)
	}

	if _, err := ParseDate("15.06.2025"); err == nil {
		t.Error("ожидалась ошибка для неверного формата даты")
	}
}
