// Package datecalc содержит календарную арифметику с учетом таймзоны филиала.
// "Сегодня" и "завтра" всегда вычисляются в зоне филиала, а не сервера:
// филиал на Гавайях и филиал в Нью-Йорке живут в разных календарных датах.
package datecalc

import (
	"fmt"
	"time"
)

// DateOnly обнуляет компоненту времени, оставляя только календарную дату (UTC)
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TodayIn возвращает календарную дату "сейчас" в указанной IANA-зоне
func TodayIn(now time.Time, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("datecalc: unknown time zone %q: %w", zone, err)
	}
	return DateOnly(now.In(loc)), nil
}

// TomorrowIn возвращает календарную дату "завтра" в указанной IANA-зоне
func TomorrowIn(now time.Time, zone string) (time.Time, error) {
	today, err := TodayIn(now, zone)
	if err != nil {
		return time.Time{}, err
	}
	return today.AddDate(0, 0, 1), nil
}

// SameDate проверяет, что две даты относятся к одному календарному дню
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
