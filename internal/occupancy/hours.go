package occupancy

import (
	"strconv"
	"strings"
	"time"

	"github.com/polifinder/classroom_bot/internal/model"
	"github.com/polifinder/classroom_bot/internal/staticdata"
)

// DefaultCampusKey правило для кампусов без собственной записи
const DefaultCampusKey = "default_campus"

// HoursResolver отвечает на вопрос, когда здание открыто в данную дату.
// Чистый поиск по неизменяемой таблице правил, безопасен для
// одновременных вызовов.
type HoursResolver struct {
	rules staticdata.OpeningHours
}

// NewHoursResolver создаёт резолвер часов работы.
// При nil таблице все здания считаются открытыми без ограничений.
func NewHoursResolver(rules staticdata.OpeningHours) *HoursResolver {
	return &HoursResolver{rules: rules}
}

// WindowFor возвращает окно работы здания в указанную дату.
// Второе значение false означает, что здание в этот день закрыто.
func (r *HoursResolver) WindowFor(location, buildingName string, date time.Time) (model.OpeningWindow, bool) {
	rule := r.campusRule(location)
	if rule == nil {
		// Правил нет вовсе: ограничений по часам не накладываем
		return model.OpeningWindow{Open: 0, Close: MaxHour}, true
	}

	windows := rule.Default
	for _, entry := range rule.Rules {
		if strings.Contains(buildingName, entry.Match) {
			windows = entry.Hours
			break
		}
	}

	window, ok := windows[weekdayGroup(date)]
	return window, ok
}

func (r *HoursResolver) campusRule(location string) *model.CampusRule {
	if rule, ok := r.rules[location]; ok {
		return rule
	}
	return r.rules[DefaultCampusKey]
}

// weekdayGroup возвращает ключ группы дней недели: будни
// объединены в "0-4", суббота и воскресенье отдельно
// (понедельник = 0, воскресенье = 6)
func weekdayGroup(date time.Time) string {
	day := (int(date.Weekday()) + 6) % 7
	if day <= 4 {
		return "0-4"
	}
	return strconv.Itoa(day)
}
