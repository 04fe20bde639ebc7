package handlers

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/polifinder/classroom_bot/internal/controller/keyboard"
	"github.com/polifinder/classroom_bot/internal/occupancy"
)

// Дата принимается как дд/мм/гггг с разделителями . / -, год можно
// двумя цифрами
var dateRegex = regexp.MustCompile(`^(0?[1-9]|[12][0-9]|3[01])[./-](0?[1-9]|1[0-2])[./-]([0-9]{4}|[0-9]{2})$`)

// Дальше этого количества дней вперёд источник расписания не заполнен
const maxDaysAhead = 6

// parseDay разбирает выбор дня: кнопки "сегодня"/"завтра" на любом
// языке или дата в пределах ближайшей недели
func (h *Handlers) parseDay(message string) (time.Time, bool) {
	now := h.localNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.timezone)

	if action, ok := h.texts.ActionFor(message); ok {
		switch action {
		case "today":
			return today, true
		case "tomorrow":
			return today.AddDate(0, 0, 1), true
		}
	}

	groups := dateRegex.FindStringSubmatch(message)
	if groups == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(groups[1])
	month, _ := strconv.Atoi(groups[2])
	year, _ := strconv.Atoi(groups[3])
	if year < 100 {
		year += 2000
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, h.timezone)
	// time.Date нормализует несуществующие даты вроде 31/02
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, false
	}

	if date.Before(today) || date.After(today.AddDate(0, 0, maxDaysAhead)) {
		return time.Time{}, false
	}

	return date, true
}

// parseStartHour разбирает час начала поиска
func parseStartHour(message string) (float64, bool) {
	hour, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil {
		return 0, false
	}
	if float64(hour) < occupancy.MinHour || float64(hour) >= occupancy.MaxHour {
		return 0, false
	}
	return float64(hour), true
}

// parseEndHour разбирает час конца поиска, строго после начала
func parseEndHour(message string, startHour float64) (float64, bool) {
	hour, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil {
		return 0, false
	}
	if float64(hour) <= startHour || float64(hour) > occupancy.MaxHour {
		return 0, false
	}
	return float64(hour), true
}

// parseDuration разбирает длительность быстрого поиска в часах
func parseDuration(message string) (int, bool) {
	duration, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil || duration < 1 || duration > 8 {
		return 0, false
	}
	return duration, true
}

// formatDay печатает дату для кнопок и логов
func formatDay(date time.Time) string {
	return date.Format(keyboard.DateLayout)
}
