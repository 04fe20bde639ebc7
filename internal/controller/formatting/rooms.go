// Package formatting превращает результаты поиска в текст сообщений
// Telegram: форматирование времени, строк аудиторий и разбиение
// длинного списка на несколько сообщений.
package formatting

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/polifinder/classroom_bot/internal/model"
)

// maxMessageLength лимит Telegram на длину одного сообщения
const maxMessageLength = 4096

// Зазор, при котором начинаем новое сообщение, чтобы строка
// очередного здания гарантированно поместилась
const splitMargin = 50

// FormatTime переводит дробные часы в строку HH:MM (15.25 -> "15:15")
func FormatTime(hour float64) string {
	h := int(hour)
	m := int((hour - float64(h)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// formatHour печатает дробный час без лишних нулей (20 -> "20", 13.5 -> "13.5")
func formatHour(hour float64) string {
	return strconv.FormatFloat(hour, 'f', -1, 64)
}

// FormatRoom форматирует строку одной аудитории.
// В текстовом режиме час печатается числом, в emoji режиме как HH:MM.
func FormatRoom(room model.FreeRoom, mode, untilText string) string {
	if mode == model.FormatEmoji {
		// Идеографический пробел вместо отсутствующей розетки,
		// обычный слишком узкий рядом с emoji
		plug := "　"
		if room.HasPower {
			plug = "🔌"
		}
		return fmt.Sprintf(" <a href=\"%s\">%s</a> %s 🕒 ➜ %s\n",
			room.Link, centerPad(room.Name, 10), plug, FormatTime(room.Until))
	}

	plug := ""
	if room.HasPower {
		plug = "🔌"
	}
	return fmt.Sprintf(" <a href=\"%s\">%s</a> (%s %s) %s\n",
		room.Link, centerPad(room.Name, 10), untilText, formatHour(room.Until), plug)
}

// BuildMessages собирает список свободных аудиторий по зданиям
// в сообщения, не превышающие лимит Telegram. Здания идут
// в алфавитном порядке для стабильного вывода.
func BuildMessages(freeRooms map[string][]model.FreeRoom, mode, untilText string) []string {
	if len(freeRooms) == 0 {
		return nil
	}

	buildings := make([]string, 0, len(freeRooms))
	for building := range freeRooms {
		buildings = append(buildings, building)
	}
	sort.Strings(buildings)

	var messages []string
	var current strings.Builder

	for _, building := range buildings {
		if maxMessageLength-current.Len() <= splitMargin {
			messages = append(messages, current.String())
			current.Reset()
		}

		current.WriteString(fmt.Sprintf("\n<b>%s</b>\n", building))
		for _, room := range freeRooms[building] {
			line := FormatRoom(room, mode, untilText)
			if current.Len()+len(line) >= maxMessageLength {
				messages = append(messages, current.String())
				current.Reset()
			}
			current.WriteString(line)
		}
	}

	if current.Len() > 0 {
		messages = append(messages, current.String())
	}

	return messages
}

// centerPad центрирует название аудитории в поле фиксированной ширины
func centerPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
