package model

import (
	"encoding/json"
	"fmt"
)

// OpeningWindow часы работы здания для одной группы дней недели.
// В JSON кодируется парой [open, close].
type OpeningWindow struct {
	Open  float64
	Close float64
}

// UnmarshalJSON декодирует окно из пары [open, close]
func (w *OpeningWindow) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode opening window: %w", err)
	}
	if pair[1] < pair[0] {
		return fmt.Errorf("opening window closes before it opens: [%v, %v]", pair[0], pair[1])
	}
	w.Open = pair[0]
	w.Close = pair[1]
	return nil
}

// MarshalJSON кодирует окно парой [open, close]
func (w OpeningWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{w.Open, w.Close})
}

// WeekdayWindows окна работы по группам дней недели.
// Ключи: "0-4" для будней, "5" для субботы, "6" для воскресенья.
// Отсутствие ключа означает, что здание закрыто весь день.
type WeekdayWindows map[string]OpeningWindow

// HoursRule правило для зданий, чьё название содержит Match
type HoursRule struct {
	Match string         `json:"match"`
	Hours WeekdayWindows `json:"hours"`
}

// CampusRule часы работы зданий одного кампуса.
// Rules проверяются по порядку, выигрывает первое совпадение подстроки;
// Default применяется, когда ни одно правило не совпало.
type CampusRule struct {
	Rules   []HoursRule    `json:"rules"`
	Default WeekdayWindows `json:"default"`
}
