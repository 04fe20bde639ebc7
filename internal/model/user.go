package model

import "time"

// Форматы вывода списка аудиторий
const (
	FormatText  = "text"
	FormatEmoji = "emoji"
)

// Значения предпочтений по умолчанию
const (
	DefaultLanguage = "en"
	DefaultDuration = 2
)

// User пользователь бота с его предпочтениями для быстрого поиска
type User struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	Language     string    `json:"language"`
	Campus       string    `json:"campus"`   // Код кампуса для быстрого поиска, пустой если не задан
	Duration     int       `json:"duration"` // Длительность быстрого поиска в часах
	OutputFormat string    `json:"output_format"`
	CreatedAt    time.Time `json:"created_at"`
}
