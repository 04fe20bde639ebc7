// Package keyboard строит reply клавиатуры для шагов диалога
package keyboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/polifinder/classroom_bot/internal/controller/i18n"
	"github.com/polifinder/classroom_bot/internal/occupancy"
	"github.com/polifinder/classroom_bot/internal/staticdata"
)

// DateLayout формат дат на кнопках и во вводе пользователя
const DateLayout = "02/01/2006"

// Количество дат после "сегодня" и "завтра" на клавиатуре дня
const extraDays = 5

// Builder строит клавиатуры из каталога текстов и справочника кампусов
type Builder struct {
	texts     *i18n.Catalog
	locations staticdata.Locations
}

// NewBuilder создаёт построитель клавиатур
func NewBuilder(texts *i18n.Catalog, locations staticdata.Locations) *Builder {
	return &Builder{texts: texts, locations: locations}
}

// Initial клавиатура главного меню
func (b *Builder) Initial(lang string) *models.ReplyKeyboardMarkup {
	return markup([][]models.KeyboardButton{
		{button(b.texts.Label(lang, "search")), button(b.texts.Label(lang, "now"))},
		{button(b.texts.Label(lang, "preferences"))},
	}, false)
}

// Campuses клавиатура выбора кампуса
func (b *Builder) Campuses(lang string) *models.ReplyKeyboardMarkup {
	names := make([]string, 0, len(b.locations))
	for name := range b.locations {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]models.KeyboardButton, 0, len(names)+1)
	for _, name := range names {
		rows = append(rows, []models.KeyboardButton{button(name)})
	}
	rows = append(rows, []models.KeyboardButton{button(b.texts.Label(lang, "cancel"))})

	return markup(rows, true)
}

// Sites клавиатура выбора сайта внутри кампуса,
// с кнопкой поиска по всему кампусу
func (b *Builder) Sites(lang, campusName string) *models.ReplyKeyboardMarkup {
	rows := [][]models.KeyboardButton{
		{button(b.texts.Label(lang, "all_buildings"))},
	}

	names := make([]string, 0, len(b.locations[campusName].Sites))
	for name := range b.locations[campusName].Sites {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rows = append(rows, []models.KeyboardButton{button(name)})
	}
	rows = append(rows, []models.KeyboardButton{button(b.texts.Label(lang, "cancel"))})

	return markup(rows, true)
}

// Days клавиатура выбора дня: сегодня, завтра и ближайшие даты
func (b *Builder) Days(lang string, now time.Time) *models.ReplyKeyboardMarkup {
	rows := [][]models.KeyboardButton{
		{button(b.texts.Label(lang, "today")), button(b.texts.Label(lang, "tomorrow"))},
	}

	var row []models.KeyboardButton
	for i := 2; i < 2+extraDays; i++ {
		row = append(row, button(now.AddDate(0, 0, i).Format(DateLayout)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return markup(rows, true)
}

// StartHours клавиатура часа начала поиска
func (b *Builder) StartHours() *models.ReplyKeyboardMarkup {
	return hoursMarkup(int(occupancy.MinHour), int(occupancy.MaxHour)-1)
}

// EndHours клавиатура часа конца поиска, строго после startHour
func (b *Builder) EndHours(startHour float64) *models.ReplyKeyboardMarkup {
	return hoursMarkup(int(startHour)+1, int(occupancy.MaxHour))
}

// Preferences клавиатура меню настроек
func (b *Builder) Preferences(lang string) *models.ReplyKeyboardMarkup {
	return markup([][]models.KeyboardButton{
		{button(b.texts.Label(lang, "language")), button(b.texts.Label(lang, "campus"))},
		{button(b.texts.Label(lang, "time")), button(b.texts.Label(lang, "format"))},
		{button(b.texts.Label(lang, "cancel"))},
	}, false)
}

// Languages клавиатура выбора языка
func (b *Builder) Languages() *models.ReplyKeyboardMarkup {
	var row []models.KeyboardButton
	for _, lang := range b.texts.Languages() {
		row = append(row, button(lang))
	}
	return markup([][]models.KeyboardButton{row}, true)
}

// Durations клавиатура длительности быстрого поиска в часах
func (b *Builder) Durations() *models.ReplyKeyboardMarkup {
	return markup([][]models.KeyboardButton{
		{button("1"), button("2"), button("3"), button("4")},
	}, true)
}

// Formats клавиатура формата вывода
func (b *Builder) Formats(lang string) *models.ReplyKeyboardMarkup {
	return markup([][]models.KeyboardButton{
		{button(b.texts.Label(lang, "format_text")), button(b.texts.Label(lang, "format_emoji"))},
	}, true)
}

func hoursMarkup(from, to int) *models.ReplyKeyboardMarkup {
	var rows [][]models.KeyboardButton
	var row []models.KeyboardButton

	for h := from; h <= to; h++ {
		row = append(row, button(fmt.Sprintf("%d", h)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return markup(rows, true)
}

func button(text string) models.KeyboardButton {
	return models.KeyboardButton{Text: text}
}

func markup(rows [][]models.KeyboardButton, oneTime bool) *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:        rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: oneTime,
	}
}
