// Package staticdata загружает статические справочники бота:
// список кампусов, аудитории с розетками и часы работы зданий.
// Все данные читаются один раз при старте и дальше не меняются.
package staticdata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/polifinder/classroom_bot/internal/model"
)

// GarbageRooms коды аудиторий, которых физически не существует,
// но которые встречаются в таблице занятости
var GarbageRooms = []string{"PROVA_ASICT", "2.2.1-D.I."}

// Campus один кампус: код для запросов и его подразделения
type Campus struct {
	Code  string            `json:"code"`
	Sites map[string]string `json:"sedi"` // название сайта -> код
}

// Locations справочник кампусов, ключ - отображаемое название
type Locations map[string]Campus

// LoadLocations читает справочник кампусов из JSON файла
func LoadLocations(path string) (Locations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	var locations Locations
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, fmt.Errorf("parse locations file: %w", err)
	}

	return locations, nil
}

// CodeFor возвращает код кампуса или подразделения по его названию
func (l Locations) CodeFor(name string) (string, bool) {
	if campus, ok := l[name]; ok {
		return campus.Code, true
	}
	for _, campus := range l {
		if code, ok := campus.Sites[name]; ok {
			return code, true
		}
	}
	return "", false
}

// PowerIndex множество числовых идентификаторов аудиторий с розетками
type PowerIndex struct {
	ids map[int]struct{}
}

// NewPowerIndex строит индекс из списка идентификаторов
func NewPowerIndex(ids []int) *PowerIndex {
	index := &PowerIndex{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		index.ids[id] = struct{}{}
	}
	return index
}

// LoadPowerIndex читает список идентификаторов из JSON файла.
// Файл генерируется отдельным инструментом и периодически обновляется.
func LoadPowerIndex(path string) (*PowerIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read power index file: %w", err)
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parse power index file: %w", err)
	}

	return NewPowerIndex(ids), nil
}

// HasPower сообщает, есть ли в аудитории розетки.
// Безопасен для nil: без индекса все аудитории считаются без розеток.
func (p *PowerIndex) HasPower(id int) bool {
	if p == nil {
		return false
	}
	_, ok := p.ids[id]
	return ok
}

// OpeningHours часы работы зданий по кодам кампусов.
// Ключ "default_campus" применяется для кампусов без собственного правила.
type OpeningHours map[string]*model.CampusRule

// LoadOpeningHours читает часы работы из JSON файла.
// Отсутствие файла не является ошибкой: без него считается,
// что все здания открыты без ограничений.
func LoadOpeningHours(path string) (OpeningHours, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read opening hours file: %w", err)
	}

	var hours OpeningHours
	if err := json.Unmarshal(data, &hours); err != nil {
		return nil, fmt.Errorf("parse opening hours file: %w", err)
	}

	return hours, nil
}
