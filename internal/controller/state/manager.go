package state

import (
	"sync"
	"time"
)

// Step шаг диалога, в котором находится пользователь
type Step string

const (
	StepNone        Step = "" // Главное меню, нет активного диалога
	StepCampus      Step = "campus"
	StepSite        Step = "site"
	StepDay         Step = "day"
	StepStartTime   Step = "start_time"
	StepEndTime     Step = "end_time"
	StepSettings    Step = "settings"
	StepSetLanguage Step = "set_language"
	StepSetCampus   Step = "set_campus"
	StepSetDuration Step = "set_duration"
	StepSetFormat   Step = "set_format"
)

// Search накопленный выбор пользователя в диалоге поиска
type Search struct {
	CampusName string    // Название кампуса, в котором выбирается сайт
	Location   string    // Код кампуса или сайта для запроса к источнику
	Date       time.Time // Выбранный день
	StartHour  float64
}

type session struct {
	step   Step
	search Search
}

// Manager хранит состояния диалогов пользователей.
// Состояние живёт в памяти и теряется при перезапуске,
// предпочтения при этом остаются в базе.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*session
}

// NewManager создаёт менеджер состояний
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*session)}
}

// Step возвращает текущий шаг диалога пользователя
func (m *Manager) Step(telegramID int64) Step {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[telegramID]; ok {
		return s.step
	}
	return StepNone
}

// SetStep переводит пользователя на другой шаг диалога
func (m *Manager) SetStep(telegramID int64, step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if step == StepNone {
		delete(m.sessions, telegramID)
		return
	}

	if s, ok := m.sessions[telegramID]; ok {
		s.step = step
		return
	}
	m.sessions[telegramID] = &session{step: step}
}

// Search возвращает копию накопленного выбора пользователя
func (m *Manager) Search(telegramID int64) Search {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[telegramID]; ok {
		return s.search
	}
	return Search{}
}

// UpdateSearch изменяет накопленный выбор пользователя
func (m *Manager) UpdateSearch(telegramID int64, update func(*Search)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[telegramID]
	if !ok {
		s = &session{}
		m.sessions[telegramID] = s
	}
	update(&s.search)
}

// Reset сбрасывает диалог пользователя в главное меню
func (m *Manager) Reset(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, telegramID)
}
