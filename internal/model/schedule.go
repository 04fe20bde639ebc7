package model

// Lesson занятое время в аудитории, полуоткрытый интервал [From, To).
// Время хранится в дробных часах с шагом в четверть часа (9.25 = 09:15).
type Lesson struct {
	Name string  `json:"name"`
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// Room аудитория с её занятиями на один день.
// Lessons хранятся в порядке появления в исходной таблице,
// сортировка по времени не гарантируется.
type Room struct {
	Name     string   `json:"name"`
	Link     string   `json:"link"`
	HasPower bool     `json:"power_plugs"`
	Lessons  []Lesson `json:"lessons"`
}

// Building набор аудиторий одного здания, ключ - код аудитории
type Building map[string]*Room

// Schedule расписание занятости для одной пары (кампус, дата),
// ключ - название здания. После построения не изменяется.
type Schedule map[string]Building

// Rooms возвращает общее количество аудиторий в расписании
func (s Schedule) Rooms() int {
	total := 0
	for _, building := range s {
		total += len(building)
	}
	return total
}
