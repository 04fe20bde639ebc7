package model

// FreeRoom свободная аудитория в результате поиска.
// Until - дробный час, до которого аудитория остаётся свободной,
// ограничен временем закрытия здания.
type FreeRoom struct {
	Name     string  `json:"name"`
	Link     string  `json:"link"`
	Until    float64 `json:"until"`
	HasPower bool    `json:"power_plugs"`
}
