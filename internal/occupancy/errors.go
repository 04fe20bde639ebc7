package occupancy

import (
	"errors"
	"fmt"
)

// ErrSourceFormat возвращается, когда страница занятости получена,
// но ожидаемая структура таблицы в ней отсутствует
var ErrSourceFormat = errors.New("occupancy page layout not recognized")

// TransportError ошибка сети или HTTP при обращении к источнику
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("occupancy source unreachable: %v", e.Err)
	}
	return fmt.Sprintf("occupancy source returned status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
