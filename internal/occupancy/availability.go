package occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/polifinder/classroom_bot/internal/model"
)

// Availability вычисляет свободные аудитории по кэшированному
// расписанию и часам работы зданий. Сам по себе не ходит в сеть:
// все загрузки делегируются кэшу.
type Availability struct {
	cache *ScheduleCache
	hours *HoursResolver
}

// NewAvailability создаёт калькулятор свободных аудиторий
func NewAvailability(cache *ScheduleCache, hours *HoursResolver) *Availability {
	return &Availability{cache: cache, hours: hours}
}

// FindFreeRooms возвращает аудитории, свободные в интервале
// [startHour, endHour) в указанную дату, сгруппированные по зданиям.
// Здания, закрытые в этот день или не пересекающиеся с запрошенным
// интервалом, пропускаются целиком. Здания без свободных аудиторий
// в результат не попадают.
func (a *Availability) FindFreeRooms(ctx context.Context, startHour, endHour float64, location string, day, month, year int) (map[string][]model.FreeRoom, error) {
	schedule, err := a.cache.Get(ctx, location, day, month, year)
	if err != nil {
		return nil, fmt.Errorf("get schedule for %s: %w", location, err)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	freeRooms := make(map[string][]model.FreeRoom)

	for buildingName, building := range schedule {
		window, open := a.hours.WindowFor(location, buildingName, date)
		if !open {
			continue
		}
		if endHour <= window.Open || startHour >= window.Close {
			continue
		}

		for _, room := range building {
			free, until := roomFreeUntil(room.Lessons, startHour, endHour)
			if !free {
				continue
			}
			if until > window.Close {
				until = window.Close
			}
			freeRooms[buildingName] = append(freeRooms[buildingName], model.FreeRoom{
				Name:     room.Name,
				Link:     room.Link,
				Until:    until,
				HasPower: room.HasPower,
			})
		}
	}

	return freeRooms, nil
}

// roomFreeUntil проверяет, свободна ли аудитория в интервале
// [startHour, endHour), и до какого часа она остаётся свободной.
// Занятие, начинающееся ровно в startHour, делает аудиторию занятой;
// занятие, начинающееся ровно в endHour, не делает, но ограничивает
// until. Пустой список занятий означает свободу до конца дня.
func roomFreeUntil(lessons []model.Lesson, startHour, endHour float64) (bool, float64) {
	until := MaxHour

	for _, lesson := range lessons {
		if startHour <= lesson.From && lesson.From < endHour {
			return false, 0
		}
		if lesson.From <= startHour && lesson.To > startHour {
			return false, 0
		}
		if endHour <= lesson.From && until == MaxHour {
			until = lesson.From
		}
	}

	return true, until
}
