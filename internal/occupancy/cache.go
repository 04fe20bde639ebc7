package occupancy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/polifinder/classroom_bot/internal/model"
)

// CacheTTL время жизни записи кэша расписаний
const CacheTTL = 30 * time.Minute

// Fetcher загружает расписание занятости для кампуса на дату
type Fetcher interface {
	FetchDay(ctx context.Context, location string, day, month, year int) (model.Schedule, error)
}

// cacheKey ключ кэша, пара (кампус, дата) без нормализации
type cacheKey struct {
	Location string
	Day      int
	Month    int
	Year     int
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%s/%d-%d-%d", k.Location, k.Year, k.Month, k.Day)
}

// cacheEntry расписание с временем сохранения
type cacheEntry struct {
	schedule model.Schedule
	storedAt time.Time
}

// ScheduleCache кэш расписаний с ленивым истечением по TTL.
// Одновременные запросы одного ключа объединяются в одну загрузку,
// запросы разных ключей друг друга не блокируют. Ошибки загрузки
// не кэшируются: следующий вызов повторит запрос.
type ScheduleCache struct {
	fetcher Fetcher
	ttl     time.Duration
	logger  *zap.Logger

	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	flight  singleflight.Group

	now func() time.Time // подменяется в тестах
}

// NewScheduleCache создаёт кэш расписаний поверх загрузчика
func NewScheduleCache(fetcher Fetcher, ttl time.Duration, logger *zap.Logger) *ScheduleCache {
	if ttl <= 0 {
		ttl = CacheTTL
	}
	return &ScheduleCache{
		fetcher: fetcher,
		ttl:     ttl,
		logger:  logger,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

// Get возвращает расписание для кампуса на дату, загружая его при
// промахе или истечении записи. Ошибка загрузки раздаётся всем
// ожидающим этот ключ вызовам и в кэше не сохраняется.
func (c *ScheduleCache) Get(ctx context.Context, location string, day, month, year int) (model.Schedule, error) {
	key := cacheKey{Location: location, Day: day, Month: month, Year: year}

	if schedule, ok := c.lookup(key); ok {
		return schedule, nil
	}

	result, err, _ := c.flight.Do(key.String(), func() (interface{}, error) {
		// Запись могла появиться, пока мы ждали своей очереди
		if schedule, ok := c.lookup(key); ok {
			return schedule, nil
		}

		schedule, err := c.fetcher.FetchDay(ctx, location, day, month, year)
		if err != nil {
			return nil, err
		}

		c.store(key, schedule)
		return schedule, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(model.Schedule), nil
}

// lookup возвращает живую запись; просроченная запись вычищается
func (c *ScheduleCache) lookup(key cacheKey) (model.Schedule, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.mu.Lock()
		if current, stillThere := c.entries[key]; stillThere && current.storedAt == entry.storedAt {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		c.logger.Debug("Cache entry expired", zap.Stringer("key", key))
		return nil, false
	}

	return entry.schedule, true
}

func (c *ScheduleCache) store(key cacheKey, schedule model.Schedule) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{schedule: schedule, storedAt: c.now()}
	c.mu.Unlock()

	c.logger.Info("Schedule cached",
		zap.Stringer("key", key),
		zap.Int("rooms", schedule.Rooms()))
}
