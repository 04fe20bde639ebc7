package occupancy

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/model"
)

// mockFetcher считает вызовы и отдаёт заготовленный результат
type mockFetcher struct {
	callCount atomic.Int32
	delay     time.Duration
	err       error
	schedule  model.Schedule
}

func (m *mockFetcher) FetchDay(ctx context.Context, location string, day, month, year int) (model.Schedule, error) {
	m.callCount.Add(1)
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, &TransportError{Err: ctx.Err()}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.schedule != nil {
		return m.schedule, nil
	}
	return model.Schedule{location: model.Building{}}, nil
}

func TestCacheSingleFetchWithinTTL(t *testing.T) {
	fetcher := &mockFetcher{}
	cache := NewScheduleCache(fetcher, CacheTTL, zap.NewNop())

	first, err := cache.Get(context.Background(), "MIA", 25, 10, 2021)
	require.NoError(t, err)

	second, err := cache.Get(context.Background(), "MIA", 25, 10, 2021)
	require.NoError(t, err)

	assert.Equal(t, int32(1), fetcher.callCount.Load())
	assert.Equal(t, first.Rooms(), second.Rooms())
}

func TestCacheConcurrentSameKeySingleFlight(t *testing.T) {
	fetcher := &mockFetcher{delay: 50 * time.Millisecond}
	cache := NewScheduleCache(fetcher, CacheTTL, zap.NewNop())

	const callers = 20
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cache.Get(context.Background(), "MIA", 25, 10, 2021)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), fetcher.callCount.Load(), "concurrent callers for one key must share a single fetch")
}

func TestCacheDifferentKeysFetchIndependently(t *testing.T) {
	fetcher := &mockFetcher{}
	cache := NewScheduleCache(fetcher, CacheTTL, zap.NewNop())

	_, err := cache.Get(context.Background(), "MIA", 25, 10, 2021)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), "MIB", 25, 10, 2021)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), "MIA", 26, 10, 2021)
	require.NoError(t, err)

	assert.Equal(t, int32(3), fetcher.callCount.Load())
}

func TestCacheExpiry(t *testing.T) {
	fetcher := &mockFetcher{}
	cache := NewScheduleCache(fetcher, CacheTTL, zap.NewNop())

	current := time.Now()
	cache.now = func() time.Time { return current }

	_, err := cache.Get(context.Background(), "MIA", 25, 10, 2021)
	require.NoError(t, err)

	// Ещё живая запись
	current = current.Add(CacheTTL - time.Second)
	_, err = cache.Get(context.Background(), "MIA", 25, 10, 2021)
	require.NoError(t, err)
	assert.Equal(t, int32(1), fetcher.callCount.Load())

	// TTL истёк: ровно одна новая загрузка
	current = current.Add(2 * time.Second)
	_, err = cache.Get(context.Background(), "MIA", 25, 10, 2021)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetcher.callCount.Load())
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("boom")}
	cache := NewScheduleCache(fetcher, CacheTTL, zap.NewNop())

	_, err := cache.Get(context.Background(), "MIA", 25, 10, 2021)
	require.Error(t, err)

	// Следующий вызов повторяет загрузку, а не получает закэшированную ошибку
	fetcher.err = nil
	_, err = cache.Get(context.Background(), "MIA", 25, 10, 2021)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetcher.callCount.Load())
}

func TestCacheFailurePropagatesToAllWaiters(t *testing.T) {
	fetcher := &mockFetcher{delay: 50 * time.Millisecond, err: errors.New("boom")}
	cache := NewScheduleCache(fetcher, CacheTTL, zap.NewNop())

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cache.Get(context.Background(), "MIA", 25, 10, 2021)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.Error(t, err)
	}
	assert.Equal(t, int32(1), fetcher.callCount.Load())
}
