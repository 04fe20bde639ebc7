package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManagerStepLifecycle(t *testing.T) {
	m := NewManager()

	assert.Equal(t, StepNone, m.Step(1))

	m.SetStep(1, StepCampus)
	assert.Equal(t, StepCampus, m.Step(1))
	assert.Equal(t, StepNone, m.Step(2), "states are per user")

	m.SetStep(1, StepNone)
	assert.Equal(t, StepNone, m.Step(1))
}

func TestManagerSearchAccumulates(t *testing.T) {
	m := NewManager()
	date := time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC)

	m.UpdateSearch(1, func(s *Search) { s.Location = "MIA" })
	m.UpdateSearch(1, func(s *Search) { s.Date = date })
	m.UpdateSearch(1, func(s *Search) { s.StartHour = 9 })

	search := m.Search(1)
	assert.Equal(t, "MIA", search.Location)
	assert.Equal(t, date, search.Date)
	assert.Equal(t, 9.0, search.StartHour)
}

func TestManagerReset(t *testing.T) {
	m := NewManager()

	m.SetStep(1, StepDay)
	m.UpdateSearch(1, func(s *Search) { s.Location = "MIA" })

	m.Reset(1)
	assert.Equal(t, StepNone, m.Step(1))
	assert.Equal(t, Search{}, m.Search(1))
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetStep(id, StepCampus)
			m.UpdateSearch(id, func(s *Search) { s.StartHour = float64(id) })
			_ = m.Search(id)
			m.Reset(id)
		}(int64(i))
	}
	wg.Wait()
}
