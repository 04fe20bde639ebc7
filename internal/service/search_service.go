package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/model"
	"github.com/polifinder/classroom_bot/internal/occupancy"
)

// SearchService фасад поиска свободных аудиторий для обработчиков бота
type SearchService struct {
	availability *occupancy.Availability
	logger       *zap.Logger
}

// NewSearchService создаёт сервис поиска
func NewSearchService(availability *occupancy.Availability, logger *zap.Logger) *SearchService {
	return &SearchService{
		availability: availability,
		logger:       logger,
	}
}

// FindFreeRooms ищет аудитории, свободные в интервале [startHour, endHour)
// в указанную дату, и возвращает их сгруппированными по зданиям.
// Ошибка загрузки источника возвращается как есть, чтобы вызывающий
// мог отличить её от пустого результата.
func (s *SearchService) FindFreeRooms(ctx context.Context, startHour, endHour float64, location string, day, month, year int) (map[string][]model.FreeRoom, error) {
	searchID := uuid.New().String()
	started := time.Now()

	freeRooms, err := s.availability.FindFreeRooms(ctx, startHour, endHour, location, day, month, year)
	if err != nil {
		s.logger.Error("Free room search failed",
			zap.String("search_id", searchID),
			zap.String("location", location),
			zap.Error(err))
		return nil, err
	}

	total := 0
	for _, rooms := range freeRooms {
		total += len(rooms)
	}

	s.logger.Info("Free room search completed",
		zap.String("search_id", searchID),
		zap.String("location", location),
		zap.Float64("start_hour", startHour),
		zap.Float64("end_hour", endHour),
		zap.Int("buildings", len(freeRooms)),
		zap.Int("rooms", total),
		zap.Duration("elapsed", time.Since(started)))

	return freeRooms, nil
}
