package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/model"
	"github.com/polifinder/classroom_bot/internal/repository"
)

// UserService управляет пользователями и их предпочтениями
type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

// NewUserService создаёт сервис пользователей
func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует пользователя при /start или обновляет его имя.
// Новый пользователь получает предпочтения по умолчанию:
// английский язык, два часа быстрого поиска, текстовый формат.
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error) {
	user := &model.User{
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		Language:     model.DefaultLanguage,
		Duration:     model.DefaultDuration,
		OutputFormat: model.FormatText,
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info("User registered",
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
		zap.String("language", user.Language))

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID.
// Для незнакомого пользователя возвращает предпочтения по умолчанию,
// не сохраняя их: запись появится при первом /start.
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return &model.User{
			TelegramID:   telegramID,
			Language:     model.DefaultLanguage,
			Duration:     model.DefaultDuration,
			OutputFormat: model.FormatText,
		}, nil
	}

	return user, nil
}

// SetLanguage сохраняет язык пользователя
func (s *UserService) SetLanguage(ctx context.Context, telegramID int64, language string) error {
	if err := s.userRepo.UpdateLanguage(ctx, telegramID, language); err != nil {
		return err
	}

	s.logger.Info("User language updated",
		zap.Int64("telegram_id", telegramID),
		zap.String("language", language))
	return nil
}

// SetCampus сохраняет предпочитаемый кампус для быстрого поиска
func (s *UserService) SetCampus(ctx context.Context, telegramID int64, campus string) error {
	if err := s.userRepo.UpdateCampus(ctx, telegramID, campus); err != nil {
		return err
	}

	s.logger.Info("User campus updated",
		zap.Int64("telegram_id", telegramID),
		zap.String("campus", campus))
	return nil
}

// SetDuration сохраняет длительность быстрого поиска в часах
func (s *UserService) SetDuration(ctx context.Context, telegramID int64, duration int) error {
	if err := s.userRepo.UpdateDuration(ctx, telegramID, duration); err != nil {
		return err
	}

	s.logger.Info("User duration updated",
		zap.Int64("telegram_id", telegramID),
		zap.Int("duration", duration))
	return nil
}

// SetOutputFormat сохраняет формат вывода списка аудиторий
func (s *UserService) SetOutputFormat(ctx context.Context, telegramID int64, format string) error {
	if format != model.FormatText && format != model.FormatEmoji {
		return fmt.Errorf("unknown output format %q", format)
	}

	if err := s.userRepo.UpdateOutputFormat(ctx, telegramID, format); err != nil {
		return err
	}

	s.logger.Info("User output format updated",
		zap.Int64("telegram_id", telegramID),
		zap.String("format", format))
	return nil
}
