package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polifinder/classroom_bot/internal/model"
	"github.com/polifinder/classroom_bot/internal/repository/base"
)

// UserRepository хранит пользователей и их предпочтения в Postgres
type UserRepository struct {
	*base.Repository
}

// NewUserRepository создаёт репозиторий пользователей
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Upsert создаёт пользователя или обновляет его имя при повторном /start.
// Предпочтения при обновлении не трогаются.
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, first_name, language, campus, duration, output_format)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name
		RETURNING id, language, campus, duration, output_format, created_at`

	err := r.QueryRow(ctx, query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.Language,
		user.Campus,
		user.Duration,
		user.OutputFormat,
	).Scan(&user.ID, &user.Language, &user.Campus, &user.Duration, &user.OutputFormat, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// GetByTelegramID получает пользователя по Telegram ID.
// Возвращает nil без ошибки, если пользователь не найден.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, language, campus, duration, output_format, created_at
		FROM users
		WHERE telegram_id = $1`

	user := &model.User{}
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.Language,
		&user.Campus,
		&user.Duration,
		&user.OutputFormat,
		&user.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return user, nil
}

// UpdateLanguage сохраняет язык пользователя
func (r *UserRepository) UpdateLanguage(ctx context.Context, telegramID int64, language string) error {
	return r.updateField(ctx, telegramID, "language", language)
}

// UpdateCampus сохраняет предпочитаемый кампус для быстрого поиска
func (r *UserRepository) UpdateCampus(ctx context.Context, telegramID int64, campus string) error {
	return r.updateField(ctx, telegramID, "campus", campus)
}

// UpdateDuration сохраняет длительность быстрого поиска в часах
func (r *UserRepository) UpdateDuration(ctx context.Context, telegramID int64, duration int) error {
	return r.updateField(ctx, telegramID, "duration", duration)
}

// UpdateOutputFormat сохраняет формат вывода списка аудиторий
func (r *UserRepository) UpdateOutputFormat(ctx context.Context, telegramID int64, format string) error {
	return r.updateField(ctx, telegramID, "output_format", format)
}

func (r *UserRepository) updateField(ctx context.Context, telegramID int64, field string, value interface{}) error {
	query := fmt.Sprintf("UPDATE users SET %s = $1 WHERE telegram_id = $2", field)

	affected, err := r.ExecAffected(ctx, query, value, telegramID)
	if err != nil {
		return fmt.Errorf("update user %s: %w", field, err)
	}
	if affected == 0 {
		return fmt.Errorf("update user %s: user %d not found", field, telegramID)
	}

	return nil
}
