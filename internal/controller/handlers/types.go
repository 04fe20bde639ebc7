package handlers

import (
	"time"

	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/controller/i18n"
	"github.com/polifinder/classroom_bot/internal/controller/keyboard"
	"github.com/polifinder/classroom_bot/internal/controller/state"
	"github.com/polifinder/classroom_bot/internal/service"
	"github.com/polifinder/classroom_bot/internal/staticdata"
)

// Handlers содержит все зависимости для обработки сообщений
type Handlers struct {
	searchService   *service.SearchService
	userService     *service.UserService
	texts           *i18n.Catalog
	keyboards       *keyboard.Builder
	states          *state.Manager
	locations       staticdata.Locations
	timezone        *time.Location // Часовой пояс кампусов
	developerChatID int64
	logger          *zap.Logger

	now func() time.Time // подменяется в тестах
}

// NewHandlers создаёт обработчики сообщений бота
func NewHandlers(
	searchService *service.SearchService,
	userService *service.UserService,
	texts *i18n.Catalog,
	keyboards *keyboard.Builder,
	states *state.Manager,
	locations staticdata.Locations,
	timezone *time.Location,
	developerChatID int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		searchService:   searchService,
		userService:     userService,
		texts:           texts,
		keyboards:       keyboards,
		states:          states,
		locations:       locations,
		timezone:        timezone,
		developerChatID: developerChatID,
		logger:          logger,
		now:             time.Now,
	}
}

// localNow текущее время в часовом поясе кампусов
func (h *Handlers) localNow() time.Time {
	return h.now().In(h.timezone)
}
