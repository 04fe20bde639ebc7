package controller

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/controller/handlers"
	"github.com/polifinder/classroom_bot/internal/controller/i18n"
	"github.com/polifinder/classroom_bot/internal/controller/keyboard"
	"github.com/polifinder/classroom_bot/internal/controller/state"
	"github.com/polifinder/classroom_bot/internal/service"
	"github.com/polifinder/classroom_bot/internal/staticdata"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	searchService *service.SearchService,
	userService *service.UserService,
	texts *i18n.Catalog,
	locations staticdata.Locations,
	timezone *time.Location,
	developerChatID int64,
	logger *zap.Logger,
) *BotController {
	// Менеджер состояний диалогов живёт в памяти
	stateManager := state.NewManager()
	keyboards := keyboard.NewBuilder(texts, locations)

	msgHandlers := handlers.NewHandlers(
		searchService,
		userService,
		texts,
		keyboards,
		stateManager,
		locations,
		timezone,
		developerChatID,
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: msgHandlers,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики бота
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Все остальные сообщения маршрутизируются по шагам диалога
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start the bot"},
		{Command: "help", Description: "❓ How the bot works"},
		{Command: "cancel", Description: "❌ Cancel current operation"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
