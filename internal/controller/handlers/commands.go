package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/controller/state"
)

// HandleStart обрабатывает команду /start: регистрирует пользователя
// и показывает главное меню
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From
	user, err := h.userService.RegisterUser(ctx, from.ID, from.Username, from.FirstName)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.reportError(ctx, b, err, update)
		return
	}

	h.states.Reset(from.ID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      fmt.Sprintf(h.texts.Text(user.Language, "welcome"), from.FirstName),
		ParseMode: models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: bot.True(),
		},
		ReplyMarkup: h.keyboards.Initial(user.Language),
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	lang := h.userLang(ctx, update.Message.From.ID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.texts.Text(lang, "help"),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: h.keyboards.Initial(lang),
	})
}

// HandleCancel обрабатывает команду /cancel: сброс текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	lang := h.userLang(ctx, telegramID)

	if h.states.Step(telegramID) == state.StepNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        h.texts.Text(lang, "nothing_to_cancel"),
			ReplyMarkup: h.keyboards.Initial(lang),
		})
		return
	}

	h.states.Reset(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.texts.Text(lang, "cancelled"),
		ReplyMarkup: h.keyboards.Initial(lang),
	})
}

// HandleTextMessage маршрутизирует текстовые сообщения по шагам диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются своими обработчиками
	if update.Message.Text[0] == '/' {
		return
	}

	telegramID := update.Message.From.ID
	lang := h.userLang(ctx, telegramID)
	step := h.states.Step(telegramID)

	// Кнопка отмены работает на любом шаге
	if action, ok := h.texts.ActionFor(update.Message.Text); ok && action == "cancel" && step != state.StepNone {
		h.HandleCancel(ctx, b, update)
		return
	}

	h.logger.Debug("Routing message",
		zap.Int64("telegram_id", telegramID),
		zap.String("step", string(step)))

	switch step {
	case state.StepNone:
		h.handleMainMenu(ctx, b, update, lang)
	case state.StepCampus:
		h.handleCampusStep(ctx, b, update, lang)
	case state.StepSite:
		h.handleSiteStep(ctx, b, update, lang)
	case state.StepDay:
		h.handleDayStep(ctx, b, update, lang)
	case state.StepStartTime:
		h.handleStartTimeStep(ctx, b, update, lang)
	case state.StepEndTime:
		h.handleEndTimeStep(ctx, b, update, lang)
	case state.StepSettings:
		h.handleSettingsStep(ctx, b, update, lang)
	case state.StepSetLanguage:
		h.handleSetLanguageStep(ctx, b, update, lang)
	case state.StepSetCampus:
		h.handleSetCampusStep(ctx, b, update, lang)
	case state.StepSetDuration:
		h.handleSetDurationStep(ctx, b, update, lang)
	case state.StepSetFormat:
		h.handleSetFormatStep(ctx, b, update, lang)
	}
}

// userLang возвращает язык пользователя, "en" при любой проблеме
func (h *Handlers) userLang(ctx context.Context, telegramID int64) string {
	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Warn("Failed to load user language", zap.Error(err))
		return "en"
	}
	return user.Language
}

// bonk сообщает пользователю, что ввод не распознан,
// и оставляет его на текущем шаге
func (h *Handlers) bonk(ctx context.Context, b *bot.Bot, chatID int64, lang string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   h.texts.Text(lang, "error"),
	})
}
