package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/controller/formatting"
	"github.com/polifinder/classroom_bot/internal/model"
)

// searchQuery параметры одного запуска поиска
type searchQuery struct {
	startHour float64
	endHour   float64
	location  string
	date      time.Time
}

// runSearch выполняет поиск свободных аудиторий и отправляет результат.
// После поиска диалог возвращается в главное меню независимо от исхода.
func (h *Handlers) runSearch(ctx context.Context, b *bot.Bot, update *models.Update, lang string, query searchQuery) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.states.Reset(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   h.texts.Text(lang, "searching"),
		ReplyMarkup: &models.ReplyKeyboardRemove{
			RemoveKeyboard: true,
		},
	})

	freeRooms, err := h.searchService.FindFreeRooms(
		ctx,
		query.startHour,
		query.endHour,
		query.location,
		query.date.Day(),
		int(query.date.Month()),
		query.date.Year(),
	)
	if err != nil {
		// Сбой источника - не то же самое, что "аудиторий нет"
		h.logger.Error("Search failed",
			zap.Int64("telegram_id", telegramID),
			zap.String("location", query.location),
			zap.String("date", formatDay(query.date)),
			zap.Error(err))
		h.reportError(ctx, b, err, update)

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        h.texts.Text(lang, "source_error"),
			ReplyMarkup: h.keyboards.Initial(lang),
		})
		return
	}

	format := model.FormatText
	if user, err := h.userService.GetByTelegramID(ctx, telegramID); err == nil {
		format = user.OutputFormat
	} else {
		h.logger.Warn("Failed to load output format", zap.Error(err))
	}

	messages := formatting.BuildMessages(freeRooms, format, h.texts.Text(lang, "until"))
	if len(messages) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        h.texts.Text(lang, "no_rooms"),
			ReplyMarkup: h.keyboards.Initial(lang),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   h.texts.Text(lang, "free_rooms"),
	})

	for i, message := range messages {
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      message,
			ParseMode: models.ParseModeHTML,
			LinkPreviewOptions: &models.LinkPreviewOptions{
				IsDisabled: bot.True(),
			},
		}
		// Главное меню возвращаем вместе с последним сообщением
		if i == len(messages)-1 {
			params.ReplyMarkup = h.keyboards.Initial(lang)
		}

		if _, err := b.SendMessage(ctx, params); err != nil {
			h.logger.Error("Failed to send results", zap.Error(err))
			return
		}
	}
}
