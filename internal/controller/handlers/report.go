package handlers

import (
	"context"
	"fmt"
	"html"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// reportError отправляет отчёт об ошибке в чат разработчика,
// если он настроен. Пользователю отчёт не показывается.
func (h *Handlers) reportError(ctx context.Context, b *bot.Bot, err error, update *models.Update) {
	if h.developerChatID == 0 {
		return
	}

	var from string
	if update.Message != nil && update.Message.From != nil {
		from = fmt.Sprintf("%d (@%s)", update.Message.From.ID, update.Message.From.Username)
	}

	report := fmt.Sprintf(
		"⚠️ Error while handling an update\n\nfrom: %s\nerror: <pre>%v</pre>",
		from, html.EscapeString(err.Error()))

	if _, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    h.developerChatID,
		Text:      report,
		ParseMode: models.ParseModeHTML,
	}); sendErr != nil {
		h.logger.Warn("Failed to deliver developer report", zap.Error(sendErr))
	}
}
