package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/controller/state"
	"github.com/polifinder/classroom_bot/internal/model"
	"github.com/polifinder/classroom_bot/internal/occupancy"
)

// handleMainMenu обрабатывает выбор в главном меню
func (h *Handlers) handleMainMenu(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	action, ok := h.texts.ActionFor(update.Message.Text)
	if !ok {
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	switch action {
	case "search":
		h.states.SetStep(update.Message.From.ID, state.StepCampus)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        h.texts.Text(lang, "location"),
			ReplyMarkup: h.keyboards.Campuses(lang),
		})

	case "now":
		h.handleQuickSearch(ctx, b, update, lang)

	case "preferences":
		h.states.SetStep(update.Message.From.ID, state.StepSettings)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        h.texts.Text(lang, "settings"),
			ReplyMarkup: h.keyboards.Preferences(lang),
		})

	default:
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
	}
}

// handleQuickSearch быстрый поиск: предпочитаемый кампус,
// текущее время и сохранённая длительность
func (h *Handlers) handleQuickSearch(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load user preferences", zap.Error(err))
		h.reportError(ctx, b, err, update)
		return
	}

	if user.Campus == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        h.texts.Text(lang, "missing"),
			ReplyMarkup: h.keyboards.Initial(lang),
		})
		return
	}

	now := h.localNow()
	startHour := float64(now.Hour())
	if startHour >= occupancy.MaxHour || startHour < occupancy.MinHour {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   h.texts.Text(lang, "ops"),
		})
		startHour = occupancy.MinHour
	}

	endHour := startHour + float64(user.Duration)
	if endHour > occupancy.MaxHour {
		endHour = occupancy.MaxHour
	}

	h.runSearch(ctx, b, update, lang, searchQuery{
		startHour: startHour,
		endHour:   endHour,
		location:  user.Campus,
		date:      now,
	})
}

// handleCampusStep обрабатывает выбор кампуса.
// Принимается и название кампуса, и сразу название сайта.
func (h *Handlers) handleCampusStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID
	message := update.Message.Text

	if _, ok := h.locations[message]; ok {
		h.states.UpdateSearch(telegramID, func(s *state.Search) {
			s.CampusName = message
		})
		h.states.SetStep(telegramID, state.StepSite)

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        h.texts.Text(lang, "sublocation"),
			ReplyMarkup: h.keyboards.Sites(lang, message),
		})
		return
	}

	// Название сайта введено напрямую, минуя выбор кампуса
	if code, ok := h.locations.CodeFor(message); ok {
		h.advanceToDay(ctx, b, update, lang, code)
		return
	}

	h.bonk(ctx, b, update.Message.Chat.ID, lang)
}

// handleSiteStep обрабатывает выбор сайта внутри кампуса
func (h *Handlers) handleSiteStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID
	message := update.Message.Text
	search := h.states.Search(telegramID)

	if action, ok := h.texts.ActionFor(message); ok && action == "all_buildings" {
		if campus, ok := h.locations[search.CampusName]; ok {
			h.advanceToDay(ctx, b, update, lang, campus.Code)
			return
		}
	}

	if campus, ok := h.locations[search.CampusName]; ok {
		if code, ok := campus.Sites[message]; ok {
			h.advanceToDay(ctx, b, update, lang, code)
			return
		}
	}

	h.bonk(ctx, b, update.Message.Chat.ID, lang)
}

// advanceToDay сохраняет выбранный код и переводит диалог к выбору дня
func (h *Handlers) advanceToDay(ctx context.Context, b *bot.Bot, update *models.Update, lang, locationCode string) {
	telegramID := update.Message.From.ID

	h.states.UpdateSearch(telegramID, func(s *state.Search) {
		s.Location = locationCode
	})
	h.states.SetStep(telegramID, state.StepDay)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.texts.Text(lang, "day"),
		ReplyMarkup: h.keyboards.Days(lang, h.localNow()),
	})
}

// handleDayStep обрабатывает выбор дня
func (h *Handlers) handleDayStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID

	date, ok := h.parseDay(update.Message.Text)
	if !ok {
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	h.states.UpdateSearch(telegramID, func(s *state.Search) {
		s.Date = date
	})
	h.states.SetStep(telegramID, state.StepStartTime)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.texts.Text(lang, "starting_time"),
		ReplyMarkup: h.keyboards.StartHours(),
	})
}

// handleStartTimeStep обрабатывает выбор часа начала
func (h *Handlers) handleStartTimeStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID

	startHour, ok := parseStartHour(update.Message.Text)
	if !ok {
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	h.states.UpdateSearch(telegramID, func(s *state.Search) {
		s.StartHour = startHour
	})
	h.states.SetStep(telegramID, state.StepEndTime)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.texts.Text(lang, "ending_time"),
		ReplyMarkup: h.keyboards.EndHours(startHour),
	})
}

// handleEndTimeStep обрабатывает выбор часа конца и запускает поиск
func (h *Handlers) handleEndTimeStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID
	search := h.states.Search(telegramID)

	endHour, ok := parseEndHour(update.Message.Text, search.StartHour)
	if !ok {
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	h.runSearch(ctx, b, update, lang, searchQuery{
		startHour: search.StartHour,
		endHour:   endHour,
		location:  search.Location,
		date:      search.Date,
	})
}

// handleSettingsStep обрабатывает выбор пункта настроек
func (h *Handlers) handleSettingsStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID

	action, ok := h.texts.ActionFor(update.Message.Text)
	if !ok {
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	switch action {
	case "language":
		h.states.SetStep(telegramID, state.StepSetLanguage)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        h.texts.Text(lang, "language"),
			ReplyMarkup: h.keyboards.Languages(),
		})

	case "campus":
		h.states.SetStep(telegramID, state.StepSetCampus)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        h.texts.Text(lang, "campus"),
			ReplyMarkup: h.keyboards.Campuses(lang),
		})

	case "time":
		h.states.SetStep(telegramID, state.StepSetDuration)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        h.texts.Text(lang, "time"),
			ReplyMarkup: h.keyboards.Durations(),
		})

	case "format":
		h.states.SetStep(telegramID, state.StepSetFormat)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        h.texts.Text(lang, "format"),
			ReplyMarkup: h.keyboards.Formats(lang),
		})

	default:
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
	}
}

// handleSetLanguageStep сохраняет выбранный язык
func (h *Handlers) handleSetLanguageStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID
	choice := update.Message.Text

	if !h.texts.Has(choice) {
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	if err := h.userService.SetLanguage(ctx, telegramID, choice); err != nil {
		h.logger.Error("Failed to save language", zap.Error(err))
		h.reportError(ctx, b, err, update)
		return
	}

	h.backToSettings(ctx, b, update, choice)
}

// handleSetCampusStep сохраняет предпочитаемый кампус
func (h *Handlers) handleSetCampusStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID

	code, ok := h.locations.CodeFor(update.Message.Text)
	if !ok {
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	if err := h.userService.SetCampus(ctx, telegramID, code); err != nil {
		h.logger.Error("Failed to save campus", zap.Error(err))
		h.reportError(ctx, b, err, update)
		return
	}

	h.backToSettings(ctx, b, update, lang)
}

// handleSetDurationStep сохраняет длительность быстрого поиска
func (h *Handlers) handleSetDurationStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID

	duration, ok := parseDuration(update.Message.Text)
	if !ok {
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	if err := h.userService.SetDuration(ctx, telegramID, duration); err != nil {
		h.logger.Error("Failed to save duration", zap.Error(err))
		h.reportError(ctx, b, err, update)
		return
	}

	h.backToSettings(ctx, b, update, lang)
}

// handleSetFormatStep сохраняет формат вывода
func (h *Handlers) handleSetFormatStep(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	telegramID := update.Message.From.ID

	action, ok := h.texts.ActionFor(update.Message.Text)
	if !ok {
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	var format string
	switch action {
	case "format_text":
		format = model.FormatText
	case "format_emoji":
		format = model.FormatEmoji
	default:
		h.bonk(ctx, b, update.Message.Chat.ID, lang)
		return
	}

	if err := h.userService.SetOutputFormat(ctx, telegramID, format); err != nil {
		h.logger.Error("Failed to save output format", zap.Error(err))
		h.reportError(ctx, b, err, update)
		return
	}

	h.backToSettings(ctx, b, update, lang)
}

// backToSettings подтверждает сохранение и возвращает в меню настроек
func (h *Handlers) backToSettings(ctx context.Context, b *bot.Bot, update *models.Update, lang string) {
	h.states.SetStep(update.Message.From.ID, state.StepSettings)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.texts.Text(lang, "success"),
		ReplyMarkup: h.keyboards.Preferences(lang),
	})
}
