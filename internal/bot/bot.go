// Package bot is the Telegram transport: it translates updates into core
// operations and renders the results as messages with inline keyboards.
// No decision logic lives here; failures from the core degrade to
// narrower replies, never to a dropped update.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/scar796/nutrio/internal/catalog"
	"github.com/scar796/nutrio/internal/config"
	"github.com/scar796/nutrio/internal/repository"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	index    *catalog.Index
	profiles repository.ProfileRepository
	streaks  repository.StreakRepository
	history  repository.HistoryRepository
	carts    repository.CartRepository
	ratings  repository.RatingRepository
	sessions *sessionStore
	limiter  *rateLimiter
	cfg      config.Config
}

func New(
	cfg config.Config,
	index *catalog.Index,
	profiles repository.ProfileRepository,
	streaks repository.StreakRepository,
	history repository.HistoryRepository,
	carts repository.CartRepository,
	ratings repository.RatingRepository,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}
	slog.Info("telegram bot authorized", "username", api.Self.UserName)

	return &Bot{
		api:      api,
		index:    index,
		profiles: profiles,
		streaks:  streaks,
		history:  history,
		carts:    carts,
		ratings:  ratings,
		sessions: newSessionStore(),
		limiter:  newRateLimiter(cfg.RateLimitWindow, cfg.RateLimitRequests),
		cfg:      cfg,
	}, nil
}

// Run polls for updates until the context is cancelled.
func (bot *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := bot.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			bot.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			bot.handleUpdate(ctx, update)
		}
	}
}

// SweepSessions periodically discards abandoned intake sessions.
func (bot *Bot) SweepSessions(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if swept := bot.sessions.sweep(bot.cfg.SessionMaxIdle); swept > 0 {
				slog.Info("swept stale sessions", "count", swept)
			}
		}
	}
}

func (bot *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	from := update.SentFrom()
	chat := update.FromChat()
	if from == nil || chat == nil {
		return
	}
	userID := from.ID
	chatID := chat.ID

	if !bot.limiter.Allow(userID, time.Now()) {
		bot.send(chatID, "You're making too many requests. Give it a minute and try again.", nil)
		return
	}

	bot.sessions.withUser(userID, func(state *userState) {
		switch {
		case update.CallbackQuery != nil:
			bot.answerCallback(update.CallbackQuery.ID)
			bot.routeCallback(ctx, state, userID, chatID, update.CallbackQuery.Data)
		case update.Message != nil && update.Message.IsCommand():
			bot.routeCommand(ctx, state, userID, chatID, update.Message.Command())
		case update.Message != nil:
			bot.handleText(ctx, state, userID, chatID, update.Message.Text)
		}
	})
}

func (bot *Bot) routeCommand(ctx context.Context, state *userState, userID, chatID int64, command string) {
	switch command {
	case "start":
		bot.handleStart(ctx, state, userID, chatID)
	case "cancel":
		bot.handleCancel(state, userID, chatID)
	case "plan":
		bot.handleDailyPlan(ctx, state, userID, chatID)
	case "week":
		bot.handleWeekPlan(ctx, state, userID, chatID)
	case "help":
		bot.send(chatID, helpText, nil)
	default:
		bot.send(chatID, "I don't know that command. Try /start or /help.", nil)
	}
}

func (bot *Bot) routeCallback(ctx context.Context, state *userState, userID, chatID int64, data string) {
	action, argument, _ := strings.Cut(data, ":")
	switch action {
	case "choice":
		bot.handleConversationChoice(ctx, state, userID, chatID, argument)
	case "menu":
		bot.routeMenu(ctx, state, userID, chatID, argument)
	case "week":
		bot.handleWeekNavigation(state, chatID, argument)
	case "cart":
		bot.handleCartAction(ctx, state, userID, chatID, argument)
	case "rate":
		bot.handleRating(ctx, userID, chatID, argument)
	default:
		slog.Warn("unhandled callback", "data", data)
	}
}

func (bot *Bot) routeMenu(ctx context.Context, state *userState, userID, chatID int64, item string) {
	switch item {
	case "plan":
		bot.handleDailyPlan(ctx, state, userID, chatID)
	case "week":
		bot.handleWeekPlan(ctx, state, userID, chatID)
	case "grocery":
		bot.handleGroceryList(ctx, state, userID, chatID)
	case "cart":
		bot.handleShowCart(ctx, userID, chatID)
	case "profile":
		bot.handleShowProfile(ctx, userID, chatID)
	case "export":
		bot.handleExportWeek(state, chatID)
	case "edit":
		bot.startIntake(state, userID, chatID)
	case "main":
		bot.showMainMenu(ctx, userID, chatID)
	}
}

func (bot *Bot) answerCallback(callbackID string) {
	if _, err := bot.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		slog.Warn("answering callback", "error", err)
	}
}

func (bot *Bot) send(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	message := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		message.ReplyMarkup = markup
	}
	if _, err := bot.api.Send(message); err != nil {
		slog.Error("sending message", "chat", chatID, "error", err)
	}
}

func (bot *Bot) sendDocument(chatID int64, name string, content []byte, caption string) {
	document := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: content})
	document.Caption = caption
	if _, err := bot.api.Send(document); err != nil {
		slog.Error("sending document", "chat", chatID, "error", err)
	}
}

// persist logs best-effort storage failures; the in-flight operation
// continues on in-memory state.
func (bot *Bot) persist(action string, err error) {
	if err == nil {
		return
	}
	slog.Warn("continuing without persistence", "action", action,
		"error", fmt.Errorf("%w: %v", repository.ErrUnavailable, err))
}

const helpText = `Here's what I can do:
/start - set up or revisit your profile
/plan - today's meal plan
/week - a full week of meals
/cancel - abandon profile setup

Keep a daily streak going by grabbing a plan every day. Points grow the longer the streak!`
