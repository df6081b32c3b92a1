package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/vlkhvn/nearby-bot/internal/domain"
	"github.com/vlkhvn/nearby-bot/internal/store"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) sendWithMenu(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenuKeyboard()
	_, _ = r.bot.Send(msg)
}

// --- Core commands ---

func (r *Router) handleStart(chatID int64, name string) {
	r.sendWithMenu(chatID, fmt.Sprintf(startFmt, name))
}

func (r *Router) handleStatus(ctx context.Context, chatID int64) {
	u, err := r.repo.GetUser(ctx, chatID)
	if errors.Is(err, store.ErrUserNotFound) {
		r.sendWithMenu(chatID, notRegisteredText)
		return
	}
	if err != nil {
		r.log.Error("GetUser failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, internalProblemText)
		return
	}
	reminder := u.ReminderHHMM
	if reminder == "" {
		reminder = statusNoReminder
	}
	r.sendWithMenu(chatID, fmt.Sprintf(statusFmt, u.Name, u.Latitude, u.Longitude, reminder))
}

// --- Location registration ---

func (r *Router) handleLocation(ctx context.Context, chatID int64, name string, lat, lon float64) {
	if err := r.repo.UpsertUser(ctx, chatID, name, lat, lon); err != nil {
		r.log.Error("UpsertUser failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, internalProblemText)
		return
	}
	r.sendWithMenu(chatID, locationSavedText)
}

// --- Nearest user lookup ---

func (r *Router) handleFindNearest(ctx context.Context, chatID int64) {
	snapshot, err := r.repo.ListUsers(ctx)
	if err != nil {
		r.log.Error("ListUsers failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, internalProblemText)
		return
	}

	match, err := domain.FindNearest(chatID, snapshot)
	switch {
	case errors.Is(err, domain.ErrRequesterNotRegistered):
		r.sendText(chatID, notRegisteredText)
	case errors.Is(err, domain.ErrNoOtherUsers):
		r.sendText(chatID, noOtherUsersText)
	case err != nil:
		r.log.Error("FindNearest failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, internalProblemText)
	default:
		r.sendText(chatID, fmt.Sprintf(nearestFmt, match.User.Name, match.User.ChatID, match.DistanceKm))
	}
}

// --- Reminder flow ---

func (r *Router) askReminderTime(chatID int64) {
	r.sendText(chatID, askReminderText)
	r.setPending(chatID, pendingReminderTime)
}

func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	switch r.getPending(chatID) {
	case pendingReminderTime:
		r.clearPending(chatID)

		hhmm, err := domain.ParseReminderTime(text)
		switch {
		case errors.Is(err, domain.ErrTimeOutOfRange):
			r.sendText(chatID, timeOutOfRangeText)
			return
		case err != nil:
			r.sendText(chatID, badTimeFormatText)
			return
		}

		if err := r.repo.SetReminderTime(ctx, chatID, hhmm); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				r.sendText(chatID, notRegisteredText)
				return
			}
			r.log.Error("SetReminderTime failed", zap.Error(err), zap.Int64("chatID", chatID))
			r.sendText(chatID, internalProblemText)
			return
		}
		r.sendWithMenu(chatID, fmt.Sprintf(reminderSetFmt, hhmm))

	default:
		// No pending flow: ignore free-form message
	}
}
