package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vlkhvn/nearby-bot/internal/store"
)

// Sender is the minimal capability the scheduler needs to deliver a reminder.
// telegram.Router implements it. Implementations should honor ctx so one
// unreachable recipient cannot stall the rest.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

const reminderText = "🔔 Reminder: time to get things done!"

// Scheduler polls the registry once per tick and dispatches reminders whose
// time matches the current wall-clock minute.
type Scheduler struct {
	repo        store.Repo
	log         *zap.Logger
	sender      Sender
	interval    time.Duration
	sendTimeout time.Duration
	now         func() time.Time
}

// New creates a Scheduler. interval should be one minute: matching is a
// literal HH:MM comparison, so a slower cadence drops reminders and a faster
// one duplicates them within the same minute.
func New(repo store.Repo, log *zap.Logger, sender Sender, interval, sendTimeout time.Duration) *Scheduler {
	return &Scheduler{
		repo:        repo,
		log:         log,
		sender:      sender,
		interval:    interval,
		sendTimeout: sendTimeout,
		now:         time.Now,
	}
}

// Run starts the tick loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one cycle: read the reminders, dispatch the matches.
// Deliveries run concurrently and are never awaited; a failed or slow send
// only produces a log line.
func (s *Scheduler) tick(ctx context.Context) {
	nowHHMM := s.now().Format("15:04")

	rems, err := s.repo.ListWithReminder(ctx)
	if err != nil {
		s.log.Error("ListWithReminder failed", zap.Error(err))
		return
	}
	if len(rems) == 0 {
		s.log.Debug("no reminders scheduled")
		return
	}

	for _, rem := range rems {
		if rem.HHMM != nowHHMM {
			continue
		}
		go s.deliver(ctx, rem.ChatID)
	}
}

func (s *Scheduler) deliver(ctx context.Context, chatID int64) {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	if err := s.sender.SendMessage(sendCtx, chatID, reminderText); err != nil {
		s.log.Error("reminder delivery failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}
