package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vlkhvn/nearby-bot/internal/domain"
	"github.com/vlkhvn/nearby-bot/internal/store"
)

type fakeRepo struct {
	rems []domain.Reminder
	err  error
}

func (f *fakeRepo) UpsertUser(context.Context, int64, string, float64, float64) error {
	return nil
}
func (f *fakeRepo) GetUser(context.Context, int64) (*domain.User, error) {
	return nil, store.ErrUserNotFound
}
func (f *fakeRepo) ListUsers(context.Context) ([]domain.User, error) { return nil, nil }
func (f *fakeRepo) ListWithReminder(context.Context) ([]domain.Reminder, error) {
	return f.rems, f.err
}
func (f *fakeRepo) SetReminderTime(context.Context, int64, string) error { return nil }
func (f *fakeRepo) Close() error                                         { return nil }

type chanSender struct {
	sent chan int64
	fail map[int64]bool
}

func (c *chanSender) SendMessage(_ context.Context, chatID int64, _ string) error {
	c.sent <- chatID
	if c.fail[chatID] {
		return errors.New("recipient unreachable")
	}
	return nil
}

func newTestScheduler(repo store.Repo, sender Sender, at string) *Scheduler {
	s := New(repo, zap.NewNop(), sender, time.Minute, time.Second)
	s.now = func() time.Time {
		t, _ := time.Parse("15:04", at)
		return t
	}
	return s
}

func collect(t *testing.T, ch chan int64, want int) []int64 {
	t.Helper()
	var got []int64
	for i := 0; i < want; i++ {
		select {
		case id := <-ch:
			got = append(got, id)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, want)
		}
	}
	return got
}

func TestTick_DeliversOnMatchingMinute(t *testing.T) {
	repo := &fakeRepo{rems: []domain.Reminder{
		{ChatID: 1, HHMM: "09:00"},
		{ChatID: 2, HHMM: "09:01"},
	}}
	sender := &chanSender{sent: make(chan int64, 4)}

	s := newTestScheduler(repo, sender, "09:00")
	s.tick(context.Background())

	got := collect(t, sender.sent, 1)
	if got[0] != 1 {
		t.Fatalf("want delivery to chat 1, got %v", got)
	}
	// The 09:01 reminder must not have fired.
	select {
	case id := <-sender.sent:
		t.Fatalf("unexpected delivery to chat %d", id)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTick_NonMatchingMinuteIsQuiet(t *testing.T) {
	repo := &fakeRepo{rems: []domain.Reminder{{ChatID: 1, HHMM: "09:00"}}}
	sender := &chanSender{sent: make(chan int64, 1)}

	s := newTestScheduler(repo, sender, "09:01")
	s.tick(context.Background())

	select {
	case id := <-sender.sent:
		t.Fatalf("unexpected delivery to chat %d", id)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTick_FailedDeliveryDoesNotStopOthers(t *testing.T) {
	repo := &fakeRepo{rems: []domain.Reminder{
		{ChatID: 1, HHMM: "09:00"},
		{ChatID: 2, HHMM: "09:00"},
		{ChatID: 3, HHMM: "09:00"},
	}}
	sender := &chanSender{
		sent: make(chan int64, 8),
		fail: map[int64]bool{2: true},
	}

	s := newTestScheduler(repo, sender, "09:00")
	s.tick(context.Background())

	got := collect(t, sender.sent, 3)
	seen := map[int64]bool{}
	for _, id := range got {
		seen[id] = true
	}
	for id := int64(1); id <= 3; id++ {
		if !seen[id] {
			t.Fatalf("chat %d was never attempted: %v", id, got)
		}
	}

	// A failed delivery must not poison subsequent ticks either.
	s.tick(context.Background())
	collect(t, sender.sent, 3)
}

func TestTick_RepoErrorSkipsCycle(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db locked")}
	sender := &chanSender{sent: make(chan int64, 1)}

	s := newTestScheduler(repo, sender, "09:00")
	s.tick(context.Background())

	select {
	case id := <-sender.sent:
		t.Fatalf("unexpected delivery to chat %d", id)
	case <-time.After(100 * time.Millisecond):
	}
}
