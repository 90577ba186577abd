package services

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskflow/internal/models"
	"taskflow/internal/repositories"
)

type MockBroadcaster struct {
	BroadcastFunc func(ctx context.Context, a models.Activity) error
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, a models.Activity) error {
	return m.BroadcastFunc(ctx, a)
}

type MockActivityRepository struct {
	repositories.ActivityRepository
	CreateFunc func(ctx context.Context, a *models.Activity) error
}

func (m *MockActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	return m.CreateFunc(ctx, a)
}

func TestActivityAppendUsesClientTimestamp(t *testing.T) {
	var broadcast []models.Activity
	svc := NewActivityService(repositories.OpenMemory().Activities, &MockBroadcaster{
		BroadcastFunc: func(_ context.Context, a models.Activity) error {
			broadcast = append(broadcast, a)
			return errors.New("telegram down")
		},
	}, nil)

	ts := models.FlexTime{Time: time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)}
	a, err := svc.Append(context.Background(), models.ActivityInput{
		Action:    " created ",
		TaskTitle: "Plan",
		Timestamp: &ts,
	})
	if err != nil {
		t.Fatalf("broadcast failure leaked into Append: %v", err)
	}
	if a.Action != "created" || !a.Timestamp.Equal(ts.Time) || a.ID == "" {
		t.Errorf("appended %+v", a)
	}
	if len(broadcast) != 1 {
		t.Errorf("broadcast %d entries, want 1", len(broadcast))
	}

	if _, err := svc.Append(context.Background(), models.ActivityInput{Action: "created"}); !models.IsCode(err, models.ErrCodeInvalid) {
		t.Errorf("missing title err = %v", err)
	}
}

func TestActivityRecordSwallowsErrors(t *testing.T) {
	called := false
	svc := NewActivityService(&MockActivityRepository{
		CreateFunc: func(context.Context, *models.Activity) error {
			called = true
			return errors.New("disk full")
		},
	}, nil, nil)

	svc.Record(context.Background(), models.ActionDeleted, "x")
	if !called {
		t.Error("repository was not called")
	}
}

func TestActivityClear(t *testing.T) {
	ctx := context.Background()
	svc := NewActivityService(repositories.OpenMemory().Activities, nil, nil)
	svc.Record(ctx, models.ActionCreated, "a")
	svc.Record(ctx, models.ActionCreated, "b")

	n, err := svc.Clear(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Clear = %d, %v", n, err)
	}
	list, _ := svc.ListRecent(ctx)
	if len(list) != 0 {
		t.Errorf("left %d entries", len(list))
	}
}

type fakeBot struct {
	sent    chan tgbotapi.Chattable
	err     error
	release chan struct{} // when set, Send waits for it to close
}

func newFakeBot() *fakeBot {
	return &fakeBot{sent: make(chan tgbotapi.Chattable, 16)}
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if b.release != nil {
		<-b.release
	}
	err := b.err
	b.sent <- c
	return tgbotapi.Message{}, err
}

func (b *fakeBot) next(t *testing.T) tgbotapi.Chattable {
	t.Helper()
	select {
	case c := <-b.sent:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no message sent")
		return nil
	}
}

func TestTelegramBroadcast(t *testing.T) {
	bot := newFakeBot()
	tg := newTelegramService(bot, 42, nil)
	t.Cleanup(func() { _ = tg.Close(context.Background()) })

	err := tg.Broadcast(context.Background(), models.Activity{Action: models.ActionCompleted, TaskTitle: "a < b"})
	if err != nil {
		t.Fatal(err)
	}
	msg, ok := bot.next(t).(tgbotapi.MessageConfig)
	if !ok {
		t.Fatal("sent message is not a MessageConfig")
	}
	if msg.ChatID != 42 || msg.ParseMode != tgbotapi.ModeHTML {
		t.Errorf("chat/parse mode = %d/%s", msg.ChatID, msg.ParseMode)
	}
	if msg.Text != "✅ Completed: <b>a &lt; b</b>" {
		t.Errorf("text = %q", msg.Text)
	}

	bot.err = errors.New("403")
	if err := tg.send(models.Activity{Action: "x", TaskTitle: "y"}); err == nil {
		t.Error("send failure not reported")
	}
	bot.next(t)
}

func TestTelegramCloseDrainsQueue(t *testing.T) {
	bot := newFakeBot()
	tg := newTelegramService(bot, 42, nil)
	for _, title := range []string{"one", "two", "three"} {
		if err := tg.Broadcast(context.Background(), models.Activity{Action: models.ActionCreated, TaskTitle: title}); err != nil {
			t.Fatal(err)
		}
	}
	if err := tg.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(bot.sent) != 3 {
		t.Fatalf("sent %d messages before Close returned, want 3", len(bot.sent))
	}
	if got := (<-bot.sent).(tgbotapi.MessageConfig).Text; got != "🆕 Created: <b>one</b>" {
		t.Errorf("first message = %q", got)
	}
	if err := tg.Broadcast(context.Background(), models.Activity{Action: "x", TaskTitle: "y"}); err == nil {
		t.Error("Broadcast accepted an entry after Close")
	}
}

func TestTaskMutationsDoNotWaitForTelegram(t *testing.T) {
	bot := newFakeBot()
	bot.release = make(chan struct{})
	tg := newTelegramService(bot, 42, nil)
	t.Cleanup(func() {
		close(bot.release)
		_ = tg.Close(context.Background())
	})

	store := repositories.OpenMemory()
	svc := NewTaskService(store.Tasks, NewActivityService(store.Activities, tg, nil), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	task, err := svc.Create(ctx, models.TaskInput{Title: "Ship it"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Toggle(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("task mutations waited on a stalled Telegram send")
	}
	acts, _ := store.Activities.ListRecent(context.Background(), 10)
	if len(acts) != 2 {
		t.Errorf("activity entries = %d, want 2", len(acts))
	}
}

func TestTelegramQueueFullDropsEntries(t *testing.T) {
	bot := newFakeBot()
	bot.release = make(chan struct{})
	tg := newTelegramService(bot, 42, nil)
	t.Cleanup(func() {
		close(bot.release)
		_ = tg.Close(context.Background())
	})

	var err error
	for i := 0; i < telegramQueueSize+2 && err == nil; i++ {
		err = tg.Broadcast(context.Background(), models.Activity{Action: models.ActionCreated, TaskTitle: "t"})
	}
	if err == nil {
		t.Fatal("full queue accepted every entry")
	}
}

func TestNilTelegramServiceIsNoop(t *testing.T) {
	var tg *TelegramService
	if err := tg.Broadcast(context.Background(), models.Activity{}); err != nil {
		t.Errorf("nil service err = %v", err)
	}
	if err := tg.Close(context.Background()); err != nil {
		t.Errorf("nil service Close = %v", err)
	}
	svc, err := NewTelegramService("", 0, nil)
	if svc != nil || err != nil {
		t.Errorf("unconfigured = %v, %v; want nil, nil", svc, err)
	}
}

func TestActivityTextUnknownAction(t *testing.T) {
	got := ActivityText(models.Activity{Action: "<x>", TaskTitle: "t"})
	if got != "&lt;x&gt;: <b>t</b>" {
		t.Errorf("ActivityText = %q", got)
	}
}
