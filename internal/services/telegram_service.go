package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"taskflow/internal/models"
)

type tgSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

const (
	telegramSendTimeout = 10 * time.Second
	telegramQueueSize   = 64
)

var errFeedClosed = errors.New("telegram feed closed")

// TelegramService posts activity entries to one team chat. Entries are queued
// and sent in order by a single worker, so requests never wait on the Bot API.
type TelegramService struct {
	bot    tgSender
	chatID int64
	log    *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan models.Activity
	done   chan struct{}
}

// NewTelegramService logs in with botToken. It returns nil, nil when the bot
// is not configured so callers can pass the result straight on as a Broadcaster.
func NewTelegramService(botToken string, chatID int64, log *zap.Logger) (*TelegramService, error) {
	if botToken == "" || chatID == 0 {
		return nil, nil
	}
	client := &http.Client{Timeout: telegramSendTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(botToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	return newTelegramService(bot, chatID, log), nil
}

func newTelegramService(bot tgSender, chatID int64, log *zap.Logger) *TelegramService {
	if log == nil {
		log = zap.NewNop()
	}
	t := &TelegramService{
		bot:    bot,
		chatID: chatID,
		log:    log.Named("telegram"),
		queue:  make(chan models.Activity, telegramQueueSize),
		done:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TelegramService) run() {
	defer close(t.done)
	for a := range t.queue {
		if err := t.send(a); err != nil {
			t.log.Warn("[tg][send] failed", zap.String("action", a.Action), zap.Error(err))
		}
	}
}

// Broadcast queues a for the chat and returns at once. It fails when the
// queue is full or the service is closed; the entry is dropped then.
func (t *TelegramService) Broadcast(ctx context.Context, a models.Activity) error {
	if t == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return errFeedClosed
	}
	select {
	case t.queue <- a:
		return nil
	default:
		return fmt.Errorf("telegram queue full, dropped %q", a.Action)
	}
}

// Close stops accepting entries and waits for queued ones until ctx is done.
func (t *TelegramService) Close(ctx context.Context) error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.queue)
	}
	t.mu.Unlock()

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *TelegramService) send(a models.Activity) error {
	msg := tgbotapi.NewMessage(t.chatID, ActivityText(a))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	t.log.Debug("[tg][send] ok", zap.Int64("chat_id", t.chatID), zap.String("action", a.Action))
	return nil
}

var activityVerbs = map[string]string{
	models.ActionCreated:      "🆕 Created",
	models.ActionUpdated:      "✏️ Updated",
	models.ActionCompleted:    "✅ Completed",
	models.ActionUncompleted:  "↩️ Reopened",
	models.ActionDeleted:      "🗑 Deleted",
	models.ActionCleared:      "🧹 Cleared",
	models.ActionFocusSession: "⏱ Focused",
}

// ActivityText renders one entry as a Telegram HTML line.
func ActivityText(a models.Activity) string {
	verb, ok := activityVerbs[a.Action]
	if !ok {
		verb = html.EscapeString(a.Action)
	}
	return fmt.Sprintf("%s: <b>%s</b>", verb, html.EscapeString(a.TaskTitle))
}
