package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	pollTimeoutSeconds = 30

	// messageTimeout caps the full pipeline for one inbound message.
	messageTimeout = 60 * time.Second
)

// Telegram long-polls the Bot API and dispatches updates to the Handler.
type Telegram struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  *log.Logger
}

func NewTelegram(token string, handler *Handler, logger *log.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Telegram{api: api, handler: handler, logger: logger}, nil
}

// Run polls for updates until the context is cancelled. Each message is
// handled in its own goroutine so a slow pipeline call for one user does not
// block the others.
func (t *Telegram) Run(ctx context.Context) error {
	// a leftover webhook and long polling cannot coexist
	if _, err := t.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := t.api.GetUpdatesChan(cfg)

	t.logger.Printf("telegram bot @%s polling for updates", t.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			go t.handleMessage(ctx, update.Message)
		}
	}
}

func (t *Telegram) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(ctx, messageTimeout)
	defer cancel()

	userID := msg.From.ID

	var reply, parseMode string
	switch msg.Command() {
	case "start":
		reply = t.handler.Start(userID, displayName(msg.From))
		parseMode = tgbotapi.ModeHTML
	case "help":
		reply = t.handler.Help(userID)
	case "clear":
		reply = t.handler.Clear(userID)
	default:
		if strings.TrimSpace(msg.Text) == "" {
			return
		}
		t.logger.Printf("user %d message: %s", userID, msg.Text)
		reply = t.handler.Message(ctx, userID, msg.Text)
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ParseMode = parseMode
	if _, err := t.api.Send(out); err != nil {
		t.logger.Printf("send reply to chat %d: %v", msg.Chat.ID, err)
	}
}

func displayName(user *tgbotapi.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = user.UserName
	}
	return name
}
