package bot

import (
	"context"
	"fmt"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Identity is the bot account as reported by Telegram.
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// Bot wraps the Telegram transport and dispatches inbound updates to the
// conversation Handler. Each update runs in its own goroutine; messages
// share no mutable state, so no ordering or locking is needed.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	log     zerolog.Logger

	running atomic.Bool
}

// New creates the long-lived Telegram client. A bad token fails here
// and is fatal for the process.
func New(token string, handler *Handler, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("New: create telegram client: %w", err)
	}
	return &Bot{api: api, handler: handler, log: log}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.running.Store(true)
	defer b.running.Store(false)
	b.log.Info().Str("username", b.api.Self.UserName).Msg("Bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info().Msg("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate processes one message. The recover keeps an unexpected
// fault isolated to this message; the process keeps serving.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().
				Interface("panic", r).
				Int64("chat_id", msg.Chat.ID).
				Str("message", msg.Text).
				Msg("Panic while handling message")
			b.reply(msg.Chat.ID, Reply{Text: unexpectedErrorMessage})
		}
	}()

	if msg.IsCommand() {
		b.reply(msg.Chat.ID, b.handler.Command(msg.Command()))
		return
	}

	b.sendTyping(msg.Chat.ID)
	b.reply(msg.Chat.ID, b.handler.HandleText(ctx, msg.From.ID, msg.Text))
}

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.log.Debug().Err(err).Int64("chat_id", chatID).Msg("Typing action failed")
	}
}

func (b *Bot) reply(chatID int64, r Reply) {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if r.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send reply")
	}
}

// Running reports whether the polling loop is active.
func (b *Bot) Running() bool {
	return b.running.Load()
}

// WhoAmI fetches the bot account identity from Telegram.
func (b *Bot) WhoAmI() (Identity, error) {
	me, err := b.api.GetMe()
	if err != nil {
		return Identity{}, fmt.Errorf("WhoAmI: get me: %w", err)
	}
	return Identity{ID: me.ID, Username: me.UserName, FirstName: me.FirstName}, nil
}
