// Package telegram adapts Telegram updates to the dispatcher and
// renders replies back through the Bot API. The webhook server feeds
// the same HandleUpdate entry point, so both transports share one code
// path after decoding.
package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MangoMods-code/telegram-bot/internal/app/dispatch"
)

// Sender is the slice of *tgbotapi.BotAPI the bot needs to deliver
// replies. Tests substitute a recording fake.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot routes inbound updates to the dispatcher and sends the resulting
// replies.
type Bot struct {
	api        *tgbotapi.BotAPI
	sender     Sender
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

func New(api *tgbotapi.BotAPI, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Bot {
	return &Bot{
		api:        api,
		sender:     api,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("Bot is running in polling mode",
		slog.String("username", b.api.Self.UserName),
	)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// RegisterWebhook points Telegram's update delivery at publicURL.
func (b *Bot) RegisterWebhook(publicURL string) error {
	wh, err := tgbotapi.NewWebhook(strings.TrimSuffix(publicURL, "/") + "/webhook")
	if err != nil {
		return err
	}
	_, err = b.sender.Request(wh)
	return err
}

// HandleUpdate converts one update into a dispatch request, runs it and
// delivers the reply. Non-command messages are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		if q.Message == nil {
			return
		}
		// Acknowledge the button press so the client stops its spinner.
		if _, err := b.sender.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
			b.logger.WarnContext(ctx, "Failed to answer callback query",
				slog.String("error", err.Error()),
			)
		}

		req := dispatch.Request{
			UserID:   strconv.FormatInt(q.From.ID, 10),
			ChatID:   q.Message.Chat.ID,
			Callback: q.Data,
		}
		b.deliver(ctx, req.ChatID, b.dispatcher.Dispatch(ctx, req))

	case update.Message != nil && update.Message.IsCommand():
		m := update.Message
		req := dispatch.Request{
			UserID:  strconv.FormatInt(m.From.ID, 10),
			ChatID:  m.Chat.ID,
			Command: m.Command(),
			Args:    strings.Fields(m.CommandArguments()),
		}
		b.deliver(ctx, req.ChatID, b.dispatcher.Dispatch(ctx, req))
	}
}
