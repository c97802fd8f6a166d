package telegram

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MangoMods-code/telegram-bot/internal/app/dispatch"
)

type fakeSender struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func newTestBot(d *dispatch.Dispatcher) (*Bot, *fakeSender) {
	fake := &fakeSender{}
	return &Bot{
		sender:     fake,
		dispatcher: d,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, fake
}

func commandUpdate(userID, chatID int64, text string, commandLen int) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: commandLen},
			},
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: chatID},
		},
	}
}

func TestHandleUpdateCommand(t *testing.T) {
	var got dispatch.Request
	d := dispatch.New()
	d.Command("search", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		got = req
		return dispatch.Reply{Text: "found", HTML: true}
	})
	bot, fake := newTestBot(d)

	bot.HandleUpdate(context.Background(), commandUpdate(42, 100, "/search mango juice", 7))

	assert.Equal(t, "42", got.UserID)
	assert.Equal(t, int64(100), got.ChatID)
	assert.Equal(t, "search", got.Command)
	assert.Equal(t, []string{"mango", "juice"}, got.Args)

	require.Len(t, fake.sent, 1)
	msg, ok := fake.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, "found", msg.Text)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Equal(t, int64(100), msg.ChatID)
}

func TestHandleUpdateCallbackAcksAndDispatches(t *testing.T) {
	var got dispatch.Request
	d := dispatch.New()
	d.Callback("buy_", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		got = req
		return dispatch.Reply{Text: "added"}
	})
	bot, fake := newTestBot(d)

	bot.HandleUpdate(context.Background(), tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb1",
			From:    &tgbotapi.User{ID: 42},
			Data:    "buy_1",
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 100}},
		},
	})

	assert.Equal(t, "buy_1", got.Callback)
	assert.Equal(t, "42", got.UserID)

	// The button press is acknowledged before the reply goes out.
	require.Len(t, fake.requests, 1)
	_, ok := fake.requests[0].(tgbotapi.CallbackConfig)
	assert.True(t, ok)
	require.Len(t, fake.sent, 1)
}

func TestHandleUpdateIgnoresPlainMessages(t *testing.T) {
	d := dispatch.New()
	d.Fallback(func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return dispatch.Reply{Text: "fallback"}
	})
	bot, fake := newTestBot(d)

	bot.HandleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: "hello there",
			From: &tgbotapi.User{ID: 42},
			Chat: &tgbotapi.Chat{ID: 100},
		},
	})

	assert.Empty(t, fake.sent)
}

func TestDeliverRendersSectionsAndKeyboards(t *testing.T) {
	bot, fake := newTestBot(dispatch.New())

	bot.deliver(context.Background(), 100, dispatch.Reply{
		Text: "Select a category:",
		Buttons: []dispatch.Button{
			{Label: "Fruit", Data: "cat_Fruit"},
			{Label: "Bath", Data: "cat_Bath"},
		},
		HTML: true,
		Sections: []dispatch.Section{
			{
				Text:    "<b>Mango</b>",
				Image:   "https://example.com/mango.jpg",
				Buttons: []dispatch.Button{{Label: "🛒 Add to Cart", Data: "buy_1"}},
			},
			{Text: "plain section"},
		},
	})

	require.Len(t, fake.sent, 3)

	msg, ok := fake.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "cat_Fruit", *kb.InlineKeyboard[0][0].CallbackData)

	photo, ok := fake.sent[1].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, "<b>Mango</b>", photo.Caption)
	assert.Equal(t, tgbotapi.ModeHTML, photo.ParseMode)

	plain, ok := fake.sent[2].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, "plain section", plain.Text)
}
