package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MangoMods-code/telegram-bot/internal/app/dispatch"
)

// deliver renders a Reply: the main text as one message, then each
// section as its own message (a photo message when the section has an
// image). Send failures are logged, never escalated; message delivery
// is the transport's problem.
func (b *Bot) deliver(ctx context.Context, chatID int64, reply dispatch.Reply) {
	if reply.Text != "" {
		msg := tgbotapi.NewMessage(chatID, reply.Text)
		if reply.HTML {
			msg.ParseMode = tgbotapi.ModeHTML
		}
		if kb, ok := keyboard(reply.Buttons); ok {
			msg.ReplyMarkup = kb
		}
		b.send(ctx, msg)
	}

	for _, section := range reply.Sections {
		b.send(ctx, sectionMessage(chatID, section, reply.HTML))
	}
}

func sectionMessage(chatID int64, section dispatch.Section, html bool) tgbotapi.Chattable {
	parseMode := ""
	if html {
		parseMode = tgbotapi.ModeHTML
	}

	if section.Image != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(section.Image))
		photo.Caption = section.Text
		photo.ParseMode = parseMode
		if kb, ok := keyboard(section.Buttons); ok {
			photo.ReplyMarkup = kb
		}
		return photo
	}

	msg := tgbotapi.NewMessage(chatID, section.Text)
	msg.ParseMode = parseMode
	if kb, ok := keyboard(section.Buttons); ok {
		msg.ReplyMarkup = kb
	}
	return msg
}

// keyboard builds an inline keyboard with one button per row, matching
// how the storefront presents actions.
func keyboard(buttons []dispatch.Button) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(buttons) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, len(buttons))
	for i, btn := range buttons {
		rows[i] = tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := b.sender.Send(c); err != nil {
		b.logger.WarnContext(ctx, "Failed to send message",
			slog.String("error", err.Error()),
		)
	}
}
