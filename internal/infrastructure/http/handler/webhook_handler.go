package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MangoMods-code/telegram-bot/internal/app/dto"
	"github.com/MangoMods-code/telegram-bot/internal/app/service"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/http/response"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/telegram"
)

// WebhookHandler bridges inbound HTTP posts into the bot. It is a pure
// transport adapter: the Telegram route decodes the update and hands it
// to the same code path the polling loop uses.
type WebhookHandler struct {
	bot    *telegram.Bot
	store  *service.Storefront
	logger *slog.Logger
}

func NewWebhookHandler(bot *telegram.Bot, store *service.Storefront, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		bot:    bot,
		store:  store,
		logger: logger,
	}
}

// TelegramWebhook handles POST /webhook.
func (h *WebhookHandler) TelegramWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode Telegram update",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	h.bot.HandleUpdate(r.Context(), update)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// PayPalWebhook handles POST /paypal/webhook. The notification is
// unauthenticated and only recorded; orders are already committed at
// confirm time.
func (h *WebhookHandler) PayPalWebhook(w http.ResponseWriter, r *http.Request) {
	var notification dto.PaymentNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode payment notification",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	id := h.store.RecordPaymentNotification(
		r.Context(),
		notification.PayerEmail,
		notification.AmountDecimal(),
		notification.Custom,
	)

	response.JSON(w, http.StatusOK, dto.PaymentAck{
		Status:         "received",
		NotificationID: id,
	})
}
