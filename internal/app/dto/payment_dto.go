package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PaymentNotification is the unauthenticated JSON body posted to the
// PayPal webhook. Custom carries the Telegram user id set at checkout.
// No signature verification is performed; the claim is only logged.
type PaymentNotification struct {
	PayerEmail string      `json:"payer_email"`
	Amount     json.Number `json:"amount"`
	Custom     string      `json:"custom"`
}

// AmountDecimal parses the claimed amount, zero when absent or invalid.
func (n *PaymentNotification) AmountDecimal() decimal.Decimal {
	amount, err := decimal.NewFromString(n.Amount.String())
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// PaymentAck is the webhook acknowledgement body.
type PaymentAck struct {
	Status         string `json:"status"`
	NotificationID string `json:"notification_id"`
}
