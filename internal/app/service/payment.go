package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// RecordPaymentNotification logs an unauthenticated payment claim from
// the PayPal webhook and returns the notification id assigned to it.
// Orders are recorded optimistically at confirm time, so no
// reconciliation happens here; the id only correlates log lines.
func (s *Storefront) RecordPaymentNotification(ctx context.Context, payerEmail string, amount decimal.Decimal, userID string) string {
	ctx, span := s.tracer.Start(ctx, "Storefront.RecordPaymentNotification")
	defer span.End()

	id := uuid.New().String()
	span.SetAttributes(
		attribute.String("payment.notification_id", id),
		attribute.String("payment.user_id", userID),
	)

	s.logger.InfoContext(ctx, "Payment notification received",
		slog.String("notification_id", id),
		slog.String("payer_email", payerEmail),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("user_id", userID),
	)

	if err := s.purchaseLog.LogPayment(ctx, id, payerEmail, amount, userID); err != nil {
		s.logger.WarnContext(ctx, "Failed to log payment notification",
			slog.String("error", err.Error()),
		)
	}
	return id
}
