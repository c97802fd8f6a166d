package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/MangoMods-code/telegram-bot/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
)

// PurchaseLog appends human-readable purchase and payment records to a
// single log file. Unlike the JSON stores this file is append-only.
type PurchaseLog struct {
	mu     sync.Mutex
	path   string
	tracer trace.Tracer
	logger *slog.Logger
}

func NewPurchaseLog(path string, tracer trace.Tracer, logger *slog.Logger) *PurchaseLog {
	return &PurchaseLog{
		path:   path,
		tracer: tracer,
		logger: logger,
	}
}

// LogPurchase records a completed order, one indented line per item.
func (l *PurchaseLog) LogPurchase(ctx context.Context, userID string, items []domain.Product) error {
	_, span := l.tracer.Start(ctx, "PurchaseLog.LogPurchase")
	defer span.End()

	var b strings.Builder
	fmt.Fprintf(&b, "User %s - Order:\n", userID)
	for _, item := range items {
		fmt.Fprintf(&b, "  - %s ($%s)\n", item.Name, item.Price.StringFixed(2))
	}
	b.WriteString("\n")

	return l.append(span, b.String())
}

// LogPayment records a claimed (unverified) payment notification.
func (l *PurchaseLog) LogPayment(ctx context.Context, notificationID, payerEmail string, amount decimal.Decimal, userID string) error {
	_, span := l.tracer.Start(ctx, "PurchaseLog.LogPayment")
	defer span.End()

	line := fmt.Sprintf("Payment %s - %s claims $%s (User ID: %s)\n",
		notificationID, payerEmail, amount.StringFixed(2), userID)
	return l.append(span, line)
}

func (l *PurchaseLog) append(span trace.Span, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		span.RecordError(err)
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
