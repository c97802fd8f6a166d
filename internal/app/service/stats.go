package service

import (
	"context"
	"fmt"

	"github.com/MangoMods-code/telegram-bot/internal/app/dispatch"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// Stats handles /stats. Admin-only. Aggregates the full order store:
// distinct users, total orders, total revenue and the product purchased
// most often (by name).
func (s *Storefront) Stats(ctx context.Context, userID string) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.Stats")
	defer span.End()

	if !s.IsAdmin(userID) {
		s.denied(ctx, userID, "stats")
		return dispatch.Reply{Text: "❌ You are not authorized to view stats."}
	}

	all, err := s.orders.All(ctx)
	if err != nil {
		return s.failure(ctx, span, "aggregate stats", err)
	}

	totalUsers := len(all)
	totalOrders := 0
	totalRevenue := decimal.Zero
	counts := make(map[string]int)

	for _, orders := range all {
		for _, order := range orders {
			totalOrders++
			for _, item := range order {
				totalRevenue = totalRevenue.Add(item.Price)
				counts[item.Name]++
			}
		}
	}

	topText := "None"
	topCount := 0
	for name, n := range counts {
		if n > topCount || (n == topCount && topText != "None" && name < topText) {
			topText = name
			topCount = n
		}
	}
	if topCount > 0 {
		topText = fmt.Sprintf("%s (%d orders)", topText, topCount)
	}

	span.SetAttributes(
		attribute.Int("stats.users", totalUsers),
		attribute.Int("stats.orders", totalOrders),
	)

	text := fmt.Sprintf(
		"📊 <b>Usage Stats:</b>\n"+
			"👥 Users: <b>%d</b>\n"+
			"🛒 Orders: <b>%d</b>\n"+
			"💰 Revenue: <b>$%s</b>\n"+
			"🔥 Top Product: <b>%s</b>",
		totalUsers, totalOrders, totalRevenue.StringFixed(2), topText,
	)
	return dispatch.Reply{Text: text, HTML: true}
}
