package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/MangoMods-code/telegram-bot/internal/app/dispatch"
	"github.com/MangoMods-code/telegram-bot/internal/domain"
	"go.opentelemetry.io/otel/attribute"
)

// AddProduct handles /addproduct. Admin-only. Args are five
// space-separated fields: name price description image category.
func (s *Storefront) AddProduct(ctx context.Context, userID string, args []string) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.AddProduct")
	defer span.End()

	if !s.IsAdmin(userID) {
		s.denied(ctx, userID, "addproduct")
		return dispatch.Reply{Text: "❌ You are not authorized to add products."}
	}

	if len(args) < 5 {
		return dispatch.Reply{Text: "Usage:\n/addproduct <name> <price> <description> <image_url> <category>"}
	}

	name := args[0]
	price, err := domain.ParsePrice(args[1])
	if err != nil {
		return dispatch.Reply{Text: "❌ Invalid price format."}
	}

	product, err := s.catalog.Add(ctx, name, price, args[2], args[3], args[4])
	if err != nil {
		return s.failure(ctx, span, "add product", err)
	}

	span.SetAttributes(attribute.Int64("product.id", product.ID))
	return dispatch.Reply{Text: fmt.Sprintf("✅ Product '%s' added successfully!", product.Name)}
}

// RemoveProduct handles /removeproduct <id>. Admin-only.
func (s *Storefront) RemoveProduct(ctx context.Context, userID string, args []string) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.RemoveProduct")
	defer span.End()

	if !s.IsAdmin(userID) {
		s.denied(ctx, userID, "removeproduct")
		return dispatch.Reply{Text: "❌ You are not authorized to remove products."}
	}

	if len(args) == 0 {
		return dispatch.Reply{Text: "Usage:\n/removeproduct <product_id>"}
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return dispatch.Reply{Text: "❌ Invalid product ID."}
	}

	removed, err := s.catalog.Remove(ctx, id)
	if err != nil {
		return s.failure(ctx, span, "remove product", err)
	}
	if !removed {
		return dispatch.Reply{Text: fmt.Sprintf("❌ Product ID %d not found.", id)}
	}
	return dispatch.Reply{Text: fmt.Sprintf("✅ Product ID %d removed.", id)}
}

func (s *Storefront) denied(ctx context.Context, userID, command string) {
	s.logger.WarnContext(ctx, "Admin command denied",
		slog.String("user_id", userID),
		slog.String("command", command),
	)
}
