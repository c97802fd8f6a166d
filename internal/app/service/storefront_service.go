package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/MangoMods-code/telegram-bot/internal/app/dispatch"
	"github.com/MangoMods-code/telegram-bot/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const welcomeText = "Welcome to the Official Mango Bot!\n" + helpText

const helpText = "/start - Welcome Message\n" +
	"/list - Browse Products\n" +
	"/cart - View Your Cart\n" +
	"/help - List Commands\n" +
	"/checkout - Checkout what you have in your cart!\n" +
	"/orders - View Your Past Orders\n" +
	"/categories - Browse by category\n" +
	"/search <keyword> - Search products\n" +
	"/stats - Admin stats (orders, revenue, top product)"

// Storefront implements the bot's use cases over the three stores. All
// replies users see are produced here; the transports only render them.
type Storefront struct {
	catalog     domain.CatalogRepository
	carts       domain.CartRepository
	orders      domain.OrderRepository
	purchaseLog domain.PurchaseLogger
	backup      domain.BackupRunner
	admins      map[string]bool
	paypalUser  string

	// Serializes the read-cart/record-order/clear-cart sequence so two
	// concurrent confirms cannot both see a non-empty cart and record
	// the same order twice.
	confirmMu sync.Mutex

	tracer trace.Tracer
	logger *slog.Logger

	ordersCompleted metric.Int64Counter
	revenueTotal    metric.Float64Counter
	cartAdds        metric.Int64Counter
}

// NewStorefront creates the storefront service.
func NewStorefront(
	catalog domain.CatalogRepository,
	carts domain.CartRepository,
	orders domain.OrderRepository,
	purchaseLog domain.PurchaseLogger,
	backup domain.BackupRunner,
	adminIDs []string,
	paypalUser string,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *Storefront {
	ordersCompleted, _ := meter.Int64Counter(
		"store.orders.completed",
		metric.WithDescription("Total number of confirmed checkouts"),
	)
	revenueTotal, _ := meter.Float64Counter(
		"store.revenue.total",
		metric.WithDescription("Total revenue of confirmed checkouts"),
	)
	cartAdds, _ := meter.Int64Counter(
		"store.cart.adds",
		metric.WithDescription("Total number of add-to-cart actions"),
	)

	admins := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}

	return &Storefront{
		catalog:         catalog,
		carts:           carts,
		orders:          orders,
		purchaseLog:     purchaseLog,
		backup:          backup,
		admins:          admins,
		paypalUser:      paypalUser,
		tracer:          tracer,
		logger:          logger,
		ordersCompleted: ordersCompleted,
		revenueTotal:    revenueTotal,
		cartAdds:        cartAdds,
	}
}

// IsAdmin reports whether userID is on the static admin allow-list.
func (s *Storefront) IsAdmin(userID string) bool {
	return s.admins[userID]
}

// Welcome returns the /start greeting.
func (s *Storefront) Welcome(ctx context.Context) dispatch.Reply {
	return dispatch.Reply{Text: welcomeText}
}

// Help returns the /help command listing.
func (s *Storefront) Help(ctx context.Context) dispatch.Reply {
	return dispatch.Reply{Text: helpText}
}

// ListProducts returns one section per catalog product, each with an
// add-to-cart action.
func (s *Storefront) ListProducts(ctx context.Context) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.ListProducts")
	defer span.End()

	products, err := s.catalog.List(ctx)
	if err != nil {
		return s.failure(ctx, span, "list products", err)
	}
	if len(products) == 0 {
		return dispatch.Reply{Text: "No products available yet."}
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	return dispatch.Reply{HTML: true, Sections: productSections(products)}
}

// ProductsByCategory returns the products of one category, selected via
// a cat_<name> callback.
func (s *Storefront) ProductsByCategory(ctx context.Context, category string) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.ProductsByCategory")
	defer span.End()

	span.SetAttributes(attribute.String("category", category))

	products, err := s.catalog.List(ctx)
	if err != nil {
		return s.failure(ctx, span, "filter category", err)
	}

	var filtered []domain.Product
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return dispatch.Reply{Text: fmt.Sprintf("No products found in category: %s", category)}
	}

	return dispatch.Reply{HTML: true, Sections: productSections(filtered)}
}

// Categories lists the distinct categories as selectable actions.
func (s *Storefront) Categories(ctx context.Context) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.Categories")
	defer span.End()

	cats, err := s.catalog.Categories(ctx)
	if err != nil {
		return s.failure(ctx, span, "list categories", err)
	}
	if len(cats) == 0 {
		return dispatch.Reply{Text: "No categories available."}
	}

	buttons := make([]dispatch.Button, len(cats))
	for i, cat := range cats {
		buttons[i] = dispatch.Button{Label: cat, Data: "cat_" + cat}
	}
	return dispatch.Reply{Text: "Select a category:", Buttons: buttons}
}

// Search matches keyword case-insensitively against product names and
// descriptions.
func (s *Storefront) Search(ctx context.Context, args []string) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.Search")
	defer span.End()

	if len(args) == 0 {
		return dispatch.Reply{Text: "Usage: /search <keyword>"}
	}
	keyword := strings.Join(args, " ")
	span.SetAttributes(attribute.String("search.keyword", keyword))

	matches, err := s.catalog.Search(ctx, keyword)
	if err != nil {
		return s.failure(ctx, span, "search products", err)
	}
	if len(matches) == 0 {
		return dispatch.Reply{Text: "No matching products found."}
	}

	span.SetAttributes(attribute.Int("search.matches", len(matches)))
	return dispatch.Reply{HTML: true, Sections: productSections(matches)}
}

// AddToCart appends a snapshot of the product to the user's cart.
func (s *Storefront) AddToCart(ctx context.Context, userID string, productID int64) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.AddToCart")
	defer span.End()

	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int64("product.id", productID),
	)

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		return dispatch.Reply{Text: "❌ Product not found."}
	}

	if err := s.carts.AddItem(ctx, userID, product); err != nil {
		return s.failure(ctx, span, "add to cart", err)
	}

	s.cartAdds.Add(ctx, 1)
	return dispatch.Reply{Text: fmt.Sprintf("✅ %s added to your cart! 🛒", product.Name)}
}

// ViewCart shows the user's cart lines and total.
func (s *Storefront) ViewCart(ctx context.Context, userID string) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.ViewCart")
	defer span.End()

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return s.failure(ctx, span, "view cart", err)
	}
	if len(cart) == 0 {
		return dispatch.Reply{Text: "Your cart is empty."}
	}

	var b strings.Builder
	b.WriteString("🛒 <b>Your Cart:</b>\n\n")
	for _, item := range cart {
		fmt.Fprintf(&b, "• %s - $%s\n", item.Name, item.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n<b>Total:</b> $%s", domain.Total(cart).StringFixed(2))

	return dispatch.Reply{Text: b.String(), HTML: true}
}

// Checkout shows the cart summary with a confirm action. An empty cart
// gets the empty-cart message and no action.
func (s *Storefront) Checkout(ctx context.Context, userID string) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.Checkout")
	defer span.End()

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return s.failure(ctx, span, "checkout", err)
	}
	if len(cart) == 0 {
		return dispatch.Reply{Text: "Your cart is empty."}
	}

	var b strings.Builder
	b.WriteString("🧾 <b>Checkout Summary:</b>\n\n")
	for _, item := range cart {
		fmt.Fprintf(&b, "• %s - $%s\n", item.Name, item.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n<b>Total:</b> $%s\n\n", domain.Total(cart).StringFixed(2))
	b.WriteString("Do you want to confirm your purchase?")

	return dispatch.Reply{
		Text:    b.String(),
		HTML:    true,
		Buttons: []dispatch.Button{{Label: "✅ Confirm", Data: "confirm_checkout"}},
	}
}

// ConfirmCheckout finalizes the purchase: the cart becomes an order, the
// cart is cleared, the purchase is logged, a backup is taken and the
// user receives the payment link. The order is recorded before payment;
// verification happens out of band.
func (s *Storefront) ConfirmCheckout(ctx context.Context, userID string) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.ConfirmCheckout")
	defer span.End()

	span.SetAttributes(attribute.String("user.id", userID))

	s.confirmMu.Lock()
	defer s.confirmMu.Unlock()

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return s.failure(ctx, span, "confirm checkout", err)
	}
	if len(cart) == 0 {
		// The cart can legitimately empty between review and confirm.
		return dispatch.Reply{Text: "Your cart is empty."}
	}

	total := domain.Total(cart)

	if err := s.orders.Append(ctx, userID, cart); err != nil {
		return s.failure(ctx, span, "record order", err)
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		return s.failure(ctx, span, "clear cart", err)
	}
	if err := s.purchaseLog.LogPurchase(ctx, userID, cart); err != nil {
		s.logger.WarnContext(ctx, "Failed to write purchase log",
			slog.String("error", err.Error()),
		)
	}
	if err := s.backup.Run(ctx); err != nil {
		s.logger.WarnContext(ctx, "Backup failed after purchase",
			slog.String("error", err.Error()),
		)
	}

	totalF, _ := total.Float64()
	s.ordersCompleted.Add(ctx, 1)
	s.revenueTotal.Add(ctx, totalF)
	span.SetAttributes(attribute.Float64("order.total", totalF))
	s.logger.InfoContext(ctx, "Checkout confirmed",
		slog.String("user_id", userID),
		slog.Int("items", len(cart)),
		slog.String("total", total.StringFixed(2)),
	)

	link := fmt.Sprintf("https://paypal.me/%s/%s", s.paypalUser, total.StringFixed(2))
	text := fmt.Sprintf(
		"💳 Please pay <b>$%s</b> using the link below:\n%s\n\n"+
			"📸 After payment, please send a screenshot or your PayPal email for manual verification.\n\n"+
			"✅ Thank you for your purchase!",
		total.StringFixed(2), link,
	)
	return dispatch.Reply{Text: text, HTML: true}
}

// ViewOrders shows the user's purchase history, one line per order.
func (s *Storefront) ViewOrders(ctx context.Context, userID string) dispatch.Reply {
	ctx, span := s.tracer.Start(ctx, "Storefront.ViewOrders")
	defer span.End()

	orders, err := s.orders.Get(ctx, userID)
	if err != nil {
		return s.failure(ctx, span, "view orders", err)
	}
	if len(orders) == 0 {
		return dispatch.Reply{Text: "You have no completed purchases."}
	}

	var b strings.Builder
	b.WriteString("📦 <b>Your Orders:</b>\n")
	for i, order := range orders {
		names := make([]string, len(order))
		for j, p := range order {
			names[j] = p.Name
		}
		fmt.Fprintf(&b, "\nOrder %d: %s | Total: $%s",
			i+1, strings.Join(names, ", "), domain.Total(order).StringFixed(2))
	}

	return dispatch.Reply{Text: b.String(), HTML: true}
}

// ParseProductID extracts the numeric id from callback data such as
// "buy_3" or "add_3".
func ParseProductID(callback string) (int64, bool) {
	_, raw, found := strings.Cut(callback, "_")
	if !found {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// failure logs an unexpected store error and hides it behind a generic
// user-facing reply.
func (s *Storefront) failure(ctx context.Context, span trace.Span, op string, err error) dispatch.Reply {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	s.logger.ErrorContext(ctx, "Operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	return dispatch.Reply{Text: "⚠️ Something went wrong. Please try again."}
}

func productSections(products []domain.Product) []dispatch.Section {
	sections := make([]dispatch.Section, len(products))
	for i, p := range products {
		sections[i] = dispatch.Section{
			Text: fmt.Sprintf("<b>%s</b>\n\n%s\n\n💵 $%s",
				p.Name, p.Description, p.Price.StringFixed(2)),
			Image: p.Image,
			Buttons: []dispatch.Button{
				{Label: "🛒 Add to Cart", Data: fmt.Sprintf("buy_%d", p.ID)},
			},
		}
	}
	return sections
}
