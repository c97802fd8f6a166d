package service

import (
	"context"
	"strings"

	"github.com/MangoMods-code/telegram-bot/internal/app/dispatch"
)

// Routes builds the dispatch table wiring every command and callback to
// its storefront operation. Both transports share the returned
// dispatcher.
func (s *Storefront) Routes() *dispatch.Dispatcher {
	d := dispatch.New()

	d.Command("start", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.Welcome(ctx)
	})
	d.Command("help", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.Help(ctx)
	})
	d.Command("list", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.ListProducts(ctx)
	})
	d.Command("cart", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.ViewCart(ctx, req.UserID)
	})
	d.Command("checkout", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.Checkout(ctx, req.UserID)
	})
	d.Command("orders", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.ViewOrders(ctx, req.UserID)
	})
	d.Command("categories", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.Categories(ctx)
	})
	d.Command("search", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.Search(ctx, req.Args)
	})
	d.Command("addproduct", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.AddProduct(ctx, req.UserID, req.Args)
	})
	d.Command("removeproduct", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.RemoveProduct(ctx, req.UserID, req.Args)
	})
	d.Command("stats", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.Stats(ctx, req.UserID)
	})

	d.CallbackExact("confirm_checkout", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.ConfirmCheckout(ctx, req.UserID)
	})
	addToCart := func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		id, ok := ParseProductID(req.Callback)
		if !ok {
			return dispatch.Reply{Text: "❌ Product not found."}
		}
		return s.AddToCart(ctx, req.UserID, id)
	}
	d.Callback("buy_", addToCart)
	d.Callback("add_", addToCart)
	d.Callback("cat_", func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.ProductsByCategory(ctx, strings.TrimPrefix(req.Callback, "cat_"))
	})

	d.Fallback(func(ctx context.Context, req dispatch.Request) dispatch.Reply {
		return s.Help(ctx)
	})

	return d
}
