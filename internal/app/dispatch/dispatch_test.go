package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reply(text string) Handler {
	return func(ctx context.Context, req Request) Reply {
		return Reply{Text: text}
	}
}

func TestDispatchCommands(t *testing.T) {
	d := New()
	d.Command("cart", reply("cart"))
	d.Fallback(reply("fallback"))

	got := d.Dispatch(context.Background(), Request{Command: "cart"})
	assert.Equal(t, "cart", got.Text)

	// Command matching is case-sensitive.
	got = d.Dispatch(context.Background(), Request{Command: "Cart"})
	assert.Equal(t, "fallback", got.Text)

	got = d.Dispatch(context.Background(), Request{Command: "unknown"})
	assert.Equal(t, "fallback", got.Text)
}

func TestDispatchCallbackFirstMatchWins(t *testing.T) {
	d := New()
	d.CallbackExact("confirm_checkout", reply("confirm"))
	d.Callback("buy_", reply("buy"))
	d.Callback("b", reply("broad"))
	d.Fallback(reply("fallback"))

	got := d.Dispatch(context.Background(), Request{Callback: "confirm_checkout"})
	assert.Equal(t, "confirm", got.Text)

	// buy_ was registered before the broader prefix, so it wins.
	got = d.Dispatch(context.Background(), Request{Callback: "buy_7"})
	assert.Equal(t, "buy", got.Text)

	got = d.Dispatch(context.Background(), Request{Callback: "banana"})
	assert.Equal(t, "broad", got.Text)

	got = d.Dispatch(context.Background(), Request{Callback: "cat_Fruit"})
	assert.Equal(t, "fallback", got.Text)
}

func TestDispatchExactDoesNotMatchPrefix(t *testing.T) {
	d := New()
	d.CallbackExact("confirm_checkout", reply("confirm"))
	d.Fallback(reply("fallback"))

	got := d.Dispatch(context.Background(), Request{Callback: "confirm_checkout_extra"})
	assert.Equal(t, "fallback", got.Text)
}

func TestDispatchWithoutFallback(t *testing.T) {
	d := New()
	got := d.Dispatch(context.Background(), Request{Command: "anything"})
	assert.Equal(t, Reply{}, got)
}
