package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiresToken(t *testing.T) {
	cfg := LoadConfig()
	cfg.Bot.Token = ""
	assert.Error(t, cfg.Validate())

	cfg.Bot.Token = "123:abc"
	cfg.Bot.Mode = ModePolling
	assert.NoError(t, cfg.Validate())
}

func TestValidateWebhookNeedsPublicURL(t *testing.T) {
	cfg := LoadConfig()
	cfg.Bot.Token = "123:abc"
	cfg.Bot.Mode = ModeWebhook
	cfg.Bot.PublicURL = ""
	assert.Error(t, cfg.Validate())

	cfg.Bot.PublicURL = "https://bot.example.com"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := LoadConfig()
	cfg.Bot.Token = "123:abc"
	cfg.Bot.Mode = "carrier-pigeon"
	assert.Error(t, cfg.Validate())
}

func TestAdminIDsSplitting(t *testing.T) {
	t.Setenv("ADMIN_IDS", " 6407125860, 123 ,,456")
	cfg := LoadConfig()
	assert.Equal(t, []string{"6407125860", "123", "456"}, cfg.Bot.AdminIDs)
}

func TestStoragePaths(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/storebot")
	cfg := LoadConfig()

	assert.Equal(t, "/var/lib/storebot/products.json", cfg.Storage.ProductsFile())
	assert.Equal(t, "/var/lib/storebot/cart_data.json", cfg.Storage.CartFile())
	assert.Equal(t, "/var/lib/storebot/orders_data.json", cfg.Storage.OrdersFile())
	assert.Equal(t, "/var/lib/storebot/purchase.log", cfg.Storage.LogFile())
	require.Len(t, cfg.Storage.TrackedFiles(), 4)
}
