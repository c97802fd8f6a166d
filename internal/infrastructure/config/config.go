package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

type Config struct {
	Bot     BotConfig
	Server  ServerConfig
	Storage StorageConfig
	OTLP    OTLPConfig
}

type BotConfig struct {
	Token          string
	Mode           string
	PublicURL      string
	PayPalUsername string
	AdminIDs       []string
}

type ServerConfig struct {
	Port string
	Host string
}

type StorageConfig struct {
	DataDir    string
	BackupDir  string
	BackupKeep int
}

type OTLPConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

// LoadConfig loads configuration from a .env file (if present) and
// environment variables.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Bot: BotConfig{
			Token:          os.Getenv("TELEGRAM_API_TOKEN"),
			Mode:           getEnv("BOT_MODE", ModePolling),
			PublicURL:      os.Getenv("PUBLIC_URL"),
			PayPalUsername: getEnv("PAYPAL_USERNAME", "mangostore"),
			AdminIDs:       splitList(os.Getenv("ADMIN_IDS")),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Storage: StorageConfig{
			DataDir:    getEnv("DATA_DIR", "."),
			BackupDir:  getEnv("BACKUP_DIR", "backups"),
			BackupKeep: getEnvInt("BACKUP_KEEP", 0),
		},
		OTLP: OTLPConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront-bot"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
	}
}

// Validate reports startup-time configuration errors. These are fatal:
// the process must not serve without them.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return errors.New("TELEGRAM_API_TOKEN is not set")
	}
	if c.Bot.Mode != ModePolling && c.Bot.Mode != ModeWebhook {
		return errors.New("BOT_MODE must be \"polling\" or \"webhook\"")
	}
	if c.Bot.Mode == ModeWebhook && c.Bot.PublicURL == "" {
		return errors.New("PUBLIC_URL is required in webhook mode")
	}
	return nil
}

// File paths of the persisted stores, rooted at DataDir.

func (c *StorageConfig) ProductsFile() string { return filepath.Join(c.DataDir, "products.json") }
func (c *StorageConfig) CartFile() string     { return filepath.Join(c.DataDir, "cart_data.json") }
func (c *StorageConfig) OrdersFile() string   { return filepath.Join(c.DataDir, "orders_data.json") }
func (c *StorageConfig) LogFile() string      { return filepath.Join(c.DataDir, "purchase.log") }

// TrackedFiles lists every file mirrored by the backup mechanism.
func (c *StorageConfig) TrackedFiles() []string {
	return []string{c.OrdersFile(), c.CartFile(), c.ProductsFile(), c.LogFile()}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
