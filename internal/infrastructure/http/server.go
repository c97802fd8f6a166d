package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/config"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/http/handler"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/http/middleware"
)

// Server is the HTTP side of the bot: the Telegram webhook, the PayPal
// notification endpoint, health and Prometheus metrics.
type Server struct {
	router  *chi.Mux
	config  *config.ServerConfig
	handler *handler.WebhookHandler
	logger  *slog.Logger
	srv     *http.Server

	// webhookEnabled gates the Telegram route; in polling mode the
	// server still serves health, metrics and the PayPal endpoint.
	webhookEnabled bool
}

func NewServer(
	cfg *config.ServerConfig,
	handler *handler.WebhookHandler,
	logger *slog.Logger,
	webhookEnabled bool,
) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		config:         cfg,
		handler:        handler,
		logger:         logger,
		webhookEnabled: webhookEnabled,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.RequestID)
}

func (s *Server) setupRoutes() {
	if s.webhookEnabled {
		s.router.Post("/webhook", s.handler.TelegramWebhook)
	}
	s.router.Post("/paypal/webhook", s.handler.PayPalWebhook)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus endpoint, fed by the OpenTelemetry meter provider.
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
	s.logger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Bool("telegram_webhook", s.webhookEnabled),
	)

	wrapped := otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
	)

	s.srv = &http.Server{Addr: addr, Handler: wrapped}
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
