package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YelzhanWeb/recipes/internal/adapter/apiclient"
	"github.com/YelzhanWeb/recipes/internal/adapter/logger"
	"github.com/YelzhanWeb/recipes/internal/adapter/postgres"
	"github.com/YelzhanWeb/recipes/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/recipes/internal/app/catalog"
	"github.com/YelzhanWeb/recipes/internal/app/console"
	"github.com/YelzhanWeb/recipes/internal/config"
	"github.com/YelzhanWeb/recipes/internal/interfaces"

	amqpAdapter "github.com/YelzhanWeb/recipes/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/recipes/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Service mode: recipe-api, console, notification-subscriber")
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	port := flag.Int("port", 0, "HTTP port (overrides http.port from config)")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	switch *mode {
	case "recipe-api":
		runRecipeAPI(ctx, cfg, lgr)

	case "console":
		runConsole(ctx, cfg, lgr)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runRecipeAPI(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	service := catalog.NewService(
		postgres.NewRecipeRepository(db),
		postgres.NewInventoryRepository(db),
		postgres.NewRecipeItemRepository(db),
		lgr,
	)
	handler := httpAdapter.NewRouter(lgr, cfg.HTTP.AllowedOrigins, httpAdapter.NewRecipeHandler(service, lgr))

	serve(lgr, "Recipe API", cfg.HTTP.Port, handler)
}

func runConsole(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	// Toasts are best effort; the console still works without a broker
	var notifier interfaces.Notifier
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		lgr.Error("rabbitmq_unavailable", "Notifications disabled", "startup", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		}, err)
	} else {
		defer mqConn.Close()
		notifier = rabbitmq.NewPublisher(mqConn)
		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
	}

	coordinator := console.NewCoordinator(apiclient.New(cfg.API), notifier, lgr)
	if err := coordinator.Load(ctx); err != nil {
		lgr.Error("initial_load_failed", "Initial load failed, waiting for retry", "startup", map[string]interface{}{
			"api": cfg.API.BaseURL,
		}, err)
	}

	handler := httpAdapter.NewRouter(lgr, cfg.HTTP.AllowedOrigins, httpAdapter.NewConsoleHandler(coordinator, lgr))

	serve(lgr, "Recipe Console", cfg.HTTP.Port, handler)
}

func serve(lgr logger.Logger, name string, port int, handler http.Handler) {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("%s started on port %d", name, port), "startup", map[string]interface{}{
		"port": port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down "+name, "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	consumer := rabbitmq.NewConsumer(mqConn, lgr)
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", nil)

	go func() {
		if err := consumer.ConsumeNotifications(ctx, notificationHandler.HandleNotification); err != nil {
			lgr.Error("consumer_error", "Error consuming notifications", "runtime", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}
