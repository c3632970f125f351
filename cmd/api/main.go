package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/recaptcha-form/internal/application/notification"
	"github.com/recaptcha-form/internal/config"
	"github.com/recaptcha-form/internal/infrastructure/recaptcha"
	"github.com/recaptcha-form/internal/infrastructure/smtp"
	"github.com/recaptcha-form/internal/infrastructure/sns"
	transporthttp "github.com/recaptcha-form/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	deps := &transporthttp.Deps{
		Scorer: recaptcha.NewVerifier(cfg.Recaptcha),
	}

	// Forwarding of accepted submissions. Each channel is optional and
	// enabled only when configured.
	var mailer smtp.Mailer
	if cfg.NotifyEmailTo != "" {
		mailer = smtp.NewMailer(cfg)
	}
	var publisher sns.Publisher
	if cfg.SNSTopicARN != "" {
		if p, err := sns.NewPublisher(context.Background(), cfg); err == nil {
			publisher = p
		} else {
			log.Printf("WARN: SNS publisher not available: %v", err)
		}
	}
	if mailer != nil || publisher != nil {
		deps.Notifier = notification.NewService(mailer, cfg.NotifyEmailTo, publisher)
	}

	router, err := transporthttp.NewRouter(cfg, deps)
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	// No WriteTimeout: the scoring call has no deadline unless
	// RECAPTCHA_TIMEOUT is set.
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.AppPort),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
