package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"droneRentalMarketplace/internal/config"
	"droneRentalMarketplace/internal/stubserver"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	stub := stubserver.NewServer(cfg.Auth.JWTSecret)
	srv := &http.Server{
		Addr:    cfg.Stub.Address,
		Handler: stub.Handler(),
	}

	go func() {
		log.Printf("stub backend listening on %s (demo OTP %s)", cfg.Stub.Address, stubserver.DemoOTP)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
