package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"smartprice-backend/internal/config"
	"smartprice-backend/internal/engine"
	"smartprice-backend/internal/httpapi"
	"smartprice-backend/internal/kstream"
	"smartprice-backend/internal/scrape"
	"smartprice-backend/internal/stats"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	statsStore := stats.NewStore(cfg.RedisAddr)

	// Project analysis telemetry into the stats counters in the background.
	go func() {
		log.Println("Starting stats projector consumer...")
		if err := kstream.ConsumeAnalysisTopic(ctx, statsStore); err != nil {
			log.Printf("stats projector error: %v", err)
		}
	}()

	scraper := scrape.NewService(cfg)
	cache := scrape.NewCache(cfg.RedisAddr, cfg.CacheTTL)
	eng := engine.New()

	r := mux.NewRouter()
	handler := httpapi.NewHandler(scraper, eng, cache, statsStore, cfg.MaxProductsPerPlatform)
	handler.RegisterRoutes(r)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Shutting down...")
		cancel()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("SmartPrice API listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
