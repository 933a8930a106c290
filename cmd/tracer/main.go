package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rawblock/wallet-tracer/internal/analysis"
	"github.com/rawblock/wallet-tracer/internal/api"
	"github.com/rawblock/wallet-tracer/internal/config"
	"github.com/rawblock/wallet-tracer/internal/indexer"
)

func main() {
	log.Println("Starting RawBlock Wallet Tracer...")

	// Nothing here is a secret: every setting has a default and a .env file
	// is optional. See .env.example.
	cfg := config.Load()

	params, err := config.NetParams(cfg.Network)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	idx := indexer.NewClient(cfg.IndexerURL,
		indexer.WithTimeout(cfg.IndexerTimeout),
		indexer.WithPageDelay(cfg.PageDelay),
		indexer.WithMaxRetries(cfg.MaxRetries),
		indexer.WithMaxTransactions(cfg.MaxTxs),
	)
	log.Printf("Indexer: %s (network %s, page delay %s, max txs %d)", cfg.IndexerURL, params.Name, cfg.PageDelay, cfg.MaxTxs)

	svc := analysis.NewService(idx, params, cfg.Heuristics)

	r := api.SetupRouter(svc, api.RouterConfig{
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		RateLimitBurst:  cfg.RateLimitBurst,
		DigestLimit:     cfg.DigestLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Tracer running on :%s\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: graceful shutdown failed: %v", err)
	}
}
