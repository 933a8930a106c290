package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/joho/godotenv"
	"github.com/rawblock/wallet-tracer/internal/heuristics"
)

// Config is the full runtime configuration of the tracer service.
type Config struct {
	Port           string
	IndexerURL     string
	Network        string
	IndexerTimeout time.Duration
	PageDelay      time.Duration
	MaxRetries     int
	MaxTxs         int

	Heuristics heuristics.Config

	RateLimitPerMin int
	RateLimitBurst  int
	AllowedOrigins  string
	DigestLimit     int
}

// Load reads an optional .env file and then the process environment.
// Every setting has a safe default; nothing here is a secret.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to read .env: %v", err)
	}

	return Config{
		Port:           getEnvOrDefault("PORT", "5339"),
		IndexerURL:     getEnvOrDefault("INDEXER_URL", "https://blockstream.info/api"),
		Network:        strings.ToLower(getEnvOrDefault("BTC_NETWORK", "mainnet")),
		IndexerTimeout: time.Duration(getEnvInt("INDEXER_TIMEOUT_SEC", 30)) * time.Second,
		PageDelay:      time.Duration(getEnvInt("INDEXER_PAGE_DELAY_MS", 500)) * time.Millisecond,
		MaxRetries:     getEnvInt("INDEXER_MAX_RETRIES", 2),
		MaxTxs:         getEnvInt("MAX_TRANSACTIONS", 0),

		Heuristics: heuristics.Config{
			BTCPriceUSD:             getEnvFloat("BTC_PRICE_USD", heuristics.DefaultBTCPriceUSD),
			HighValueThresholdUSD:   getEnvFloat("HIGH_VALUE_THRESHOLD_USD", heuristics.DefaultHighValueThresholdUSD),
			StructuringThresholdUSD: getEnvFloat("STRUCTURING_THRESHOLD_USD", heuristics.DefaultStructuringThresholdUSD),
			MIMOMinInputs:           getEnvInt("MIMO_MIN_INPUTS", heuristics.DefaultMIMOMinInputs),
			MIMOMinOutputs:          getEnvInt("MIMO_MIN_OUTPUTS", heuristics.DefaultMIMOMinOutputs),
			PeelChainRatio:          int64(getEnvInt("PEEL_CHAIN_RATIO", heuristics.DefaultPeelChainRatio)),
		},

		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 30),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 10),
		AllowedOrigins:  os.Getenv("ALLOWED_ORIGINS"),
		DigestLimit:     getEnvInt("DIGEST_LIMIT", 15),
	}
}

// NetParams maps a network name to its chain parameters.
func NetParams(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "", "mainnet", "main":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown bitcoin network %q", network)
	}
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return i
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("Warning: %s=%q is not a positive number, using %g", key, v, def)
		return def
	}
	return f
}
