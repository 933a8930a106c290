package analysis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	"github.com/rawblock/wallet-tracer/internal/heuristics"
	"github.com/rawblock/wallet-tracer/internal/indexer"
	"github.com/rawblock/wallet-tracer/pkg/models"
	"golang.org/x/sync/errgroup"
)

// Indexer is the two-call data source the pipeline depends on.
type Indexer interface {
	FetchAddressStats(ctx context.Context, address string) (models.AddressStats, error)
	FetchAllTransactions(ctx context.Context, address string, onPage indexer.PageFunc) ([]models.RawTransaction, error)
}

// Service runs wallet analyses. It holds no per-request state, so one
// Service may serve concurrent analyses.
type Service struct {
	indexer Indexer
	params  *chaincfg.Params
	cfg     heuristics.Config
}

// NewService creates an analysis service. A nil params defaults to mainnet.
func NewService(idx Indexer, params *chaincfg.Params, cfg heuristics.Config) *Service {
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	return &Service{indexer: idx, params: params, cfg: cfg}
}

// Analyze traces address over the inclusive [startDate, endDate] window.
func (s *Service) Analyze(ctx context.Context, address, startDate, endDate string) (*models.FullAnalysisResponse, error) {
	return s.AnalyzeWithProgress(ctx, address, startDate, endDate, nil)
}

// AnalyzeWithProgress is Analyze with a pagination progress hook.
//
// Input is validated before any fetch. Stats and transactions are fetched
// concurrently; failing to fetch stats aborts the whole analysis, while a
// truncated transaction history only lowers fidelity.
func (s *Service) AnalyzeWithProgress(ctx context.Context, address, startDate, endDate string, onPage indexer.PageFunc) (*models.FullAnalysisResponse, error) {
	address, err := ValidateAddress(address, s.params)
	if err != nil {
		return nil, err
	}
	window, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	reqID := uuid.NewString()
	start := time.Now()
	log.Printf("[Analysis %s] Tracing %s from %s to %s", reqID, address, startDate, endDate)

	var (
		stats models.AddressStats
		raw   []models.RawTransaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.indexer.FetchAddressStats(gctx, address)
		if err != nil {
			return err
		}
		stats = st
		return nil
	})
	g.Go(func() error {
		txs, err := s.indexer.FetchAllTransactions(gctx, address, onPage)
		if err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		raw = txs
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Printf("[Analysis %s] Aborted: %v", reqID, err)
		return nil, err
	}

	resp := BuildReport(address, stats, raw, window, s.cfg)

	log.Printf("[Analysis %s] Done in %s: %d/%d transactions in window, risk %d (%s), profile %q",
		reqID, time.Since(start).Round(time.Millisecond), len(resp.WalletData.Transactions), len(raw),
		resp.RiskAnalysis.Score, resp.RiskAnalysis.Profile, resp.WalletProfileClassified)
	return &resp, nil
}
