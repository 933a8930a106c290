package analysis

import (
	"github.com/rawblock/wallet-tracer/internal/heuristics"
	"github.com/rawblock/wallet-tracer/pkg/models"
)

// DefaultDigestLimit is how many transactions a digest keeps for
// downstream report generation.
const DefaultDigestLimit = 15

// BuildReport runs the pure part of the pipeline over already fetched
// data: window filter, enrichment, detectors, risk and wallet profile.
func BuildReport(address string, stats models.AddressStats, raw []models.RawTransaction, window heuristics.DateRange, cfg heuristics.Config) models.FullAnalysisResponse {
	filtered := heuristics.FilterWindow(raw, window)
	enriched := heuristics.EnrichTransactions(filtered, address)

	flags := heuristics.DetectRedFlags(enriched, address, cfg)
	risk := heuristics.ScoreRedFlags(flags)
	profile := heuristics.ClassifyWallet(stats, flags)

	return AssembleReport(address, stats, enriched, heuristics.AssociatedAddresses(enriched, address), risk, profile)
}

// AssembleReport composes the final response. It performs no I/O.
func AssembleReport(address string, stats models.AddressStats, txs []models.EnrichedTransaction, associated []string, risk models.RiskAnalysis, profile string) models.FullAnalysisResponse {
	if txs == nil {
		txs = []models.EnrichedTransaction{}
	}
	if associated == nil {
		associated = []string{}
	}

	return models.FullAnalysisResponse{
		WalletData: models.WalletAnalysis{
			Address:             address,
			TotalTransactions:   stats.TxCount,
			TotalReceived:       stats.FundedTxoSum,
			TotalSent:           stats.SpentTxoSum,
			FinalBalance:        stats.Balance(),
			Transactions:        txs,
			AssociatedAddresses: associated,
		},
		RiskAnalysis:            risk,
		WalletProfileClassified: profile,
		ChainStats:              stats,
	}
}

// Digest returns the response truncated for a text-generation consumer.
// The canonical response is not modified.
func Digest(resp models.FullAnalysisResponse, limit int) models.FullAnalysisResponse {
	if limit <= 0 {
		limit = DefaultDigestLimit
	}
	return resp.Truncated(limit)
}
