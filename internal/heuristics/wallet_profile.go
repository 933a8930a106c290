package heuristics

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/rawblock/wallet-tracer/pkg/models"
)

// Wallet profile labels.
const (
	ProfileWhale       = "Whale"
	ProfileLargeHolder = "Large Holder"
	ProfileTrader      = "Trader"
	ProfileAtRisk      = "At-Risk Wallet"
	ProfileStandard    = "Standard Wallet"
)

// ClassifyWallet assigns a coarse label from lifetime stats and the red
// flags of the analyzed window. First match wins, so size and activity
// outrank red flags.
func ClassifyWallet(stats models.AddressStats, flags models.RedFlags) string {
	balanceBTC := btcutil.Amount(stats.Balance()).ToBTC()

	switch {
	case balanceBTC >= 1000:
		return ProfileWhale
	case balanceBTC >= 100 && stats.TxCount < 50:
		return ProfileLargeHolder
	case stats.TxCount >= 500:
		return ProfileTrader
	case flags.Any():
		return ProfileAtRisk
	default:
		return ProfileStandard
	}
}
