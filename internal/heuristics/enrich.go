package heuristics

import (
	"github.com/rawblock/wallet-tracer/pkg/models"
)

// Transaction Enrichment
//
// Every transaction inside the window is annotated once, relative to the
// address under analysis:
//
//   balance_delta = Σ outputs paid to the address − Σ prevouts it spent
//   total_value   = Σ all outputs (not address-filtered)
//   pattern_label = structural shape from input/output counts
//
// Inputs whose prevout could not be resolved (coinbase, pruned history)
// contribute nothing to the spent side.

// ClassifyPattern labels a transaction by its input/output counts.
// Rules are evaluated in order and the first match wins.
func ClassifyPattern(nIn, nOut int) models.PatternLabel {
	switch {
	case nIn == 1 && nOut == 2:
		return models.PatternPeelChain
	case nIn >= 5 && nOut == 1:
		return models.PatternConsolidation
	case nIn == 1 && nOut >= 5:
		return models.PatternDistribution
	case nIn > 2 && nOut > 2:
		return models.PatternComplex
	default:
		return models.PatternStandard
	}
}

// BalanceDelta returns the net flow of tx for address. Positive means inflow.
func BalanceDelta(tx models.RawTransaction, address string) int64 {
	var received, spent int64
	for _, out := range tx.Vout {
		if out.ScriptPubKeyAddress != nil && *out.ScriptPubKeyAddress == address {
			received += out.Sats()
		}
	}
	for _, in := range tx.Vin {
		if in.SpendsFrom(address) {
			spent += in.Prevout.Sats()
		}
	}
	return received - spent
}

// TotalOutputValue sums every output of tx.
func TotalOutputValue(tx models.RawTransaction) int64 {
	var total int64
	for _, out := range tx.Vout {
		total += out.Sats()
	}
	return total
}

// Enrich annotates a single transaction. Unconfirmed transactions get a
// zero ConfirmedTime; FilterWindow removes them before this stage.
func Enrich(tx models.RawTransaction, address string) models.EnrichedTransaction {
	confirmed, _ := ConfirmedTime(tx)
	return models.EnrichedTransaction{
		RawTransaction: tx,
		BalanceDelta:   BalanceDelta(tx, address),
		TotalValue:     TotalOutputValue(tx),
		PatternLabel:   ClassifyPattern(len(tx.Vin), len(tx.Vout)),
		ConfirmedTime:  confirmed,
	}
}

// EnrichTransactions maps Enrich over txs, preserving order and length.
func EnrichTransactions(txs []models.RawTransaction, address string) []models.EnrichedTransaction {
	out := make([]models.EnrichedTransaction, len(txs))
	for i, tx := range txs {
		out[i] = Enrich(tx, address)
	}
	return out
}
