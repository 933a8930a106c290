package heuristics

import (
	"fmt"
	"sort"

	"github.com/rawblock/wallet-tracer/pkg/models"
)

// Peel Chain Detection Module
//
// Peel chains occur when a wallet makes serial payments out of one large
// UTXO:
//
//   Tx₁: [UTXO_A] → [Payment₁, Change₁]
//   Tx₂: [Change₁] → [Payment₂, Change₂]
//   Tx₃: [Change₂] → [Payment₃, Change₃]
//
// Each step "peels" a small payment off and passes the large remainder on.
// Per transaction we flag the canonical step relative to the analyzed
// address:
//   - every resolvable input is funded by the analyzed address alone
//   - exactly 2 outputs
//   - the larger output exceeds PeelChainRatio × the smaller (strict)
//
// The ratio is a tunable magic number, not a physically motivated bound.
//
// References:
//   - Meiklejohn et al., "A Fistful of Bitcoins" (IMC 2013)

// inputSources returns the distinct source addresses across resolvable
// inputs. A resolvable prevout without an address is recorded as "", so it
// counts as a separate unknown source.
func inputSources(tx models.RawTransaction) map[string]struct{} {
	sources := make(map[string]struct{})
	for _, in := range tx.Vin {
		if in.Prevout == nil {
			continue
		}
		sources[in.Prevout.Address()] = struct{}{}
	}
	return sources
}

// IsPeelStep reports whether tx is a peel step spent by address.
func IsPeelStep(tx models.RawTransaction, address string, ratio int64) bool {
	sources := inputSources(tx)
	if len(sources) != 1 {
		return false
	}
	if _, ok := sources[address]; !ok {
		return false
	}
	if len(tx.Vout) != 2 {
		return false
	}

	values := []int64{tx.Vout[0].Sats(), tx.Vout[1].Sats()}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	small, large := values[0], values[1]

	// A zero-value output (e.g. OP_RETURN) is not a peeled payment.
	if small <= 0 {
		return false
	}
	return large > small*ratio
}

// DetectPeelChains flags every peel step spent by address.
func DetectPeelChains(txs []models.EnrichedTransaction, address string, cfg Config) []models.FlaggedItem {
	cfg = cfg.withDefaults()
	flagged := []models.FlaggedItem{}
	for _, tx := range txs {
		if IsPeelStep(tx.RawTransaction, address, cfg.PeelChainRatio) {
			flagged = append(flagged, models.FlaggedItem{
				Txid:   tx.Txid,
				Reason: fmt.Sprintf("1 source, 2 outputs, larger output exceeds %dx the smaller.", cfg.PeelChainRatio),
			})
		}
	}
	return flagged
}
