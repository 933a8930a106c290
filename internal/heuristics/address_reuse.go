package heuristics

import (
	"fmt"

	"github.com/rawblock/wallet-tracer/pkg/models"
)

// Address reuse thresholds: a wallet needs more than reuseMinTxs
// transactions before its spend ratio is judged at all.
const (
	reuseMinTxs   = 5
	reuseMinRatio = 0.3
)

// AnalyzeAddressReuse counts the transactions that spend from address and
// returns a single aggregate record.
func AnalyzeAddressReuse(txs []models.EnrichedTransaction, address string) models.AddressReuseRecord {
	count := 0
	for _, tx := range txs {
		for _, in := range tx.Vin {
			if in.SpendsFrom(address) {
				count++
				break
			}
		}
	}

	total := len(txs)
	record := models.AddressReuseRecord{
		Count:             count,
		TotalTransactions: total,
		Verdict:           models.ReuseLow,
		Reason:            "No unusual address reuse.",
	}
	if total > reuseMinTxs && float64(count)/float64(total) > reuseMinRatio {
		record.Verdict = models.ReuseFrequent
		record.Reason = fmt.Sprintf("Address reused in %d/%d transactions.", count, total)
	}
	return record
}
