package heuristics

import (
	"sort"

	"github.com/rawblock/wallet-tracer/pkg/models"
)

// AssociatedAddresses applies the common-input-ownership heuristic: any
// other address whose coins are co-spent with the analyzed address in the
// same transaction is assumed to share an owner. Returns a sorted,
// deduplicated list. Unknown (address-less) prevouts are ignored.
func AssociatedAddresses(txs []models.EnrichedTransaction, address string) []string {
	seen := make(map[string]struct{})
	for _, tx := range txs {
		spendsTarget := false
		for _, in := range tx.Vin {
			if in.SpendsFrom(address) {
				spendsTarget = true
				break
			}
		}
		if !spendsTarget {
			continue
		}
		for _, in := range tx.Vin {
			addr := in.Prevout.Address()
			if addr == "" || addr == address {
				continue
			}
			seen[addr] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for addr := range seen {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}
