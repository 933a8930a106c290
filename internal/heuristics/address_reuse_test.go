package heuristics

import (
	"testing"

	"github.com/rawblock/wallet-tracer/pkg/models"
	"github.com/stretchr/testify/assert"
)

// reuseHistory builds total transactions of which spends spend from target.
func reuseHistory(total, spends int) []models.EnrichedTransaction {
	raw := make([]models.RawTransaction, 0, total)
	for i := 0; i < total; i++ {
		src := otherAddr
		if i < spends {
			src = targetAddr
		}
		raw = append(raw, rawTx(i, []models.TxIn{spend(src, 10_000), spend(src, 5_000)}, []models.TxOut{pay(anotherAddr, 14_000)}))
	}
	return enriched(raw...)
}

func TestAnalyzeAddressReuse(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		spends  int
		verdict string
	}{
		{"no history", 0, 0, models.ReuseLow},
		{"five of five is too few to judge", 5, 5, models.ReuseLow},
		{"two of six", 6, 2, models.ReuseFrequent},
		{"exactly 30 percent", 10, 3, models.ReuseLow},
		{"four of ten", 10, 4, models.ReuseFrequent},
		{"receive only", 20, 0, models.ReuseLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := AnalyzeAddressReuse(reuseHistory(tt.total, tt.spends), targetAddr)
			assert.Equal(t, tt.spends, rec.Count, "multiple inputs from target count once per transaction")
			assert.Equal(t, tt.total, rec.TotalTransactions)
			assert.Equal(t, tt.verdict, rec.Verdict)
		})
	}
}

func TestAnalyzeAddressReuse_Reason(t *testing.T) {
	rec := AnalyzeAddressReuse(reuseHistory(10, 4), targetAddr)
	assert.Equal(t, "Address reused in 4/10 transactions.", rec.Reason)

	rec = AnalyzeAddressReuse(reuseHistory(3, 1), targetAddr)
	assert.Equal(t, "No unusual address reuse.", rec.Reason)
}
