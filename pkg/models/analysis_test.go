package models

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWith(n int) FullAnalysisResponse {
	txs := make([]EnrichedTransaction, n)
	for i := range txs {
		txs[i].Txid = fmt.Sprintf("%064x", i)
	}
	return FullAnalysisResponse{WalletData: WalletAnalysis{Address: "bc1qtest", Transactions: txs}}
}

func TestTruncated(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"longer than limit", 20, 15, 15},
		{"shorter than limit", 4, 15, 4},
		{"exactly limit", 15, 15, 15},
		{"empty", 0, 15, 0},
		{"zero limit", 5, 0, 0},
		{"negative limit", 5, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := responseWith(tt.total)
			got := resp.Truncated(tt.limit)

			require.NotNil(t, got.WalletData.Transactions)
			assert.Len(t, got.WalletData.Transactions, tt.want)
			assert.Len(t, resp.WalletData.Transactions, tt.total, "receiver keeps its full list")
		})
	}
}

func TestTruncated_DoesNotAlias(t *testing.T) {
	resp := responseWith(3)
	got := resp.Truncated(2)

	got.WalletData.Transactions[0].Txid = "changed"
	assert.Equal(t, fmt.Sprintf("%064x", 0), resp.WalletData.Transactions[0].Txid)
}

func TestTruncated_CopiesOwnedSlices(t *testing.T) {
	resp := responseWith(3)
	resp.WalletData.AssociatedAddresses = []string{"bc1qa", "bc1qb"}
	resp.RiskAnalysis.RedFlags.PeelChains = []FlaggedItem{{Txid: "p"}}
	resp.RiskAnalysis.RedFlags.Structuring = []FlaggedItem{{Txid: "s"}}

	got := resp.Truncated(2)
	got.WalletData.AssociatedAddresses[0] = "changed"
	got.RiskAnalysis.RedFlags.PeelChains[0].Txid = "changed"
	got.RiskAnalysis.RedFlags.Structuring[0].Reason = "changed"

	assert.Equal(t, []string{"bc1qa", "bc1qb"}, resp.WalletData.AssociatedAddresses)
	assert.Equal(t, "p", resp.RiskAnalysis.RedFlags.PeelChains[0].Txid)
	assert.Empty(t, resp.RiskAnalysis.RedFlags.Structuring[0].Reason)
	assert.NotNil(t, got.WalletData.AssociatedAddresses)
}

func TestRedFlags_Any(t *testing.T) {
	var flags RedFlags
	assert.False(t, flags.Any())

	flags.PeelChains = []FlaggedItem{{Txid: "a"}}
	assert.True(t, flags.Any())

	flags = RedFlags{AddressReuse: AddressReuseRecord{Count: 1, TotalTransactions: 10, Verdict: ReuseLow}}
	assert.True(t, flags.Any())
}

func TestRedFlags_Slot(t *testing.T) {
	var flags RedFlags
	for _, key := range []string{FlagHighValue, FlagPeelChains, FlagStructuring, FlagComplexMIMO} {
		slot := flags.Slot(key)
		require.NotNil(t, slot, key)
		*slot = append(*slot, FlaggedItem{Txid: key})
	}
	assert.Nil(t, flags.Slot(FlagAddressReuse))
	assert.Nil(t, flags.Slot("unknown"))

	for _, l := range flags.Lists() {
		assert.Len(t, l, 1)
	}
}

func TestRawTransaction_DecodesIndexerPayload(t *testing.T) {
	payload := `{
		"txid": "aa",
		"vin": [
			{"txid": "bb", "vout": 0, "is_coinbase": false,
			 "prevout": {"scriptpubkey_address": "bc1qsource", "value": 5000}},
			{"is_coinbase": true, "prevout": null}
		],
		"vout": [
			{"scriptpubkey_type": "op_return", "value": 0},
			{"scriptpubkey_address": "bc1qdest", "value": 4000},
			{"scriptpubkey_type": "nonstandard"}
		],
		"status": {"confirmed": true, "block_height": 800000, "block_time": 1700000000}
	}`

	var tx RawTransaction
	require.NoError(t, json.Unmarshal([]byte(payload), &tx))

	require.Len(t, tx.Vin, 2)
	assert.True(t, tx.Vin[0].SpendsFrom("bc1qsource"))
	assert.Equal(t, int64(5000), tx.Vin[0].Prevout.Sats())
	assert.Nil(t, tx.Vin[1].Prevout)
	assert.Equal(t, int64(0), tx.Vin[1].Prevout.Sats())
	assert.Equal(t, "", tx.Vin[1].Prevout.Address())
	assert.False(t, tx.Vin[1].SpendsFrom(""))

	require.Len(t, tx.Vout, 3)
	assert.Equal(t, "", tx.Vout[0].Address())
	assert.Equal(t, "bc1qdest", tx.Vout[1].Address())
	assert.Equal(t, int64(0), tx.Vout[2].Sats())

	require.NotNil(t, tx.Status.BlockTime)
	assert.Equal(t, int64(1700000000), *tx.Status.BlockTime)
}

func TestAddressStats_Balance(t *testing.T) {
	s := AddressStats{FundedTxoSum: 150_000, SpentTxoSum: 50_000, TxCount: 3}
	assert.Equal(t, int64(100_000), s.Balance())
}
