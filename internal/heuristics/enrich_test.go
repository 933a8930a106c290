package heuristics

import (
	"testing"

	"github.com/rawblock/wallet-tracer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPattern(t *testing.T) {
	tests := []struct {
		name string
		nIn  int
		nOut int
		want models.PatternLabel
	}{
		{"1-in 2-out", 1, 2, models.PatternPeelChain},
		{"5-in 1-out", 5, 1, models.PatternConsolidation},
		{"9-in 1-out", 9, 1, models.PatternConsolidation},
		{"4-in 1-out", 4, 1, models.PatternStandard},
		{"1-in 5-out", 1, 5, models.PatternDistribution},
		{"1-in 4-out", 1, 4, models.PatternStandard},
		{"3-in 3-out", 3, 3, models.PatternComplex},
		{"5-in 5-out", 5, 5, models.PatternComplex},
		{"3-in 2-out", 3, 2, models.PatternStandard},
		{"2-in 2-out", 2, 2, models.PatternStandard},
		{"1-in 1-out", 1, 1, models.PatternStandard},
		{"0-in 0-out", 0, 0, models.PatternStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPattern(tt.nIn, tt.nOut))
		})
	}
}

func TestBalanceDelta(t *testing.T) {
	tests := []struct {
		name string
		tx   models.RawTransaction
		want int64
	}{
		{
			name: "pure inflow",
			tx:   rawTx(1, []models.TxIn{spend(otherAddr, 60_000)}, []models.TxOut{pay(targetAddr, 50_000), pay(otherAddr, 9_000)}),
			want: 50_000,
		},
		{
			name: "spend with change",
			tx:   rawTx(2, []models.TxIn{spend(targetAddr, 100_000)}, []models.TxOut{pay(otherAddr, 30_000), pay(targetAddr, 69_000)}),
			want: -31_000,
		},
		{
			name: "coinbase input contributes nothing",
			tx:   rawTx(3, []models.TxIn{coinbaseIn()}, []models.TxOut{pay(targetAddr, 625_000_000)}),
			want: 625_000_000,
		},
		{
			name: "output without address or value",
			tx: rawTx(4, []models.TxIn{spend(targetAddr, 10_000)}, []models.TxOut{
				{ScriptPubKeyType: "op_return"},
				pay(otherAddr, 9_000),
			}),
			want: -10_000,
		},
		{
			name: "unrelated transaction",
			tx:   rawTx(5, []models.TxIn{spend(otherAddr, 10_000)}, []models.TxOut{pay(anotherAddr, 9_000)}),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BalanceDelta(tt.tx, targetAddr))
		})
	}
}

func TestEnrichTransactions(t *testing.T) {
	txs := []models.RawTransaction{
		rawTx(1, []models.TxIn{spend(targetAddr, 10_000_000)}, []models.TxOut{pay(otherAddr, 1_000_000), pay(anotherAddr, 8_990_000)}),
		rawTx(2, []models.TxIn{spend(otherAddr, 5_000)}, []models.TxOut{pay(targetAddr, 4_000)}),
	}

	got := EnrichTransactions(txs, targetAddr)
	require.Len(t, got, 2)

	assert.Equal(t, txid(1), got[0].Txid)
	assert.Equal(t, int64(-10_000_000), got[0].BalanceDelta)
	assert.Equal(t, int64(9_990_000), got[0].TotalValue)
	assert.Equal(t, models.PatternPeelChain, got[0].PatternLabel)
	assert.Equal(t, testDay.Unix(), got[0].ConfirmedTime.Unix())

	assert.Equal(t, txid(2), got[1].Txid)
	assert.Equal(t, int64(4_000), got[1].BalanceDelta)
	assert.Equal(t, models.PatternStandard, got[1].PatternLabel)
}

func TestEnrichTransactions_Empty(t *testing.T) {
	got := EnrichTransactions(nil, targetAddr)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
