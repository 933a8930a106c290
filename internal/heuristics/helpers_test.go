package heuristics

import (
	"fmt"
	"time"

	"github.com/rawblock/wallet-tracer/pkg/models"
)

const (
	targetAddr  = "bc1qtargetaddress"
	otherAddr   = "bc1qotheraddress"
	anotherAddr = "bc1qanotheraddress"
)

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func txid(n int) string {
	return fmt.Sprintf("%064x", n)
}

func spend(addr string, value int64) models.TxIn {
	p := &models.Prevout{Value: i64Ptr(value)}
	if addr != "" {
		p.ScriptPubKeyAddress = strPtr(addr)
	}
	return models.TxIn{Txid: txid(999), Prevout: p}
}

func coinbaseIn() models.TxIn {
	return models.TxIn{IsCoinbase: true}
}

func pay(addr string, value int64) models.TxOut {
	o := models.TxOut{Value: i64Ptr(value)}
	if addr != "" {
		o.ScriptPubKeyAddress = strPtr(addr)
	}
	return o
}

func confirmedAt(t time.Time) models.TxStatus {
	bt := t.Unix()
	h := int64(800000)
	return models.TxStatus{Confirmed: true, BlockHeight: &h, BlockTime: &bt}
}

var testDay = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func rawTx(n int, vin []models.TxIn, vout []models.TxOut) models.RawTransaction {
	return models.RawTransaction{
		Txid:   txid(n),
		Vin:    vin,
		Vout:   vout,
		Status: confirmedAt(testDay),
	}
}

func enriched(txs ...models.RawTransaction) []models.EnrichedTransaction {
	return EnrichTransactions(txs, targetAddr)
}

// valueTx pays total sats to a single foreign output.
func valueTx(n int, total int64) models.RawTransaction {
	return rawTx(n, []models.TxIn{spend(otherAddr, total+1000)}, []models.TxOut{pay(anotherAddr, total)})
}

func txids(items []models.FlaggedItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Txid
	}
	return ids
}
