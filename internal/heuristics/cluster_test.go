package heuristics

import (
	"testing"

	"github.com/rawblock/wallet-tracer/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestAssociatedAddresses(t *testing.T) {
	const third = "bc1qthirdaddress"

	txs := enriched(
		// co-spent with target
		rawTx(1, []models.TxIn{spend(targetAddr, 1000), spend(otherAddr, 1000), spend("", 1000)}, []models.TxOut{pay(anotherAddr, 2500)}),
		// target only receives, so its inputs say nothing about ownership
		rawTx(2, []models.TxIn{spend(anotherAddr, 1000), spend(third, 1000)}, []models.TxOut{pay(targetAddr, 1500)}),
		rawTx(3, []models.TxIn{spend(third, 1000), spend(targetAddr, 1000), spend(otherAddr, 1000)}, []models.TxOut{pay(anotherAddr, 2500)}),
	)

	got := AssociatedAddresses(txs, targetAddr)
	assert.Equal(t, []string{otherAddr, third}, got)
}

func TestAssociatedAddresses_None(t *testing.T) {
	got := AssociatedAddresses(enriched(valueTx(1, 10_000)), targetAddr)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
