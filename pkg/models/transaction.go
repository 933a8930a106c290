package models

import "time"

// Prevout is the previous output an input spends, as resolved by the indexer.
// Pruned or coinbase inputs carry no prevout at all.
type Prevout struct {
	ScriptPubKey        string  `json:"scriptpubkey,omitempty"`
	ScriptPubKeyType    string  `json:"scriptpubkey_type,omitempty"`
	ScriptPubKeyAddress *string `json:"scriptpubkey_address,omitempty"` // nil for non-standard scripts
	Value               *int64  `json:"value,omitempty"`                // in Satoshis
}

// TxIn represents a Bitcoin transaction input as returned by the indexer
type TxIn struct {
	Txid       string   `json:"txid,omitempty"`
	Vout       uint32   `json:"vout"`
	Prevout    *Prevout `json:"prevout,omitempty"` // nil for coinbase or unresolvable inputs
	ScriptSig  string   `json:"scriptsig,omitempty"`
	IsCoinbase bool     `json:"is_coinbase"`
	Sequence   uint32   `json:"sequence"`
}

// TxOut represents a Bitcoin transaction output
type TxOut struct {
	ScriptPubKey        string  `json:"scriptpubkey,omitempty"`
	ScriptPubKeyType    string  `json:"scriptpubkey_type,omitempty"`
	ScriptPubKeyAddress *string `json:"scriptpubkey_address,omitempty"` // nil for OP_RETURN / non-standard
	Value               *int64  `json:"value,omitempty"`                // in Satoshis
}

// TxStatus is the confirmation status of a transaction.
type TxStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight *int64 `json:"block_height,omitempty"`
	BlockHash   string `json:"block_hash,omitempty"`
	BlockTime   *int64 `json:"block_time,omitempty"` // unix seconds, nil while unconfirmed
}

// RawTransaction represents one transaction exactly as the indexer delivers it
type RawTransaction struct {
	Txid     string   `json:"txid"`
	Version  int32    `json:"version"`
	LockTime uint32   `json:"locktime"`
	Vin      []TxIn   `json:"vin"`
	Vout     []TxOut  `json:"vout"`
	Size     int      `json:"size"`
	Weight   int      `json:"weight"`
	Fee      int64    `json:"fee"`
	Status   TxStatus `json:"status"`
}

// PatternLabel is the structural tag assigned to every enriched transaction.
type PatternLabel string

const (
	PatternPeelChain     PatternLabel = "PeelChain"
	PatternConsolidation PatternLabel = "Consolidation"
	PatternDistribution  PatternLabel = "Distribution"
	PatternComplex       PatternLabel = "Complex"
	PatternStandard      PatternLabel = "Standard"
)

// EnrichedTransaction is a RawTransaction augmented with per-address
// analysis fields. It is built once and never mutated afterwards.
type EnrichedTransaction struct {
	RawTransaction
	BalanceDelta  int64        `json:"balance_delta"` // net inflow to the analyzed address
	TotalValue    int64        `json:"total_value"`   // sum of all outputs
	PatternLabel  PatternLabel `json:"pattern_label"`
	ConfirmedTime time.Time    `json:"confirmed_time"`
}

// Sats returns the output value, treating a missing value as zero.
func (o TxOut) Sats() int64 {
	if o.Value == nil {
		return 0
	}
	return *o.Value
}

// Address returns the destination address, or "" for non-standard outputs.
func (o TxOut) Address() string {
	if o.ScriptPubKeyAddress == nil {
		return ""
	}
	return *o.ScriptPubKeyAddress
}

// Sats returns the previous output value, treating a missing value as zero.
func (p *Prevout) Sats() int64 {
	if p == nil || p.Value == nil {
		return 0
	}
	return *p.Value
}

// Address returns the previous output address, or "" when it is unknown.
func (p *Prevout) Address() string {
	if p == nil || p.ScriptPubKeyAddress == nil {
		return ""
	}
	return *p.ScriptPubKeyAddress
}

// SpendsFrom reports whether the input resolvably spends an output of addr.
func (in TxIn) SpendsFrom(addr string) bool {
	return in.Prevout != nil && in.Prevout.ScriptPubKeyAddress != nil && *in.Prevout.ScriptPubKeyAddress == addr
}
