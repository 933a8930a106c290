package models

// AddressStats is the lifetime aggregate the indexer keeps for an address.
type AddressStats struct {
	FundedTxoSum int64 `json:"funded_txo_sum"` // in Satoshis
	SpentTxoSum  int64 `json:"spent_txo_sum"`  // in Satoshis
	TxCount      int   `json:"tx_count"`
}

// Balance is funded minus spent.
func (s AddressStats) Balance() int64 {
	return s.FundedTxoSum - s.SpentTxoSum
}

// FlaggedItem is one detector's assertion that a transaction matches its pattern
type FlaggedItem struct {
	Txid   string `json:"txid"`
	Reason string `json:"reason"`
}

// Address reuse verdicts.
const (
	ReuseFrequent = "Frequent"
	ReuseLow      = "Low"
)

// AddressReuseRecord summarizes how often the analyzed address is spent from
type AddressReuseRecord struct {
	Count             int    `json:"count"`
	TotalTransactions int    `json:"total_transactions"`
	Verdict           string `json:"verdict"` // "Frequent" or "Low"
	Reason            string `json:"reason"`
}

// Red flag keys, stable across the JSON payload and the detector registry.
const (
	FlagHighValue    = "high_value_transactions"
	FlagPeelChains   = "peel_chains"
	FlagStructuring  = "structuring_transactions"
	FlagComplexMIMO  = "complex_mimo_transactions"
	FlagAddressReuse = "address_reuse"
)

// RedFlags maps every detector to its output. List fields are never nil
// once produced by the detector set, so they serialize as [].
type RedFlags struct {
	HighValue    []FlaggedItem      `json:"high_value_transactions"`
	PeelChains   []FlaggedItem      `json:"peel_chains"`
	Structuring  []FlaggedItem      `json:"structuring_transactions"`
	ComplexMIMO  []FlaggedItem      `json:"complex_mimo_transactions"`
	AddressReuse AddressReuseRecord `json:"address_reuse"`
}

// Slot returns the list field stored under key, or nil for unknown keys.
func (r *RedFlags) Slot(key string) *[]FlaggedItem {
	switch key {
	case FlagHighValue:
		return &r.HighValue
	case FlagPeelChains:
		return &r.PeelChains
	case FlagStructuring:
		return &r.Structuring
	case FlagComplexMIMO:
		return &r.ComplexMIMO
	}
	return nil
}

// Lists returns the list-valued flags in registry order.
func (r RedFlags) Lists() [][]FlaggedItem {
	return [][]FlaggedItem{r.HighValue, r.PeelChains, r.Structuring, r.ComplexMIMO}
}

// Any reports whether any detector produced a finding.
func (r RedFlags) Any() bool {
	for _, l := range r.Lists() {
		if len(l) > 0 {
			return true
		}
	}
	return r.AddressReuse.Count > 0
}

// Risk profiles.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// RiskAnalysis is the bounded aggregate produced from the red flags
type RiskAnalysis struct {
	Score    int      `json:"risk_score"` // 0-100
	Profile  string   `json:"profile"`    // Low/Medium/High
	RedFlags RedFlags `json:"red_flags"`
}

// WalletAnalysis holds lifetime totals plus the windowed, enriched history
type WalletAnalysis struct {
	Address             string                `json:"address"`
	TotalTransactions   int                   `json:"total_transactions"`
	TotalReceived       int64                 `json:"total_received"`
	TotalSent           int64                 `json:"total_sent"`
	FinalBalance        int64                 `json:"final_balance"`
	Transactions        []EnrichedTransaction `json:"transactions"`
	AssociatedAddresses []string              `json:"associated_addresses"`
}

// FullAnalysisResponse is the caller-facing result of one analysis run.
type FullAnalysisResponse struct {
	WalletData              WalletAnalysis `json:"wallet_data"`
	RiskAnalysis            RiskAnalysis   `json:"risk_analysis"`
	WalletProfileClassified string         `json:"wallet_profile_classified"`
	ChainStats              AddressStats   `json:"chain_stats"`
}

// Truncated returns a copy whose transaction list holds at most n entries.
// The transaction list, associated addresses and red flag lists are fresh
// slices; the transactions themselves (their inputs and outputs) are shared
// with the receiver and must be treated as read-only.
func (r FullAnalysisResponse) Truncated(n int) FullAnalysisResponse {
	if n < 0 {
		n = 0
	}
	txs := r.WalletData.Transactions
	if len(txs) > n {
		txs = txs[:n]
	}

	out := r
	out.WalletData.Transactions = append(make([]EnrichedTransaction, 0, len(txs)), txs...)
	out.WalletData.AssociatedAddresses = append(make([]string, 0, len(r.WalletData.AssociatedAddresses)), r.WalletData.AssociatedAddresses...)

	flags := &out.RiskAnalysis.RedFlags
	for _, key := range []string{FlagHighValue, FlagPeelChains, FlagStructuring, FlagComplexMIMO} {
		slot := flags.Slot(key)
		if *slot != nil {
			*slot = append(make([]FlaggedItem, 0, len(*slot)), (*slot)...)
		}
	}
	return out
}
