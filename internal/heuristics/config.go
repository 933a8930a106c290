package heuristics

import (
	"github.com/btcsuite/btcd/btcutil"
)

// Detector defaults. The price is a fixed reference used for USD
// conversion, never a live market quote.
const (
	DefaultBTCPriceUSD             = 65000.0
	DefaultHighValueThresholdUSD   = 10000.0
	DefaultStructuringThresholdUSD = 9500.0
	DefaultMIMOMinInputs           = 3
	DefaultMIMOMinOutputs          = 3
	DefaultPeelChainRatio          = 9
)

// Structuring band around the threshold, both ends exclusive.
// Tunable heuristics rather than derived constants.
const (
	structuringLowerFactor = 0.9
	structuringUpperFactor = 1.05
)

// Config carries every tunable the detector set reads.
type Config struct {
	BTCPriceUSD             float64
	HighValueThresholdUSD   float64
	StructuringThresholdUSD float64
	MIMOMinInputs           int
	MIMOMinOutputs          int
	PeelChainRatio          int64 // larger output must exceed ratio × smaller
}

// DefaultConfig returns the documented detector defaults.
func DefaultConfig() Config {
	return Config{
		BTCPriceUSD:             DefaultBTCPriceUSD,
		HighValueThresholdUSD:   DefaultHighValueThresholdUSD,
		StructuringThresholdUSD: DefaultStructuringThresholdUSD,
		MIMOMinInputs:           DefaultMIMOMinInputs,
		MIMOMinOutputs:          DefaultMIMOMinOutputs,
		PeelChainRatio:          DefaultPeelChainRatio,
	}
}

// withDefaults fills zero fields so a partially populated Config never
// divides by zero.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BTCPriceUSD <= 0 {
		c.BTCPriceUSD = d.BTCPriceUSD
	}
	if c.HighValueThresholdUSD <= 0 {
		c.HighValueThresholdUSD = d.HighValueThresholdUSD
	}
	if c.StructuringThresholdUSD <= 0 {
		c.StructuringThresholdUSD = d.StructuringThresholdUSD
	}
	if c.MIMOMinInputs <= 0 {
		c.MIMOMinInputs = d.MIMOMinInputs
	}
	if c.MIMOMinOutputs <= 0 {
		c.MIMOMinOutputs = d.MIMOMinOutputs
	}
	if c.PeelChainRatio <= 0 {
		c.PeelChainRatio = d.PeelChainRatio
	}
	return c
}

// USDToSats converts a USD amount at the configured reference price,
// truncating toward zero.
func (c Config) USDToSats(usd float64) int64 {
	return int64((usd / c.BTCPriceUSD) * btcutil.SatoshiPerBitcoin)
}

// SatsToUSD is the inverse conversion, used only for human-readable reasons.
func (c Config) SatsToUSD(sats int64) float64 {
	return btcutil.Amount(sats).ToBTC() * c.BTCPriceUSD
}

// HighValueThresholdSats is the inclusive lower bound for high-value flags.
func (c Config) HighValueThresholdSats() int64 {
	return c.USDToSats(c.HighValueThresholdUSD)
}

// StructuringBounds returns the exclusive (lower, upper) sats band.
func (c Config) StructuringBounds() (int64, int64) {
	t := c.StructuringThresholdUSD
	lower := int64((t * structuringLowerFactor / c.BTCPriceUSD) * btcutil.SatoshiPerBitcoin)
	upper := int64((t * structuringUpperFactor / c.BTCPriceUSD) * btcutil.SatoshiPerBitcoin)
	return lower, upper
}
