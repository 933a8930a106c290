package heuristics

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/rawblock/wallet-tracer/pkg/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DetectorFunc is a pure, list-valued detector over the enriched window.
type DetectorFunc func(txs []models.EnrichedTransaction, address string, cfg Config) []models.FlaggedItem

// Detector pairs a red flag key with the function that fills it.
type Detector struct {
	Name string
	Run  DetectorFunc
}

// Detectors returns the list-valued detector registry in reporting order.
func Detectors() []Detector {
	return []Detector{
		{Name: models.FlagHighValue, Run: DetectHighValue},
		{Name: models.FlagPeelChains, Run: DetectPeelChains},
		{Name: models.FlagStructuring, Run: DetectStructuring},
		{Name: models.FlagComplexMIMO, Run: DetectComplexMIMO},
	}
}

// DetectRedFlags runs every detector once over txs. Detectors never
// short-circuit each other, so a transaction may appear under several keys.
func DetectRedFlags(txs []models.EnrichedTransaction, address string, cfg Config) models.RedFlags {
	cfg = cfg.withDefaults()
	var flags models.RedFlags
	for _, d := range Detectors() {
		items := d.Run(txs, address, cfg)
		if items == nil {
			items = []models.FlaggedItem{}
		}
		if slot := flags.Slot(d.Name); slot != nil {
			*slot = items
		}
	}
	flags.AddressReuse = AnalyzeAddressReuse(txs, address)
	return flags
}

var usdPrinter = message.NewPrinter(language.English)

// DetectHighValue flags transactions whose total output meets the
// high-value threshold.
func DetectHighValue(txs []models.EnrichedTransaction, _ string, cfg Config) []models.FlaggedItem {
	cfg = cfg.withDefaults()
	threshold := cfg.HighValueThresholdSats()
	flagged := []models.FlaggedItem{}
	for _, tx := range txs {
		total := TotalOutputValue(tx.RawTransaction)
		if total >= threshold {
			flagged = append(flagged, models.FlaggedItem{
				Txid: tx.Txid,
				Reason: usdPrinter.Sprintf("Total value %.4f BTC (~$%.0f) exceeds threshold.",
					btcutil.Amount(total).ToBTC(), cfg.SatsToUSD(total)),
			})
		}
	}
	return flagged
}

// DetectStructuring flags transactions valued just around the reporting
// threshold. Both bounds are exclusive.
func DetectStructuring(txs []models.EnrichedTransaction, _ string, cfg Config) []models.FlaggedItem {
	cfg = cfg.withDefaults()
	lower, upper := cfg.StructuringBounds()
	flagged := []models.FlaggedItem{}
	for _, tx := range txs {
		total := TotalOutputValue(tx.RawTransaction)
		if lower < total && total < upper {
			flagged = append(flagged, models.FlaggedItem{
				Txid:   tx.Txid,
				Reason: usdPrinter.Sprintf("Value close to the monitoring threshold ($%.0f).", cfg.StructuringThresholdUSD),
			})
		}
	}
	return flagged
}

// DetectComplexMIMO flags multi-input multi-output transactions.
func DetectComplexMIMO(txs []models.EnrichedTransaction, _ string, cfg Config) []models.FlaggedItem {
	cfg = cfg.withDefaults()
	flagged := []models.FlaggedItem{}
	for _, tx := range txs {
		nIn, nOut := len(tx.Vin), len(tx.Vout)
		if nIn >= cfg.MIMOMinInputs && nOut >= cfg.MIMOMinOutputs {
			flagged = append(flagged, models.FlaggedItem{
				Txid:   tx.Txid,
				Reason: fmt.Sprintf("%d inputs, %d outputs.", nIn, nOut),
			})
		}
	}
	return flagged
}
