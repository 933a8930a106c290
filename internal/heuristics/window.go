package heuristics

import (
	"fmt"
	"log"
	"time"

	"github.com/rawblock/wallet-tracer/pkg/models"
)

// DateRange is an inclusive range of UTC calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both bounds to their UTC calendar day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: utcDay(start), End: utcDay(end)}
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls in [Start, End+1day).
func (r DateRange) Contains(t time.Time) bool {
	endExclusive := r.End.AddDate(0, 0, 1)
	return !t.Before(r.Start) && t.Before(endExclusive)
}

// DataShapeError reports a transaction that lacks a field the pipeline needs.
type DataShapeError struct {
	Txid  string
	Field string
}

func (e *DataShapeError) Error() string {
	if e.Txid == "" {
		return fmt.Sprintf("malformed transaction: missing %s", e.Field)
	}
	return fmt.Sprintf("malformed transaction %s: missing %s", e.Txid, e.Field)
}

// checkShape returns a DataShapeError for transactions the enricher cannot
// identify. Missing values and addresses are neutralized downstream instead.
func checkShape(tx models.RawTransaction) error {
	if tx.Txid == "" {
		return &DataShapeError{Field: "txid"}
	}
	return nil
}

// ConfirmedTime returns the block time of tx, or false while unconfirmed.
func ConfirmedTime(tx models.RawTransaction) (time.Time, bool) {
	if tx.Status.BlockTime == nil {
		return time.Time{}, false
	}
	return time.Unix(*tx.Status.BlockTime, 0).UTC(), true
}

// FilterWindow keeps the confirmed transactions whose block time falls in
// the range. Mempool transactions and malformed entries are dropped; order
// is preserved.
func FilterWindow(txs []models.RawTransaction, r DateRange) []models.RawTransaction {
	out := make([]models.RawTransaction, 0, len(txs))
	for _, tx := range txs {
		if err := checkShape(tx); err != nil {
			log.Printf("[Window] skipping transaction: %v", err)
			continue
		}
		t, ok := ConfirmedTime(tx)
		if !ok {
			continue
		}
		if r.Contains(t) {
			out = append(out, tx)
		}
	}
	return out
}
