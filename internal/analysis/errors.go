package analysis

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/rawblock/wallet-tracer/internal/heuristics"
)

// DateLayout is the calendar date format accepted for analysis windows.
const DateLayout = "2006-01-02"

// ValidationError rejects a request before any upstream call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ParseDateRange parses inclusive YYYY-MM-DD bounds. start == end selects a
// single day.
func ParseDateRange(start, end string) (heuristics.DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return heuristics.DateRange{}, &ValidationError{Field: "start_date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", start)}
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return heuristics.DateRange{}, &ValidationError{Field: "end_date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", end)}
	}
	if s.After(e) {
		return heuristics.DateRange{}, &ValidationError{Field: "date range", Message: fmt.Sprintf("start %s is after end %s", start, end)}
	}
	return heuristics.NewDateRange(s, e), nil
}

// ValidateAddress checks that address decodes for the given network and
// returns its canonical encoding. Bech32 is case-insensitive on input but
// the indexer reports lowercase, so every later comparison must use the
// canonical form.
func ValidateAddress(address string, params *chaincfg.Params) (string, error) {
	if address == "" {
		return "", &ValidationError{Field: "address", Message: "must not be empty"}
	}
	decoded, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return "", &ValidationError{Field: "address", Message: err.Error()}
	}
	if !decoded.IsForNet(params) {
		return "", &ValidationError{Field: "address", Message: fmt.Sprintf("not a %s address", params.Name)}
	}
	return decoded.EncodeAddress(), nil
}
