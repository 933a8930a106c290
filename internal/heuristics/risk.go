package heuristics

import (
	"github.com/rawblock/wallet-tracer/pkg/models"
)

// Wallet Risk Aggregation
//
// Every finding weighs the same:
//   each flagged transaction, in any list  → 1 point
//   address reuse verdict "Frequent"       → 1 point
//
// score = min(points × 15, 100)
//
// Profiles:
//   Low    (0-30)
//   Medium (31-60)
//   High   (61-100)

const (
	pointsPerFlag = 15
	maxRiskScore  = 100
)

// ScoreRedFlags aggregates the red flags into a bounded risk analysis.
func ScoreRedFlags(flags models.RedFlags) models.RiskAnalysis {
	points := 0
	for _, l := range flags.Lists() {
		points += len(l)
	}
	if flags.AddressReuse.Verdict == models.ReuseFrequent {
		points++
	}

	score := points * pointsPerFlag
	if score > maxRiskScore {
		score = maxRiskScore
	}
	if score < 0 {
		score = 0
	}

	return models.RiskAnalysis{
		Score:    score,
		Profile:  classifyRiskProfile(score),
		RedFlags: flags,
	}
}

// classifyRiskProfile maps risk score to profile
func classifyRiskProfile(score int) string {
	switch {
	case score > 60:
		return models.RiskHigh
	case score > 30:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
