package explore

import (
	"math"

	"framesense/internal/perception"
)

// EpisodeCoverage captures the perception and coverage metrics of one episode
type EpisodeCoverage struct {
	Episode      int     `json:"episode"`
	Steps        int     `json:"steps"`
	EmptySteps   int     `json:"empty_steps"`   // agent not visible
	Visited      int     `json:"visited"`       // cells occupied by the agent box
	Scanned      int     `json:"scanned"`       // cells crossed by scan rays
	HostileSteps int     `json:"hostile_steps"` // steps with a hostile sighted
	PortalSteps  int     `json:"portal_steps"`  // steps with a portal sighted
	Fraction     float64 `json:"fraction"`      // covered share of the mask at episode end
}

// Observe folds one step into the episode totals
func (e *EpisodeCoverage) Observe(s *perception.State, visited, scanned int) {
	e.Steps++
	if s.Empty {
		e.EmptySteps++
		return
	}
	e.Visited += visited
	e.Scanned += scanned
	if s.Hostile.Visible {
		e.HostileSteps++
	}
	if s.Portal.Visible {
		e.PortalSteps++
	}
}

// AggregatedCoverage holds statistics across multiple episodes
type AggregatedCoverage struct {
	VisitedMean  float64
	ScannedMean  float64
	FractionMean float64
	FractionStd  float64
	EmptyRate    float64 // share of steps without a visible agent
	NumEpisodes  int
}

// Aggregate computes statistics from multiple episode summaries
func Aggregate(episodes []EpisodeCoverage) AggregatedCoverage {
	n := len(episodes)
	if n == 0 {
		return AggregatedCoverage{}
	}

	agg := AggregatedCoverage{NumEpisodes: n}

	var visitedSum, scannedSum, fractionSum float64
	var steps, empty int
	for _, ep := range episodes {
		visitedSum += float64(ep.Visited)
		scannedSum += float64(ep.Scanned)
		fractionSum += ep.Fraction
		steps += ep.Steps
		empty += ep.EmptySteps
	}

	nf := float64(n)
	agg.VisitedMean = visitedSum / nf
	agg.ScannedMean = scannedSum / nf
	agg.FractionMean = fractionSum / nf
	if steps > 0 {
		agg.EmptyRate = float64(empty) / float64(steps)
	}

	var variance float64
	for _, ep := range episodes {
		diff := ep.Fraction - agg.FractionMean
		variance += diff * diff
	}
	agg.FractionStd = math.Sqrt(variance / nf)

	return agg
}
