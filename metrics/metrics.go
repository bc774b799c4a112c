// Package metrics maintains whole-lifetime running means of interaction
// success and estimated satisfaction. A Tracker is not safe for concurrent
// use; the engine package serializes access through its state container.
package metrics

// SuccessThreshold is the confidence at or above which an interaction
// counts as a success.
const SuccessThreshold = 0.7

// SatisfactionLift is added to confidence to estimate satisfaction.
const SatisfactionLift = 0.1

// Snapshot is a copy of the tracker's aggregates.
type Snapshot struct {
	TotalInteractions int     `json:"total_interactions"`
	SuccessRate       float64 `json:"success_rate"`
	Satisfaction      float64 `json:"user_satisfaction"`
}

// Tracker accumulates online weighted averages. It never resets.
type Tracker struct {
	total        int
	successRate  float64
	satisfaction float64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker { return &Tracker{} }

// Record folds one interaction's overall confidence into the aggregates.
func (t *Tracker) Record(confidence float64) {
	t.total++
	n := float64(t.total)

	var success float64
	if confidence >= SuccessThreshold {
		success = 1
	}
	t.successRate = (t.successRate*(n-1) + success) / n
	t.satisfaction = (t.satisfaction*(n-1) + min(1.0, confidence+SatisfactionLift)) / n
}

// Snapshot returns the current aggregates.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		TotalInteractions: t.total,
		SuccessRate:       t.successRate,
		Satisfaction:      t.satisfaction,
	}
}
