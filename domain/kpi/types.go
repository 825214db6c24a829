package kpi

// Record is one cleaned row of the project sheet: a normalized category plus
// the two quantities every KPI derives from.
type Record struct {
	Category string  `json:"category"`
	Design   float64 `json:"design"`
	Built    float64 `json:"built"`
}

// Summary holds the per-category KPIs. Completion is always within [0,100];
// Remaining is deliberately not clamped so over-building shows as negative.
type Summary struct {
	Category   string  `json:"category"`
	Design     float64 `json:"design"`
	Built      float64 `json:"built"`
	Completion float64 `json:"completion_pct"`
	Remaining  float64 `json:"remaining"`
}

// Overall aggregates every summary into the headline dashboard metrics.
type Overall struct {
	Design     float64 `json:"design"`
	Built      float64 `json:"built"`
	Completion float64 `json:"completion_pct"`
	Remaining  float64 `json:"remaining"`
	Categories int     `json:"categories"`
}

// Insights describes the distribution of per-category completion. Weighted
// completion weighs each category by its design quantity, so a large
// unfinished category drags the number down more than a small one.
type Insights struct {
	MeanCompletion     float64 `json:"mean_completion"`
	MedianCompletion   float64 `json:"median_completion"`
	StdDevCompletion   float64 `json:"stddev_completion"`
	MinCompletion      float64 `json:"min_completion"`
	MaxCompletion      float64 `json:"max_completion"`
	Q1Completion       float64 `json:"q1_completion"`
	Q3Completion       float64 `json:"q3_completion"`
	WeightedCompletion float64 `json:"weighted_completion"`
}
