package kpi

import (
	"gonum.org/v1/gonum/floats"

	"projectpulse/domain/kpi"
)

// Aggregate groups records by category and derives the per-category KPIs.
// Categories appear in insertion order of first occurrence, exactly once
// each. Completion is built/design*100 clamped to [0,100]; a zero design sum
// yields completion 0 rather than a division fault. Remaining is design-built
// and goes negative when a category is over-built.
func Aggregate(records []kpi.Record) []kpi.Summary {
	order := make([]string, 0)
	design := make(map[string][]float64)
	built := make(map[string][]float64)

	for _, r := range records {
		if r.Category == "" {
			continue
		}
		if _, seen := design[r.Category]; !seen {
			order = append(order, r.Category)
		}
		design[r.Category] = append(design[r.Category], r.Design)
		built[r.Category] = append(built[r.Category], r.Built)
	}

	summaries := make([]kpi.Summary, 0, len(order))
	for _, category := range order {
		d := floats.Sum(design[category])
		b := floats.Sum(built[category])
		summaries = append(summaries, kpi.Summary{
			Category:   category,
			Design:     d,
			Built:      b,
			Completion: completion(b, d),
			Remaining:  d - b,
		})
	}

	return summaries
}

// OverallOf folds summaries into the headline totals. Same safe-division and
// clamping rules as the per-category computation.
func OverallOf(summaries []kpi.Summary) kpi.Overall {
	var totalDesign, totalBuilt float64
	for _, s := range summaries {
		totalDesign += s.Design
		totalBuilt += s.Built
	}
	return kpi.Overall{
		Design:     totalDesign,
		Built:      totalBuilt,
		Completion: completion(totalBuilt, totalDesign),
		Remaining:  totalDesign - totalBuilt,
		Categories: len(summaries),
	}
}

func completion(built, design float64) float64 {
	if design <= 0 {
		return 0
	}
	pct := built / design * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
