package app

import (
	"context"
	"strings"
	"time"

	"projectpulse/domain/kpi"
	"projectpulse/domain/sheet"
	"projectpulse/internal"
	"projectpulse/internal/cache"
	kpicore "projectpulse/internal/kpi"
	"projectpulse/ports"
)

// DashboardService ties the table source, cache and KPI pipeline together.
// Every accessor recomputes from the cached raw table; nothing mutates the
// table, so repeated calls over the same fetch are idempotent.
type DashboardService struct {
	source ports.TableSource
	cache  *cache.TableCache
	marker string
	cols   kpicore.Columns
	logger *internal.Logger
}

// NewDashboardService creates the service. ttl bounds how long a fetched
// table is reused before the next access refetches.
func NewDashboardService(source ports.TableSource, ttl time.Duration, marker string, cols kpicore.Columns, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{
		source: source,
		cache:  cache.New(source, ttl),
		marker: marker,
		cols:   cols,
		logger: logger,
	}
}

// Report bundles everything one dashboard render needs.
type Report struct {
	Summaries []kpi.Summary
	Overall   kpi.Overall
	Insights  kpi.Insights
	FetchedAt time.Time
}

// Report fetches (or reuses) the table and runs the full KPI pipeline.
// Structural problems (fetch failure, missing header, missing columns) come
// back as typed recoverable errors; the caller decides what to show.
func (s *DashboardService) Report(ctx context.Context) (*Report, error) {
	table, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("sheet fetch failed (%s): %v", s.source.Describe(), err)
		return nil, err
	}

	resolved, err := kpicore.ResolveHeader(table, s.marker)
	if err != nil {
		return nil, err
	}

	normalizer := kpicore.NewNormalizer(s.cols)
	records, err := normalizer.Normalize(resolved)
	if err != nil {
		return nil, err
	}
	if normalizer.CoercionFailures > 0 {
		s.logger.Debug("defaulted %d unparsable numeric cells to 0", normalizer.CoercionFailures)
	}

	summaries := kpicore.Aggregate(records)
	return &Report{
		Summaries: summaries,
		Overall:   kpicore.OverallOf(summaries),
		Insights:  kpicore.ComputeInsights(summaries),
		FetchedAt: s.cache.FetchedAt(),
	}, nil
}

// RawView is the raw table prepared for display.
type RawView struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// RawTable returns the fetched table with the header resolved and columns
// whose synthetic name starts with "Unnamed" hidden, mirroring how the
// sheet export is presented to users. When no header row exists the whole
// table is returned as-is so raw data stays inspectable.
func (s *DashboardService) RawTable(ctx context.Context) (*RawView, error) {
	table, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	resolved, err := kpicore.ResolveHeader(table, s.marker)
	if err != nil {
		return rawViewOf(table), nil
	}

	keep := make([]int, 0, len(resolved.Header))
	columns := make([]string, 0, len(resolved.Header))
	for i, name := range resolved.Header {
		if strings.HasPrefix(name, "Unnamed") {
			continue
		}
		keep = append(keep, i)
		columns = append(columns, name)
	}

	rows := make([][]string, 0, len(resolved.Rows))
	for _, row := range resolved.Rows {
		out := make([]string, len(keep))
		for j, idx := range keep {
			out[j] = row.Cell(idx).TrimmedString()
		}
		rows = append(rows, out)
	}
	return &RawView{Columns: columns, Rows: rows}, nil
}

// Refresh drops the cached table so the next access refetches. Backs the
// manual refresh button.
func (s *DashboardService) Refresh() {
	s.logger.Info("manual refresh requested, cache invalidated")
	s.cache.Invalidate()
}

// Source identifies the configured table source.
func (s *DashboardService) Source() string {
	return s.source.Describe()
}

func rawViewOf(table sheet.Table) *RawView {
	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		out := make([]string, len(row))
		for i, cell := range row {
			out[i] = cell.TrimmedString()
		}
		rows = append(rows, out)
	}
	return &RawView{Rows: rows}
}
