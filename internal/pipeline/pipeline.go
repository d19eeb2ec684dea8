// Package pipeline implements the staged transform from raw CSV rows to the
// joined hospitalization/wastewater series and its correlation statistics:
// filter, two-stage aggregate, date join, category classification, monthly
// resample. Every stage is a pure function of its input so each contract can
// be tested in isolation; Pipeline only sequences them and records
// observability.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/covid-wastewater-report/internal/config"
	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
	"github.com/couchcryptid/covid-wastewater-report/internal/loader"
	"github.com/couchcryptid/covid-wastewater-report/internal/observability"
	"github.com/couchcryptid/covid-wastewater-report/internal/stats"
)

// Result holds everything the report consumes from one pipeline run.
type Result struct {
	National    []domain.NationalPoint
	Joined      []domain.JoinedPoint
	Monthly     []domain.MonthlyPoint
	Correlation stats.PearsonResult

	HospStats       loader.Stats
	WastewaterStats loader.Stats
	FilteredOut     int
}

// Pipeline runs the one-shot batch analysis over the two configured CSVs.
type Pipeline struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger, metrics: metrics}
}

// Run executes load, filter, aggregate, join, classify, resample, and
// correlate in order. Any stage failure aborts the run; there is no partial
// success. A joined series shorter than analysis.min_joined_points fails
// with stats.ErrInsufficientData.
func (p *Pipeline) Run() (*Result, error) {
	start := time.Now()
	defer func() {
		p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	hosp, hospStats, err := loader.LoadHospitalization(p.cfg.Inputs.HospitalizationCSV)
	if err != nil {
		return nil, fmt.Errorf("load hospitalization: %w", err)
	}
	p.metrics.RowsLoaded.WithLabelValues("hospitalization").Add(float64(hospStats.Rows))
	p.metrics.RowsMissingValue.WithLabelValues("hospitalization").Add(float64(hospStats.MissingValue))
	p.logger.Info("hospitalization series loaded",
		"rows", hospStats.Rows,
		"missing_rate", hospStats.MissingValue,
		"sentinel_rows", hospStats.SentinelRows,
	)

	ww, wwStats, err := loader.LoadWastewater(p.cfg.Inputs.WastewaterCSV)
	if err != nil {
		return nil, fmt.Errorf("load wastewater: %w", err)
	}
	p.metrics.RowsLoaded.WithLabelValues("wastewater").Add(float64(wwStats.Rows))
	p.metrics.RowsMissingValue.WithLabelValues("wastewater").Add(float64(wwStats.MissingValue))
	p.logger.Info("wastewater series loaded", "rows", wwStats.Rows, "missing_level", wwStats.MissingValue)

	filtered := FilterRates(hosp, p.cfg.Analysis.RateFloor)
	filteredOut := len(hosp) - len(filtered)
	p.metrics.RowsFiltered.Add(float64(filteredOut))
	p.logger.Debug("rate floor applied", "floor", p.cfg.Analysis.RateFloor, "dropped", filteredOut)

	national := AggregateNational(filtered)
	joined := JoinOnDate(national, ww)
	p.metrics.PointsJoined.Set(float64(len(joined)))
	p.logger.Info("series joined",
		"hospitalization_dates", len(national),
		"wastewater_dates", len(ww),
		"joined", len(joined),
	)

	if len(joined) < p.cfg.Analysis.MinJoinedPoints {
		return nil, fmt.Errorf("%w: %d joined points, need %d",
			stats.ErrInsufficientData, len(joined), p.cfg.Analysis.MinJoinedPoints)
	}

	hospSeries := make([]float64, len(joined))
	wwSeries := make([]float64, len(joined))
	for i, pt := range joined {
		hospSeries[i] = pt.HospRate
		wwSeries[i] = pt.WastewaterLevel
	}
	correlation, err := stats.Pearson(hospSeries, wwSeries)
	if err != nil {
		return nil, fmt.Errorf("correlate series: %w", err)
	}
	p.logger.Info("correlation computed", "r", correlation.R, "p_value", correlation.PValue, "n", correlation.N)

	return &Result{
		National:        national,
		Joined:          joined,
		Monthly:         ResampleMonthly(joined),
		Correlation:     correlation,
		HospStats:       hospStats,
		WastewaterStats: wwStats,
		FilteredOut:     filteredOut,
	}, nil
}
