// Command report runs the hospitalization/wastewater correlation analysis
// over two CSV files and renders the result.
//
// Usage:
//
//	go run ./cmd/report \
//	  -hosp data/hospitalization_rates.csv \
//	  -wastewater data/wastewater_levels.csv \
//	  [-config config.yaml] [-out report.txt] [-json joined.json]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/covid-wastewater-report/internal/config"
	"github.com/couchcryptid/covid-wastewater-report/internal/observability"
	"github.com/couchcryptid/covid-wastewater-report/internal/pipeline"
	"github.com/couchcryptid/covid-wastewater-report/internal/report"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	hospPath := flag.String("hosp", "", "hospitalization rates CSV (overrides config)")
	wwPath := flag.String("wastewater", "", "wastewater levels CSV (overrides config)")
	outPath := flag.String("out", "", "report output path (overrides config; default stdout)")
	jsonPath := flag.String("json", "", "optional joined-series JSON output path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *hospPath != "" {
		cfg.Inputs.HospitalizationCSV = *hospPath
	}
	if *wwPath != "" {
		cfg.Inputs.WastewaterCSV = *wwPath
	}
	if *outPath != "" {
		cfg.Output.ReportPath = *outPath
	}
	if *jsonPath != "" {
		cfg.Output.JoinedJSONPath = *jsonPath
	}

	logger := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	result, err := pipeline.New(cfg, logger, metrics).Run()
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.Output.ReportPath)
	if err != nil {
		return err
	}
	if err := report.Render(out, cfg, result); err != nil {
		closeOut()
		return err
	}
	// A failed close can mean a failed flush; the run must not exit 0.
	if err := closeOut(); err != nil {
		return fmt.Errorf("close report output: %w", err)
	}

	if cfg.Output.JoinedJSONPath != "" {
		f, err := os.Create(cfg.Output.JoinedJSONPath)
		if err != nil {
			return fmt.Errorf("create joined json: %w", err)
		}
		defer f.Close()
		if err := report.WriteJoinedJSON(f, result.Joined); err != nil {
			return err
		}
		logger.Info("joined series written", "path", cfg.Output.JoinedJSONPath, "points", len(result.Joined))
	}

	return nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create report output: %w", err)
	}
	return f, f.Close, nil
}
