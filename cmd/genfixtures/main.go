// Command genfixtures writes a pair of synthetic source CSVs with a known
// linear relationship between the two series, for demos and for exercising
// cmd/validate and cmd/report end to end without the real CDC extracts.
//
// Usage:
//
//	go run ./cmd/genfixtures -out-dir data -weeks 26
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var states = []string{"California", "Georgia", "New York", "Oregon", "Tennessee", "Utah"}

// startDate anchors the synthetic season; week-ending dates step from here.
var startDate = time.Date(2023, time.October, 7, 0, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data", "directory for the generated CSVs")
	weeks := flag.Int("weeks", 26, "number of weekly points to generate")
	flag.Parse()

	if *weeks < 4 {
		return fmt.Errorf("need at least 4 weeks, got %d", *weeks)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	hospPath := filepath.Join(*outDir, "hospitalization_rates.csv")
	wwPath := filepath.Join(*outDir, "wastewater_levels.csv")

	if err := writeHospitalization(hospPath, *weeks); err != nil {
		return err
	}
	if err := writeWastewater(wwPath, *weeks); err != nil {
		return err
	}

	log.Printf("wrote %s and %s (%d weeks, %d states)", hospPath, wwPath, *weeks, len(states))
	return nil
}

// nationalRate is a deterministic seasonal curve: a winter wave peaking
// mid-season. Both generators derive from it so the series correlate.
func nationalRate(week int) float64 {
	return 3.0 + 2.5*math.Sin(float64(week)/4.0)
}

// stateOffset spreads states around the national curve without randomness.
func stateOffset(stateIdx, week int) float64 {
	return 0.6 * math.Sin(float64(stateIdx)+float64(week)/3.0)
}

func writeHospitalization(path string, weeks int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"State", "Week.ending.date", "Rate"}); err != nil {
		return err
	}
	for week := 0; week < weeks; week++ {
		date := startDate.AddDate(0, 0, 7*week).Format("2006-01-02")
		for i, state := range states {
			rate := nationalRate(week) + stateOffset(i, week)
			if err := w.Write([]string{state, date, strconv.FormatFloat(rate, 'f', 2, 64)}); err != nil {
				return err
			}
		}
		// The network-wide aggregate row CDC ships alongside per-state rows.
		agg := strconv.FormatFloat(nationalRate(week), 'f', 2, 64)
		if err := w.Write([]string{"COVID-NET", date, agg}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeWastewater(path string, weeks int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"date", "date_period", "National", "Midwest", "Northeast", "South", "West"}
	if err := w.Write(header); err != nil {
		return err
	}
	for week := 0; week < weeks; week++ {
		date := startDate.AddDate(0, 0, 7*week).Format("2006-01-02") + " 00:00:00"
		national := 1.3 * nationalRate(week)
		row := []string{date, "All Results", strconv.FormatFloat(national, 'f', 2, 64)}
		for r := 0; r < 4; r++ {
			regional := national + 0.4*math.Cos(float64(r)+float64(week)/5.0)
			row = append(row, strconv.FormatFloat(regional, 'f', 2, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
