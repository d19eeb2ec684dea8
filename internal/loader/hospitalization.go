// Package loader ingests the two source CSVs. Dates fail loudly when
// malformed; missing numeric cells are counted and skipped, never zeroed.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
)

// Stats summarizes what a loader kept, skipped, and flagged.
type Stats struct {
	Rows         int // data rows read, excluding the header
	MissingValue int // rows whose numeric column was empty
	SentinelRows int // hospitalization rows carrying the COVID-NET aggregate sentinel
}

// hospColumns are the columns the analysis needs from a COVID-NET extract.
// The source file carries many more; unrecognized columns are ignored.
var hospColumns = []string{"State", "Week.ending.date", "Rate"}

// LoadHospitalization reads a COVID-NET weekly rates CSV. Rows with an empty
// Rate cell are kept with Rate = NaN and counted in Stats.MissingValue; a
// malformed date or a non-numeric non-empty rate aborts the load with the
// offending line number.
func LoadHospitalization(path string) ([]domain.HospitalizationRecord, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open hospitalization csv: %w", err)
	}
	defer f.Close()

	records, stats, err := readHospitalization(f)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	return records, stats, nil
}

func readHospitalization(r io.Reader) ([]domain.HospitalizationRecord, Stats, error) {
	// The header fixes the expected field count; a ragged row is a parse
	// error with its line number, not a tolerated short record.
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header, hospColumns)
	if err != nil {
		return nil, Stats{}, err
	}

	var (
		out   []domain.HospitalizationRecord
		stats Stats
	)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: %w", line, err)
		}
		stats.Rows++

		state := strings.TrimSpace(row[cols["State"]])
		if state == domain.AggregateSentinel {
			stats.SentinelRows++
		}

		date, err := domain.ParseDate(row[cols["Week.ending.date"]])
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: %w", line, err)
		}

		rate, missing, err := parseOptionalFloat(row[cols["Rate"]])
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: rate: %w", line, err)
		}
		if missing {
			stats.MissingValue++
		}

		out = append(out, domain.HospitalizationRecord{
			State:      state,
			WeekEnding: date,
			Rate:       rate,
		})
	}
	return out, stats, nil
}

// parseOptionalFloat treats an empty cell as missing (NaN). A non-empty cell
// that fails to parse is an error, not a missing value.
func parseOptionalFloat(s string) (value float64, missing bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), true, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse %q: %w", s, err)
	}
	return v, false, nil
}

// columnIndex maps each wanted column name to its position in the header.
func columnIndex(header, wanted []string) (map[string]int, error) {
	idx := make(map[string]int, len(wanted))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	out := make(map[string]int, len(wanted))
	for _, name := range wanted {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
		out[name] = i
	}
	return out, nil
}
