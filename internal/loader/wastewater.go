package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
)

var (
	wastewaterColumns = []string{"date", "National"}
	wastewaterRegions = []string{"Midwest", "Northeast", "South", "West"}
)

// LoadWastewater reads an NWSS regional activity levels CSV. Rows with an
// empty National cell are dropped and counted; regional cells are extracted
// when present but the join later discards them. Malformed dates abort the
// load.
func LoadWastewater(path string) ([]domain.WastewaterRecord, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open wastewater csv: %w", err)
	}
	defer f.Close()

	records, stats, err := readWastewater(f)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	return records, stats, nil
}

func readWastewater(r io.Reader) ([]domain.WastewaterRecord, Stats, error) {
	// As in readHospitalization, the header fixes the field count so
	// ragged rows fail loudly instead of indexing out of range.
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header, wastewaterColumns)
	if err != nil {
		return nil, Stats{}, err
	}

	// Regional columns are optional: some extracts carry only the national series.
	regionCols := make(map[string]int)
	for i, name := range header {
		for _, region := range wastewaterRegions {
			if name == region {
				regionCols[region] = i
			}
		}
	}

	var (
		out   []domain.WastewaterRecord
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

		date, err := domain.ParseDateTime(row[cols["date"]])
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: %w", line, err)
		}

		national, missing, err := parseOptionalFloat(row[cols["National"]])
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: national: %w", line, err)
		}
		if missing {
			stats.MissingValue++
			continue
		}

		regional := make(map[string]float64, len(regionCols))
		for region, i := range regionCols {
			v, miss, err := parseOptionalFloat(row[i])
			if err != nil {
				return nil, stats, fmt.Errorf("line %d: %s: %w", line, region, err)
			}
			if !miss {
				regional[region] = v
			}
		}

		out = append(out, domain.WastewaterRecord{
			Date:     date,
			National: national,
			Regional: regional,
		})
	}
	return out, stats, nil
}
