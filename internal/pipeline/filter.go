package pipeline

import (
	"math"

	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
)

// FilterRates drops hospitalization records whose rate falls below the floor.
// Sub-floor values are treated as reporting noise that would drag the
// national mean down. Records with a missing (NaN) rate pass through
// unchanged: missing-value handling belongs to the aggregator, and the floor
// is a statement about reported values only.
func FilterRates(records []domain.HospitalizationRecord, floor float64) []domain.HospitalizationRecord {
	out := make([]domain.HospitalizationRecord, 0, len(records))
	for _, r := range records {
		if math.IsNaN(r.Rate) || r.Rate >= floor {
			out = append(out, r)
		}
	}
	return out
}
