package pipeline

import (
	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
)

// JoinOnDate inner-joins the national hospitalization series with the
// wastewater series on exact date equality. Dates present in only one series
// are dropped, which narrows the analysis window to the overlap of the two
// sources. Regional wastewater levels are discarded; only the national
// aggregate survives the join, annotated with its activity category.
//
// Output order follows the hospitalization series, which AggregateNational
// already sorts by date. Should the wastewater series repeat a date, the
// first occurrence wins.
func JoinOnDate(hosp []domain.NationalPoint, ww []domain.WastewaterRecord) []domain.JoinedPoint {
	levels := make(map[domain.Date]float64, len(ww))
	for _, w := range ww {
		if _, ok := levels[w.Date]; !ok {
			levels[w.Date] = w.National
		}
	}

	out := make([]domain.JoinedPoint, 0, min(len(hosp), len(ww)))
	for _, h := range hosp {
		level, ok := levels[h.Date]
		if !ok {
			continue
		}
		out = append(out, domain.JoinedPoint{
			Date:            h.Date,
			HospRate:        h.HospRate,
			WastewaterLevel: level,
			Category:        domain.ClassifyWastewater(level),
		})
	}
	return out
}
