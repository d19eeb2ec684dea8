package pipeline

import (
	"sort"

	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
)

// ResampleMonthly truncates each joined point to its year-month and emits
// one point per month holding the unweighted arithmetic mean of both series,
// keyed to the first day of that month. Smooths weekly noise for the
// longer-horizon view. Output is sorted by month ascending.
func ResampleMonthly(points []domain.JoinedPoint) []domain.MonthlyPoint {
	type acc struct {
		hosp meanAcc
		ww   meanAcc
	}
	months := make(map[domain.Date]*acc)
	for _, p := range points {
		month := p.Date.MonthStart()
		a, ok := months[month]
		if !ok {
			a = &acc{}
			months[month] = a
		}
		a.hosp.add(p.HospRate)
		a.ww.add(p.WastewaterLevel)
	}

	out := make([]domain.MonthlyPoint, 0, len(months))
	for month, a := range months {
		out = append(out, domain.MonthlyPoint{
			Month:           month,
			HospRate:        a.hosp.mean(),
			WastewaterLevel: a.ww.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}
