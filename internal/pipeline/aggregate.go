package pipeline

import (
	"math"
	"sort"

	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
)

type stateDateKey struct {
	state string
	date  domain.Date
}

type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) {
	a.sum += v
	a.n++
}

func (a *meanAcc) mean() float64 { return a.sum / float64(a.n) }

// AggregateNational collapses per-state weekly records into one national
// point per date in two stages: first a mean per (state, date) key to absorb
// duplicate reporting rows, then an unweighted mean of those state means per
// date. Rows carrying the COVID-NET aggregate sentinel are excluded, as are
// missing (NaN) rates. States contribute equally regardless of population;
// the result is a mean of means, not a pooled mean.
//
// Output is sorted by date ascending, so identical input always yields an
// identical sequence.
func AggregateNational(records []domain.HospitalizationRecord) []domain.NationalPoint {
	// Stage 1: mean rate per (state, date).
	perState := make(map[stateDateKey]*meanAcc)
	for _, r := range records {
		if r.State == domain.AggregateSentinel || math.IsNaN(r.Rate) {
			continue
		}
		key := stateDateKey{state: r.State, date: r.WeekEnding}
		acc, ok := perState[key]
		if !ok {
			acc = &meanAcc{}
			perState[key] = acc
		}
		acc.add(r.Rate)
	}

	// Stage 2: unweighted mean of state means per date. Keys are sorted
	// before accumulating: float addition is order sensitive, and ranging
	// over the map directly would let the national mean drift in its last
	// bits between identical runs.
	keys := make([]stateDateKey, 0, len(perState))
	for key := range perState {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date.Before(keys[j].date)
		}
		return keys[i].state < keys[j].state
	})

	var (
		out []domain.NationalPoint
		cur domain.Date
		acc meanAcc
	)
	flush := func() {
		if acc.n > 0 {
			out = append(out, domain.NationalPoint{Date: cur, HospRate: acc.mean()})
		}
	}
	for _, key := range keys {
		if key.date != cur {
			flush()
			cur = key.date
			acc = meanAcc{}
		}
		acc.add(perState[key].mean())
	}
	flush()
	return out
}
