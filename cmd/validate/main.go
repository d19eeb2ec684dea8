// Command validate performs integrity checks over a pair of source CSVs:
// load coverage, aggregation bounds, join cardinality and membership,
// category consistency, and determinism of the full transform chain.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -hosp data/hospitalization_rates.csv \
//	  -wastewater data/wastewater_levels.csv
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
	"github.com/couchcryptid/covid-wastewater-report/internal/loader"
	"github.com/couchcryptid/covid-wastewater-report/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	hospPath := flag.String("hosp", "", "hospitalization rates CSV")
	wwPath := flag.String("wastewater", "", "wastewater levels CSV")
	rateFloor := flag.Float64("rate-floor", 1.0, "rate floor applied before aggregation")
	flag.Parse()

	if *hospPath == "" || *wwPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*hospPath, *wwPath, *rateFloor); code != 0 {
		os.Exit(code)
	}
}

func run(hospPath, wwPath string, rateFloor float64) int {
	fmt.Println("=== Surveillance Data Integrity Validation ===")
	fmt.Println()

	hosp, hospStats, err := loader.LoadHospitalization(hospPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load hospitalization CSV: %v\n", err)
		return 1
	}
	ww, wwStats, err := loader.LoadWastewater(wwPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load wastewater CSV: %v\n", err)
		return 1
	}

	filtered := pipeline.FilterRates(hosp, rateFloor)
	national := pipeline.AggregateNational(filtered)
	joined := pipeline.JoinOnDate(national, ww)

	phases := []*phase{
		validateCoverage(hospStats, wwStats, joined),
		validateAggregation(filtered, national),
		validateJoin(national, ww, joined),
		validateCategories(joined),
		validateDeterminism(filtered, ww, national, joined),
	}

	allPassed := true
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		allPassed = false
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      %s\n", e)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("validation FAILED")
		return 1
	}
	fmt.Printf("validation passed: %d hospitalization rows, %d wastewater rows, %d joined dates\n",
		hospStats.Rows, wwStats.Rows, len(joined))
	return 0
}

func validateCoverage(hospStats, wwStats loader.Stats, joined []domain.JoinedPoint) *phase {
	p := &phase{name: "source coverage"}
	if hospStats.Rows == 0 {
		p.errorf("hospitalization CSV has no data rows")
	}
	if wwStats.Rows == 0 {
		p.errorf("wastewater CSV has no data rows")
	}
	if len(joined) == 0 {
		p.errorf("no overlapping dates between the two series")
	}
	return p
}

// validateAggregation checks every national mean lies within the range of
// the state rates that produced it.
func validateAggregation(records []domain.HospitalizationRecord, national []domain.NationalPoint) *phase {
	p := &phase{name: "aggregation bounds"}

	lo := make(map[domain.Date]float64)
	hi := make(map[domain.Date]float64)
	for _, r := range records {
		if r.State == domain.AggregateSentinel || math.IsNaN(r.Rate) {
			continue
		}
		if v, ok := lo[r.WeekEnding]; !ok || r.Rate < v {
			lo[r.WeekEnding] = r.Rate
		}
		if v, ok := hi[r.WeekEnding]; !ok || r.Rate > v {
			hi[r.WeekEnding] = r.Rate
		}
	}

	for _, n := range national {
		if math.IsNaN(n.HospRate) || math.IsInf(n.HospRate, 0) {
			p.errorf("%s: non-finite national mean", n.Date)
			continue
		}
		if n.HospRate < lo[n.Date] || n.HospRate > hi[n.Date] {
			p.errorf("%s: national mean %.3f outside state range [%.3f, %.3f]",
				n.Date, n.HospRate, lo[n.Date], hi[n.Date])
		}
	}
	return p
}

func validateJoin(national []domain.NationalPoint, ww []domain.WastewaterRecord, joined []domain.JoinedPoint) *phase {
	p := &phase{name: "join cardinality and membership"}

	if len(joined) > len(national) || len(joined) > len(ww) {
		p.errorf("joined count %d exceeds min(%d hospitalization, %d wastewater)",
			len(joined), len(national), len(ww))
	}

	hospDates := make(map[domain.Date]bool, len(national))
	for _, n := range national {
		hospDates[n.Date] = true
	}
	wwDates := make(map[domain.Date]bool, len(ww))
	for _, w := range ww {
		wwDates[w.Date] = true
	}
	for _, j := range joined {
		if !hospDates[j.Date] || !wwDates[j.Date] {
			p.errorf("%s: joined date absent from a source series", j.Date)
		}
	}
	return p
}

func validateCategories(joined []domain.JoinedPoint) *phase {
	p := &phase{name: "category consistency"}
	for _, j := range joined {
		if got := domain.ClassifyWastewater(j.WastewaterLevel); got != j.Category {
			p.errorf("%s: level %.2f categorized %s, classifier says %s",
				j.Date, j.WastewaterLevel, j.Category, got)
		}
	}
	return p
}

// validateDeterminism reruns the transform chain and compares against the
// first pass; unordered grouping would show up here.
func validateDeterminism(filtered []domain.HospitalizationRecord, ww []domain.WastewaterRecord,
	national []domain.NationalPoint, joined []domain.JoinedPoint) *phase {

	p := &phase{name: "deterministic output"}
	national2 := pipeline.AggregateNational(filtered)
	joined2 := pipeline.JoinOnDate(national2, ww)

	if !reflect.DeepEqual(national, national2) {
		p.errorf("aggregation output differs between runs")
	}
	if !reflect.DeepEqual(joined, joined2) {
		p.errorf("join output differs between runs")
	}
	return p
}
