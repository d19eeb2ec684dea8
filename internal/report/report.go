// Package report renders the analysis outcome for human and machine
// consumers: a plain-text report with the correlation summary table, and an
// optional JSON dump of the joined series for downstream charting.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/couchcryptid/covid-wastewater-report/internal/config"
	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
	"github.com/couchcryptid/covid-wastewater-report/internal/pipeline"
)

const textTemplate = `COVID-19 Hospitalization vs Wastewater Viral Activity
Generated: {{ .GeneratedAt.Format "2006-01-02 15:04:05 MST" }}

Inputs
  Hospitalization: {{ .HospPath }} ({{ .Result.HospStats.Rows }} rows, {{ .Result.HospStats.MissingValue }} missing rate, {{ .Result.FilteredOut }} below rate floor {{ printf "%g" .RateFloor }})
  Wastewater:      {{ .WastewaterPath }} ({{ .Result.WastewaterStats.Rows }} rows, {{ .Result.WastewaterStats.MissingValue }} missing level)

Aligned series
  Hospitalization dates: {{ len .Result.National }}
  Joined dates:          {{ len .Result.Joined }} (inner join; unmatched dates dropped)

Pearson correlation (hospitalization vs wastewater)
  n        {{ .Result.Correlation.N }}
  r        {{ printf "%.4f" .Result.Correlation.R }}
  95% CI   [{{ printf "%.4f" .Result.Correlation.CILow }}, {{ printf "%.4f" .Result.Correlation.CIHigh }}]
  p-value  {{ printf "%.4g" .Result.Correlation.PValue }}
  {{ .Significance }}

Wastewater activity categories (joined dates)
{{- range .Categories }}
  {{ printf "%-10s %d" .Name .Count }}
{{- end }}

Monthly means
  Month       Hosp rate  Wastewater
{{- range .Result.Monthly }}
  {{ .Month }}  {{ printf "%9.2f" .HospRate }}  {{ printf "%10.2f" .WastewaterLevel }}
{{- end }}
`

var reportTmpl = template.Must(template.New("report").Parse(textTemplate))

type categoryCount struct {
	Name  string
	Count int
}

type reportData struct {
	GeneratedAt    time.Time
	HospPath       string
	WastewaterPath string
	RateFloor      float64
	Result         *pipeline.Result
	Categories     []categoryCount
	Significance   string
}

// Render writes the plain-text report to w.
func Render(w io.Writer, cfg *config.Config, result *pipeline.Result) error {
	data := reportData{
		GeneratedAt:    clock.Now(),
		HospPath:       cfg.Inputs.HospitalizationCSV,
		WastewaterPath: cfg.Inputs.WastewaterCSV,
		RateFloor:      cfg.Analysis.RateFloor,
		Result:         result,
		Categories:     countCategories(result.Joined),
		Significance:   significance(result.Correlation.PValue),
	}
	if err := reportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteJoinedJSON writes the joined series as indented JSON for chart tooling.
func WriteJoinedJSON(w io.Writer, joined []domain.JoinedPoint) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(joined); err != nil {
		return fmt.Errorf("encode joined series: %w", err)
	}
	return nil
}

// countCategories tallies joined points per activity band, keeping all five
// bands in order so the distribution reads the same run to run.
func countCategories(joined []domain.JoinedPoint) []categoryCount {
	counts := make(map[domain.WastewaterCategory]int)
	for _, p := range joined {
		counts[p.Category]++
	}
	out := make([]categoryCount, 0, 5)
	for c := domain.CategoryMinimal; c <= domain.CategoryVeryHigh; c++ {
		out = append(out, categoryCount{Name: c.String(), Count: counts[c]})
	}
	return out
}

func significance(p float64) string {
	if p < 0.05 {
		return "Significant at the 0.05 level: reject the null of no linear association."
	}
	return "Not significant at the 0.05 level."
}
