package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/covid-wastewater-report/internal/config"
	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
	"github.com/couchcryptid/covid-wastewater-report/internal/loader"
	"github.com/couchcryptid/covid-wastewater-report/internal/pipeline"
	"github.com/couchcryptid/covid-wastewater-report/internal/stats"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		National: []domain.NationalPoint{
			{Date: domain.NewDate(2023, time.October, 7), HospRate: 3.0},
			{Date: domain.NewDate(2023, time.October, 14), HospRate: 4.0},
		},
		Joined: []domain.JoinedPoint{
			{Date: domain.NewDate(2023, time.October, 7), HospRate: 3.0, WastewaterLevel: 3.6, Category: domain.CategoryModerate},
			{Date: domain.NewDate(2023, time.October, 14), HospRate: 4.0, WastewaterLevel: 8.2, Category: domain.CategoryVeryHigh},
		},
		Monthly: []domain.MonthlyPoint{
			{Month: domain.NewDate(2023, time.October, 1), HospRate: 3.5, WastewaterLevel: 5.9},
		},
		Correlation: stats.PearsonResult{
			N: 2, R: 0.9876, PValue: 0.012, CILow: 0.8, CIHigh: 0.999,
		},
		HospStats:       loader.Stats{Rows: 10, MissingValue: 1, SentinelRows: 2},
		WastewaterStats: loader.Stats{Rows: 5},
		FilteredOut:     1,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Inputs: config.InputsConfig{
			HospitalizationCSV: "hosp.csv",
			WastewaterCSV:      "ww.csv",
		},
		Analysis: config.AnalysisConfig{RateFloor: 1.0},
	}
}

func TestRender(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.January, 2, 12, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testConfig(), sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "Generated: 2024-01-02 12:00:00 UTC")
	assert.Contains(t, out, "hosp.csv (10 rows, 1 missing rate, 1 below rate floor 1)")
	assert.Contains(t, out, "r        0.9876")
	assert.Contains(t, out, "95% CI   [0.8000, 0.9990]")
	assert.Contains(t, out, "p-value  0.012")
	assert.Contains(t, out, "Significant at the 0.05 level")
	assert.Contains(t, out, "Moderate   1")
	assert.Contains(t, out, "Very High  1")
	assert.Contains(t, out, "Minimal    0")
	assert.Contains(t, out, "2023-10-01")
}

func TestRender_NotSignificant(t *testing.T) {
	result := sampleResult()
	result.Correlation.PValue = 0.4

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testConfig(), result))
	assert.Contains(t, buf.String(), "Not significant at the 0.05 level")
}

func TestWriteJoinedJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJoinedJSON(&buf, sampleResult().Joined))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "2023-10-07", decoded[0]["date"])
	assert.Equal(t, "Moderate", decoded[0]["wastewater_category"])
	assert.InDelta(t, 3.6, decoded[0]["national_wastewater_level"].(float64), 1e-12)
}
