package loader

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/covid-wastewater-report/internal/domain"
)

func TestLoadHospitalization(t *testing.T) {
	records, stats, err := LoadHospitalization(filepath.Join("testdata", "hospitalization.csv"))
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Rows)
	assert.Equal(t, 1, stats.MissingValue)
	assert.Equal(t, 1, stats.SentinelRows)
	require.Len(t, records, 6)

	assert.Equal(t, "California", records[0].State)
	assert.Equal(t, domain.NewDate(2023, time.October, 7), records[0].WeekEnding)
	assert.Equal(t, 2.4, records[0].Rate)

	// Missing rate is NaN, not zero.
	assert.True(t, math.IsNaN(records[3].Rate))

	// Sentinel rows are loaded; exclusion happens during aggregation.
	assert.Equal(t, domain.AggregateSentinel, records[4].State)
}

func TestLoadHospitalization_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadHospitalization(filepath.Join("testdata", "nope.csv"))
		require.Error(t, err)
	})

	t.Run("malformed date fails loudly", func(t *testing.T) {
		in := strings.NewReader("State,Week.ending.date,Rate\nUtah,10/07/2023,2.0\n")
		_, _, err := readHospitalization(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
		assert.Contains(t, err.Error(), "parse date")
	})

	t.Run("non-numeric rate fails loudly", func(t *testing.T) {
		in := strings.NewReader("State,Week.ending.date,Rate\nUtah,2023-10-07,n/a\n")
		_, _, err := readHospitalization(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate")
	})

	t.Run("ragged row fails loudly", func(t *testing.T) {
		in := strings.NewReader("State,Week.ending.date,Rate\nUtah,2023-10-07\n")
		_, _, err := readHospitalization(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wrong number of fields")
	})

	t.Run("missing required column", func(t *testing.T) {
		in := strings.NewReader("State,Week.ending.date\nUtah,2023-10-07\n")
		_, _, err := readHospitalization(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing column "Rate"`)
	})
}

func TestLoadWastewater(t *testing.T) {
	records, stats, err := LoadWastewater(filepath.Join("testdata", "wastewater.csv"))
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 1, stats.MissingValue)

	// The row with an empty National cell is dropped.
	require.Len(t, records, 3)
	assert.Equal(t, domain.NewDate(2023, time.October, 7), records[0].Date)
	assert.Equal(t, 3.6, records[0].National)
	assert.Equal(t, map[string]float64{
		"Midwest": 3.1, "Northeast": 4.2, "South": 3.8, "West": 3.3,
	}, records[0].Regional)
}

func TestLoadWastewater_DateOnlyExtract(t *testing.T) {
	// Some extracts omit the time portion and the regional columns.
	in := strings.NewReader("date,National\n2023-10-07,2.2\n")
	records, _, err := readWastewater(in)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.NewDate(2023, time.October, 7), records[0].Date)
	assert.Empty(t, records[0].Regional)
}

func TestLoadWastewater_MalformedDate(t *testing.T) {
	in := strings.NewReader("date,National\nlast tuesday,2.2\n")
	_, _, err := readWastewater(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse datetime")
}

func TestLoadWastewater_RaggedRow(t *testing.T) {
	in := strings.NewReader("date,date_period,National\n2023-10-07 00:00:00,All Results\n")
	_, _, err := readWastewater(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong number of fields")
}
