package domain

// AggregateSentinel is the value CDC publishes in the State column for the
// network-wide aggregate row. It is not a state and must not contribute to
// the across-state mean.
const AggregateSentinel = "COVID-NET"

// HospitalizationRecord is one weekly COVID-NET surveillance row: the
// hospitalization rate reported by one state for the week ending on the
// given date. A missing rate is represented as NaN, never as zero.
type HospitalizationRecord struct {
	State      string
	WeekEnding Date
	Rate       float64
}

// WastewaterRecord is one NWSS row: the national wastewater viral activity
// level for a date, plus the per-region levels. The regional breakdown is
// carried only through loading; the join keeps the national column alone.
type WastewaterRecord struct {
	Date     Date
	National float64
	Regional map[string]float64
}

// NationalPoint is the across-state unweighted mean hospitalization rate
// for one date.
type NationalPoint struct {
	Date     Date    `json:"date"`
	HospRate float64 `json:"national_hospitalization_average"`
}

// JoinedPoint pairs the national hospitalization average with the national
// wastewater level for a date present in both source series.
type JoinedPoint struct {
	Date            Date               `json:"date"`
	HospRate        float64            `json:"national_hospitalization_average"`
	WastewaterLevel float64            `json:"national_wastewater_level"`
	Category        WastewaterCategory `json:"wastewater_category"`
}

// MonthlyPoint is the unweighted monthly mean of both joined series,
// keyed to the first day of the month.
type MonthlyPoint struct {
	Month           Date    `json:"month"`
	HospRate        float64 `json:"national_hospitalization_average"`
	WastewaterLevel float64 `json:"national_wastewater_level"`
}
