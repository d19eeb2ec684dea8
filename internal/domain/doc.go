// Package domain models the two CDC surveillance series this analysis joins:
// COVID-NET weekly hospitalization rates and NWSS wastewater viral activity.
//
// # Data Sources
//
// Hospitalization rates come from the CDC COVID-NET surveillance network
// (weekly laboratory-confirmed COVID-19 hospitalization rates per 100,000
// population, reported per state). Wastewater levels come from the CDC
// National Wastewater Surveillance System (NWSS), which publishes a national
// and four regional (Midwest, Northeast, South, West) viral activity levels
// per date.
//
// # Source Conventions
//
// Dates:
//
//	COVID-NET "Week.ending.date" is a date-only ISO string: "2023-10-07".
//	NWSS "date" is a combined date-time string: "2023-10-07 00:00:00".
//	Both normalize to a civil [Date] with no time component; a string that
//	fails to parse is a hard error, never a silent zero date.
//
// Aggregate sentinel:
//
//	A State value of "COVID-NET" marks the network-wide aggregate row that
//	CDC includes alongside per-state rows. It is excluded from the
//	across-state mean so the network total is not double counted.
//
// Missing values:
//
//	An empty rate or level cell means "not reported". Missing rates are
//	carried as NaN and skipped when averaging; they are never treated as
//	zero, which would drag the mean toward the floor.
//
// Activity categories:
//
//	NWSS publishes wastewater activity as a unitless level normalized to
//	each site's baseline. The five-band categorization (Minimal, Low,
//	Moderate, High, Very High) uses fixed left-closed boundaries at
//	1.5, 3, 4.5, and 8. See [ClassifyWastewater].
package domain
