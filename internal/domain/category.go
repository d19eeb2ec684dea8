package domain

import "fmt"

// WastewaterCategory is the ordinal severity bucket for a national
// wastewater viral activity level.
type WastewaterCategory int

const (
	CategoryMinimal WastewaterCategory = iota
	CategoryLow
	CategoryModerate
	CategoryHigh
	CategoryVeryHigh
)

var categoryNames = [...]string{"Minimal", "Low", "Moderate", "High", "Very High"}

func (c WastewaterCategory) String() string {
	if c < CategoryMinimal || c > CategoryVeryHigh {
		return fmt.Sprintf("WastewaterCategory(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalJSON encodes the category as its display name.
func (c WastewaterCategory) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// ClassifyWastewater buckets a national wastewater activity level into five
// ordered severity bands mirroring the CDC NWSS categorization:
//
//	(-inf, 1.5) Minimal | [1.5, 3) Low | [3, 4.5) Moderate | [4.5, 8) High | [8, inf) Very High
//
// Intervals are left-closed, right-open: a value sitting exactly on a
// boundary belongs to the upper band (1.5 is Low, 8.0 is Very High).
func ClassifyWastewater(level float64) WastewaterCategory {
	switch {
	case level < 1.5:
		return CategoryMinimal
	case level < 3:
		return CategoryLow
	case level < 4.5:
		return CategoryModerate
	case level < 8:
		return CategoryHigh
	default:
		return CategoryVeryHigh
	}
}
