// Package stats computes the correlation statistics the report presents:
// Pearson's r with a two-sided significance test and a Fisher-z confidence
// interval.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInsufficientData is returned when the joined series is too short to
// support a significance test. Fewer than 3 overlapping points leave no
// degrees of freedom for the t statistic.
var ErrInsufficientData = errors.New("insufficient overlapping data points")

// PearsonResult holds the outcome of a Pearson correlation test.
type PearsonResult struct {
	N      int     `json:"n"`
	R      float64 `json:"r"`
	PValue float64 `json:"p_value"`

	// 95% confidence interval for r via the Fisher z transform.
	// NaN when n < 4, where the transform's standard error is undefined.
	CILow  float64 `json:"ci_low"`
	CIHigh float64 `json:"ci_high"`
}

// Pearson computes the product-moment correlation between two paired series
// along with a two-sided p-value (Student's t with n-2 degrees of freedom)
// and a 95% Fisher-z confidence interval.
//
// The series must be equal length, contain only finite values, have at least
// 3 points, and each have nonzero variance.
func Pearson(x, y []float64) (PearsonResult, error) {
	if len(x) != len(y) {
		return PearsonResult{}, fmt.Errorf("series length mismatch: %d vs %d", len(x), len(y))
	}
	n := len(x)
	if n < 3 {
		return PearsonResult{}, fmt.Errorf("%w: have %d, need at least 3", ErrInsufficientData, n)
	}
	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return PearsonResult{}, fmt.Errorf("non-finite value at index %d", i)
		}
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return PearsonResult{}, errors.New("correlation undefined: a series has zero variance")
	}
	// Guard against |r| marginally exceeding 1 from floating point error.
	r = math.Max(-1, math.Min(1, r))

	result := PearsonResult{N: n, R: r}
	result.PValue = twoSidedPValue(r, n)
	result.CILow, result.CIHigh = fisherCI(r, n)
	return result, nil
}

// twoSidedPValue tests H0: rho = 0 using t = r*sqrt((n-2)/(1-r^2)).
func twoSidedPValue(r float64, n int) float64 {
	if r == 1 || r == -1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

// fisherCI returns the 95% confidence interval for r. The z transform's
// standard error 1/sqrt(n-3) requires n >= 4.
func fisherCI(r float64, n int) (lo, hi float64) {
	if n < 4 || r == 1 || r == -1 {
		return math.NaN(), math.NaN()
	}
	z := math.Atanh(r)
	se := 1 / math.Sqrt(float64(n-3))
	zcrit := distuv.UnitNormal.Quantile(0.975)
	return math.Tanh(z - zcrit*se), math.Tanh(z + zcrit*se)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
