package analysis

import (
	"errors"
	"math"
)

// Augmented Dickey-Fuller unit-root test with a constant term.
//
// The regression is
//
//	dy[t] = alpha + rho*y[t-1] + sum_i phi_i*dy[t-i] + e[t]
//
// and the test statistic is tau = rho_hat / se(rho_hat). P-values use the
// MacKinnon (1994) approximation for the constant-only case.

type adfResult struct {
	Stat   float64
	PValue float64
	Lag    int
}

var errSingular = errors.New("singular design matrix")

// adfTest runs the test with an automatically chosen lag order. The lag
// starts at floor(cbrt(n-2)) and is reduced whenever the design matrix is
// singular (e.g. collinear lagged differences on a perfectly linear series)
// or there are too few effective observations.
func adfTest(values []float64) (adfResult, error) {
	n := len(values)
	if n < 3 {
		return adfResult{}, errors.New("need at least 3 observations")
	}
	lag := int(math.Cbrt(float64(n - 2)))
	if lag < 0 {
		lag = 0
	}
	for {
		// Effective observations must exceed parameters with room to spare.
		for lag > 0 && n-1-lag < lag+4 {
			lag--
		}
		res, err := adfWithLag(values, lag)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, errSingular) || lag == 0 {
			return adfResult{}, err
		}
		lag--
	}
}

func adfWithLag(values []float64, lag int) (adfResult, error) {
	n := len(values)
	dy := make([]float64, n-1)
	for t := 1; t < n; t++ {
		dy[t-1] = values[t] - values[t-1]
	}

	nobs := n - 1 - lag
	k := lag + 2
	if nobs < k {
		return adfResult{}, errSingular
	}

	x := make([][]float64, nobs)
	y := make([]float64, nobs)
	for r := 0; r < nobs; r++ {
		t := lag + 1 + r // index into values
		row := make([]float64, k)
		row[0] = 1
		row[1] = values[t-1]
		for i := 1; i <= lag; i++ {
			row[1+i] = dy[t-1-i]
		}
		x[r] = row
		y[r] = dy[t-1]
	}

	coef, se, sigma2, err := olsFit(x, y)
	if err != nil {
		return adfResult{}, err
	}

	rho := coef[1]
	var tau float64
	switch {
	case sigma2 <= 1e-12 || se[1] <= 1e-12:
		// Perfect fit. A zero unit-root coefficient means the dynamics are
		// fully deterministic (tau 0, far from rejection); a nonzero one is
		// overwhelming evidence either way.
		if math.Abs(rho) <= 1e-8 {
			tau = 0
		} else if rho < 0 {
			tau = -100
		} else {
			tau = 100
		}
	default:
		tau = rho / se[1]
	}

	return adfResult{Stat: tau, PValue: mackinnonPValue(tau), Lag: lag}, nil
}

// MacKinnon approximate asymptotic p-values, regression with constant only.
var (
	tauMaxC  = 2.74
	tauMinC  = -18.83
	tauStarC = -1.61
	// p = normCDF(poly(tau)); small-p polynomial for tau <= tauStarC,
	// large-p polynomial otherwise.
	tauCSmallP = []float64{2.1659, 1.4412, 0.038269}
	tauCLargeP = []float64{1.7339, 0.93202, -0.12745, -0.010368}
)

func mackinnonPValue(tau float64) float64 {
	if tau > tauMaxC {
		return 1
	}
	if tau < tauMinC {
		return 0
	}
	coeffs := tauCLargeP
	if tau <= tauStarC {
		coeffs = tauCSmallP
	}
	poly := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		poly = poly*tau + coeffs[i]
	}
	return normCDF(poly)
}

// olsFit solves the least-squares problem via the normal equations and
// returns coefficient estimates, their standard errors, and the residual
// variance. Errors with errSingular when X'X cannot be inverted.
func olsFit(x [][]float64, y []float64) (coef, se []float64, sigma2 float64, err error) {
	nobs := len(x)
	k := len(x[0])

	xtx := make([][]float64, k)
	xty := make([]float64, k)
	for i := 0; i < k; i++ {
		xtx[i] = make([]float64, k)
	}
	for r := 0; r < nobs; r++ {
		for i := 0; i < k; i++ {
			xty[i] += x[r][i] * y[r]
			for j := i; j < k; j++ {
				xtx[i][j] += x[r][i] * x[r][j]
			}
		}
	}
	for i := 0; i < k; i++ {
		for j := 0; j < i; j++ {
			xtx[i][j] = xtx[j][i]
		}
	}

	inv, err := invertSym(xtx)
	if err != nil {
		return nil, nil, 0, err
	}

	coef = make([]float64, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			coef[i] += inv[i][j] * xty[j]
		}
	}

	sse := 0.0
	for r := 0; r < nobs; r++ {
		fit := 0.0
		for i := 0; i < k; i++ {
			fit += x[r][i] * coef[i]
		}
		d := y[r] - fit
		sse += d * d
	}
	df := nobs - k
	if df > 0 {
		sigma2 = sse / float64(df)
	}

	se = make([]float64, k)
	for i := 0; i < k; i++ {
		v := sigma2 * inv[i][i]
		if v < 0 {
			v = 0
		}
		se[i] = math.Sqrt(v)
	}
	return coef, se, sigma2, nil
}

// invertSym inverts a small symmetric positive matrix by Gauss-Jordan
// elimination with partial pivoting.
func invertSym(m [][]float64) ([][]float64, error) {
	k := len(m)
	a := make([][]float64, k)
	inv := make([][]float64, k)
	scale := 0.0
	for i := 0; i < k; i++ {
		a[i] = make([]float64, k)
		inv[i] = make([]float64, k)
		copy(a[i], m[i])
		inv[i][i] = 1
		for j := 0; j < k; j++ {
			if v := math.Abs(m[i][j]); v > scale {
				scale = v
			}
		}
	}
	if scale == 0 {
		return nil, errSingular
	}
	for col := 0; col < k; col++ {
		pivot := col
		for r := col + 1; r < k; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-10*scale {
			return nil, errSingular
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]
		p := a[col][col]
		for j := 0; j < k; j++ {
			a[col][j] /= p
			inv[col][j] /= p
		}
		for r := 0; r < k; r++ {
			if r == col {
				continue
			}
			f := a[r][col]
			if f == 0 {
				continue
			}
			for j := 0; j < k; j++ {
				a[r][j] -= f * a[col][j]
				inv[r][j] -= f * inv[col][j]
			}
		}
	}
	return inv, nil
}
