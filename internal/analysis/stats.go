package analysis

import "math"

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

// sampleStd is the n-1 denominator standard deviation. Returns 0 for fewer
// than two values.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	ss := 0.0
	for _, v := range xs {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// percentileSorted interpolates linearly between order statistics.
func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// studentTPValue is the two-sided p-value of a t statistic with df degrees
// of freedom, computed through the regularized incomplete beta function.
func studentTPValue(t, df float64) float64 {
	if df <= 0 {
		return math.NaN()
	}
	if math.IsInf(t, 0) {
		return 0
	}
	return regIncBeta(df/2, 0.5, df/(df+t*t))
}

// regIncBeta is the regularized incomplete beta function I_x(a, b),
// evaluated with the continued-fraction expansion.
func regIncBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lbeta, _ := math.Lgamma(a + b)
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	front := math.Exp(lbeta - la - lb + a*math.Log(x) + b*math.Log(1-x))
	if x < (a+1)/(a+b+2) {
		return front * betacf(a, b, x) / a
	}
	return 1 - front*betacf(b, a, 1-x)/b
}

func betacf(a, b, x float64) float64 {
	const (
		maxIter = 200
		eps     = 3e-14
		fpmin   = 1e-300
	)
	qab := a + b
	qap := a + 1
	qam := a - 1
	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < fpmin {
		d = fpmin
	}
	d = 1 / d
	h := d
	for m := 1; m <= maxIter; m++ {
		m2 := 2 * m
		aa := float64(m) * (b - float64(m)) * x / ((qam + float64(m2)) * (a + float64(m2)))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		h *= d * c
		aa = -(a + float64(m)) * (qab + float64(m)) * x / ((a + float64(m2)) * (qap + float64(m2)))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	return h
}

type regression struct {
	Slope     float64
	Intercept float64
	R         float64
	PValue    float64
	StdErr    float64
}

// linregress fits y = intercept + slope*x by ordinary least squares, with the
// same outputs as the classic five-value regression: slope, intercept,
// correlation, two-sided slope p-value, and slope standard error.
func linregress(x, y []float64) regression {
	n := float64(len(x))
	mx := mean(x)
	my := mean(y)
	var sxx, syy, sxy float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	res := regression{}
	if sxx == 0 {
		res.Slope = math.NaN()
		res.Intercept = math.NaN()
		res.PValue = math.NaN()
		res.StdErr = math.NaN()
		return res
	}
	res.Slope = sxy / sxx
	res.Intercept = my - res.Slope*mx
	if syy == 0 {
		// Flat response: zero slope, undefined correlation by convention 0.
		res.R = 0
		res.PValue = 1
		res.StdErr = 0
		return res
	}
	res.R = sxy / math.Sqrt(sxx*syy)
	if res.R > 1 {
		res.R = 1
	}
	if res.R < -1 {
		res.R = -1
	}
	df := n - 2
	if df <= 0 {
		res.PValue = math.NaN()
		res.StdErr = math.NaN()
		return res
	}
	sse := syy - res.Slope*sxy
	if sse < 0 {
		sse = 0
	}
	sigma2 := sse / df
	res.StdErr = math.Sqrt(sigma2 / sxx)
	if res.StdErr == 0 {
		// Perfect fit with a nonzero slope.
		if res.Slope == 0 {
			res.PValue = 1
		} else {
			res.PValue = 0
		}
		return res
	}
	res.PValue = studentTPValue(res.Slope/res.StdErr, df)
	return res
}
