package analysis

// Autocorrelation returns the normalized autocorrelation of x for lags
// 0..maxLag. The mean is removed first and each lag is normalized by the
// number of terms that contribute to it, so acf[0] is 1. The convolution
// runs through a zero-padded FFT.
func Autocorrelation(x []float64, maxLag int) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		maxLag = 0
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	// pad to at least 2n so the circular convolution cannot wrap
	padded := make([]complex128, nextPow2(2*n))
	for i, v := range x {
		padded[i] = complex(v-mean, 0)
	}

	spec := FFT(padded)
	for i, v := range spec {
		re, im := real(v), imag(v)
		spec[i] = complex(re*re+im*im, 0)
	}
	corr := IFFT(spec)

	acf := make([]float64, maxLag+1)
	c0 := real(corr[0]) / float64(n)
	if c0 == 0 {
		acf[0] = 1
		return acf
	}
	for k := 0; k <= maxLag; k++ {
		acf[k] = real(corr[k]) / float64(n-k) / c0
	}
	return acf
}

// StatIneff estimates the statistical inefficiency of a correlated
// series: the factor by which correlation inflates the variance of its
// mean. The autocorrelation is summed up to its first non-positive value.
// An uncorrelated series gives 1.
func StatIneff(x []float64) float64 {
	if len(x) < 2 {
		return 1
	}
	acf := Autocorrelation(x, len(x)/2)
	s := 1.0
	for _, c := range acf[1:] {
		if c <= 0 {
			break
		}
		s += 2 * c
	}
	return s
}

// CorrelationTime converts the statistical inefficiency into an
// exponential correlation time in units of the sampling interval.
func CorrelationTime(x []float64) float64 {
	return (StatIneff(x) - 1) / 2
}
