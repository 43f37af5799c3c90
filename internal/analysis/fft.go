package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of x. The length must be a
// power of two.
func FFT(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		result := make([]complex128, n)
		copy(result, x)
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// IFFT inverts FFT.
func IFFT(x []complex128) []complex128 {
	n := len(x)
	conj := make([]complex128, n)
	for i, v := range x {
		conj[i] = cmplx.Conj(v)
	}
	result := FFT(conj)
	for i, v := range result {
		result[i] = cmplx.Conj(v) / complex(float64(n), 0)
	}
	return result
}

// PowerSpectrum returns the magnitude of the positive-frequency half of
// the transform of a real series. The length must be a power of two.
func PowerSpectrum(data []float64) []float64 {
	x := make([]complex128, len(data))
	for i, v := range data {
		x[i] = complex(v, 0)
	}
	fft := FFT(x)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// nextPow2 returns the smallest power of two not below n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
