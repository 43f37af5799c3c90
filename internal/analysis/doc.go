// Package analysis provides statistical tools for simulation series.
//
// The package covers the post-run questions that come up again and again:
//
//   - [Autocorrelation]: normalized autocorrelation of an observable
//   - [StatIneff]: statistical inefficiency of a correlated series
//   - [CorrelationTime]: correlation time in sampling intervals
//   - [RDF]: radial distribution function from position frames
//   - [FFT], [IFFT], [PowerSpectrum]: the transforms behind them
//
// # Error Bars
//
// Correlated samples carry less information than their count suggests.
// Divide the nominal sample count by the statistical inefficiency before
// quoting an error bar:
//
//	s := analysis.StatIneff(series)
//	neff := float64(len(series)) / s
package analysis
