package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/kinelab/internal/dynamo"
)

// FFT is a radix-2 transform. Input whose length is not a power of two is
// zero padded.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if p := NextPow2(n); p != n {
		padded := make([]float64, p)
		copy(padded, data)
		data, n = padded, p
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
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

// PowerSpectrum returns the magnitude of the positive-frequency bins.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// DominantFrequency estimates the strongest non-DC frequency (Hz) of a
// series sampled every dt seconds. The mean is removed first and the peak
// is refined by parabolic interpolation.
func DominantFrequency(series []float64, dt float64) (float64, error) {
	if !(dt > 0) {
		return 0, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidArgument, dt)
	}
	if len(series) < 4 {
		return 0, fmt.Errorf("%w: need at least 4 samples, got %d", dynamo.ErrInvalidArgument, len(series))
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	n := NextPow2(len(series))

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, fmt.Errorf("%w: series has no oscillation", dynamo.ErrInvalidArgument)
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}

	return bin / (float64(n) * dt), nil
}

// DominantPeriod is 1 / DominantFrequency.
func DominantPeriod(series []float64, dt float64) (float64, error) {
	f, err := DominantFrequency(series, dt)
	if err != nil {
		return 0, err
	}
	return 1 / f, nil
}
