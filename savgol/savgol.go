// Package savgol implements the Savitzky-Golay least-squares polynomial
// convolution filter (Savitzky & Golay, Anal. Chem. 36 (1964) 1627,
// DOI 10.1021/ac60214a047).
//
// The filter fits a polynomial of the given order to a sliding window of
// samples and evaluates the fit, or its derivative, at the window center.
// Because the fit reduces to a fixed convolution, the weights are computed
// once per parameter set from the pseudoinverse of the window's Vandermonde
// design matrix. Inputs are zero-padded by half a window on both ends so
// the output keeps the input length; the first and last half-window samples
// are therefore influenced by the padding.
package savgol

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Coefficients returns the convolution weights for a window of the given
// width, a fit polynomial of the given order, and the deriv-th derivative
// of the fit (0 smooths, 1 differentiates). The window must be a positive
// odd number and exceed order by at least two.
func Coefficients(window, order, deriv int) ([]float64, error) {
	if window < 1 || window%2 == 0 {
		return nil, fmt.Errorf("savgol: window must be a positive odd number, was %d", window)
	}
	if order < 0 {
		return nil, fmt.Errorf("savgol: order must be non-negative, was %d", order)
	}
	if window < order+2 {
		return nil, fmt.Errorf("savgol: window %d too small for an order-%d polynomial, need at least %d", window, order, order+2)
	}
	if deriv < 0 || deriv > order {
		return nil, fmt.Errorf("savgol: derivative %d exceeds polynomial order %d", deriv, order)
	}

	// Vandermonde design matrix over sample offsets -h..h.
	half := (window - 1) / 2
	design := mat.NewDense(window, order+1, nil)
	for r := 0; r < window; r++ {
		k := float64(r - half)
		for c := 0; c <= order; c++ {
			design.Set(r, c, math.Pow(k, float64(c)))
		}
	}

	// The weights are the deriv-th row of the Moore-Penrose pseudoinverse.
	// The design matrix has full column rank for window >= order+1, so the
	// normal-equation form applies.
	var gram mat.Dense
	gram.Mul(design.T(), design)
	var inv mat.Dense
	if err := inv.Inverse(&gram); err != nil {
		return nil, fmt.Errorf("savgol: design matrix is singular: %w", err)
	}
	var pinv mat.Dense
	pinv.Mul(&inv, design.T())

	return mat.Row(nil, deriv, &pinv), nil
}

// Smooth returns the order-0 filter output: data smoothed by a local
// polynomial fit. The result has the same length as data.
func Smooth(data []float64, window, order int) ([]float64, error) {
	return apply(data, window, order, 0)
}

// Derivative returns the order-1 filter output: the first derivative of the
// local polynomial fit, in units of data per sample step. The result has
// the same length as data.
func Derivative(data []float64, window, order int) ([]float64, error) {
	return apply(data, window, order, 1)
}

func apply(data []float64, window, order, deriv int) ([]float64, error) {
	weights, err := Coefficients(window, order, deriv)
	if err != nil {
		return nil, err
	}

	half := (len(weights) - 1) / 2
	padded := make([]float64, len(data)+2*half)
	copy(padded[half:], data)

	out := make([]float64, len(data))
	for i := range out {
		var v float64
		for j, w := range weights {
			v += w * padded[i+j]
		}
		out[i] = v
	}
	return out, nil
}
