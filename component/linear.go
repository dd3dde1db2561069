package component

import (
	"fmt"
	"math"

	"github.com/kbukum/automl/frame"
)

// LinearRegressor fits ordinary least squares via the normal equations.
// Suitable for the small column counts produced by the built-in
// transformers; no regularization.
type LinearRegressor struct {
	intercept bool

	names  []string
	coefs  []float64 // bias first when intercept is enabled
	fitted bool
}

// NewLinearRegressor creates a LinearRegressor.
// Parameters: "fit_intercept" (default true).
func NewLinearRegressor(params Parameters) (Component, error) {
	v, ok := params["fit_intercept"]
	intercept := true
	if ok && v != nil {
		b, isBool := v.(bool)
		if !isBool {
			return nil, invalidParams("LinearRegressor",
				fmt.Errorf("parameter %q: expected bool, got %T", "fit_intercept", v))
		}
		intercept = b
	}
	return &LinearRegressor{intercept: intercept}, nil
}

func (c *LinearRegressor) Name() string { return "LinearRegressor" }

// Fit solves (XᵀX)β = Xᵀy by Gaussian elimination with partial pivoting.
func (c *LinearRegressor) Fit(X frame.Frame, y frame.Target) error {
	rows := X.NumRows()
	if rows == 0 || rows != len(y) {
		return fmt.Errorf("linear regressor: %d rows of features vs %d target values", rows, len(y))
	}

	c.names = X.Names()
	design := c.designMatrix(X)
	p := len(design)

	// Normal equations.
	ata := make([][]float64, p)
	atb := make([]float64, p)
	for i := 0; i < p; i++ {
		ata[i] = make([]float64, p)
		for j := 0; j < p; j++ {
			for r := 0; r < rows; r++ {
				ata[i][j] += design[i][r] * design[j][r]
			}
		}
		for r := 0; r < rows; r++ {
			atb[i] += design[i][r] * y[r]
		}
	}

	coefs, err := solve(ata, atb)
	if err != nil {
		return fmt.Errorf("linear regressor: %w", err)
	}
	c.coefs = coefs
	c.fitted = true
	return nil
}

// Predict applies the learned coefficients. Columns are matched by name.
func (c *LinearRegressor) Predict(X frame.Frame) (frame.Target, error) {
	if !c.fitted {
		return nil, notFitted("LinearRegressor", "predict")
	}
	sel, err := X.Select(c.names...)
	if err != nil {
		return nil, fmt.Errorf("linear regressor: %w", err)
	}
	design := c.designMatrix(sel)
	out := make(frame.Target, X.NumRows())
	for r := range out {
		for i, col := range design {
			out[r] += c.coefs[i] * col[r]
		}
	}
	return out, nil
}

// designMatrix returns columns of the design matrix, bias column first when
// an intercept is fitted.
func (c *LinearRegressor) designMatrix(X frame.Frame) [][]float64 {
	rows := X.NumRows()
	var design [][]float64
	if c.intercept {
		ones := make([]float64, rows)
		for i := range ones {
			ones[i] = 1
		}
		design = append(design, ones)
	}
	for _, col := range X.Columns() {
		design = append(design, col.Data)
	}
	return design
}

// solve performs Gaussian elimination with partial pivoting on a copy of the
// inputs.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	m := make([][]float64, n)
	for i := range a {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular design matrix")
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := m[r][col] / m[col][col]
			for k := col; k <= n; k++ {
				m[r][k] -= factor * m[col][k]
			}
		}
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = m[i][n] / m[i][i]
	}
	return out, nil
}
