package classifier

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// softmaxRegression is a multinomial logistic regression. Weights are laid
// out row-major: one row of width features+1 per class, the last column
// holding the class intercept.
type softmaxRegression struct {
	classes  int
	features int
	weights  []float64
}

type fitResult struct {
	Iterations int
	Converged  bool
}

type fitParams struct {
	C             float64
	MaxIterations int
	Tolerance     float64
}

func newSoftmaxRegression(classes, features int) *softmaxRegression {
	return &softmaxRegression{
		classes:  classes,
		features: features,
		weights:  make([]float64, classes*(features+1)),
	}
}

func (m *softmaxRegression) width() int {
	return m.features + 1
}

// scores writes the per-class linear scores for x into dst.
func (m *softmaxRegression) scores(w []float64, x sparseVector, dst []float64) {
	width := m.width()
	for k := 0; k < m.classes; k++ {
		row := w[k*width : (k+1)*width]
		z := row[m.features]
		for _, t := range x {
			z += row[t.Index] * t.Value
		}
		dst[k] = z
	}
}

// probabilities converts scores into a softmax distribution in place.
func probabilities(z []float64) {
	lse := floats.LogSumExp(z)
	for k := range z {
		z[k] = math.Exp(z[k] - lse)
	}
}

func (m *softmaxRegression) predict(x sparseVector) []float64 {
	p := make([]float64, m.classes)
	m.scores(m.weights, x, p)
	probabilities(p)
	return p
}

// gradient of sum_i crossEntropy_i + ||W||^2 / (2C), intercepts unpenalized.
func (m *softmaxRegression) gradient(w []float64, xs []sparseVector, ys []int, invC float64, g, p []float64) {
	for i := range g {
		g[i] = 0
	}
	width := m.width()
	for i, x := range xs {
		m.scores(w, x, p)
		probabilities(p)
		p[ys[i]] -= 1
		for k := 0; k < m.classes; k++ {
			d := p[k]
			if d == 0 {
				continue
			}
			row := g[k*width : (k+1)*width]
			for _, t := range x {
				row[t.Index] += d * t.Value
			}
			row[m.features] += d
		}
	}
	for k := 0; k < m.classes; k++ {
		row := g[k*width : k*width+m.features]
		floats.AddScaled(row, invC, w[k*width:k*width+m.features])
	}
}

// fit runs Nesterov-accelerated full-batch gradient descent from zero
// weights with a fixed 1/L step. The procedure has no random component.
func (m *softmaxRegression) fit(xs []sparseVector, ys []int, params fitParams) fitResult {
	n := len(xs)
	if n == 0 || m.classes == 0 {
		return fitResult{Converged: true}
	}

	invC := 1 / params.C
	var lipschitz float64
	for _, x := range xs {
		lipschitz += x.squaredNorm() + 1
	}
	lipschitz = 0.5*lipschitz + invC
	step := 1 / lipschitz

	size := len(m.weights)
	x := make([]float64, size)
	prev := make([]float64, size)
	y := make([]float64, size)
	g := make([]float64, size)
	p := make([]float64, m.classes)

	t := 1.0
	for iter := 1; iter <= params.MaxIterations; iter++ {
		m.gradient(y, xs, ys, invC, g, p)
		if floats.Norm(g, math.Inf(1))/float64(n) <= params.Tolerance {
			copy(m.weights, y)
			return fitResult{Iterations: iter, Converged: true}
		}

		copy(prev, x)
		copy(x, y)
		floats.AddScaled(x, -step, g)

		tNext := (1 + math.Sqrt(1+4*t*t)) / 2
		momentum := (t - 1) / tNext
		t = tNext

		// y = x + momentum * (x - prev)
		copy(y, x)
		floats.Sub(prev, x)
		floats.AddScaled(y, -momentum, prev)
	}

	copy(m.weights, x)
	return fitResult{Iterations: params.MaxIterations, Converged: false}
}
