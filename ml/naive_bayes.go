package ml

import (
	"errors"
	"fmt"
	"math"
)

// GaussianNB is a Gaussian naive Bayes classifier restored from the
// fitted per-class means and variances.
type GaussianNB struct {
	classes  []string
	logPrior []float64
	theta    [][]float64
	variance [][]float64
}

func newGaussianNB(a artifact) (*GaussianNB, error) {
	classCount := len(a.Classes)
	if len(a.ClassPrior) != classCount {
		return nil, fmt.Errorf("class_prior has %d entries, expected %d", len(a.ClassPrior), classCount)
	}
	if len(a.Theta) != classCount || len(a.Var) != classCount {
		return nil, fmt.Errorf("theta/var must have one row per class (%d)", classCount)
	}

	width := len(a.Theta[0])
	if width == 0 {
		return nil, errors.New("theta rows are empty")
	}
	if len(a.Features) > 0 && width != len(a.Features) {
		return nil, fmt.Errorf("theta rows have %d columns, artifact declares %d features", width, len(a.Features))
	}

	logPrior := make([]float64, classCount)
	total := 0.0
	for i, p := range a.ClassPrior {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("class_prior[%d] is invalid: %v", i, p)
		}
		total += p
		logPrior[i] = math.Log(p)
	}
	if total <= 0 {
		return nil, errors.New("class_prior sums to zero")
	}

	for c := 0; c < classCount; c++ {
		if len(a.Theta[c]) != width || len(a.Var[c]) != width {
			return nil, fmt.Errorf("class %q has ragged theta/var rows", a.Classes[c])
		}
		for j, v := range a.Var[c] {
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("var[%d][%d] must be positive, got %v", c, j, v)
			}
		}
	}

	return &GaussianNB{
		classes:  a.Classes,
		logPrior: logPrior,
		theta:    a.Theta,
		variance: a.Var,
	}, nil
}

// Predict returns the class with the highest joint log likelihood for each row.
func (nb *GaussianNB) Predict(rows [][]float64) ([]string, error) {
	width := len(nb.theta[0])
	labels := make([]string, 0, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d features, model expects %d", i, len(row), width)
		}
		best := -1
		bestScore := math.Inf(-1)
		for c := range nb.classes {
			score := nb.jointLogLikelihood(c, row)
			if score > bestScore {
				best = c
				bestScore = score
			}
		}
		if best < 0 {
			return nil, fmt.Errorf("row %d has no class with a finite likelihood", i)
		}
		labels = append(labels, nb.classes[best])
	}
	return labels, nil
}

func (nb *GaussianNB) jointLogLikelihood(class int, row []float64) float64 {
	score := nb.logPrior[class]
	for j, x := range row {
		v := nb.variance[class][j]
		d := x - nb.theta[class][j]
		score -= 0.5*math.Log(2*math.Pi*v) + d*d/(2*v)
	}
	return score
}

// Classes returns the labels the model can emit.
func (nb *GaussianNB) Classes() []string {
	return append([]string(nil), nb.classes...)
}
