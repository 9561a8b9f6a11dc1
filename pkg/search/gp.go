package search

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// surrogate is a Gaussian process with an RBF kernel over unit-hypercube
// configuration encodings, fitted to observed (configuration, score)
// pairs.
type surrogate struct {
	points      [][]float64
	alpha       *mat.VecDense
	chol        mat.Cholesky
	lengthScale float64
	meanScore   float64
}

const (
	surrogateLengthScale = 0.3
	surrogateNoise       = 1e-6
)

func fitSurrogate(points [][]float64, scores []float64) (*surrogate, error) {
	n := len(points)
	if n == 0 {
		return nil, errors.New("no observations to fit")
	}

	mean := 0.0
	for _, s := range scores {
		mean += s
	}
	mean /= float64(n)

	s := &surrogate{points: points, lengthScale: surrogateLengthScale, meanScore: mean}

	gram := mat.NewSymDense(n, nil)
	noise := surrogateNoise
	for attempt := 0; attempt < 5; attempt++ {
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				v := s.kernel(points[i], points[j])
				if i == j {
					v += noise
				}
				gram.SetSym(i, j, v)
			}
		}
		if s.chol.Factorize(gram) {
			centered := mat.NewVecDense(n, nil)
			for i, score := range scores {
				centered.SetVec(i, score-mean)
			}
			s.alpha = mat.NewVecDense(n, nil)
			if err := s.chol.SolveVecTo(s.alpha, centered); err != nil {
				return nil, err
			}
			return s, nil
		}
		noise *= 100
	}
	return nil, errors.New("kernel matrix is not positive definite")
}

func (s *surrogate) kernel(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Exp(-sum / (2 * s.lengthScale * s.lengthScale))
}

// predict returns the posterior mean and standard deviation at x.
func (s *surrogate) predict(x []float64) (mu, sigma float64) {
	n := len(s.points)
	k := mat.NewVecDense(n, nil)
	for i, p := range s.points {
		k.SetVec(i, s.kernel(x, p))
	}

	mu = s.meanScore + mat.Dot(k, s.alpha)

	v := mat.NewVecDense(n, nil)
	if err := s.chol.SolveVecTo(v, k); err != nil {
		return mu, 0
	}
	variance := s.kernel(x, x) - mat.Dot(k, v)
	if variance < 0 {
		variance = 0
	}
	return mu, math.Sqrt(variance)
}

// expectedImprovement scores x against the best observed value for
// maximization.
func (s *surrogate) expectedImprovement(x []float64, best float64) float64 {
	mu, sigma := s.predict(x)
	if sigma == 0 {
		return 0
	}
	z := (mu - best) / sigma
	return (mu-best)*distuv.UnitNormal.CDF(z) + sigma*distuv.UnitNormal.Prob(z)
}
