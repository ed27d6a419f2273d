package mds

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/sparsestress/pkg/errors"
)

// SingularVectors returns the top d right singular vectors of the p x n
// matrix c (each of length n, unit norm) and the matching singular values,
// largest first. They are derived from the eigenvectors of the p x p
// matrix c·cᵀ.
func SingularVectors(c *mat.Dense, d int, opts Options) ([]*mat.VecDense, []float64, error) {
	opts.setDefaults()
	_, n := c.Dims()

	var k mat.SymDense
	k.SymOuterK(1, c)

	vecs, vals, err := PowerIteration(&k, d, opts.Seed, opts.MaxIterations)
	if err != nil {
		return nil, nil, err
	}

	out := make([]*mat.VecDense, d)
	sv := make([]float64, d)
	for m := 0; m < d; m++ {
		sv[m] = math.Sqrt(vals[m])
		out[m] = mat.NewVecDense(n, nil)
		out[m].MulVec(c.T(), vecs[m])
		normalize(out[m])
	}
	return out, sv, nil
}

// PowerIteration computes the d dominant eigenpairs of the symmetric
// positive semi-definite matrix k by simultaneous power iteration with
// Gram-Schmidt orthogonalization.
//
// The iteration stops once every vector moves by less than Epsilon
// (|⟨vₜ, vₜ₋₁⟩| ≥ 1-Epsilon) or after maxIter rounds. Vectors that fall
// into the null space of k are returned as zero vectors with eigenvalue 0.
// A NaN or infinite convergence measure yields an ErrCodeNumerical error.
func PowerIteration(k mat.Symmetric, d int, seed uint64, maxIter int) ([]*mat.VecDense, []float64, error) {
	size := k.SymmetricDim()
	if size == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "power iteration on an empty matrix")
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	vecs := make([]*mat.VecDense, d)
	old := make([]*mat.VecDense, d)
	vals := make([]float64, d)
	for m := range vecs {
		data := make([]float64, size)
		for i := range data {
			data[i] = rng.Float64()
		}
		vecs[m] = mat.NewVecDense(size, data)
		old[m] = mat.NewVecDense(size, nil)
		vals[m] = normalize(vecs[m])
	}

	for it := 0; it < maxIter; it++ {
		for m := range vecs {
			old[m].CopyVec(vecs[m])
			vecs[m].MulVec(k, old[m])
		}
		for m := range vecs {
			for q := 0; q < m; q++ {
				pp := mat.Dot(vecs[q], vecs[q])
				if pp == 0 {
					continue
				}
				vecs[m].AddScaledVec(vecs[m], -mat.Dot(vecs[q], vecs[m])/pp, vecs[q])
			}
		}
		r := 1.0
		for m := range vecs {
			vals[m] = normalize(vecs[m])
			if vals[m] == 0 {
				continue
			}
			r = math.Min(r, math.Abs(mat.Dot(vecs[m], old[m])))
		}
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, nil, errors.New(errors.ErrCodeNumerical, "power iteration diverged after %d rounds", it+1)
		}
		if r >= 1-Epsilon {
			break
		}
	}
	return vecs, vals, nil
}

// normalize scales v to unit length and returns its former norm.
// A zero vector is left unchanged.
func normalize(v *mat.VecDense) float64 {
	norm := mat.Norm(v, 2)
	if norm != 0 {
		v.ScaleVec(1/norm, v)
	}
	return norm
}
