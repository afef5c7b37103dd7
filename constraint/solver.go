package constraint

import "github.com/go-gl/mathgl/mgl32"

// Solver is the SPOOK projected Gauss-Seidel iterator. It owns the
// per-body velocity-correction scratch, resized only when the body
// count grows, and relaxes a set of rows built fresh each step into
// those corrections.
type Solver struct {
	// H is the timestep the row's Fext/Qdot were sampled at. K is
	// constraint stiffness, D the damping step count.
	H, K float32
	D    float32
	// Iterations is the number of Gauss-Seidel sweeps; default 10.
	Iterations int

	vxl, vyl, vzl []float32
	wxl, wyl, wzl []float32
}

// NewSolver returns a solver with the default 10 iterations and the
// given SPOOK parameters.
func NewSolver(h, k, d float32) *Solver {
	return &Solver{H: h, K: k, D: d, Iterations: 10}
}

// Resize grows the velocity-correction scratch to n bodies, if needed.
// It never shrinks: the world's body count is monotonic.
func (s *Solver) Resize(n int) {
	if len(s.vxl) >= n {
		return
	}
	grow := func(sl []float32) []float32 {
		next := make([]float32, n)
		copy(next, sl)
		return next
	}
	s.vxl, s.vyl, s.vzl = grow(s.vxl), grow(s.vyl), grow(s.vzl)
	s.wxl, s.wyl, s.wzl = grow(s.wxl), grow(s.wyl), grow(s.wzl)
}

func (s *Solver) reset() {
	for i := range s.vxl {
		s.vxl[i], s.vyl[i], s.vzl[i] = 0, 0, 0
		s.wxl[i], s.wyl[i], s.wzl[i] = 0, 0, 0
	}
}

// Delta returns the accumulated velocity correction for body i after
// Solve has run.
func (s *Solver) Delta(i int) (dv, dw mgl32.Vec3) {
	return mgl32.Vec3{s.vxl[i], s.vyl[i], s.vzl[i]}, mgl32.Vec3{s.wxl[i], s.wyl[i], s.wzl[i]}
}

type rowPrecompute struct {
	c, b float32
}

// Solve relaxes rows in place (each row's Lambda starts at zero; the
// engine does not warm-start across steps) and leaves the resulting
// per-body velocity corrections in the solver's scratch, readable via
// Delta. n must be at least one greater than the largest body index
// referenced by rows.
func (s *Solver) Solve(rows []Row, n int) {
	s.Resize(n)
	s.reset()
	if len(rows) == 0 {
		return
	}

	d := s.D
	a := 4 / (s.H * (1 + 4*d))
	b := 4 * d / (1 + 4*d)
	eps := 4 / (s.H * s.H * s.K * (1 + 4*d))

	pre := make([]rowPrecompute, len(rows))
	for l := range rows {
		row := &rows[l]
		row.Lambda = 0
		var gmg, gq, gw, gmf float32
		for k := 0; k < 12; k++ {
			gmg += row.G[k] * row.G[k] * row.Minv[k]
			gq += row.G[k] * row.Q[k]
			gw += row.G[k] * row.Qdot[k]
			gmf += row.G[k] * row.Minv[k] * row.Fext[k]
		}
		pre[l].c = 1 / (gmg + eps)
		pre[l].b = -a*gq - b*gw - s.H*gmf
	}

	for iter := 0; iter < s.Iterations; iter++ {
		for l := range rows {
			row := &rows[l]
			i, j := row.I, row.J

			gu := row.G[0]*s.vxl[i] + row.G[1]*s.vyl[i] + row.G[2]*s.vzl[i] +
				row.G[3]*s.wxl[i] + row.G[4]*s.wyl[i] + row.G[5]*s.wzl[i]
			if j >= 0 {
				gu += row.G[6]*s.vxl[j] + row.G[7]*s.vyl[j] + row.G[8]*s.vzl[j] +
					row.G[9]*s.wxl[j] + row.G[10]*s.wyl[j] + row.G[11]*s.wzl[j]
			}

			dLambda := pre[l].c * (pre[l].b - gu - eps*row.Lambda)
			newLambda := row.Lambda + dLambda
			if row.HasLower && newLambda < row.Lower {
				newLambda = row.Lower
			}
			if row.HasUpper && newLambda > row.Upper {
				newLambda = row.Upper
			}
			dLambda = newLambda - row.Lambda
			row.Lambda = newLambda

			s.vxl[i] += dLambda * row.Minv[0] * row.G[0]
			s.vyl[i] += dLambda * row.Minv[1] * row.G[1]
			s.vzl[i] += dLambda * row.Minv[2] * row.G[2]
			s.wxl[i] += dLambda * row.Minv[3] * row.G[3]
			s.wyl[i] += dLambda * row.Minv[4] * row.G[4]
			s.wzl[i] += dLambda * row.Minv[5] * row.G[5]
			if j >= 0 {
				s.vxl[j] += dLambda * row.Minv[6] * row.G[6]
				s.vyl[j] += dLambda * row.Minv[7] * row.G[7]
				s.vzl[j] += dLambda * row.Minv[8] * row.G[8]
				s.wxl[j] += dLambda * row.Minv[9] * row.G[9]
				s.wyl[j] += dLambda * row.Minv[10] * row.G[10]
				s.wzl[j] += dLambda * row.Minv[11] * row.G[11]
			}
		}
	}
}
