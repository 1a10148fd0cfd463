// Package ik contains the inverse kinematics solver used to turn target poses into joint angles.
package ik

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/referenceframe"
	spatial "go.viam.com/armsim/spatialmath"
)

// ErrNoSolution is returned when no joint angles within limits reach the target pose. It is not
// fatal: callers leave the arm where it is.
var ErrNoSolution = errors.New("no inverse kinematics solution")

// jacobianStep is the central difference step, in radians.
const jacobianStep = 1e-6

// Kinematics is anything with forward kinematics the solver can invert.
type Kinematics interface {
	DoF() int
	Limits() []referenceframe.Limit
	Transform(angles []float64) (spatial.Pose, error)
}

// Solver is a damped least squares inverse kinematics solver. Each iteration solves
//
//	dq = Jᵀ (J Jᵀ + λ²I)⁻¹ e
//
// for a numeric Jacobian J and weighted pose error e. λ shrinks while the error falls and grows
// when a step would increase it.
type Solver struct {
	logger logging.Logger
	opts   Options
	metric Metric
}

// NewSolver returns a solver with the given options.
func NewSolver(logger logging.Logger, opts Options) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Solver{logger: logger, opts: opts, metric: NewSquaredNormMetric(opts.OrientationWeight)}, nil
}

// Options returns the solver's options.
func (s *Solver) Options() Options {
	return s.opts
}

// Solve returns joint angles, normalized to [0, 2π) and within limits, whose pose matches target.
// Refinement starts from seed so the nearest branch is preferred. A seed that already matches is
// returned unchanged. ErrNoSolution is returned when every attempt fails.
func (s *Solver) Solve(k Kinematics, seed []float64, target spatial.Pose) ([]float64, error) {
	dof := k.DoF()
	if len(seed) != dof {
		return nil, referenceframe.NewIncorrectDoFError(len(seed), dof)
	}
	target = spatial.NewPose(target.Point, target.Orientation)
	pose, err := k.Transform(seed)
	if err != nil {
		return nil, err
	}
	if s.converged(pose, target) {
		return append([]float64(nil), seed...), nil
	}

	limits := k.Limits()
	ws := newWorkspace(dof)
	best := math.Inf(1)
	for attempt := 0; attempt <= s.opts.Restarts; attempt++ {
		start := s.restartSeed(seed, attempt)
		solution, ok := s.refine(k, start, target, ws)
		if solution == nil {
			continue
		}
		for i, a := range solution {
			solution[i] = limits[i].Clamp(a)
		}
		pose, err := k.Transform(solution)
		if err != nil {
			continue
		}
		if ok && s.converged(pose, target) {
			if attempt > 0 {
				s.logger.Debugw("inverse kinematics solved after restart", "attempt", attempt)
			}
			return solution, nil
		}
		best = math.Min(best, s.metric(pose, target))
	}
	s.logger.Debugw("inverse kinematics failed",
		"target", target.String(), "attempts", s.opts.Restarts+1, "residual", math.Sqrt(best))
	return nil, ErrNoSolution
}

func (s *Solver) converged(pose, target spatial.Pose) bool {
	return pose.Point.Sub(target.Point).Norm() < s.opts.PositionTolerance &&
		spatial.AngularDistance(pose.Orientation, target.Orientation) < s.opts.OrientationTolerance
}

// restartSeed perturbs one joint of seed per attempt, cycling through the joints and alternating
// direction, growing the perturbation each full cycle.
func (s *Solver) restartSeed(seed []float64, attempt int) []float64 {
	start := append([]float64(nil), seed...)
	if attempt == 0 {
		return start
	}
	n := attempt - 1
	joint := (n / 2) % len(seed)
	amt := s.opts.RestartPerturbation * float64(1+n/(2*len(seed)))
	if n%2 == 1 {
		amt *= -1
	}
	start[joint] += amt
	return start
}

type workspace struct {
	jac   *mat.Dense
	jjt   *mat.Dense
	e     *mat.VecDense
	y     *mat.VecDense
	dq    *mat.VecDense
	plus  []float64
	minus []float64
	cand  []float64
	cErr  []float64
}

func newWorkspace(dof int) *workspace {
	return &workspace{
		jac:   mat.NewDense(6, dof, nil),
		jjt:   mat.NewDense(6, 6, nil),
		e:     mat.NewVecDense(6, nil),
		y:     mat.NewVecDense(6, nil),
		dq:    mat.NewVecDense(dof, nil),
		plus:  make([]float64, dof),
		minus: make([]float64, dof),
		cand:  make([]float64, dof),
		cErr:  make([]float64, 6),
	}
}

// refine runs one damped least squares attempt from start. The returned angles are unwrapped.
func (s *Solver) refine(k Kinematics, start []float64, target spatial.Pose, ws *workspace) ([]float64, bool) {
	q := start
	pose, err := k.Transform(q)
	if err != nil {
		return nil, false
	}
	e := ws.e.RawVector().Data
	PoseErrorInto(e, pose, target, s.opts.OrientationWeight)
	errNorm := floats.Norm(e, 2)
	lambda := s.opts.Damping

	for iter := 0; iter < s.opts.MaxIterations; iter++ {
		if s.converged(pose, target) {
			return q, true
		}
		if err := s.jacobian(k, q, ws); err != nil {
			return nil, false
		}

		ws.jjt.Mul(ws.jac, ws.jac.T())
		for i := 0; i < 6; i++ {
			ws.jjt.Set(i, i, ws.jjt.At(i, i)+lambda*lambda)
		}
		if err := ws.y.SolveVec(ws.jjt, ws.e); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				lambda *= 2
				continue
			}
		}
		ws.dq.MulVec(ws.jac.T(), ws.y)

		dq := ws.dq.RawVector().Data
		if biggest := math.Max(floats.Max(dq), -floats.Min(dq)); biggest > s.opts.MaxStep {
			floats.Scale(s.opts.MaxStep/biggest, dq)
		}
		floats.AddTo(ws.cand, q, dq)
		candPose, err := k.Transform(ws.cand)
		if err != nil {
			return nil, false
		}
		PoseErrorInto(ws.cErr, candPose, target, s.opts.OrientationWeight)
		if candNorm := floats.Norm(ws.cErr, 2); candNorm < errNorm {
			copy(q, ws.cand)
			copy(e, ws.cErr)
			pose, errNorm = candPose, candNorm
			lambda = math.Max(lambda/2, minDamping)
		} else {
			lambda *= 2
			if lambda > maxDamping {
				break
			}
		}
	}
	return q, s.converged(pose, target)
}

// jacobian fills ws.jac by central differences of the pose error frame: rows are world position
// and weighted world rotation, columns are joints.
func (s *Solver) jacobian(k Kinematics, q []float64, ws *workspace) error {
	scale := 1 / (2 * jacobianStep)
	for j := range q {
		copy(ws.plus, q)
		copy(ws.minus, q)
		ws.plus[j] += jacobianStep
		ws.minus[j] -= jacobianStep
		pPlus, err := k.Transform(ws.plus)
		if err != nil {
			return err
		}
		pMinus, err := k.Transform(ws.minus)
		if err != nil {
			return err
		}
		PoseErrorInto(ws.cErr, pMinus, pPlus, s.opts.OrientationWeight)
		for r := 0; r < 6; r++ {
			ws.jac.Set(r, j, ws.cErr[r]*scale)
		}
	}
	return nil
}
