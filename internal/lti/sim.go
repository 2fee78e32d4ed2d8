package lti

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// stateSpace is the controllable canonical realization of a proper
// rational transfer function: x' = Ax + Bu, y = Cx + Du.
type stateSpace struct {
	a *mat.Dense
	b *mat.VecDense
	c *mat.VecDense
	d float64
	n int
}

// realize converts the rational part to state space. The transfer
// function must be proper; biproper systems get a direct feedthrough term.
func (tf TransferFunction) realize() (*stateSpace, error) {
	if !tf.Proper() {
		return nil, fmt.Errorf("%w: improper system cannot be simulated", ErrBadTransferFunction)
	}
	lead := tf.Den[0]
	den := make([]float64, len(tf.Den))
	for i, v := range tf.Den {
		den[i] = v / lead
	}
	num := make([]float64, len(tf.Num))
	for i, v := range tf.Num {
		num[i] = v / lead
	}

	n := len(den) - 1
	d := 0.0
	if len(num) == len(den) {
		// biproper: split off the feedthrough term
		d = num[0]
		rem := make([]float64, n)
		for i := 0; i < n; i++ {
			rem[i] = num[i+1] - d*den[i+1]
		}
		num = rem
	}

	if n == 0 {
		return &stateSpace{d: d, n: 0}, nil
	}

	a := mat.NewDense(n, n, nil)
	for i := 0; i < n-1; i++ {
		a.Set(i, i+1, 1)
	}
	for j := 0; j < n; j++ {
		// bottom companion row holds -a_n ... -a_1
		a.Set(n-1, j, -den[len(den)-1-j])
	}

	b := mat.NewVecDense(n, nil)
	b.SetVec(n-1, 1)

	c := mat.NewVecDense(n, nil)
	for i, v := range num {
		// num is b_1 s^(m-1) ... b_m, highest first; C wants lowest first
		c.SetVec(len(num)-1-i, v)
	}

	return &stateSpace{a: a, b: b, c: c, d: d, n: n}, nil
}

// derivative computes Ax + Bu into dst.
func (ss *stateSpace) derivative(dst, x *mat.VecDense, u float64) {
	dst.MulVec(ss.a, x)
	dst.AddScaledVec(dst, u, ss.b)
}

// output computes Cx + Du.
func (ss *stateSpace) output(x *mat.VecDense, u float64) float64 {
	if ss.n == 0 {
		return ss.d * u
	}
	return mat.Dot(ss.c, x) + ss.d*u
}

// rk4Step advances x by one classical Runge-Kutta step with constant input.
func (ss *stateSpace) rk4Step(x *mat.VecDense, u, dt float64) {
	n := ss.n
	k1 := mat.NewVecDense(n, nil)
	k2 := mat.NewVecDense(n, nil)
	k3 := mat.NewVecDense(n, nil)
	k4 := mat.NewVecDense(n, nil)
	tmp := mat.NewVecDense(n, nil)

	ss.derivative(k1, x, u)

	tmp.AddScaledVec(x, dt/2, k1)
	ss.derivative(k2, tmp, u)

	tmp.AddScaledVec(x, dt/2, k2)
	ss.derivative(k3, tmp, u)

	tmp.AddScaledVec(x, dt, k3)
	ss.derivative(k4, tmp, u)

	x.AddScaledVec(x, dt/6, k1)
	x.AddScaledVec(x, dt/3, k2)
	x.AddScaledVec(x, dt/3, k3)
	x.AddScaledVec(x, dt/6, k4)
}

// Poles returns the roots of the denominator as eigenvalues of the
// companion matrix. The dead time contributes no poles.
func (tf TransferFunction) Poles() []complex128 {
	ss, err := tf.realize()
	if err != nil || ss.n == 0 {
		return nil
	}
	var eig mat.Eigen
	if !eig.Factorize(ss.a, mat.EigenNone) {
		return nil
	}
	return eig.Values(nil)
}

// defaultHorizon picks a simulation length of about seven times the
// slowest stable time constant, plus the dead time.
func (tf TransferFunction) defaultHorizon() float64 {
	minRe := math.Inf(1)
	for _, p := range tf.Poles() {
		re := real(p)
		if re < 0 && -re < minRe {
			minRe = -re
		}
	}
	if math.IsInf(minRe, 1) {
		return 100 + tf.Delay
	}
	return 7/minRe + tf.Delay
}

// StepResponse simulates the unit step response. A non-positive duration
// selects a horizon from the slowest pole; a non-positive dt divides the
// horizon into 2000 steps. The dead time is applied as an exact time
// shift of the rational response, not as a Padé approximation.
func (tf TransferFunction) StepResponse(dt, duration float64) (times, y []float64, err error) {
	if tf.Delay < 0 {
		return nil, nil, fmt.Errorf("%w: negative dead time", ErrBadTransferFunction)
	}
	ss, err := tf.realize()
	if err != nil {
		return nil, nil, err
	}
	if duration <= 0 {
		duration = tf.defaultHorizon()
	}
	if dt <= 0 {
		dt = duration / 2000
	}

	steps := int(math.Ceil(duration/dt)) + 1
	shift := int(math.Round(tf.Delay / dt))

	times = make([]float64, steps)
	y = make([]float64, steps)
	base := make([]float64, steps)

	x := mat.NewVecDense(maxInt(ss.n, 1), nil)
	for i := 0; i < steps; i++ {
		base[i] = ss.output(x, 1)
		if ss.n > 0 {
			ss.rk4Step(x, 1, dt)
		}
	}
	for i := 0; i < steps; i++ {
		times[i] = float64(i) * dt
		if i >= shift {
			y[i] = base[i-shift]
		}
	}
	return times, y, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
