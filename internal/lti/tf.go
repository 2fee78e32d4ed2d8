// Package lti provides a small linear-systems toolbox: SISO transfer
// functions as polynomial coefficient slices, series and unity-feedback
// composition, dead-time handling via Padé approximants, time-domain step
// simulation and step-response metrics.
package lti

import (
	"errors"
	"fmt"
	"math"
)

// DefaultPadeDegree is used whenever a dead time has to be rationalized
// and the caller did not choose a degree.
const DefaultPadeDegree = 5

var ErrBadTransferFunction = errors.New("lti: bad transfer function")

// TransferFunction represents Num(s)/Den(s) * e^(-Delay*s).
// Coefficients are ordered highest degree first. The delay is kept
// symbolic; it only becomes rational through Rationalized.
type TransferFunction struct {
	Num   []float64
	Den   []float64
	Delay float64
}

// New validates and builds a transfer function from coefficient slices.
// The slices are copied so the result cannot alias caller memory.
func New(num, den []float64) (TransferFunction, error) {
	if len(num) == 0 {
		return TransferFunction{}, fmt.Errorf("%w: empty numerator", ErrBadTransferFunction)
	}
	if len(den) == 0 {
		return TransferFunction{}, fmt.Errorf("%w: empty denominator", ErrBadTransferFunction)
	}
	if den[0] == 0 {
		return TransferFunction{}, fmt.Errorf("%w: zero leading denominator coefficient", ErrBadTransferFunction)
	}
	return TransferFunction{Num: cloneSlice(num), Den: cloneSlice(den)}, nil
}

// WithDelay returns a copy carrying the given dead time.
func (tf TransferFunction) WithDelay(delay float64) TransferFunction {
	tf.Delay = delay
	return tf
}

// Order returns the denominator degree.
func (tf TransferFunction) Order() int {
	return len(tf.Den) - 1
}

// Proper reports whether deg(Num) <= deg(Den).
func (tf TransferFunction) Proper() bool {
	return len(tf.Num) <= len(tf.Den)
}

// DCGain evaluates the rational part at s = 0. Returns +-Inf for
// integrating systems (zero constant denominator term).
func (tf TransferFunction) DCGain() float64 {
	n := tf.Num[len(tf.Num)-1]
	d := tf.Den[len(tf.Den)-1]
	return n / d
}

// Series composes a and b in cascade: numerators and denominators are
// convolved, dead times add.
func Series(a, b TransferFunction) TransferFunction {
	return TransferFunction{
		Num:   conv(a.Num, b.Num),
		Den:   conv(a.Den, b.Den),
		Delay: a.Delay + b.Delay,
	}
}

// Feedback closes a unity negative feedback loop around l:
//
//	T(s) = l(s) / (1 + l(s))
//
// l must be rational; a dead time has to be rationalized first because
// the closed loop of a delayed open loop has no finite rational form.
func Feedback(l TransferFunction) (TransferFunction, error) {
	if l.Delay != 0 {
		return TransferFunction{}, fmt.Errorf("%w: feedback around unrationalized dead time", ErrBadTransferFunction)
	}
	den := polyAdd(l.Den, l.Num)
	den = trimLeadingZeros(den)
	if len(den) == 0 || den[0] == 0 {
		return TransferFunction{}, fmt.Errorf("%w: degenerate closed loop", ErrBadTransferFunction)
	}
	return TransferFunction{Num: cloneSlice(l.Num), Den: den}, nil
}

// Pade builds the diagonal Padé approximant of e^(-delay*s) of the given
// degree. Degree 0 or a zero delay yield unity.
func Pade(delay float64, degree int) TransferFunction {
	if degree <= 0 || delay == 0 {
		return TransferFunction{Num: []float64{1}, Den: []float64{1}}
	}
	n := degree
	num := make([]float64, n+1)
	den := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		// c_k = (2n-k)! n! / ((2n)! k! (n-k)!)
		c := factorial(2*n-k) * factorial(n) / (factorial(2*n) * factorial(k) * factorial(n-k))
		// index n-k stores the s^k coefficient (highest degree first)
		num[n-k] = c * math.Pow(-delay, float64(k))
		den[n-k] = c * math.Pow(delay, float64(k))
	}
	return TransferFunction{Num: num, Den: den}
}

// Rationalized folds the dead time into the rational part using a Padé
// approximant of the given degree (DefaultPadeDegree when degree <= 0).
// A transfer function without delay is returned unchanged.
func (tf TransferFunction) Rationalized(degree int) TransferFunction {
	if tf.Delay == 0 {
		return tf
	}
	if degree <= 0 {
		degree = DefaultPadeDegree
	}
	p := Pade(tf.Delay, degree)
	out := Series(TransferFunction{Num: tf.Num, Den: tf.Den}, p)
	out.Delay = 0
	return out
}

func cloneSlice(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}

// conv multiplies two polynomials.
func conv(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// polyAdd adds two highest-first polynomials of possibly different degree.
func polyAdd(a, b []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float64, n)
	for i, av := range a {
		out[n-len(a)+i] += av
	}
	for i, bv := range b {
		out[n-len(b)+i] += bv
	}
	return out
}

func trimLeadingZeros(p []float64) []float64 {
	i := 0
	for i < len(p)-1 && p[i] == 0 {
		i++
	}
	return p[i:]
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
