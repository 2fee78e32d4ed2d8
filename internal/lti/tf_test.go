package lti

import (
	"errors"
	"math"
	"testing"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		num  []float64
		den  []float64
		ok   bool
	}{
		{"first order", []float64{1}, []float64{1, 1}, true},
		{"biproper", []float64{2, 1}, []float64{1, 1}, true},
		{"empty numerator", []float64{}, []float64{1, 1}, false},
		{"empty denominator", []float64{1}, []float64{}, false},
		{"zero leading denominator", []float64{1}, []float64{0, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.num, tt.den)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrBadTransferFunction) {
				t.Fatalf("expected ErrBadTransferFunction, got %v", err)
			}
		})
	}
}

func TestNew_CopiesCoefficients(t *testing.T) {
	num := []float64{1}
	den := []float64{2, 1}
	tf, err := New(num, den)
	if err != nil {
		t.Fatal(err)
	}
	den[0] = 99
	if tf.Den[0] != 2 {
		t.Error("New did not copy the denominator")
	}
}

func TestSeries(t *testing.T) {
	a := TransferFunction{Num: []float64{1}, Den: []float64{1, 1}, Delay: 0.5}
	b := TransferFunction{Num: []float64{2}, Den: []float64{3, 1}, Delay: 1.5}

	s := Series(a, b)
	wantDen := []float64{3, 4, 1}
	for i, v := range wantDen {
		if s.Den[i] != v {
			t.Errorf("Den[%d] = %v, want %v", i, s.Den[i], v)
		}
	}
	if s.Num[0] != 2 {
		t.Errorf("Num[0] = %v, want 2", s.Num[0])
	}
	if s.Delay != 2.0 {
		t.Errorf("Delay = %v, want 2.0", s.Delay)
	}
}

func TestFeedback(t *testing.T) {
	// L = 4/(s+1) -> T = 4/(s+5)
	l := TransferFunction{Num: []float64{4}, Den: []float64{1, 1}}
	tt, err := Feedback(l)
	if err != nil {
		t.Fatal(err)
	}
	if tt.Num[0] != 4 || tt.Den[0] != 1 || tt.Den[1] != 5 {
		t.Errorf("Feedback = %v/%v, want 4/(s+5)", tt.Num, tt.Den)
	}
}

func TestFeedback_RejectsDelay(t *testing.T) {
	l := TransferFunction{Num: []float64{1}, Den: []float64{1, 1}, Delay: 1}
	if _, err := Feedback(l); !errors.Is(err, ErrBadTransferFunction) {
		t.Fatalf("expected ErrBadTransferFunction, got %v", err)
	}
}

func TestDCGain(t *testing.T) {
	tf := TransferFunction{Num: []float64{3}, Den: []float64{5, 2}}
	if g := tf.DCGain(); g != 1.5 {
		t.Errorf("DCGain = %v, want 1.5", g)
	}
}

func TestPade_UnityDCGain(t *testing.T) {
	for _, degree := range []int{1, 2, 5} {
		p := Pade(2.0, degree)
		if g := p.DCGain(); math.Abs(g-1) > 1e-12 {
			t.Errorf("degree %d: DCGain = %v, want 1", degree, g)
		}
		if len(p.Num) != degree+1 || len(p.Den) != degree+1 {
			t.Errorf("degree %d: wrong coefficient counts", degree)
		}
	}
}

func TestPade_FirstDegreeCoefficients(t *testing.T) {
	// e^(-s) ~ (1 - s/2)/(1 + s/2)
	p := Pade(1.0, 1)
	if math.Abs(p.Num[0]+0.5) > 1e-12 || math.Abs(p.Num[1]-1) > 1e-12 {
		t.Errorf("Num = %v, want [-0.5 1]", p.Num)
	}
	if math.Abs(p.Den[0]-0.5) > 1e-12 || math.Abs(p.Den[1]-1) > 1e-12 {
		t.Errorf("Den = %v, want [0.5 1]", p.Den)
	}
}

func TestRationalized(t *testing.T) {
	tf := TransferFunction{Num: []float64{1}, Den: []float64{1, 1}, Delay: 2}
	r := tf.Rationalized(3)
	if r.Delay != 0 {
		t.Error("Rationalized left a delay behind")
	}
	if r.Order() != 4 {
		t.Errorf("Order = %d, want 4", r.Order())
	}
	if math.Abs(r.DCGain()-1) > 1e-12 {
		t.Errorf("DCGain = %v, want 1", r.DCGain())
	}

	noDelay := TransferFunction{Num: []float64{1}, Den: []float64{1, 1}}
	if r := noDelay.Rationalized(5); r.Order() != 1 {
		t.Error("Rationalized changed a delay-free system")
	}
}

func TestPolyAdd_DifferentDegrees(t *testing.T) {
	sum := polyAdd([]float64{1, 2, 3}, []float64{1, 1})
	want := []float64{1, 3, 4}
	for i := range want {
		if sum[i] != want[i] {
			t.Fatalf("polyAdd = %v, want %v", sum, want)
		}
	}
}
