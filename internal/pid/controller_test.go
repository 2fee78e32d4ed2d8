package pid

import (
	"errors"
	"math"
	"testing"

	"github.com/luizn22/auto-control-tools/internal/plant"
)

func testPlant(t *testing.T, k, tau, theta float64) *plant.FirstOrder {
	t.Helper()
	p, err := plant.NewFirstOrder(k, tau, theta)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNew_RejectsAllZeroGains(t *testing.T) {
	p := testPlant(t, 1, 1, 0)
	if _, err := New(p, 0, 0, 0); !errors.Is(err, ErrInvalidGains) {
		t.Fatalf("got %v, want ErrInvalidGains", err)
	}
}

func TestPID_Structures(t *testing.T) {
	p := testPlant(t, 1, 1, 0)
	tests := []struct {
		name       string
		kp, ki, kd float64
		num, den   []float64
	}{
		{"P", 2, 0, 0, []float64{2}, []float64{1}},
		{"PD", 2, 0, 0.5, []float64{0.5, 2}, []float64{1}},
		{"PI", 2, 3, 0, []float64{2, 3}, []float64{1, 0}},
		{"PID", 2, 3, 0.5, []float64{0.5, 2, 3}, []float64{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(p, tt.kp, tt.ki, tt.kd)
			if err != nil {
				t.Fatal(err)
			}
			tf := c.PID()
			if len(tf.Num) != len(tt.num) || len(tf.Den) != len(tt.den) {
				t.Fatalf("C(s) = %v/%v, want %v/%v", tf.Num, tf.Den, tt.num, tt.den)
			}
			for i := range tt.num {
				if tf.Num[i] != tt.num[i] {
					t.Fatalf("Num = %v, want %v", tf.Num, tt.num)
				}
			}
			for i := range tt.den {
				if tf.Den[i] != tt.den[i] {
					t.Fatalf("Den = %v, want %v", tf.Den, tt.den)
				}
			}
		})
	}
}

func TestOpenLoop_CarriesDeadTimeExactly(t *testing.T) {
	p := testPlant(t, 2, 5, 1.5)
	c, err := New(p, 1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	l := c.OpenLoop()
	if l.Delay != 1.5 {
		t.Errorf("open-loop Delay = %v, want 1.5", l.Delay)
	}
	if g := l.DCGain(); math.Abs(g-2) > 1e-12 {
		t.Errorf("open-loop DCGain = %v, want 2", g)
	}
}

func TestClosedLoop_ProportionalOnly(t *testing.T) {
	// P(s) = 4/(s+1), Kp = 1 -> T(s) = 4/(s+5)
	p := testPlant(t, 4, 1, 0)
	c, err := New(p, 1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	cl, err := c.ClosedLoop()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cl.DCGain()-0.8) > 1e-12 {
		t.Errorf("DCGain = %v, want 0.8", cl.DCGain())
	}
	if cl.Order() != 1 {
		t.Errorf("Order = %d, want 1", cl.Order())
	}
}

func TestClosedLoop_IntegralActionTracksSetpoint(t *testing.T) {
	p := testPlant(t, 2, 3, 0)
	c, err := New(p, 1, 0.5, 0)
	if err != nil {
		t.Fatal(err)
	}
	cl, err := c.ClosedLoop()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cl.DCGain()-1) > 1e-12 {
		t.Errorf("DCGain = %v, want 1 with integral action", cl.DCGain())
	}
}

func TestClosedLoop_RationalizesDeadTime(t *testing.T) {
	p := testPlant(t, 1.95, 8.33, 1.48)
	c, err := New(p, 3.98, 3.39, 0.52, WithPadeDegree(3))
	if err != nil {
		t.Fatal(err)
	}
	cl, err := c.ClosedLoop()
	if err != nil {
		t.Fatal(err)
	}
	if cl.Delay != 0 {
		t.Error("closed loop kept an irrational delay")
	}
	// plant order 1 + the compensator's integrator + Pade degree 3
	if cl.Order() != 5 {
		t.Errorf("Order = %d, want 5", cl.Order())
	}
	if math.Abs(cl.DCGain()-1) > 1e-12 {
		t.Errorf("DCGain = %v, want 1", cl.DCGain())
	}
}

func TestStepInfo(t *testing.T) {
	p := testPlant(t, 2, 3, 0)
	c, err := New(p, 1, 0.5, 0)
	if err != nil {
		t.Fatal(err)
	}
	info, err := c.StepInfo(0.02)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(info.SteadyStateValue-1) > 0.02 {
		t.Errorf("SteadyStateValue = %v, want ~1", info.SteadyStateValue)
	}
	if info.RiseTime <= 0 {
		t.Error("expected a positive rise time")
	}
}
