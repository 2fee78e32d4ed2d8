package report

import (
	"strings"
	"testing"

	"github.com/luizn22/auto-control-tools/internal/lti"
	"github.com/luizn22/auto-control-tools/internal/pid"
	"github.com/luizn22/auto-control-tools/internal/plant"
)

func TestStepChart(t *testing.T) {
	y := []float64{0, 0.3, 0.6, 0.8, 0.9, 1.0, 1.0}
	chart := StepChart(y, "step response")
	if chart == "" {
		t.Fatal("empty chart")
	}
	if !strings.Contains(chart, "step response") {
		t.Error("caption missing from chart")
	}
}

func TestModelSummary(t *testing.T) {
	m, err := plant.NewFirstOrder(1.95, 8.33, 1.48)
	if err != nil {
		t.Fatal(err)
	}
	out := ModelSummary(m, lti.Info{RiseTime: 18.3})
	for _, want := range []string{"1.9500", "8.3300", "1.4800", "18.3000"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestGainsSummary(t *testing.T) {
	m, err := plant.NewFirstOrder(1, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	c, err := pid.New(m, 3.98, 3.39, 0.52)
	if err != nil {
		t.Fatal(err)
	}
	out := GainsSummary(c, lti.Info{})
	for _, want := range []string{"3.9800", "3.3900", "0.5200"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}
