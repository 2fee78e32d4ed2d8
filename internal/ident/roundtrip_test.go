package ident

import (
	"testing"

	"github.com/onsi/gomega"
)

// The tangent-based methods carry a larger discretization bias than the
// percentile ones, and Sundaresan-Krishnaswamy trades accuracy on a pure
// first-order plant for robustness on higher-order ones. Tolerances are
// set per method accordingly.
func TestIdentify_RecoversFirstOrderPlant(t *testing.T) {
	const (
		k     = 2.0
		tau   = 5.0
		theta = 2.0
		step  = 1.5
	)
	samples := fopdtSamples(k, tau, theta, step, 0.01, 62)

	tests := []struct {
		method   Method
		tolTau   float64
		tolTheta float64
	}{
		{NewZieglerNichols(), 0.03, 0.01},
		{NewHagglund(), 0.01, 0.01},
		{NewSmith(), 0.01, 0.01},
		{NewSundaresanKrishnaswamy(), 0.06, 0.09},
		{NewNishikawa(), 0.01, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.method.Name(), func(t *testing.T) {
			g := gomega.NewWithT(t)

			m, err := tt.method.Identify(samples, step)
			g.Expect(err).NotTo(gomega.HaveOccurred())
			g.Expect(m.K()).To(gomega.BeNumerically("~", k, 1e-3))
			g.Expect(m.Tau()).To(gomega.BeNumerically("~", tau, tt.tolTau))
			g.Expect(m.Theta()).To(gomega.BeNumerically("~", theta, tt.tolTheta))
		})
	}
}

func TestIdentify_ZeroDeadTime(t *testing.T) {
	g := gomega.NewWithT(t)
	samples := fopdtSamples(1, 3, 0, 1, 0.005, 40)

	for _, name := range Names() {
		m, err := Lookup(name)
		g.Expect(err).NotTo(gomega.HaveOccurred())

		got, err := m.Identify(samples, 1)
		g.Expect(err).NotTo(gomega.HaveOccurred(), name)
		g.Expect(got.K()).To(gomega.BeNumerically("~", 1, 1e-3), name)
		g.Expect(got.Tau()).To(gomega.BeNumerically("~", 3, 0.05), name)
		g.Expect(got.Theta()).To(gomega.BeZero(), name)
	}
}
