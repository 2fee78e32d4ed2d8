package lti

import "math"

// DefaultSettleBand is the settling-time threshold used when the caller
// passes a non-positive band: the response has settled once it stays
// within 2% of the steady-state value.
const DefaultSettleBand = 0.02

// Info collects the standard step-response characteristics.
type Info struct {
	RiseTime         float64 // 10% to 90% of steady state
	SettlingTime     float64 // entry into the settle band, for good
	SettlingMin      float64 // minimum after the rise
	SettlingMax      float64 // maximum after the rise
	Overshoot        float64 // percent above steady state
	Undershoot       float64 // percent below zero
	Peak             float64 // absolute peak value
	PeakTime         float64
	SteadyStateValue float64
}

// StepInfo computes step-response metrics from a simulated trajectory.
// The last sample is taken as the steady-state value, so the trajectory
// must cover the settling of the system.
func StepInfo(times, y []float64, settleBand float64) Info {
	if len(y) == 0 || len(times) != len(y) {
		return Info{}
	}
	if settleBand <= 0 {
		settleBand = DefaultSettleBand
	}

	ssv := y[len(y)-1]
	info := Info{SteadyStateValue: ssv}

	for i, v := range y {
		if math.Abs(v) > info.Peak {
			info.Peak = math.Abs(v)
			info.PeakTime = times[i]
		}
	}
	if ssv == 0 {
		return info
	}

	// normalized trajectory, sign-independent
	lo, hi, riseEnd := -1.0, -1.0, len(y)
	for i, v := range y {
		z := v / ssv
		if lo < 0 && z >= 0.1 {
			lo = times[i]
		}
		if hi < 0 && z >= 0.9 {
			hi = times[i]
			riseEnd = i
		}
	}
	if lo >= 0 && hi >= 0 {
		info.RiseTime = hi - lo
	}

	settled := times[len(times)-1]
	for i := len(y) - 1; i >= 0; i-- {
		if math.Abs(y[i]/ssv-1) > settleBand {
			break
		}
		settled = times[i]
	}
	info.SettlingTime = settled

	min, max := y[len(y)-1], y[len(y)-1]
	for _, v := range y[minIntIdx(riseEnd, len(y)-1):] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	info.SettlingMin = min
	info.SettlingMax = max

	if over := max/ssv - 1; over > 0 {
		info.Overshoot = 100 * over
	}
	under := math.Inf(1)
	for _, v := range y {
		if v/ssv < under {
			under = v / ssv
		}
	}
	if under < 0 {
		info.Undershoot = -100 * under
	}
	return info
}

func minIntIdx(a, b int) int {
	if a < b {
		return a
	}
	return b
}
