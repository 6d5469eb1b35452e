package subsec

import (
	"fmt"
	"time"
)

// Quantum is the precision of recorded capture times.
const Quantum = time.Second

// Sample is a recorded capture time together with its position in the shot
// sequence. Index gaps are allowed; they stand for images whose time could not
// be read.
type Sample struct {
	Index    int
	Recorded time.Time
}

// InconsistentIntervalError reports that no common base time satisfies every
// recorded time for the assumed interval.
type InconsistentIntervalError struct {
	Interval time.Duration
	Lower    time.Time
	Upper    time.Time
}

func (e *InconsistentIntervalError) Error() string {
	return fmt.Sprintf("interval %s not compatible with capture times (window %s > %s)",
		e.Interval, e.Lower.Format(time.RFC3339Nano), e.Upper.Format(time.RFC3339Nano))
}

// Estimate refines second-precision capture times of images shot every
// interval. The i-th output belongs to the i-th input. An interval <= 0
// returns the recorded times unchanged.
func Estimate(recorded []time.Time, interval time.Duration) ([]time.Time, error) {
	samples := make([]Sample, len(recorded))
	for i, m := range recorded {
		samples[i] = Sample{Index: i, Recorded: m}
	}
	return EstimateSamples(samples, interval)
}

// EstimateSamples is Estimate for sequences with missing members. Each sample
// is placed at base + Index*interval.
func EstimateSamples(samples []Sample, interval time.Duration) ([]time.Time, error) {
	out := make([]time.Time, len(samples))
	if interval <= 0 || len(samples) == 0 {
		for i, s := range samples {
			out[i] = s.Recorded
		}
		return out, nil
	}

	lower, upper, err := Window(samples, interval)
	if err != nil {
		return nil, err
	}

	base := lower.Add(upper.Sub(lower) / 2)
	for i, s := range samples {
		out[i] = base.Add(time.Duration(s.Index) * interval)
	}
	return out, nil
}

// Window returns the intersection [lower, upper] of the feasible base times.
func Window(samples []Sample, interval time.Duration) (lower, upper time.Time, err error) {
	for i, s := range samples {
		m0 := s.Recorded.Add(-time.Duration(s.Index) * interval)
		if i == 0 {
			lower, upper = m0, m0.Add(Quantum)
			continue
		}
		if m0.After(lower) {
			lower = m0
		}
		if hi := m0.Add(Quantum); hi.Before(upper) {
			upper = hi
		}
	}
	if lower.After(upper) {
		return lower, upper, &InconsistentIntervalError{Interval: interval, Lower: lower, Upper: upper}
	}
	return lower, upper, nil
}
