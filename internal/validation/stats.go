package validation

import (
	"math"
	"time"
)

// IOStats accumulates per-operation durations for one phase of a run.
// Consistency of I/O timing is itself a signal: counterfeit drives that
// fake writes often show implausibly uniform or implausibly fast timings.
type IOStats struct {
	durations []time.Duration
}

func (s *IOStats) Add(d time.Duration) {
	s.durations = append(s.durations, d)
}

func (s *IOStats) Count() int {
	return len(s.durations)
}

// Avg returns the mean duration, or 0 with no samples.
func (s *IOStats) Avg() time.Duration {
	if len(s.durations) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range s.durations {
		sum += d
	}
	return sum / time.Duration(len(s.durations))
}

// StdDev returns the population standard deviation in milliseconds.
func (s *IOStats) StdDev() float64 {
	if len(s.durations) == 0 {
		return 0
	}
	avg := millis(s.Avg())
	var acc float64
	for _, d := range s.durations {
		diff := millis(d) - avg
		acc += diff * diff
	}
	return math.Sqrt(acc / float64(len(s.durations)))
}

// CV returns the coefficient of variation (stddev over mean), or 0 when
// the mean is zero.
func (s *IOStats) CV() float64 {
	avg := millis(s.Avg())
	if avg == 0 {
		return 0
	}
	return s.StdDev() / avg
}

func (s *IOStats) Min() time.Duration {
	if len(s.durations) == 0 {
		return 0
	}
	min := s.durations[0]
	for _, d := range s.durations[1:] {
		if d < min {
			min = d
		}
	}
	return min
}

func (s *IOStats) Max() time.Duration {
	if len(s.durations) == 0 {
		return 0
	}
	max := s.durations[0]
	for _, d := range s.durations[1:] {
		if d > max {
			max = d
		}
	}
	return max
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
