package model

import apperrors "github.com/Dicklesworthstone/utilmon/internal/errors"

// MaxSamples bounds the buffer a single series may reserve.
const MaxSamples = 1 << 24

// Series accumulates one metric value per iteration. Its capacity is
// reserved once, so appending up to that many values never reallocates.
type Series struct {
	values []float64
}

// NewSeries reserves room for n samples of the named metric.
func NewSeries(metric string, n int) (*Series, error) {
	if n < 0 || n > MaxSamples {
		return nil, apperrors.AllocationError{Metric: metric, Requested: n}
	}
	return &Series{values: make([]float64, 0, n)}, nil
}

// Append adds v as the next sample.
func (s *Series) Append(v float64) { s.values = append(s.values, v) }

// Len returns the number of samples collected so far.
func (s *Series) Len() int { return len(s.values) }

// Cap returns the reserved capacity.
func (s *Series) Cap() int { return cap(s.values) }

// Values returns the collected samples. The slice aliases the series and
// must not be modified.
func (s *Series) Values() []float64 { return s.values }

// Last returns the most recent sample, or 0 if empty.
func (s *Series) Last() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

// Average returns the sum of all samples divided by divisor. The run loop
// passes the configured sample count rather than Len, so a run that stops
// early reports a proportionally lower average.
func (s *Series) Average(divisor int) float64 {
	if divisor <= 0 {
		return 0
	}
	var sum float64
	for _, v := range s.values {
		sum += v
	}
	return sum / float64(divisor)
}
