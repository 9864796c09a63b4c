package pcf8563

import (
	"fmt"
	"time"
)

// movingAverage stores an estimated moving average of the last 4 values.
// The first value pre-fills the average.
type movingAverage struct {
	mean   float64
	filled bool
}

func (m *movingAverage) add(n float64) {
	if !m.filled {
		m.mean = n
		m.filled = true
		return
	}
	m.mean += (n - m.mean) / 4
}

func (m *movingAverage) reset() {
	m.mean = 0
	m.filled = false
}

// Skew smooths the offset between the clock and a reference clock. The clock
// only resolves whole seconds, so single samples jitter by up to a second.
type Skew struct {
	avg movingAverage
	n   int
}

// Add records one offset sample and returns the smoothed offset.
func (s *Skew) Add(offset time.Duration) time.Duration {
	s.avg.add(offset.Seconds())
	s.n++
	return s.Offset()
}

// Offset returns the smoothed offset. A positive offset means the clock is
// ahead of the reference.
func (s *Skew) Offset() time.Duration {
	return time.Duration(s.avg.mean * float64(time.Second))
}

// Samples returns the number of samples recorded since the last Reset.
func (s *Skew) Samples() int { return s.n }

// Reset discards all samples.
func (s *Skew) Reset() {
	s.avg.reset()
	s.n = 0
}

// Offset reads the clock and returns how far it is from ref.
func (d *Device) Offset(ref time.Time) (time.Duration, error) {
	dt, err := d.Now(true)
	if err != nil {
		return 0, fmt.Errorf("pcf8563: could not measure offset: %w", err)
	}
	return dt.UTC().Sub(ref.Truncate(time.Second)), nil
}
