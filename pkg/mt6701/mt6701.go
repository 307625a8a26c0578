// Package mt6701 is a driver for the MT6701 absolute magnetic rotary
// encoder.  It tracks the shaft angle, an unbounded multi-turn position
// and a moving-average RPM estimate from a periodically polled raw
// count, reachable over I2C or SSI.
package mt6701

import (
	"errors"
	"math"
	"time"
)

const (
	// DefaultAddr is the I2C address of the MT6701.
	DefaultAddr = 0b0000110

	// CountsPerRevolution is the full-scale count of the 14-bit encoder.
	CountsPerRevolution = 16384

	DefaultUpdateInterval = 50 * time.Millisecond
	DefaultRPMThreshold   = 1000
	DefaultRPMFilterSize  = 10

	// MaxRPMFilterSize caps the moving-average window; larger requested
	// sizes are clamped, not rejected.
	MaxRPMFilterSize = 64
)

// ErrNoSample is returned by Poll when the encoder produced no valid
// reading within the retry budget.  State is left untouched; the caller
// is expected to poll again on the next tick.
var ErrNoSample = errors.New("MT6701: no valid sample")

// Device reads the current raw shaft position, a count in
// [0, CountsPerRevolution).  Implemented by the I2C and SSI transports
// and by Dummy.
type Device interface {
	ReadCount() (int, error)
}

// Config holds the construction-time settings of an encoder.  Zero
// values take the defaults above.
type Config struct {
	// Resolution is the counts-per-revolution of the attached part.
	Resolution int
	// UpdateInterval is the advisory poll cadence for the loop that
	// drives Poll.  It does not affect the tracking maths.
	UpdateInterval time.Duration
	// RPMThreshold rejects instantaneous rate samples at or above this
	// magnitude as noise.
	RPMThreshold float64
	// RPMFilterSize is the moving-average window, clamped to
	// [1, MaxRPMFilterSize].
	RPMFilterSize int
}

type Interface interface {
	Poll() error
	AngleRadians() float64
	AngleDegrees() float64
	FullTurns() int
	Turns() float64
	Accumulator() int
	RPM() float64
	Count() int
}

// MT6701 tracks one encoder.  Not safe for concurrent use; the caller
// must serialize Poll and the accessors on a single goroutine or lock.
type MT6701 struct {
	dev Device

	resolution     int
	updateInterval time.Duration
	rpmThreshold   float64

	count          int
	accumulator    int
	filter         rpmFilter
	lastUpdateTime time.Time

	now func() time.Time
}

var _ Interface = (*MT6701)(nil)

// New returns an encoder reading from dev.  The returned instance is
// caller-owned; drive it from your own loop at roughly
// cfg.UpdateInterval.
func New(dev Device, cfg Config) *MT6701 {
	if cfg.Resolution <= 0 {
		cfg.Resolution = CountsPerRevolution
	}
	if cfg.UpdateInterval <= 0 {
		cfg.UpdateInterval = DefaultUpdateInterval
	}
	if cfg.RPMThreshold <= 0 {
		cfg.RPMThreshold = DefaultRPMThreshold
	}
	if cfg.RPMFilterSize == 0 {
		cfg.RPMFilterSize = DefaultRPMFilterSize
	}
	return &MT6701{
		dev:            dev,
		resolution:     cfg.Resolution,
		updateInterval: cfg.UpdateInterval,
		rpmThreshold:   cfg.RPMThreshold,
		filter:         newRPMFilter(cfg.RPMFilterSize),
		now:            time.Now,
	}
}

const pollAttempts = 4

// Poll reads a fresh count from the device and folds it into the
// tracked position and RPM estimate.  On persistent read failure it
// returns ErrNoSample and changes nothing.
//
// The wraparound correction assumes the shaft moved less than half a
// revolution since the previous poll; a faster spin (or a long-delayed
// poll) is mis-tracked without detection.
func (m *MT6701) Poll() error {
	newCount, err := m.dev.ReadCount()
	for i := 0; i < pollAttempts-1 && err != nil; i++ {
		newCount, err = m.dev.ReadCount()
	}
	if err != nil {
		return ErrNoSample
	}

	diff := newCount - m.count
	if diff > m.resolution/2 {
		diff -= m.resolution
	} else if diff < -m.resolution/2 {
		diff += m.resolution
	}

	now := m.now()
	elapsed := now.Sub(m.lastUpdateTime)
	if elapsed > 0 {
		rpm := (float64(diff) / float64(m.resolution)) / elapsed.Minutes()
		if math.Abs(rpm) < m.rpmThreshold {
			m.filter.Add(rpm)
		}
	}

	m.accumulator += diff
	m.count = newCount
	m.lastUpdateTime = now
	return nil
}

// AngleRadians returns the shaft angle in [0, 2*Pi).
func (m *MT6701) AngleRadians() float64 {
	return float64(m.count) * (2 * math.Pi / float64(m.resolution))
}

// AngleDegrees returns the shaft angle in [0, 360).
func (m *MT6701) AngleDegrees() float64 {
	return float64(m.count) * (360.0 / float64(m.resolution))
}

// FullTurns returns the whole revolutions accumulated since
// construction, truncated toward zero (-1.5 turns reports -1).
func (m *MT6701) FullTurns() int {
	return m.accumulator / m.resolution
}

// Turns returns the accumulated revolutions since construction.
func (m *MT6701) Turns() float64 {
	return float64(m.accumulator) / float64(m.resolution)
}

// Accumulator returns the multi-turn position in raw counts.
func (m *MT6701) Accumulator() int {
	return m.accumulator
}

// RPM returns the shaft speed averaged over the whole filter window.
// Unwritten slots hold zero, so the estimate climbs from zero until the
// window has filled.
func (m *MT6701) RPM() float64 {
	return m.filter.Mean()
}

// Count returns the most recent raw reading.
func (m *MT6701) Count() int {
	return m.count
}

// UpdateInterval returns the advisory poll cadence from construction.
func (m *MT6701) UpdateInterval() time.Duration {
	return m.updateInterval
}
