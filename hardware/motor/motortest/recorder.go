// This file is part of Sweeper.
//
// Sweeper is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sweeper is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sweeper.  If not, see <https://www.gnu.org/licenses/>.

// Package motortest provides a motor.Backend that records everything sent to
// it. For use in tests.
package motortest

import (
	"errors"

	"github.com/brickbot/sweeper/hardware/motor"
)

// Frame is a snapshot of the speeds of every port at the moment
// ApplyUpdates() was called.
type Frame map[motor.Port]int

// ErrApply is returned by ApplyUpdates() when FailApply is set.
var ErrApply = errors.New("motortest: apply updates failed")

// Recorder implements the motor.Backend interface.
type Recorder struct {
	speeds  map[motor.Port]int
	enabled map[motor.Port]bool

	// one frame for every call to ApplyUpdates()
	Frames []Frame

	// number of calls to SetSpeed()
	SetSpeeds int

	// failure injection
	FailInitialise error
	FailEnable     error
	FailSensors    error
	FailApply      bool

	// OnApply is called at the end of every ApplyUpdates()
	OnApply func(Frame)

	Initialised bool
	Closed      bool
}

// NewRecorder is the preferred method of initialisation for the Recorder type.
func NewRecorder() *Recorder {
	return &Recorder{
		speeds:  make(map[motor.Port]int),
		enabled: make(map[motor.Port]bool),
	}
}

// Initialise implements the motor.Backend interface.
func (r *Recorder) Initialise() error {
	if r.FailInitialise != nil {
		return r.FailInitialise
	}
	r.Initialised = true
	return nil
}

// EnablePort implements the motor.Backend interface.
func (r *Recorder) EnablePort(p motor.Port) error {
	if r.FailEnable != nil {
		return r.FailEnable
	}
	r.enabled[p] = true
	return nil
}

// Enabled returns true if EnablePort() has been called for the port.
func (r *Recorder) Enabled(p motor.Port) bool {
	return r.enabled[p]
}

// SetupSensors implements the motor.Backend interface.
func (r *Recorder) SetupSensors() error {
	return r.FailSensors
}

// SetSpeed implements the motor.Backend interface.
func (r *Recorder) SetSpeed(p motor.Port, speed int) {
	r.SetSpeeds++
	r.speeds[p] = speed
}

// ApplyUpdates implements the motor.Backend interface. A frame is recorded
// even when FailApply is set.
func (r *Recorder) ApplyUpdates() error {
	f := make(Frame, len(r.speeds))
	for p, s := range r.speeds {
		f[p] = s
	}
	r.Frames = append(r.Frames, f)
	if r.OnApply != nil {
		r.OnApply(f)
	}
	if r.FailApply {
		return ErrApply
	}
	return nil
}

// Close implements the motor.Backend interface.
func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// Last returns the most recent frame. Returns nil if there are no frames.
func (r *Recorder) Last() Frame {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}
