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

// Package motiontest provides a clock for testing timed moves without
// waiting for real time to pass.
package motiontest

import (
	"time"
)

// SteppingClock implements the motion.Clock interface. Every call to Now()
// returns a time that is Step later than the previous call.
type SteppingClock struct {
	Step    time.Duration
	start   time.Time
	current time.Time

	// number of calls to Now()
	Calls int
}

// NewSteppingClock is the preferred method of initialisation for the
// SteppingClock type.
func NewSteppingClock(step time.Duration) *SteppingClock {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &SteppingClock{
		Step:    step,
		start:   t,
		current: t,
	}
}

// Now implements the motion.Clock interface.
func (clk *SteppingClock) Now() time.Time {
	t := clk.current
	clk.current = clk.current.Add(clk.Step)
	clk.Calls++
	return t
}

// Elapsed returns the difference between the first and the most recent
// values returned by Now().
func (clk *SteppingClock) Elapsed() time.Duration {
	if clk.Calls == 0 {
		return 0
	}
	return clk.current.Sub(clk.start) - clk.Step
}
