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

package motion

import (
	"time"

	"github.com/brickbot/sweeper/hardware/motor"
	"github.com/brickbot/sweeper/logger"
)

// Motors is the part of the motor.Backend interface used by a timed move.
type Motors interface {
	SetSpeed(p motor.Port, speed int)
	ApplyUpdates() error
}

// Clock is the source of time for a timed move.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

// Now returns the current time. The time includes a monotonic clock reading.
func (wallClock) Now() time.Time {
	return time.Now()
}

// Mover executes timed moves.
type Mover struct {
	motors Motors
	clock  Clock
}

// NewMover is the preferred method of initialisation for the Mover type. If
// the clock is nil then the wall clock is used.
func NewMover(motors Motors, clock Clock) *Mover {
	if clock == nil {
		clock = wallClock{}
	}
	return &Mover{
		motors: motors,
		clock:  clock,
	}
}

// Run the step. Returns the number of times the speeds were sent to the
// motors.
func (mv *Mover) Run(step Step) int {
	left, right := Wheels(step.Direction, step.Power)
	deadline := mv.clock.Now().Add(step.Duration())

	var n int
	for {
		mv.motors.SetSpeed(motor.Left, left)
		mv.motors.SetSpeed(motor.Right, right)
		if err := mv.motors.ApplyUpdates(); err != nil {
			logger.Logf(logger.Allow, "motion", "%s: %v", step, err)
		}
		n++

		if !mv.clock.Now().Before(deadline) {
			break // for loop
		}
	}

	return n
}

// RunTimedMove runs the step using the wall clock.
func RunTimedMove(m Motors, step Step) {
	NewMover(m, nil).Run(step)
}
