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

// Package motion implements timed movements of the drive motors. A movement
// is described by a Step and is executed by RunTimedMove() or Mover.Run().
//
// A timed move holds the motor speeds for the duration of the step, sending
// the speeds to the hardware on every iteration of a tight loop. The BrickPi
// stops the motors if it doesn't hear from the host for a while and this
// keeps it happy. The loop re-samples the clock on every iteration and ends
// when the deadline has been reached. The body of the loop always runs at
// least once, even for a zero length step, so a move is never started without
// also being flushed to the hardware.
//
// There is no way of cancelling a move once it has started.
package motion

import (
	"fmt"
	"strings"
	"time"

	"github.com/brickbot/sweeper/curated"
)

// Direction of travel for a Step.
type Direction int

// List of valid Direction values.
const (
	Forward Direction = iota
	Backward
	PivotLeft
	PivotRight
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "FORWARD"
	case Backward:
		return "BACKWARD"
	case PivotLeft:
		return "PIVOTLEFT"
	case PivotRight:
		return "PIVOTRIGHT"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Sentinal errors.
const (
	UnknownDirection = "motion: unknown direction (%s)"
)

// ParseDirection is the reverse of Direction.String(). Case is ignored.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FORWARD":
		return Forward, nil
	case "BACKWARD":
		return Backward, nil
	case "PIVOTLEFT":
		return PivotLeft, nil
	case "PIVOTRIGHT":
		return PivotRight, nil
	}
	return Forward, curated.Errorf(UnknownDirection, s)
}

// Wheels returns the speeds of the left and right drive motors for the
// direction and power. The drive motors are mounted such that a negative
// speed moves the robot forward.
func Wheels(dir Direction, power uint) (left int, right int) {
	p := int(power)
	switch dir {
	case Forward:
		return -p, -p
	case Backward:
		return p, p
	case PivotLeft:
		return -p, p
	case PivotRight:
		return p, -p
	}
	return 0, 0
}

// Step is a single timed movement. Power is not clamped here. The hardware
// backend will limit it to the range of the motors.
type Step struct {
	Direction Direction
	Power     uint
	Seconds   uint
}

// Duration returns the length of the step as a time.Duration.
func (s Step) Duration() time.Duration {
	return time.Duration(s.Seconds) * time.Second
}

func (s Step) String() string {
	return fmt.Sprintf("%s %d %d", s.Direction, s.Power, s.Seconds)
}
