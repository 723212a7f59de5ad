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

// Package teleop translates events from the operator's input device into
// speeds for the motors. It holds the state of teleoperation (the speed of
// each drive motor and the state of the sweeper) and nothing else.
//
// Axis values are scaled by dividing by the AxisDivisor and multiplying by
// the AxisGain. The division is an integer division and so the speed changes
// in coarse steps:
//
//	raw axis    speed
//	    3275        0
//	    3276       25
//	   -6552      -50
//	  -32768     -250
//
// Buttons are checked in a fixed order: exit, autonomous, sweeper toggle and
// then any other button. Only presses are acted upon, never releases.
package teleop

import (
	"fmt"

	"github.com/brickbot/sweeper/hardware/input"
	"github.com/brickbot/sweeper/hardware/motor"
)

// SweeperState is the running state of the sweeper brush.
type SweeperState int

// List of valid SweeperState values.
const (
	SweeperOff SweeperState = iota
	SweeperForward
	SweeperReverse
)

func (s SweeperState) String() string {
	switch s {
	case SweeperOff:
		return "off"
	case SweeperForward:
		return "forward"
	case SweeperReverse:
		return "reverse"
	}
	return fmt.Sprintf("sweeper(%d)", int(s))
}

// Action is a request for the control loop that results from an event.
type Action int

// List of valid Action values.
const (
	ActionNone Action = iota
	ActionQuit
	ActionAutonomous
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionQuit:
		return "quit"
	case ActionAutonomous:
		return "autonomous"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// State of teleoperation. Left and Right are always in the range of
// -motor.MaxSpeed to motor.MaxSpeed.
type State struct {
	Left    int
	Right   int
	Sweeper SweeperState
}

func (s State) String() string {
	return fmt.Sprintf("left=%d right=%d sweeper=%s", s.Left, s.Right, s.Sweeper)
}

// Mapping of the input device to teleop functions.
type Mapping struct {
	LeftAxis  int
	RightAxis int

	Exit          int
	Autonomous    int
	SweeperToggle int

	AxisDivisor int
	AxisGain    int

	// speed of the sweeper motor when it is running
	SweeperPower int

	// when true, any button that has no other function sets the sweeper to
	// reverse and the toggle button only ever turns the sweeper off. when
	// false, the toggle button switches between off and forward and other
	// buttons do nothing.
	ReverseOnOtherButtons bool
}

// DefaultMapping returns the mapping for the joystick used by the sweeper.
func DefaultMapping() Mapping {
	return Mapping{
		LeftAxis:              1,
		RightAxis:             3,
		Exit:                  3,
		Autonomous:            0,
		SweeperToggle:         14,
		AxisDivisor:           3276,
		AxisGain:              25,
		SweeperPower:          250,
		ReverseOnOtherButtons: true,
	}
}

// Transform a raw axis value into a motor speed. Returns zero if AxisDivisor
// is zero.
func (m Mapping) Transform(raw int) int {
	if m.AxisDivisor == 0 {
		return 0
	}
	return motor.Clamp((raw / m.AxisDivisor) * m.AxisGain)
}

// Teleop applies input events to the teleop State.
type Teleop struct {
	Mapping Mapping
	State   State
}

// NewTeleop is the preferred method of initialisation for the Teleop type.
// The initial state has the motors stopped and the sweeper off.
func NewTeleop(m Mapping) *Teleop {
	return &Teleop{Mapping: m}
}

// ApplyEvent updates the State according to the event. Events for the exit
// and autonomous buttons do not change the State. They are returned as an
// Action for the control loop to deal with.
func (tp *Teleop) ApplyEvent(ev input.Event) Action {
	switch ev := ev.(type) {
	case input.AxisEvent:
		switch ev.Axis {
		case tp.Mapping.LeftAxis:
			tp.State.Left = tp.Mapping.Transform(ev.Value)
		case tp.Mapping.RightAxis:
			tp.State.Right = tp.Mapping.Transform(ev.Value)
		}

	case input.ButtonEvent:
		if !ev.Pressed {
			return ActionNone
		}

		switch ev.Button {
		case tp.Mapping.Exit:
			return ActionQuit
		case tp.Mapping.Autonomous:
			return ActionAutonomous
		case tp.Mapping.SweeperToggle:
			if tp.Mapping.ReverseOnOtherButtons || tp.State.Sweeper != SweeperOff {
				tp.State.Sweeper = SweeperOff
			} else {
				tp.State.Sweeper = SweeperForward
			}
		default:
			if tp.Mapping.ReverseOnOtherButtons {
				tp.State.Sweeper = SweeperReverse
			}
		}
	}

	return ActionNone
}

// SweeperSpeed returns the speed of the sweeper motor for the current State.
func (tp *Teleop) SweeperSpeed() int {
	switch tp.State.Sweeper {
	case SweeperForward:
		return tp.Mapping.SweeperPower
	case SweeperReverse:
		return -tp.Mapping.SweeperPower
	}
	return 0
}

// Commands returns the motor commands for the current State. The commands are
// in the order they should be issued: sweeper, left, right.
func (tp *Teleop) Commands() [3]motor.Command {
	return [3]motor.Command{
		{Port: motor.Sweeper, Speed: tp.SweeperSpeed()},
		{Port: motor.Left, Speed: tp.State.Left},
		{Port: motor.Right, Speed: tp.State.Right},
	}
}
