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

package teleop_test

import (
	"testing"

	"github.com/brickbot/sweeper/hardware/input"
	"github.com/brickbot/sweeper/hardware/motor"
	"github.com/brickbot/sweeper/prefs"
	"github.com/brickbot/sweeper/teleop"
	"github.com/brickbot/sweeper/test"
)

func TestTransform(t *testing.T) {
	m := teleop.DefaultMapping()

	test.ExpectEquality(t, m.Transform(0), 0)
	test.ExpectEquality(t, m.Transform(3275), 0)
	test.ExpectEquality(t, m.Transform(3276), 25)
	test.ExpectEquality(t, m.Transform(-3275), 0)
	test.ExpectEquality(t, m.Transform(-6552), -50)
	test.ExpectEquality(t, m.Transform(input.AxisMax), 250)
	test.ExpectEquality(t, m.Transform(input.AxisMin), -250)

	// transform is monotonic
	prev := m.Transform(input.AxisMin)
	for v := input.AxisMin; v <= input.AxisMax; v += 97 {
		s := m.Transform(v)
		if s < prev {
			t.Fatalf("transform is not monotonic at %d", v)
		}
		prev = s
	}

	// results are clamped to the range of the motors
	m.AxisGain = 100
	test.ExpectEquality(t, m.Transform(input.AxisMax), motor.MaxSpeed)
	test.ExpectEquality(t, m.Transform(input.AxisMin), -motor.MaxSpeed)

	m.AxisDivisor = 0
	test.ExpectEquality(t, m.Transform(1000), 0)
}

func TestAxes(t *testing.T) {
	tp := teleop.NewTeleop(teleop.DefaultMapping())

	test.ExpectEquality(t, tp.ApplyEvent(input.AxisEvent{Axis: 1, Value: 3276}), teleop.ActionNone)
	test.ExpectEquality(t, tp.State.Left, 25)
	test.ExpectEquality(t, tp.State.Right, 0)

	tp.ApplyEvent(input.AxisEvent{Axis: 3, Value: -6552})
	test.ExpectEquality(t, tp.State.Right, -50)

	// other axes are ignored
	tp.ApplyEvent(input.AxisEvent{Axis: 0, Value: 30000})
	tp.ApplyEvent(input.AxisEvent{Axis: 2, Value: 30000})
	test.ExpectEquality(t, tp.State, teleop.State{Left: 25, Right: -50})
}

func TestButtons(t *testing.T) {
	tp := teleop.NewTeleop(teleop.DefaultMapping())
	tp.ApplyEvent(input.AxisEvent{Axis: 1, Value: 10000})
	before := tp.State

	test.ExpectEquality(t, tp.ApplyEvent(input.ButtonEvent{Button: 3, Pressed: true}), teleop.ActionQuit)
	test.ExpectEquality(t, tp.State, before)

	test.ExpectEquality(t, tp.ApplyEvent(input.ButtonEvent{Button: 0, Pressed: true}), teleop.ActionAutonomous)
	test.ExpectEquality(t, tp.State, before)

	// releases do nothing
	test.ExpectEquality(t, tp.ApplyEvent(input.ButtonEvent{Button: 3}), teleop.ActionNone)
	test.ExpectEquality(t, tp.ApplyEvent(input.ButtonEvent{Button: 7}), teleop.ActionNone)
	test.ExpectEquality(t, tp.State, before)

	// any other button sets reverse regardless of the current state
	tp.ApplyEvent(input.ButtonEvent{Button: 7, Pressed: true})
	test.ExpectEquality(t, tp.State.Sweeper, teleop.SweeperReverse)
	tp.ApplyEvent(input.ButtonEvent{Button: 1, Pressed: true})
	test.ExpectEquality(t, tp.State.Sweeper, teleop.SweeperReverse)

	// toggle turns the sweeper off, and only off
	tp.ApplyEvent(input.ButtonEvent{Button: 14, Pressed: true})
	test.ExpectEquality(t, tp.State.Sweeper, teleop.SweeperOff)
	tp.ApplyEvent(input.ButtonEvent{Button: 14, Pressed: true})
	test.ExpectEquality(t, tp.State.Sweeper, teleop.SweeperOff)

	test.ExpectEquality(t, tp.State.Left, before.Left)
}

func TestCorrectedButtons(t *testing.T) {
	m := teleop.DefaultMapping()
	m.ReverseOnOtherButtons = false
	tp := teleop.NewTeleop(m)

	tp.ApplyEvent(input.ButtonEvent{Button: 7, Pressed: true})
	test.ExpectEquality(t, tp.State.Sweeper, teleop.SweeperOff)

	tp.ApplyEvent(input.ButtonEvent{Button: 14, Pressed: true})
	test.ExpectEquality(t, tp.State.Sweeper, teleop.SweeperForward)
	tp.ApplyEvent(input.ButtonEvent{Button: 14, Pressed: false})
	test.ExpectEquality(t, tp.State.Sweeper, teleop.SweeperForward)
	tp.ApplyEvent(input.ButtonEvent{Button: 14, Pressed: true})
	test.ExpectEquality(t, tp.State.Sweeper, teleop.SweeperOff)
}

func TestCommands(t *testing.T) {
	tp := teleop.NewTeleop(teleop.DefaultMapping())

	cmds := tp.Commands()
	test.ExpectEquality(t, cmds[0], motor.Command{Port: motor.Sweeper, Speed: 0})
	test.ExpectEquality(t, cmds[1], motor.Command{Port: motor.Left, Speed: 0})
	test.ExpectEquality(t, cmds[2], motor.Command{Port: motor.Right, Speed: 0})

	tp.ApplyEvent(input.AxisEvent{Axis: 1, Value: 3276})
	tp.ApplyEvent(input.AxisEvent{Axis: 3, Value: -32768})
	tp.ApplyEvent(input.ButtonEvent{Button: 5, Pressed: true})

	cmds = tp.Commands()
	test.ExpectEquality(t, cmds[0], motor.Command{Port: motor.Sweeper, Speed: -250})
	test.ExpectEquality(t, cmds[1], motor.Command{Port: motor.Left, Speed: 25})
	test.ExpectEquality(t, cmds[2], motor.Command{Port: motor.Right, Speed: -250})

	tp.State.Sweeper = teleop.SweeperForward
	test.ExpectEquality(t, tp.SweeperSpeed(), 250)
}

func TestStrings(t *testing.T) {
	s := teleop.State{Left: -25, Right: 50, Sweeper: teleop.SweeperReverse}
	test.ExpectEquality(t, s.String(), "left=-25 right=50 sweeper=reverse")
	test.ExpectEquality(t, teleop.ActionAutonomous.String(), "autonomous")
}

func TestPreferences(t *testing.T) {
	p, err := teleop.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Mapping(), teleop.DefaultMapping())

	prefs.PushCommandLineStack("teleop.button.exit::9; teleop.reverseonotherbuttons::false; teleop.axis.gain::10")
	p, err = teleop.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	m := p.Mapping()
	test.ExpectEquality(t, m.Exit, 9)
	test.ExpectEquality(t, m.AxisGain, 10)
	test.ExpectFailure(t, m.ReverseOnOtherButtons)
	test.ExpectEquality(t, m.LeftAxis, 1)

	// divisor of zero is rejected
	test.ExpectFailure(t, p.AxisDivisor.Set(0))
	test.ExpectEquality(t, p.Mapping().AxisDivisor, 3276)

	prefs.PushCommandLineStack("teleop.axis.divisor::0")
	_, err = teleop.NewPreferences()
	test.ExpectFailure(t, err)
	prefs.PopCommandLineStack()

	test.ExpectSuccess(t, p.Reset())
	test.ExpectEquality(t, p.Mapping(), teleop.DefaultMapping())
}
