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

package autonomous_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brickbot/sweeper/autonomous"
	"github.com/brickbot/sweeper/curated"
	"github.com/brickbot/sweeper/hardware/motor"
	"github.com/brickbot/sweeper/hardware/motor/motortest"
	"github.com/brickbot/sweeper/motion"
	"github.com/brickbot/sweeper/motion/motiontest"
	"github.com/brickbot/sweeper/test"
)

type stepRecorder struct {
	steps []motion.Step
}

func (r *stepRecorder) Run(s motion.Step) int {
	r.steps = append(r.steps, s)
	return 1
}

func TestDefault(t *testing.T) {
	test.ExpectEquality(t, len(autonomous.Default), 6)
	test.ExpectEquality(t, autonomous.Default.Duration(), 16*time.Second)

	r := &stepRecorder{}
	autonomous.Run(r, autonomous.Default)
	test.ExpectEquality(t, len(r.steps), 6)
	for i, s := range r.steps {
		test.ExpectEquality(t, s, autonomous.Default[i])
	}
	test.ExpectEquality(t, r.steps[2].Direction, motion.PivotRight)
	test.ExpectEquality(t, r.steps[3].Direction, motion.PivotLeft)
}

func TestRunWithMotors(t *testing.T) {
	rec := motortest.NewRecorder()
	clk := motiontest.NewSteppingClock(time.Second)
	mv := motion.NewMover(rec, clk)

	scr := autonomous.Script{
		{Direction: motion.Forward, Power: 100, Seconds: 2},
		{Direction: motion.PivotLeft, Power: 50, Seconds: 1},
	}
	autonomous.Run(mv, scr)

	// two frames for the first step and one for the second
	test.ExpectEquality(t, len(rec.Frames), 3)
	test.ExpectEquality(t, rec.Frames[0][motor.Left], -100)
	test.ExpectEquality(t, rec.Frames[1][motor.Right], -100)
	test.ExpectEquality(t, rec.Frames[2][motor.Left], -50)
	test.ExpectEquality(t, rec.Frames[2][motor.Right], 50)
	test.ExpectAtLeast(t, clk.Elapsed(), scr.Duration())
}

func TestEmptyScript(t *testing.T) {
	r := &stepRecorder{}
	autonomous.Run(r, nil)
	test.ExpectEquality(t, len(r.steps), 0)
	test.ExpectEquality(t, autonomous.Script(nil).Duration(), time.Duration(0))
}

const exampleScript = `sweeperscript
1
-- sweep the hallway

FORWARD 1000 2
pivotleft 500 1
   BACKWARD 250 0
`

func TestParse(t *testing.T) {
	scr, err := autonomous.Parse("example", strings.NewReader(exampleScript))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(scr), 3)
	test.ExpectEquality(t, scr[0], motion.Step{Direction: motion.Forward, Power: 1000, Seconds: 2})
	test.ExpectEquality(t, scr[1], motion.Step{Direction: motion.PivotLeft, Power: 500, Seconds: 1})
	test.ExpectEquality(t, scr[2], motion.Step{Direction: motion.Backward, Power: 250, Seconds: 0})
	test.ExpectEquality(t, scr.Duration(), 3*time.Second)
}

func TestParseErrors(t *testing.T) {
	_, err := autonomous.Parse("empty", strings.NewReader(""))
	test.ExpectSuccess(t, curated.Is(err, autonomous.NotAScript))

	_, err = autonomous.Parse("other", strings.NewReader("robotscript\n1\n"))
	test.ExpectSuccess(t, curated.Is(err, autonomous.NotAScript))

	_, err = autonomous.Parse("version", strings.NewReader("sweeperscript\nabc\n"))
	test.ExpectSuccess(t, curated.Is(err, autonomous.ScriptError))

	_, err = autonomous.Parse("fields", strings.NewReader("sweeperscript\n1\nFORWARD 10\n"))
	test.ExpectSuccess(t, curated.Is(err, autonomous.ScriptError))
	test.ExpectEquality(t, err.Error(), "script: fields: 3: expected DIRECTION POWER SECONDS")

	_, err = autonomous.Parse("direction", strings.NewReader("sweeperscript\n1\n\nUP 10 1\n"))
	test.ExpectSuccess(t, curated.Is(err, autonomous.ScriptError))
	test.ExpectEquality(t, err.Error(), "script: direction: 4: motion: unknown direction (UP)")

	_, err = autonomous.Parse("power", strings.NewReader("sweeperscript\n1\nFORWARD -10 1\n"))
	test.ExpectSuccess(t, curated.Is(err, autonomous.ScriptError))

	_, err = autonomous.Parse("seconds", strings.NewReader("sweeperscript\n1\nFORWARD 10 1.5\n"))
	test.ExpectSuccess(t, curated.Is(err, autonomous.ScriptError))
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "default.script")

	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, autonomous.Default.Write(f))
	test.DemandSuccess(t, f.Close())

	scr, err := autonomous.Load(fn)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(scr), len(autonomous.Default))
	for i := range scr {
		test.ExpectEquality(t, scr[i], autonomous.Default[i])
	}

	_, err = autonomous.Load(filepath.Join(t.TempDir(), "missing"))
	test.ExpectFailure(t, err)
}

func TestString(t *testing.T) {
	scr := autonomous.Script{{Direction: motion.Backward, Power: 5, Seconds: 3}}
	test.ExpectEquality(t, scr.String(), "1 steps (3s)\n  1: BACKWARD 5 3")
}
