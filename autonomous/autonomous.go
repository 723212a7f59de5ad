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

// Package autonomous runs a sequence of timed moves without further input
// from the operator.
//
// The sequence is called a Script. The Default script is built in but others
// can be loaded from a script file. The format of a script file is:
//
//	sweeperscript
//	1
//	-- comment lines start with two dashes
//	FORWARD 1000 2
//	PIVOTRIGHT 1000 4
//
// The first line identifies the file and the second is the version of the
// format. Each remaining line is a direction, a power and a number of seconds.
// Blank lines are ignored.
//
// Running a script blocks until every step has completed. There is no pause
// between steps.
package autonomous

import (
	"fmt"
	"strings"
	"time"

	"github.com/brickbot/sweeper/motion"
)

// Script is an ordered list of steps.
type Script []motion.Step

// Default is the built-in script. It drives forwards and backwards, pivots
// right and then left, and returns to roughly where it started.
var Default = Script{
	{Direction: motion.Forward, Power: 1000, Seconds: 2},
	{Direction: motion.Backward, Power: 1000, Seconds: 2},
	{Direction: motion.PivotRight, Power: 1000, Seconds: 4},
	{Direction: motion.PivotLeft, Power: 1000, Seconds: 4},
	{Direction: motion.Backward, Power: 1000, Seconds: 2},
	{Direction: motion.Forward, Power: 1000, Seconds: 2},
}

// Duration returns the total time it takes to run the script.
func (scr Script) Duration() time.Duration {
	var d time.Duration
	for _, s := range scr {
		d += s.Duration()
	}
	return d
}

func (scr Script) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%d steps (%v)", len(scr), scr.Duration()))
	for i, st := range scr {
		s.WriteString(fmt.Sprintf("\n%3d: %s", i+1, st))
	}
	return s.String()
}

// Mover is implemented by motion.Mover.
type Mover interface {
	Run(step motion.Step) int
}

// Run every step of the script in order.
func Run(mv Mover, scr Script) {
	for _, s := range scr {
		mv.Run(s)
	}
}
