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

// Package control implements the main loop of the sweeper. The loop reads
// events from the input device, applies them to the teleop state and sends
// the resulting speeds to the motors. The autonomous script is run when the
// operator asks for it.
//
// One iteration of the loop is called a tick. Every tick:
//
//  1. drains all pending events from the input device
//  2. applies each event to the teleop state
//  3. sends the sweeper, left and right speeds to the motors
//
// The exit button stops draining immediately and the loop ends without
// sending any more speeds. The autonomous button runs the script to
// completion before draining continues. Events are not read while the
// script is running.
//
// Everything happens on the calling goroutine. The teleop state is owned by
// the loop and needs no locking.
package control

import (
	"fmt"
	"os"
	"time"

	"github.com/brickbot/sweeper/autonomous"
	"github.com/brickbot/sweeper/hardware/input"
	"github.com/brickbot/sweeper/logger"
	"github.com/brickbot/sweeper/motion"
	"github.com/brickbot/sweeper/teleop"
)

// RunState of the loop. ShuttingDown is terminal.
type RunState int

// List of valid RunState values.
const (
	Running RunState = iota
	ShuttingDown
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting down"
	}
	return fmt.Sprintf("runstate(%d)", int(s))
}

// Mode of the loop. Autonomous is only ever the mode while the script is
// running.
type Mode int

// List of valid Mode values.
const (
	ModeTeleop Mode = iota
	ModeAutonomous
)

func (m Mode) String() string {
	switch m {
	case ModeTeleop:
		return "teleop"
	case ModeAutonomous:
		return "autonomous"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Stats collected by the loop.
type Stats struct {
	// ticks that sent speeds to the motors
	Ticks int

	// ticks where the motors did not accept the speeds
	Degraded int

	AutonomousRuns int
}

func (s Stats) String() string {
	return fmt.Sprintf("ticks=%d degraded=%d autonomous=%d", s.Ticks, s.Degraded, s.AutonomousRuns)
}

// DefaultIdle is the default value of Loop.Idle.
const DefaultIdle = 10 * time.Millisecond

// Loop is the control loop.
type Loop struct {
	dev    input.Device
	motors motion.Motors
	teleop *teleop.Teleop
	mover  autonomous.Mover
	script autonomous.Script

	runState RunState
	mode     Mode
	stats    Stats

	// a signal received on this channel is treated the same as the exit
	// button. the channel is checked once per tick
	Interrupt <-chan os.Signal

	// time to sleep at the end of each tick. zero means no sleep
	Idle time.Duration

	// called at the end of every tick that sends speeds to the motors
	OnTick func(teleop.State)
}

// NewLoop is the preferred method of initialisation for the Loop type.
func NewLoop(dev input.Device, motors motion.Motors, tp *teleop.Teleop, mover autonomous.Mover, script autonomous.Script) *Loop {
	return &Loop{
		dev:    dev,
		motors: motors,
		teleop: tp,
		mover:  mover,
		script: script,
		Idle:   DefaultIdle,
	}
}

// RunState returns the current RunState.
func (l *Loop) RunState() RunState {
	return l.runState
}

// Mode returns the current Mode.
func (l *Loop) Mode() Mode {
	return l.mode
}

// Stats returns the statistics collected so far.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Run the loop until the exit button is pressed or an interrupt signal is
// received. The input device is closed when the loop ends, and any error from
// closing it is returned.
func (l *Loop) Run() error {
	logger.Logf(logger.Allow, "control", "running (%d step script)", len(l.script))

	for l.runState == Running {
		l.tick()
	}

	logger.Logf(logger.Allow, "control", "finished: %s", l.stats)

	if err := l.dev.Close(); err != nil {
		return fmt.Errorf("control: %w", err)
	}
	return nil
}

func (l *Loop) tick() {
	select {
	case sig := <-l.Interrupt:
		logger.Logf(logger.Allow, "control", "%v", sig)
		l.runState = ShuttingDown
		return
	default:
	}

	for l.runState == Running {
		ev, ok := l.dev.Poll()
		if !ok {
			break // for loop
		}

		switch l.teleop.ApplyEvent(ev) {
		case teleop.ActionQuit:
			l.runState = ShuttingDown
		case teleop.ActionAutonomous:
			l.runAutonomous()
		}
	}

	if l.runState == ShuttingDown {
		return
	}

	for _, c := range l.teleop.Commands() {
		l.motors.SetSpeed(c.Port, c.Speed)
	}
	if err := l.motors.ApplyUpdates(); err != nil {
		logger.Log(logger.Allow, "control", err)
		l.stats.Degraded++
	}
	l.stats.Ticks++

	if l.OnTick != nil {
		l.OnTick(l.teleop.State)
	}

	if l.Idle > 0 {
		time.Sleep(l.Idle)
	}
}

func (l *Loop) runAutonomous() {
	l.mode = ModeAutonomous
	logger.Logf(logger.Allow, "control", "autonomous: %v", l.script.Duration())

	autonomous.Run(l.mover, l.script)

	l.mode = ModeTeleop
	l.stats.AutonomousRuns++
	logger.Log(logger.Allow, "control", "teleop")
}
