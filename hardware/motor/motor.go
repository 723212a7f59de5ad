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

// Package motor defines the motor ports of the sweeper and the interface to
// the hardware that drives them.
//
// The Backend interface is implemented by packages that talk to real (or
// pretend) hardware. The control loop only ever sees the Backend interface.
//
// A speed is a signed integer in the range -MaxSpeed to MaxSpeed. A negative
// speed on a drive motor moves the robot forwards because of the way the
// motors are mounted.
package motor

import "fmt"

// Port identifies a physical actuator.
type Port int

// List of valid Port values.
const (
	Left Port = iota
	Right
	Sweeper
)

// Ports lists all ports in the order they are enabled and commanded.
var Ports = []Port{Sweeper, Left, Right}

func (p Port) String() string {
	switch p {
	case Left:
		return "left"
	case Right:
		return "right"
	case Sweeper:
		return "sweeper"
	}
	return fmt.Sprintf("port(%d)", int(p))
}

// MaxSpeed is the largest magnitude of speed the hardware accepts.
const MaxSpeed = 255

// Clamp limits speed to the range -MaxSpeed to MaxSpeed.
func Clamp(speed int) int {
	if speed > MaxSpeed {
		return MaxSpeed
	}
	if speed < -MaxSpeed {
		return -MaxSpeed
	}
	return speed
}

// Command is a target speed for a single port.
type Command struct {
	Port  Port
	Speed int
}

func (c Command) String() string {
	return fmt.Sprintf("%s=%d", c.Port, c.Speed)
}

// Backend is the interface to the motor hardware.
//
// SetSpeed stores the target speed for a port. Nothing is sent to the hardware
// until ApplyUpdates is called. The backend retains the last value set for
// each port.
type Backend interface {
	// Initialise the connection to the hardware.
	Initialise() error

	// EnablePort must be called for each port before it is used.
	EnablePort(p Port) error

	// SetupSensors configures the sensor ports of the hardware.
	SetupSensors() error

	SetSpeed(p Port, speed int)

	// ApplyUpdates sends all pending speeds to the hardware and reads back
	// sensor values.
	ApplyUpdates() error

	// Close stops all motors and releases the hardware.
	Close() error
}
