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

// Package hardware is the base package for the physical parts of the
// sweeper. It contains no code of its own.
//
// The motor sub-package defines the interface to the motor board and the
// input sub-package defines the interface to the operator's input device.
// Concrete implementations live in sub-packages of those:
//
//	motor/brickpi          BrickPi board over a serial line
//	motor/dryrun           no hardware, speed changes are logged
//	input/sdljoystick      SDL joystick
//	input/terminal         keyboard of the controlling terminal
//
// The motortest and inputtest packages provide fakes for testing.
package hardware
