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

// Package input defines the interface to the devices that a human operator
// uses to drive the robot. It is a translation layer between the input
// library (SDL, a terminal, etc.) and the teleop package, so that teleop
// never has to know which library produced an event.
//
// The SDL joystick was the device used during development and so there will
// be a bias towards that system. Axis values are in the range of a signed 16
// bit value and buttons are numbered from zero.
package input

import "fmt"

// Event is implemented by ButtonEvent and AxisEvent.
type Event interface {
	isEvent()
}

// ButtonEvent is sent when a button is pressed or released.
type ButtonEvent struct {
	Button  int
	Pressed bool
}

func (ButtonEvent) isEvent() {}

func (ev ButtonEvent) String() string {
	if ev.Pressed {
		return fmt.Sprintf("button %d pressed", ev.Button)
	}
	return fmt.Sprintf("button %d released", ev.Button)
}

// AxisEvent is sent when an axis changes position.
type AxisEvent struct {
	Axis  int
	Value int
}

func (AxisEvent) isEvent() {}

func (ev AxisEvent) String() string {
	return fmt.Sprintf("axis %d: %d", ev.Axis, ev.Value)
}

// Range of values for AxisEvent.
const (
	AxisMin = -32768
	AxisMax = 32767
)

// Descriptor summarises an input device.
type Descriptor struct {
	Index   int
	Name    string
	Axes    int
	Buttons int
	Balls   int
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%d: %s (axes %d, buttons %d, balls %d)", d.Index, d.Name, d.Axes, d.Buttons, d.Balls)
}

// Backend is implemented by the input libraries.
type Backend interface {
	// ListDevices returns a descriptor for every device that can be opened.
	// An empty list is not an error.
	ListDevices() ([]Descriptor, error)

	// Open the device with the index given in its Descriptor.
	Open(index int) (Device, error)
}

// Device is an open input device.
type Device interface {
	// Poll returns the next pending event. It never blocks and returns false
	// if there is no event waiting.
	Poll() (Event, bool)

	Close() error
}
