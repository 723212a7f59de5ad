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

// Package inputtest provides an input backend for testing. Events are
// delivered in batches. Each batch is what a single drain of the device by
// the control loop will see.
package inputtest

import (
	"fmt"

	"github.com/brickbot/sweeper/hardware/input"
)

// Device is a scripted input.Device.
type Device struct {
	// batches of events still to be delivered
	Batches [][]input.Event

	// number of times Poll() has returned false
	Drains int

	Closed bool
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice(batches ...[]input.Event) *Device {
	return &Device{Batches: batches}
}

// Poll implements the input.Device interface. The end of each batch is
// signalled by returning false once. When all batches have been delivered
// Poll() always returns false.
func (dev *Device) Poll() (input.Event, bool) {
	if len(dev.Batches) == 0 {
		dev.Drains++
		return nil, false
	}

	if len(dev.Batches[0]) == 0 {
		dev.Batches = dev.Batches[1:]
		dev.Drains++
		return nil, false
	}

	ev := dev.Batches[0][0]
	dev.Batches[0] = dev.Batches[0][1:]
	return ev, true
}

// Close implements the input.Device interface.
func (dev *Device) Close() error {
	dev.Closed = true
	return nil
}

// Backend is an input.Backend with a fixed list of devices.
type Backend struct {
	Devices []*Device
	Names   []string
}

// ListDevices implements the input.Backend interface.
func (bk *Backend) ListDevices() ([]input.Descriptor, error) {
	l := make([]input.Descriptor, 0, len(bk.Devices))
	for i := range bk.Devices {
		name := fmt.Sprintf("test device %d", i)
		if i < len(bk.Names) {
			name = bk.Names[i]
		}
		l = append(l, input.Descriptor{Index: i, Name: name, Axes: 4, Buttons: 16})
	}
	return l, nil
}

// Open implements the input.Backend interface.
func (bk *Backend) Open(index int) (input.Device, error) {
	if index < 0 || index >= len(bk.Devices) {
		return nil, fmt.Errorf("inputtest: no device %d", index)
	}
	return bk.Devices[index], nil
}
