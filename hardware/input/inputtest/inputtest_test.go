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

package inputtest_test

import (
	"testing"

	"github.com/brickbot/sweeper/hardware/input"
	"github.com/brickbot/sweeper/hardware/input/inputtest"
	"github.com/brickbot/sweeper/test"
)

func TestBatches(t *testing.T) {
	dev := inputtest.NewDevice(
		[]input.Event{input.AxisEvent{Axis: 1, Value: 100}, input.ButtonEvent{Button: 2, Pressed: true}},
		nil,
		[]input.Event{input.ButtonEvent{Button: 2}},
	)

	ev, ok := dev.Poll()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality[input.Event](t, ev, input.AxisEvent{Axis: 1, Value: 100})
	ev, ok = dev.Poll()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality[input.Event](t, ev, input.ButtonEvent{Button: 2, Pressed: true})
	_, ok = dev.Poll()
	test.ExpectFailure(t, ok)

	// empty batch
	_, ok = dev.Poll()
	test.ExpectFailure(t, ok)

	ev, ok = dev.Poll()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality[input.Event](t, ev, input.ButtonEvent{Button: 2})
	_, ok = dev.Poll()
	test.ExpectFailure(t, ok)

	// exhausted
	_, ok = dev.Poll()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, dev.Drains, 4)

	test.ExpectSuccess(t, dev.Close())
	test.ExpectSuccess(t, dev.Closed)
}

func TestBackend(t *testing.T) {
	bk := &inputtest.Backend{
		Devices: []*inputtest.Device{inputtest.NewDevice()},
		Names:   []string{"pad"},
	}
	l, err := bk.ListDevices()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(l), 1)
	test.ExpectEquality(t, l[0].String(), "0: pad (axes 4, buttons 16, balls 0)")

	_, err = bk.Open(1)
	test.ExpectFailure(t, err)
	dev, err := bk.Open(0)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, dev != nil)
}
