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

// Package terminal implements the input.Backend interface using the keyboard
// of the controlling terminal. It allows the robot to be driven over an SSH
// session when no joystick is attached.
//
// The terminal is put into cbreak mode so that key presses are delivered
// without waiting for the return key. Keys are translated to the same events
// that a joystick would produce, as defined by the Keymap.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/brickbot/sweeper/hardware/input"
	"github.com/brickbot/sweeper/logger"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Keymap translates a single key to a sequence of events.
type Keymap map[byte][]input.Event

func press(button int) []input.Event {
	return []input.Event{
		input.ButtonEvent{Button: button, Pressed: true},
		input.ButtonEvent{Button: button, Pressed: false},
	}
}

func axis(axis int, value int) []input.Event {
	return []input.Event{input.AxisEvent{Axis: axis, Value: value}}
}

// DefaultKeymap mimics the layout of the joystick used with the sweeper.
//
//	w s x   left wheel forward, stop, backward
//	i k m   right wheel forward, stop, backward
//	space   stop both wheels
//	f       sweeper toggle (button 14)
//	p       autonomous script (button 0)
//	r       any other button (button 1)
//	q       exit (button 3)
func DefaultKeymap() Keymap {
	return Keymap{
		'w': axis(1, input.AxisMin+1),
		's': axis(1, 0),
		'x': axis(1, input.AxisMax),
		'i': axis(3, input.AxisMin+1),
		'k': axis(3, 0),
		'm': axis(3, input.AxisMax),
		' ': append(axis(1, 0), axis(3, 0)...),
		'f': press(14),
		'p': press(0),
		'r': press(1),
		'q': press(3),
	}
}

// Backend implements the input.Backend interface for a terminal.
type Backend struct {
	in     *os.File
	keymap Keymap
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend(in *os.File, keymap Keymap) *Backend {
	return &Backend{in: in, keymap: keymap}
}

// ListDevices implements the input.Backend interface. There is only ever one
// device and only if the input file is a terminal.
func (bk *Backend) ListDevices() ([]input.Descriptor, error) {
	if bk.in == nil {
		return nil, nil
	}

	var attr unix.Termios
	if err := termios.Tcgetattr(bk.in.Fd(), &attr); err != nil {
		logger.Logf(logger.Allow, "terminal", "%s is not a terminal", bk.in.Name())
		return nil, nil
	}

	return []input.Descriptor{{
		Index:   0,
		Name:    fmt.Sprintf("keyboard (%s)", bk.in.Name()),
		Axes:    4,
		Buttons: 16,
	}}, nil
}

// Open implements the input.Backend interface. The terminal is returned to
// its original mode when the device is closed.
func (bk *Backend) Open(index int) (input.Device, error) {
	if index != 0 {
		return nil, fmt.Errorf("terminal: no device %d", index)
	}

	fd := bk.in.Fd()

	var canAttr unix.Termios
	if err := termios.Tcgetattr(fd, &canAttr); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}

	cbreakAttr := canAttr
	termios.Cfmakecbreak(&cbreakAttr)
	if err := termios.Tcsetattr(fd, termios.TCIFLUSH, &cbreakAttr); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}

	dev := NewDevice(bk.in, bk.keymap)
	dev.restore = func() error {
		return termios.Tcsetattr(fd, termios.TCIFLUSH, &canAttr)
	}

	logger.Logf(logger.Allow, "terminal", "keyboard input on %s", bk.in.Name())
	return dev, nil
}

// Device is an input.Device that reads key presses.
type Device struct {
	keymap  Keymap
	keys    chan byte
	pending []input.Event
	restore func() error
}

// NewDevice reads keys from r in the background. Open() is the normal way of
// creating a Device but NewDevice is useful when r is not a terminal.
func NewDevice(r io.Reader, keymap Keymap) *Device {
	dev := &Device{
		keymap: keymap,
		keys:   make(chan byte, 64),
	}

	go func() {
		defer close(dev.keys)
		b := make([]byte, 16)
		for {
			n, err := r.Read(b)
			for _, k := range b[:n] {
				dev.keys <- k
			}
			if err != nil {
				return
			}
		}
	}()

	return dev
}

// Poll implements the input.Device interface.
func (dev *Device) Poll() (input.Event, bool) {
	for len(dev.pending) == 0 {
		select {
		case k, ok := <-dev.keys:
			if !ok {
				return nil, false
			}
			if evs, ok := dev.keymap[k]; ok {
				dev.pending = append(dev.pending, evs...)
			}
		default:
			return nil, false
		}
	}

	ev := dev.pending[0]
	dev.pending = dev.pending[1:]
	return ev, true
}

// Close implements the input.Device interface. The background reader is not
// stopped because a read from a terminal cannot be interrupted. It ends when
// the program ends.
func (dev *Device) Close() error {
	if dev.restore != nil {
		err := dev.restore()
		dev.restore = nil
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
	}
	return nil
}
