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

// Package sdljoystick implements the input.Backend interface with the SDL
// joystick API. Only the joystick subsystem of SDL is initialised so no
// window or display is required.
//
// SDL requires that events are polled from the main thread. The main package
// calls runtime.LockOSThread() for this reason.
package sdljoystick

import (
	"fmt"

	"github.com/brickbot/sweeper/hardware/input"
	"github.com/brickbot/sweeper/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend implements the input.Backend interface.
type Backend struct {
	initialised bool
}

// NewBackend initialises the SDL joystick subsystem.
func NewBackend() (*Backend, error) {
	err := sdl.Init(sdl.INIT_JOYSTICK)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	var v sdl.Version
	sdl.VERSION(&v)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d", v.Major, v.Minor, v.Patch)

	return &Backend{initialised: true}, nil
}

// Destroy shuts down SDL. Devices opened by the backend should be closed
// first.
func (bk *Backend) Destroy() {
	if bk.initialised {
		sdl.Quit()
		bk.initialised = false
	}
}

// ListDevices implements the input.Backend interface. Each joystick is opened
// briefly so that its capabilities can be counted.
func (bk *Backend) ListDevices() ([]input.Descriptor, error) {
	n := sdl.NumJoysticks()
	if n < 0 {
		return nil, sdlError("cannot count joysticks")
	}

	l := make([]input.Descriptor, 0, n)
	for i := 0; i < n; i++ {
		joy := sdl.JoystickOpen(i)
		if joy == nil {
			logger.Log(logger.Allow, "sdl", sdlError(fmt.Sprintf("cannot open joystick %d", i)))
			continue // for loop
		}
		l = append(l, input.Descriptor{
			Index:   i,
			Name:    joy.Name(),
			Axes:    joy.NumAxes(),
			Buttons: joy.NumButtons(),
			Balls:   joy.NumBalls(),
		})
		joy.Close()
	}

	return l, nil
}

// Open implements the input.Backend interface.
func (bk *Backend) Open(index int) (input.Device, error) {
	joy := sdl.JoystickOpen(index)
	if joy == nil {
		return nil, sdlError(fmt.Sprintf("joystick %d", index))
	}
	logger.Logf(logger.Allow, "sdl", "joystick: %s", joy.Name())

	return &device{
		joy: joy,
		id:  joy.InstanceID(),
	}, nil
}

// sdlError decorates the most recent SDL error with a description of what
// failed. SDL does not always set an error message.
func sdlError(failed string) error {
	if err := sdl.GetError(); err != nil {
		return fmt.Errorf("sdl: %s: %w", failed, err)
	}
	return fmt.Errorf("sdl: %s", failed)
}

type device struct {
	joy *sdl.Joystick
	id  sdl.JoystickID
}

// Poll implements the input.Device interface. SDL events that are not for
// this joystick are discarded.
func (dev *device) Poll() (input.Event, bool) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.JoyButtonEvent:
			if ev.Which != dev.id {
				continue // for loop
			}
			return input.ButtonEvent{
				Button:  int(ev.Button),
				Pressed: ev.State == sdl.PRESSED,
			}, true

		case *sdl.JoyAxisEvent:
			if ev.Which != dev.id {
				continue // for loop
			}
			return input.AxisEvent{
				Axis:  int(ev.Axis),
				Value: int(ev.Value),
			}, true
		}
	}
	return nil, false
}

// Close implements the input.Device interface.
func (dev *device) Close() error {
	if dev.joy != nil {
		dev.joy.Close()
		dev.joy = nil
	}
	return nil
}
