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

// Package robot prepares the hardware before the control loop starts. Errors
// from this package are fatal: the control loop must never be entered with
// hardware that failed to set up.
package robot

import (
	"github.com/brickbot/sweeper/curated"
	"github.com/brickbot/sweeper/hardware/input"
	"github.com/brickbot/sweeper/hardware/motor"
	"github.com/brickbot/sweeper/logger"
)

// Sentinal errors.
const (
	HardwareSetupError = "hardware setup: %v"
	NoInputDevices     = "no input devices found"
	InputDeviceError   = "input device: %v"
)

// Setup initialises the motor backend, enables the sweeper and drive motor
// ports and sets up the sensors. The initial speeds (all zero) are sent to
// the motors before returning.
func Setup(backend motor.Backend) error {
	if err := backend.Initialise(); err != nil {
		return curated.Errorf(HardwareSetupError, err)
	}

	for _, p := range motor.Ports {
		if err := backend.EnablePort(p); err != nil {
			return curated.Errorf(HardwareSetupError, err)
		}
	}

	if err := backend.SetupSensors(); err != nil {
		return curated.Errorf(HardwareSetupError, err)
	}

	for _, p := range motor.Ports {
		backend.SetSpeed(p, 0)
	}
	if err := backend.ApplyUpdates(); err != nil {
		return curated.Errorf(HardwareSetupError, err)
	}

	logger.Log(logger.Allow, "robot", "motors ready")
	return nil
}

// ListInputs returns the descriptors of all input devices. Each device is
// logged.
func ListInputs(backend input.Backend) ([]input.Descriptor, error) {
	l, err := backend.ListDevices()
	if err != nil {
		return nil, curated.Errorf(InputDeviceError, err)
	}
	for _, d := range l {
		logger.Log(logger.Allow, "robot", d)
	}
	return l, nil
}

// OpenInput opens the input device with the index. Returns a NoInputDevices
// error if the backend has no devices at all.
func OpenInput(backend input.Backend, index int) (input.Device, error) {
	l, err := ListInputs(backend)
	if err != nil {
		return nil, err
	}
	if len(l) == 0 {
		return nil, curated.Errorf(NoInputDevices)
	}

	dev, err := backend.Open(index)
	if err != nil {
		return nil, curated.Errorf(InputDeviceError, err)
	}
	return dev, nil
}
