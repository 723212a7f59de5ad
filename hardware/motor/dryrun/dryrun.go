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

// Package dryrun implements a motor.Backend with no hardware. Changes of
// speed are written to the log.
package dryrun

import (
	"github.com/brickbot/sweeper/hardware/motor"
	"github.com/brickbot/sweeper/logger"
)

// Backend implements the motor.Backend interface.
type Backend struct {
	enabled map[motor.Port]bool
	pending map[motor.Port]int
	applied map[motor.Port]int
	updates int
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend() *Backend {
	return &Backend{
		enabled: make(map[motor.Port]bool),
		pending: make(map[motor.Port]int),
		applied: make(map[motor.Port]int),
	}
}

// Initialise implements the motor.Backend interface.
func (b *Backend) Initialise() error {
	logger.Log(logger.Allow, "dryrun", "initialised without hardware")
	return nil
}

// EnablePort implements the motor.Backend interface.
func (b *Backend) EnablePort(p motor.Port) error {
	b.enabled[p] = true
	return nil
}

// SetupSensors implements the motor.Backend interface.
func (b *Backend) SetupSensors() error {
	return nil
}

// SetSpeed implements the motor.Backend interface.
func (b *Backend) SetSpeed(p motor.Port, speed int) {
	b.pending[p] = motor.Clamp(speed)
}

// ApplyUpdates implements the motor.Backend interface. Only ports whose speed
// has changed since the previous call are logged.
func (b *Backend) ApplyUpdates() error {
	b.updates++
	for _, p := range motor.Ports {
		s, ok := b.pending[p]
		if !ok {
			continue
		}
		if !b.enabled[p] {
			logger.Logf(logger.Allow, "dryrun", "%s: speed set on disabled port", p)
			continue
		}
		if b.applied[p] != s {
			logger.Logf(logger.Allow, "dryrun", "%s: %d", p, s)
		}
		b.applied[p] = s
	}
	return nil
}

// Speed returns the speed most recently applied to the port.
func (b *Backend) Speed(p motor.Port) int {
	return b.applied[p]
}

// Updates returns the number of calls to ApplyUpdates().
func (b *Backend) Updates() int {
	return b.updates
}

// Close implements the motor.Backend interface.
func (b *Backend) Close() error {
	for _, p := range motor.Ports {
		b.pending[p] = 0
	}
	err := b.ApplyUpdates()
	logger.Log(logger.Allow, "dryrun", "closed")
	return err
}
