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

package brickpi

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Transport is the connection to the BrickPi. The serial port opened by
// Serial() satisfies the interface but any io.ReadWriteCloser will do.
//
// Read() should return after a short timeout if no data is available. Either
// zero bytes or an io.EOF error is acceptable for a timeout.
type Transport interface {
	io.ReadWriteCloser
}

// SerialConfig holds the settings for the serial port.
type SerialConfig struct {
	// device path of the UART (e.g. "/dev/ttyAMA0")
	Device string

	Baud int

	// how long a single Read() waits for data. the underlying driver has a
	// resolution of 100ms
	ReadTimeout time.Duration
}

// DefaultSerialConfig returns the configuration for the UART of a Raspberry
// Pi with a BrickPi attached.
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{
		Device:      "/dev/ttyAMA0",
		Baud:        500000,
		ReadTimeout: 100 * time.Millisecond,
	}
}

// Serial returns a function that opens the serial port described by cfg. The
// returned function is suitable for use with NewBackend().
func Serial(cfg SerialConfig) func() (Transport, error) {
	return func() (Transport, error) {
		port, err := serial.OpenPort(&serial.Config{
			Name:        cfg.Device,
			Baud:        cfg.Baud,
			ReadTimeout: cfg.ReadTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("brickpi: %s: %w", cfg.Device, err)
		}
		return port, nil
	}
}
