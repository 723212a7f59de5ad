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

// Package brickpi implements the motor.Backend interface for the BrickPi
// motor and sensor board. The BrickPi is two microcontrollers sharing a
// serial line. Each microcontroller has its own address and looks after two
// motor ports and two sensor ports:
//
//	address 1: ports A and B
//	address 2: ports C and D
//
// Communication is always initiated by the host and every message receives a
// reply. The BrickPi stops the motors if no values message has been received
// for the duration of the timeout setting, which is why the control loop must
// keep sending values even when nothing has changed.
package brickpi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/brickbot/sweeper/curated"
	"github.com/brickbot/sweeper/hardware/motor"
	"github.com/brickbot/sweeper/logger"
)

// BrickPi port numbers.
const (
	PortA = iota
	PortB
	PortC
	PortD
	numPorts
)

const numBoards = 2

// Sentinal errors.
const (
	NotInitialised = "brickpi: not initialised"
	NoResponse     = "brickpi: no response from address %d"
	BadResponse    = "brickpi: unexpected response from address %d (message type %d, %d bytes)"
	UnmappedPort   = "brickpi: %s is not mapped to a brickpi port"
)

// Config for the BrickPi backend.
type Config struct {
	// address of each board
	Addresses [numBoards]byte

	// which BrickPi port drives each motor port
	Ports map[motor.Port]int

	// motors stop if no values message is received for this long
	Timeout time.Duration

	// how long to wait for a reply before retrying
	ReplyTimeout time.Duration

	// number of retries for a values message
	Retries int
}

// DefaultConfig returns the wiring used by the sweeper: the brush on port A,
// the left wheel on port B and the right wheel on port C.
func DefaultConfig() Config {
	return Config{
		Addresses: [numBoards]byte{1, 2},
		Ports: map[motor.Port]int{
			motor.Sweeper: PortA,
			motor.Left:    PortB,
			motor.Right:   PortC,
		},
		Timeout:      3 * time.Second,
		ReplyTimeout: 250 * time.Millisecond,
		Retries:      2,
	}
}

// Backend implements the motor.Backend interface.
type Backend struct {
	cfg  Config
	open func() (Transport, error)
	t    Transport

	speed       [numPorts]int
	enabled     [numPorts]bool
	sensorTypes [numPorts]byte

	encoder [numPorts]int
	sensor  [numPorts]int

	rx []byte
}

// NewBackend is the preferred method of initialisation for the Backend type.
// The open function is called by Initialise().
func NewBackend(open func() (Transport, error), cfg Config) *Backend {
	return &Backend{
		cfg:  cfg,
		open: open,
		rx:   make([]byte, 0, 64),
	}
}

// Initialise implements the motor.Backend interface. The transport is opened
// and the motor timeout is sent to both boards. If either board fails to
// acknowledge the transport is closed again.
func (b *Backend) Initialise() error {
	t, err := b.open()
	if err != nil {
		return err
	}
	b.t = t

	ms := uint32(b.cfg.Timeout / time.Millisecond)
	for _, addr := range b.cfg.Addresses {
		payload := make([]byte, 5)
		payload[0] = msgTimeoutSettings
		binary.LittleEndian.PutUint32(payload[1:], ms)
		if err := b.exchangeAck(addr, payload); err != nil {
			if cerr := t.Close(); cerr != nil {
				logger.Logf(logger.Allow, "brickpi", "closing transport: %v", cerr)
			}
			b.t = nil
			return err
		}
	}

	logger.Logf(logger.Allow, "brickpi", "initialised (timeout %v)", b.cfg.Timeout)
	return nil
}

func (b *Backend) port(p motor.Port) (int, bool) {
	n, ok := b.cfg.Ports[p]
	if !ok || n < 0 || n >= numPorts {
		return 0, false
	}
	return n, true
}

// EnablePort implements the motor.Backend interface.
func (b *Backend) EnablePort(p motor.Port) error {
	n, ok := b.port(p)
	if !ok {
		return curated.Errorf(UnmappedPort, p)
	}
	b.enabled[n] = true
	return nil
}

// SetupSensors implements the motor.Backend interface.
func (b *Backend) SetupSensors() error {
	if b.t == nil {
		return curated.Errorf(NotInitialised)
	}
	for i, addr := range b.cfg.Addresses {
		payload := []byte{msgSensorType, b.sensorTypes[i*2], b.sensorTypes[i*2+1]}
		if err := b.exchangeAck(addr, payload); err != nil {
			return err
		}
	}
	return nil
}

// SetSpeed implements the motor.Backend interface. Speeds outside the range
// of the hardware are clamped when the values are sent.
func (b *Backend) SetSpeed(p motor.Port, speed int) {
	if n, ok := b.port(p); ok {
		b.speed[n] = speed
	}
}

// ApplyUpdates implements the motor.Backend interface. Every board is sent
// its values even if an earlier board has failed. The first error is
// returned.
func (b *Backend) ApplyUpdates() error {
	if b.t == nil {
		return curated.Errorf(NotInitialised)
	}

	var first error

	for i, addr := range b.cfg.Addresses {
		pk := newPacker(msgValues)

		// no encoder offsets
		pk.add(1, 0)
		pk.add(1, 0)

		for _, n := range []int{i * 2, i*2 + 1} {
			pk.add(10, motorField(b.speed[n], b.enabled[n]))
		}

		var reply []byte
		var err error
		for retry := 0; retry <= b.cfg.Retries; retry++ {
			reply, err = b.exchange(addr, pk.bytes())
			if err == nil && len(reply) > 0 && reply[0] == msgValues {
				break // for loop
			}
			if err == nil {
				err = curated.Errorf(BadResponse, addr, msgType(reply), len(reply))
			}
		}
		if err != nil {
			logger.Logf(logger.Allow, "brickpi", "board %d: %v", addr, err)
			if first == nil {
				first = err
			}
			continue // for loop
		}

		b.decodeValues(i, reply)
	}

	return first
}

func msgType(reply []byte) int {
	if len(reply) == 0 {
		return -1
	}
	return int(reply[0])
}

func (b *Backend) decodeValues(board int, reply []byte) {
	u := newUnpacker(reply)

	var bits [2]int
	bits[0] = int(u.get(5))
	bits[1] = int(u.get(5))
	for j := range bits {
		b.encoder[board*2+j] = encoderValue(u.get(bits[j]))
	}

	for j := range 2 {
		if b.sensorTypes[board*2+j] == sensorRaw {
			b.sensor[board*2+j] = int(u.get(10))
		}
	}
}

// Encoder returns the most recent encoder reading for the motor port.
func (b *Backend) Encoder(p motor.Port) int {
	if n, ok := b.port(p); ok {
		return b.encoder[n]
	}
	return 0
}

// Sensor returns the most recent raw reading for the BrickPi sensor port.
func (b *Backend) Sensor(n int) int {
	if n < 0 || n >= numPorts {
		return 0
	}
	return b.sensor[n]
}

// EmergencyStop tells both boards to stop all motors immediately.
func (b *Backend) EmergencyStop() error {
	if b.t == nil {
		return curated.Errorf(NotInitialised)
	}
	for _, addr := range b.cfg.Addresses {
		if err := b.exchangeAck(addr, []byte{msgEStop}); err != nil {
			return err
		}
	}
	return nil
}

// Close implements the motor.Backend interface. All motors are stopped
// before the transport is closed.
func (b *Backend) Close() error {
	if b.t == nil {
		return nil
	}

	for n := range b.speed {
		b.speed[n] = 0
	}
	err := b.ApplyUpdates()
	if err != nil {
		logger.Logf(logger.Allow, "brickpi", "stopping motors: %v", err)
	}

	t := b.t
	b.t = nil
	if cerr := t.Close(); cerr != nil {
		return fmt.Errorf("brickpi: %w", cerr)
	}

	return err
}

// exchangeAck sends the payload and expects a single byte reply that echoes
// the message type.
func (b *Backend) exchangeAck(addr byte, payload []byte) error {
	reply, err := b.exchange(addr, payload)
	if err != nil {
		return err
	}
	if len(reply) != 1 || reply[0] != payload[0] {
		return curated.Errorf(BadResponse, addr, msgType(reply), len(reply))
	}
	return nil
}

// exchange sends a payload to the address and waits for the reply.
func (b *Backend) exchange(addr byte, payload []byte) ([]byte, error) {
	if _, err := b.t.Write(encodeFrame(addr, payload)); err != nil {
		return nil, fmt.Errorf("brickpi: %w", err)
	}

	b.rx = b.rx[:0]
	buf := make([]byte, 64)
	deadline := time.Now().Add(b.cfg.ReplyTimeout)

	for !frameComplete(b.rx) {
		n, err := b.t.Read(buf)
		b.rx = append(b.rx, buf[:n]...)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("brickpi: %w", err)
		}
		if n == 0 && !time.Now().Before(deadline) {
			return nil, curated.Errorf(NoResponse, addr)
		}
	}

	return decodeFrame(b.rx)
}
