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
	"errors"
	"io"
	"testing"

	"github.com/brickbot/sweeper/curated"
	"github.com/brickbot/sweeper/hardware/motor"
	"github.com/brickbot/sweeper/test"
)

// mockTransport replies to each write with the next entry in replies. A nil
// entry means the write gets no reply.
type mockTransport struct {
	writes  [][]byte
	replies [][]byte
	pending []byte
	closed  bool
}

func (m *mockTransport) Write(p []byte) (int, error) {
	m.writes = append(m.writes, append([]byte{}, p...))
	if len(m.replies) > 0 {
		m.pending = append(m.pending, m.replies[0]...)
		m.replies = m.replies[1:]
	}
	return len(p), nil
}

func (m *mockTransport) Read(p []byte) (int, error) {
	if len(m.pending) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.pending)
	m.pending = m.pending[n:]
	return n, nil
}

func (m *mockTransport) Close() error {
	m.closed = true
	return nil
}

func reply(payload ...byte) []byte {
	sum := byte(len(payload))
	for _, b := range payload {
		sum += b
	}
	return append([]byte{sum, byte(len(payload))}, payload...)
}

func newTestBackend(m *mockTransport) *Backend {
	cfg := DefaultConfig()
	cfg.ReplyTimeout = 0
	return NewBackend(func() (Transport, error) { return m, nil }, cfg)
}

func TestReplyHelper(t *testing.T) {
	test.ExpectEquality(t, string(reply(msgValues, 0, 0, 0, 0)), string([]byte{8, 5, 3, 0, 0, 0, 0}))
	test.ExpectEquality(t, string(reply(msgSensorType)), string([]byte{3, 1, 2}))
	test.ExpectEquality(t, string(reply(msgTimeoutSettings)), string([]byte{6, 1, 5}))
}

func TestInitialise(t *testing.T) {
	m := &mockTransport{
		replies: [][]byte{reply(msgTimeoutSettings), reply(msgTimeoutSettings)},
	}
	b := newTestBackend(m)
	test.ExpectSuccess(t, b.Initialise())

	test.ExpectEquality(t, len(m.writes), 2)
	test.ExpectEquality(t, m.writes[0][0], byte(1))
	test.ExpectEquality(t, m.writes[1][0], byte(2))

	// timeout of 3000ms in little endian order
	test.ExpectEquality(t, string(m.writes[0][3:]), string([]byte{msgTimeoutSettings, 0xb8, 0x0b, 0x00, 0x00}))
}

func TestInitialiseOpenError(t *testing.T) {
	b := NewBackend(func() (Transport, error) { return nil, errors.New("no such device") }, DefaultConfig())
	test.ExpectFailure(t, b.Initialise())

	// nothing can be done without a transport
	test.ExpectSuccess(t, curated.Is(b.ApplyUpdates(), NotInitialised))
	test.ExpectSuccess(t, curated.Is(b.SetupSensors(), NotInitialised))
	test.ExpectSuccess(t, curated.Is(b.EmergencyStop(), NotInitialised))
	test.ExpectSuccess(t, b.Close())
}

func TestNoResponse(t *testing.T) {
	m := &mockTransport{}
	b := newTestBackend(m)
	err := b.Initialise()
	test.ExpectSuccess(t, curated.Is(err, NoResponse))

	// the transport is not left open after a failed initialisation
	test.ExpectSuccess(t, m.closed)
	test.ExpectSuccess(t, curated.Is(b.ApplyUpdates(), NotInitialised))
}

func TestBadAck(t *testing.T) {
	m := &mockTransport{
		replies: [][]byte{reply(msgValues)},
	}
	b := newTestBackend(m)
	err := b.Initialise()
	test.ExpectSuccess(t, curated.Is(err, BadResponse))
	test.ExpectSuccess(t, m.closed)
	test.ExpectEquality(t, len(m.writes), 1)
}

func TestInitialiseSecondBoard(t *testing.T) {
	m := &mockTransport{
		replies: [][]byte{reply(msgTimeoutSettings)},
	}
	b := newTestBackend(m)
	test.ExpectSuccess(t, curated.Is(b.Initialise(), NoResponse))
	test.ExpectEquality(t, len(m.writes), 2)
	test.ExpectSuccess(t, m.closed)

	// nothing more is written once the transport has been closed
	test.ExpectSuccess(t, b.Close())
	test.ExpectEquality(t, len(m.writes), 2)
}

func TestSetupSensors(t *testing.T) {
	m := &mockTransport{
		replies: [][]byte{
			reply(msgTimeoutSettings), reply(msgTimeoutSettings),
			reply(msgSensorType), reply(msgSensorType),
		},
	}
	b := newTestBackend(m)
	test.ExpectSuccess(t, b.Initialise())
	test.ExpectSuccess(t, b.SetupSensors())
	test.ExpectEquality(t, len(m.writes), 4)
	test.ExpectEquality(t, string(m.writes[2][3:]), string([]byte{msgSensorType, sensorRaw, sensorRaw}))
}

func TestUnmappedPort(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.Ports, motor.Right)
	b := NewBackend(nil, cfg)
	test.ExpectSuccess(t, b.EnablePort(motor.Left))
	test.ExpectSuccess(t, curated.Is(b.EnablePort(motor.Right), UnmappedPort))
}

func TestApplyUpdates(t *testing.T) {
	// board one reports an encoder value of -10 for port A and a raw sensor
	// value of 512 for port A
	pk := newPacker(msgValues)
	pk.add(5, 5)
	pk.add(5, 0)
	pk.add(5, 21)
	pk.add(10, 512)
	pk.add(10, 0)

	m := &mockTransport{
		replies: [][]byte{
			reply(msgTimeoutSettings), reply(msgTimeoutSettings),
			reply(pk.bytes()...), reply(msgValues, 0, 0, 0, 0),
		},
	}
	b := newTestBackend(m)
	test.ExpectSuccess(t, b.Initialise())
	for _, p := range motor.Ports {
		test.ExpectSuccess(t, b.EnablePort(p))
	}

	b.SetSpeed(motor.Sweeper, 250)
	b.SetSpeed(motor.Left, -300)
	b.SetSpeed(motor.Right, 25)
	test.ExpectSuccess(t, b.ApplyUpdates())
	test.ExpectEquality(t, len(m.writes), 4)

	// board one drives the sweeper and the left wheel
	u := newUnpacker(m.writes[2][3:])
	test.ExpectEquality(t, u.msgType(), byte(msgValues))
	test.ExpectEquality(t, u.get(2), uint32(0))
	test.ExpectEquality(t, u.get(10), motorField(250, true))
	test.ExpectEquality(t, u.get(10), motorField(-255, true))

	// board two drives the right wheel. port D is not enabled
	u = newUnpacker(m.writes[3][3:])
	test.ExpectEquality(t, m.writes[3][0], byte(2))
	test.ExpectEquality(t, u.get(2), uint32(0))
	test.ExpectEquality(t, u.get(10), motorField(25, true))
	test.ExpectEquality(t, u.get(10), motorField(0, false))

	test.ExpectEquality(t, b.Encoder(motor.Sweeper), -10)
	test.ExpectEquality(t, b.Encoder(motor.Left), 0)
	test.ExpectEquality(t, b.Sensor(PortA), 512)
	test.ExpectEquality(t, b.Sensor(PortB), 0)
	test.ExpectEquality(t, b.Sensor(-1), 0)
}

func TestApplyUpdatesRetry(t *testing.T) {
	m := &mockTransport{
		replies: [][]byte{
			reply(msgTimeoutSettings), reply(msgTimeoutSettings),
			nil, reply(msgValues),
			reply(msgSensorType), nil, reply(msgValues),
		},
	}
	b := newTestBackend(m)
	test.ExpectSuccess(t, b.Initialise())
	test.ExpectSuccess(t, b.ApplyUpdates())
	test.ExpectEquality(t, len(m.writes), 7)
}

func TestApplyUpdatesGiveUp(t *testing.T) {
	m := &mockTransport{
		replies: [][]byte{
			reply(msgTimeoutSettings), reply(msgTimeoutSettings),
		},
	}
	b := newTestBackend(m)
	test.ExpectSuccess(t, b.Initialise())
	err := b.ApplyUpdates()
	test.ExpectSuccess(t, curated.Is(err, NoResponse))

	// the first attempt and two retries for each board
	test.ExpectEquality(t, len(m.writes), 8)
	test.ExpectEquality(t, m.writes[4][0], byte(1))
	test.ExpectEquality(t, m.writes[5][0], byte(2))
}

func TestApplyUpdatesFirstBoardFails(t *testing.T) {
	// board one never replies to the values message but board two does
	pk := newPacker(msgValues)
	pk.add(5, 5)
	pk.add(5, 0)
	pk.add(5, 2)

	m := &mockTransport{
		replies: [][]byte{
			reply(msgTimeoutSettings), reply(msgTimeoutSettings),
			nil, nil, nil, reply(pk.bytes()...),
		},
	}
	b := newTestBackend(m)
	test.ExpectSuccess(t, b.Initialise())
	test.ExpectSuccess(t, b.EnablePort(motor.Right))
	b.SetSpeed(motor.Right, 80)

	err := b.ApplyUpdates()
	test.ExpectSuccess(t, curated.Is(err, NoResponse))
	test.ExpectEquality(t, len(m.writes), 6)

	// the right wheel is still sent its speed
	test.ExpectEquality(t, m.writes[5][0], byte(2))
	u := newUnpacker(m.writes[5][3:])
	u.get(2)
	test.ExpectEquality(t, u.get(10), motorField(80, true))

	// and the reply from board two is decoded
	test.ExpectEquality(t, b.Encoder(motor.Right), 1)
}

func TestEmergencyStop(t *testing.T) {
	m := &mockTransport{
		replies: [][]byte{
			reply(msgTimeoutSettings), reply(msgTimeoutSettings),
			reply(msgEStop), reply(msgEStop),
		},
	}
	b := newTestBackend(m)
	test.ExpectSuccess(t, b.Initialise())
	test.ExpectSuccess(t, b.EmergencyStop())
	test.ExpectEquality(t, string(m.writes[3][3:]), string([]byte{msgEStop}))
}

func TestClose(t *testing.T) {
	m := &mockTransport{
		replies: [][]byte{
			reply(msgTimeoutSettings), reply(msgTimeoutSettings),
			reply(msgValues), reply(msgValues),
		},
	}
	b := newTestBackend(m)
	test.ExpectSuccess(t, b.Initialise())
	test.ExpectSuccess(t, b.EnablePort(motor.Left))
	b.SetSpeed(motor.Left, 100)
	test.ExpectSuccess(t, b.Close())
	test.ExpectSuccess(t, m.closed)

	// motors are stopped before closing
	u := newUnpacker(m.writes[2][3:])
	u.get(12)
	test.ExpectEquality(t, u.get(10), motorField(0, true))

	// closing twice is harmless
	test.ExpectSuccess(t, b.Close())
}
