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
	"github.com/brickbot/sweeper/curated"
)

// message types understood by the BrickPi firmware.
const (
	msgChangeAddr      = 1
	msgSensorType      = 2
	msgValues          = 3
	msgEStop           = 4
	msgTimeoutSettings = 5
)

// sensor types. only the raw analogue type is used by the sweeper.
const (
	sensorRaw = 0
)

// Sentinal errors.
const (
	ShortFrame    = "brickpi: short frame (%d bytes)"
	ChecksumError = "brickpi: checksum error (got %#02x, want %#02x)"
)

// encodeFrame wraps the payload in a frame addressed to dest. The frame is:
//
//	dest, checksum, len(payload), payload...
//
// The checksum is the 8bit sum of dest, the length and every payload byte.
func encodeFrame(dest byte, payload []byte) []byte {
	frame := make([]byte, 3+len(payload))
	frame[0] = dest
	frame[2] = byte(len(payload))
	sum := dest + byte(len(payload))
	for i, b := range payload {
		sum += b
		frame[3+i] = b
	}
	frame[1] = sum
	return frame
}

// frameComplete returns true if buf holds at least one complete reply frame.
func frameComplete(buf []byte) bool {
	return len(buf) >= 2 && len(buf) >= int(buf[1])+2
}

// decodeFrame unwraps a reply frame from the BrickPi. Reply frames have no
// address byte:
//
//	checksum, len(payload), payload...
func decodeFrame(buf []byte) ([]byte, error) {
	if !frameComplete(buf) {
		return nil, curated.Errorf(ShortFrame, len(buf))
	}

	n := int(buf[1])
	sum := buf[1]
	for _, b := range buf[2 : n+2] {
		sum += b
	}
	if sum != buf[0] {
		return nil, curated.Errorf(ChecksumError, buf[0], sum)
	}

	return buf[2 : n+2], nil
}

// packer adds bit fields to a payload. The first byte of the payload is the
// message type and fields are packed least significant bit first from the
// second byte.
type packer struct {
	buf    []byte
	offset int
}

func newPacker(msgType byte) *packer {
	return &packer{buf: []byte{msgType}}
}

func (p *packer) add(bits int, value uint32) {
	for i := 0; i < bits; i++ {
		idx := 1 + (p.offset+i)/8
		for idx >= len(p.buf) {
			p.buf = append(p.buf, 0)
		}
		if value&0x01 == 0x01 {
			p.buf[idx] |= 0x01 << ((p.offset + i) % 8)
		}
		value >>= 1
	}
	p.offset += bits
}

// bytes returns the payload. the length is always enough for the number of
// bits that have been added, even if the final bits are all zero.
func (p *packer) bytes() []byte {
	n := (p.offset+7)/8 + 1
	for len(p.buf) < n {
		p.buf = append(p.buf, 0)
	}
	return p.buf[:n]
}

// unpacker is the reverse of packer. Reading beyond the end of the payload
// returns zero bits.
type unpacker struct {
	buf    []byte
	offset int
}

func newUnpacker(payload []byte) *unpacker {
	return &unpacker{buf: payload}
}

func (u *unpacker) msgType() byte {
	if len(u.buf) == 0 {
		return 0
	}
	return u.buf[0]
}

func (u *unpacker) get(bits int) uint32 {
	var v uint32
	for i := bits - 1; i >= 0; i-- {
		idx := 1 + (u.offset+i)/8
		v <<= 1
		if idx < len(u.buf) {
			v |= uint32(u.buf[idx]>>((u.offset+i)%8)) & 0x01
		}
	}
	u.offset += bits
	return v
}

// motorField packs speed, direction and the enable flag into the 10bit
// field used by the values message. Speed is clamped to 255.
func motorField(speed int, enabled bool) uint32 {
	var dir uint32
	if speed < 0 {
		dir = 1
		speed = -speed
	}
	if speed > 255 {
		speed = 255
	}
	var en uint32
	if enabled {
		en = 1
	}
	return ((uint32(speed)&0xff)<<2 | dir<<1 | en) & 0x3ff
}

// encoderValue converts the wire format of an encoder reading to a signed
// value. The lowest bit is the sign.
func encoderValue(v uint32) int {
	if v&0x01 == 0x01 {
		return -int(v >> 1)
	}
	return int(v >> 1)
}
