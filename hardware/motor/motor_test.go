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

package motor_test

import (
	"testing"

	"github.com/brickbot/sweeper/hardware/motor"
	"github.com/brickbot/sweeper/test"
)

func TestClamp(t *testing.T) {
	test.ExpectEquality(t, motor.Clamp(0), 0)
	test.ExpectEquality(t, motor.Clamp(250), 250)
	test.ExpectEquality(t, motor.Clamp(-250), -250)
	test.ExpectEquality(t, motor.Clamp(1000), motor.MaxSpeed)
	test.ExpectEquality(t, motor.Clamp(-1000), -motor.MaxSpeed)
	test.ExpectEquality(t, motor.Clamp(motor.MaxSpeed), motor.MaxSpeed)
}

func TestCommandString(t *testing.T) {
	test.ExpectEquality(t, motor.Command{Port: motor.Sweeper, Speed: -250}.String(), "sweeper=-250")
	test.ExpectEquality(t, motor.Port(7).String(), "port(7)")
}
