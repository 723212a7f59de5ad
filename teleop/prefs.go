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

package teleop

import (
	"fmt"

	"github.com/brickbot/sweeper/prefs"
)

// Preferences for the teleop Mapping. Values can be changed from the command
// line with the -prefs flag. For example:
//
//	-prefs "teleop.button.exit::9; teleop.reverseonotherbuttons::false"
type Preferences struct {
	grp *prefs.Group

	LeftAxis              *prefs.Int
	RightAxis             *prefs.Int
	Exit                  *prefs.Int
	Autonomous            *prefs.Int
	SweeperToggle         *prefs.Int
	AxisDivisor           *prefs.Int
	AxisGain              *prefs.Int
	SweeperPower          *prefs.Int
	ReverseOnOtherButtons *prefs.Bool
}

func (p *Preferences) String() string {
	return p.grp.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Defaults are taken from DefaultMapping() and then any
// values on the command line stack are applied.
func NewPreferences() (*Preferences, error) {
	def := DefaultMapping()

	p := &Preferences{
		grp:                   prefs.NewGroup(),
		LeftAxis:              prefs.NewInt(def.LeftAxis),
		RightAxis:             prefs.NewInt(def.RightAxis),
		Exit:                  prefs.NewInt(def.Exit),
		Autonomous:            prefs.NewInt(def.Autonomous),
		SweeperToggle:         prefs.NewInt(def.SweeperToggle),
		AxisDivisor:           prefs.NewInt(def.AxisDivisor),
		AxisGain:              prefs.NewInt(def.AxisGain),
		SweeperPower:          prefs.NewInt(def.SweeperPower),
		ReverseOnOtherButtons: prefs.NewBool(def.ReverseOnOtherButtons),
	}

	p.AxisDivisor.SetHookPre(func(v prefs.Value) error {
		if i, ok := v.(int); ok && i == 0 {
			return fmt.Errorf("teleop: axis divisor cannot be zero")
		}
		return nil
	})

	entries := []struct {
		key string
		val interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{"teleop.axis.left", p.LeftAxis},
		{"teleop.axis.right", p.RightAxis},
		{"teleop.button.exit", p.Exit},
		{"teleop.button.autonomous", p.Autonomous},
		{"teleop.button.sweeper", p.SweeperToggle},
		{"teleop.axis.divisor", p.AxisDivisor},
		{"teleop.axis.gain", p.AxisGain},
		{"teleop.sweeper.power", p.SweeperPower},
		{"teleop.reverseonotherbuttons", p.ReverseOnOtherButtons},
	}

	for _, e := range entries {
		if err := p.grp.Add(e.key, e.val); err != nil {
			return nil, err
		}
	}

	if err := p.grp.ApplyCommandLine(); err != nil {
		return nil, err
	}

	return p, nil
}

// Mapping returns the Mapping described by the current preference values.
func (p *Preferences) Mapping() Mapping {
	return Mapping{
		LeftAxis:              p.LeftAxis.Get().(int),
		RightAxis:             p.RightAxis.Get().(int),
		Exit:                  p.Exit.Get().(int),
		Autonomous:            p.Autonomous.Get().(int),
		SweeperToggle:         p.SweeperToggle.Get().(int),
		AxisDivisor:           p.AxisDivisor.Get().(int),
		AxisGain:              p.AxisGain.Get().(int),
		SweeperPower:          p.SweeperPower.Get().(int),
		ReverseOnOtherButtons: p.ReverseOnOtherButtons.Get().(bool),
	}
}

// Reset all preferences to the default values.
func (p *Preferences) Reset() error {
	return p.grp.Reset()
}
