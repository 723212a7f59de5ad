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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/brickbot/sweeper/autonomous"
	"github.com/brickbot/sweeper/control"
	"github.com/brickbot/sweeper/curated"
	"github.com/brickbot/sweeper/hardware/input"
	"github.com/brickbot/sweeper/hardware/input/sdljoystick"
	"github.com/brickbot/sweeper/hardware/input/terminal"
	"github.com/brickbot/sweeper/hardware/motor"
	"github.com/brickbot/sweeper/hardware/motor/brickpi"
	"github.com/brickbot/sweeper/hardware/motor/dryrun"
	"github.com/brickbot/sweeper/logger"
	"github.com/brickbot/sweeper/modalflag"
	"github.com/brickbot/sweeper/motion"
	"github.com/brickbot/sweeper/paths"
	"github.com/brickbot/sweeper/prefs"
	"github.com/brickbot/sweeper/robot"
	"github.com/brickbot/sweeper/statsview"
	"github.com/brickbot/sweeper/teleop"
	"github.com/brickbot/sweeper/version"
)

// SDL requires that events are handled on the main thread. the control loop
// runs on the main goroutine so we lock it to the main thread before main()
// is called.
func init() {
	runtime.LockOSThread()
}

// command line errors in a sub-mode are reported with the same exit value as
// errors in the top level mode.
const flagError = "command line: %v"

// inputBackends creates the backend named by the -input flag. the returned
// function releases resources used by the backend.
var inputBackends = map[string]func() (input.Backend, func(), error){
	"SDL": func() (input.Backend, func(), error) {
		bk, err := sdljoystick.NewBackend()
		if err != nil {
			return nil, nil, err
		}
		return bk, bk.Destroy, nil
	},
	"TERM": func() (input.Backend, func(), error) {
		return terminal.NewBackend(os.Stdin, terminal.DefaultKeymap()), func() {}, nil
	},
}

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch returns the value to use with os.Exit().
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "AUTO", "DEVICES", "CHECK")
	md.AdditionalHelp(version.Banner())

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output)

	case "AUTO":
		err = auto(md, output)

	case "DEVICES":
		err = devices(md, output)

	case "CHECK":
		err = check(md, output)
	}

	if err != nil {
		switch {
		case curated.Is(err, flagError):
			fmt.Fprintf(output, "* error: %v\n", err)
			return 10

		// the robot cannot run but it hasn't gone wrong either
		case curated.Is(err, robot.HardwareSetupError), curated.Is(err, robot.NoInputDevices),
			curated.Is(err, robot.InputDeviceError):
			fmt.Fprintf(output, "* %v\n", err)
			return 0
		}

		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return 20
	}

	return 0
}

type motorFlags struct {
	backend *string
	serial  *string
	baud    *int
	timeout *time.Duration
}

func addMotorFlags(md *modalflag.Modes) motorFlags {
	def := brickpi.DefaultSerialConfig()
	return motorFlags{
		backend: md.AddString("motor", "BRICKPI", "motor backend: BRICKPI, DRYRUN"),
		serial:  md.AddString("serial", def.Device, "serial device of the BrickPi"),
		baud:    md.AddInt("baud", def.Baud, "baud rate of the serial device"),
		timeout: md.AddDuration("timeout", brickpi.DefaultConfig().Timeout, "motors stop if the BrickPi hears nothing for this long"),
	}
}

func (f motorFlags) create() (motor.Backend, error) {
	switch strings.ToUpper(*f.backend) {
	case "BRICKPI":
		scfg := brickpi.DefaultSerialConfig()
		scfg.Device = *f.serial
		scfg.Baud = *f.baud

		cfg := brickpi.DefaultConfig()
		cfg.Timeout = *f.timeout

		return brickpi.NewBackend(brickpi.Serial(scfg), cfg), nil

	case "DRYRUN":
		return dryrun.NewBackend(), nil
	}

	return nil, fmt.Errorf("unknown motor backend (%s)", *f.backend)
}

func createInput(name string) (input.Backend, func(), error) {
	create, ok := inputBackends[strings.ToUpper(name)]
	if !ok {
		return nil, nil, fmt.Errorf("unknown input backend (%s)", name)
	}
	bk, release, err := create()
	if err != nil {
		return nil, nil, curated.Errorf(robot.InputDeviceError, err)
	}
	return bk, release, nil
}

// closeMotors stops the motors and closes the backend. errors are logged
// because there is nothing else that can be done with them.
func closeMotors(mtr motor.Backend) {
	if err := mtr.Close(); err != nil {
		logger.Log(logger.Allow, "sweeper", err)
	}
}

func loadScript(filename string) (autonomous.Script, error) {
	if filename == "" {
		return autonomous.Default, nil
	}
	return autonomous.Load(paths.FindScript(filename))
}

func setEcho(log bool, output io.Writer) {
	if log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	mf := addMotorFlags(md)
	inputName := md.AddString("input", "SDL", "input backend: SDL, TERM")
	device := md.AddInt("device", 0, "index of the input device to use")
	script := md.AddString("script", "", "autonomous script file or name of a script in the resource directory")
	prefsFlag := md.AddString("prefs", "", "teleop preferences. eg. \"teleop.button.exit::9\"")
	idle := md.AddDuration("idle", control.DefaultIdle, "pause at the end of every tick")
	log := md.AddBool("log", false, "echo log to stdout")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server on %s", statsview.DefaultAddress))

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(flagError, err)
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	setEcho(*log, output)

	if *stats {
		statsview.Launch(output, "")
	}

	scr, err := loadScript(*script)
	if err != nil {
		return err
	}

	prefs.PushCommandLineStack(*prefsFlag)
	tprefs, err := teleop.NewPreferences()
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "sweeper", "unused prefs: %s", unused)
	}
	if err != nil {
		return err
	}

	mtr, err := mf.create()
	if err != nil {
		return err
	}
	defer closeMotors(mtr)

	if err := robot.Setup(mtr); err != nil {
		return err
	}

	ibk, release, err := createInput(*inputName)
	if err != nil {
		return err
	}
	defer release()

	dev, err := robot.OpenInput(ibk, *device)
	if err != nil {
		return err
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	tp := teleop.NewTeleop(tprefs.Mapping())
	loop := control.NewLoop(dev, mtr, tp, motion.NewMover(mtr, nil), scr)
	loop.Interrupt = intChan
	loop.Idle = *idle

	fmt.Fprintln(output, version.Banner())

	return loop.Run()
}

func auto(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	mf := addMotorFlags(md)
	script := md.AddString("script", "", "autonomous script file or name of a script in the resource directory")
	log := md.AddBool("log", false, "echo log to stdout")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(flagError, err)
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	setEcho(*log, output)

	scr, err := loadScript(*script)
	if err != nil {
		return err
	}

	mtr, err := mf.create()
	if err != nil {
		return err
	}
	if err := robot.Setup(mtr); err != nil {
		closeMotors(mtr)
		return err
	}

	fmt.Fprintf(output, "running script: %s\n", scr)
	autonomous.Run(motion.NewMover(mtr, nil), scr)

	return mtr.Close()
}

func devices(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	inputName := md.AddString("input", "SDL", "input backend: SDL, TERM")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(flagError, err)
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	ibk, release, err := createInput(*inputName)
	if err != nil {
		return err
	}
	defer release()

	l, err := robot.ListInputs(ibk)
	if err != nil {
		return err
	}
	if len(l) == 0 {
		return curated.Errorf(robot.NoInputDevices)
	}

	for _, d := range l {
		fmt.Fprintln(output, d)
	}

	return nil
}

func check(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("with no script file the built-in script is printed in script file format")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(flagError, err)
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return autonomous.Default.Write(output)
	case 1:
		scr, err := loadScript(md.GetArg(0))
		if err != nil {
			return err
		}
		fmt.Fprintln(output, scr)
		return nil
	}

	return fmt.Errorf("too many arguments for %s mode", md)
}
