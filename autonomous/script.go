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

package autonomous

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/brickbot/sweeper/curated"
	"github.com/brickbot/sweeper/motion"
)

// Sentinal errors.
const (
	NotAScript  = "script: %s: not a script file"
	ScriptError = "script: %s: %d: %v"
)

const (
	headerLineID = iota
	headerLineVersion
	headerNumLines
)

const headerID = "sweeperscript"

const commentPrefix = "--"

// Load a script from a file.
func Load(filename string) (Script, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer f.Close()

	return Parse(filename, f)
}

// Parse a script from r. The name is used in error messages.
func Parse(name string, r io.Reader) (Script, error) {
	buffer, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	// convert file contents to an array of lines
	lines := strings.Split(strings.ReplaceAll(string(buffer), "\r\n", "\n"), "\n")
	if len(lines) < headerNumLines {
		return nil, curated.Errorf(NotAScript, name)
	}
	if strings.TrimSpace(lines[headerLineID]) != headerID {
		return nil, curated.Errorf(NotAScript, name)
	}

	// only one version of the format exists
	if _, err := strconv.Atoi(strings.TrimSpace(lines[headerLineVersion])); err != nil {
		return nil, curated.Errorf(ScriptError, name, headerLineVersion+1, "bad version string")
	}

	var scr Script

	for i, l := range lines[headerNumLines:] {
		ln := i + headerNumLines + 1

		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, commentPrefix) {
			continue // for loop
		}

		toks := strings.Fields(l)
		if len(toks) != 3 {
			return nil, curated.Errorf(ScriptError, name, ln, "expected DIRECTION POWER SECONDS")
		}

		dir, err := motion.ParseDirection(toks[0])
		if err != nil {
			return nil, curated.Errorf(ScriptError, name, ln, err)
		}

		power, err := strconv.ParseUint(toks[1], 10, 16)
		if err != nil {
			return nil, curated.Errorf(ScriptError, name, ln, fmt.Sprintf("bad power (%s)", toks[1]))
		}

		secs, err := strconv.ParseUint(toks[2], 10, 16)
		if err != nil {
			return nil, curated.Errorf(ScriptError, name, ln, fmt.Sprintf("bad duration (%s)", toks[2]))
		}

		scr = append(scr, motion.Step{
			Direction: dir,
			Power:     uint(power),
			Seconds:   uint(secs),
		})
	}

	return scr, nil
}

// Write the script to w in the format understood by Parse().
func (scr Script) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n1\n", headerID); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	for _, s := range scr {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return fmt.Errorf("script: %w", err)
		}
	}
	return nil
}
