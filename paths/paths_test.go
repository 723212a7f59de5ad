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

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brickbot/sweeper/paths"
	"github.com/brickbot/sweeper/test"
)

// inDir runs the test function with the working directory set to dir.
func inDir(t *testing.T, dir string, f func()) {
	t.Helper()
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(dir))
	defer func() {
		_ = os.Chdir(wd)
	}()
	f()
}

func TestResourcePath(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.Mkdir(filepath.Join(dir, ".sweeper"), 0o700))

	inDir(t, dir, func() {
		test.ExpectEquality(t, paths.ResourcePath("scripts", "hallway"), ".sweeper/scripts/hallway")
		test.ExpectEquality(t, paths.ResourcePath(), ".sweeper")
	})
}

func TestFindScript(t *testing.T) {
	dir := t.TempDir()
	scripts := filepath.Join(dir, ".sweeper", "scripts")
	test.DemandSuccess(t, os.MkdirAll(scripts, 0o700))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(scripts, "hallway"), []byte("sweeperscript\n1\n"), 0o600))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "kitchen"), []byte("sweeperscript\n1\n"), 0o600))

	inDir(t, dir, func() {
		test.ExpectEquality(t, paths.FindScript("kitchen"), "kitchen")
		test.ExpectEquality(t, paths.FindScript("hallway"), ".sweeper/scripts/hallway")
		test.ExpectEquality(t, paths.FindScript("garage"), "garage")
	})
}
