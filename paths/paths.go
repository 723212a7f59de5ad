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

// Package paths contains functions to find sweeper resources on disk.
//
// The ResourcePath() function prepends the resource string with the
// appropriate base directory. For example, the following will return the
// path to a script file:
//
//	p := paths.ResourcePath("scripts", "hallway")
//
// The policy of ResourcePath() is simple: if the base resource path, currently
// defined to be ".sweeper", is present in the program's current directory
// then that is the base path that will be used. If it is not present, then
// the user's config directory is used. The package uses os.UserConfigDir()
// from the standard library for this.
//
// Nothing in this package creates files or directories.
package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. getBasePath() should be used instead of
// this value directly.
const baseResourcePath = ".sweeper"

// ResourcePath returns the resource string prepended with the base resource
// directory.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return filepath.Join(p...)
}

func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return filepath.Join(cnf, baseResourcePath[1:])
}

// FindScript returns the path to the named script file. If the name is not a
// file in its own right then the scripts directory in the resource path is
// tried. If neither exists the name is returned unchanged so that the error
// from opening it makes sense to the user.
func FindScript(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}

	// absolute paths are never looked up in the resource directory
	if filepath.IsAbs(name) {
		return name
	}

	p := ResourcePath("scripts", name)
	if _, err := os.Stat(p); err == nil {
		return p
	}

	return name
}
