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

// Package prefs holds run time preferences. Each preference is a typed value
// (Bool, Int, String, Duration) that can be set from a value of the correct
// type or from a string. Preferences are collected into a Group under a key
// name and can then be overridden from the command line with a prefs string:
//
//	"teleop.exit::3; teleop.sweeper::14"
//
// Key and value are separated by a double colon and entries by a semicolon.
//
// Preferences are not written to disk. Every run starts from the defaults
// given by the package that owns the Group and any command line overrides.
//
// Hooks can be attached to a preference. A pre hook can reject a value by
// returning an error, in which case the value is not changed. A post hook is
// called after the value has changed.
package prefs
