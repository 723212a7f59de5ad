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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with
// curated.Errorf(). The pattern given to Errorf() is kept so that the error
// can be identified later with curated.Is() or curated.Has(), without
// resorting to string comparisons of the formatted message.
//
// Error patterns should be exported as constants by the package that creates
// them. For example:
//
//	const NoInputDevices = "input: no devices found"
//
//	return curated.Errorf(NoInputDevices)
//
// And the caller can test for it with:
//
//	if curated.Is(err, robot.NoInputDevices) {
//		...
//	}
//
// Curated errors can be wrapped by other curated errors. The Has() function
// tests the entire chain.
//
// Formatting of the error message de-duplicates leading message parts. So a
// message of "input: input: no devices found" is reported as "input: no
// devices found".
package curated
