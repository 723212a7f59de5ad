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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// Group is a collection of preferences, each with a unique key.
type Group struct {
	entries map[string]pref
}

// NewGroup is the preferred method of initialisation for the Group type.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]pref),
	}
}

// Add preference to the Group. It is an error to add a key more than once.
func (grp *Group) Add(key string, p pref) error {
	if _, ok := grp.entries[key]; ok {
		return fmt.Errorf("prefs: key %s already exists", key)
	}
	grp.entries[key] = p
	return nil
}

// Set the value of the preference with the given key.
func (grp *Group) Set(key string, v Value) error {
	p, ok := grp.entries[key]
	if !ok {
		return fmt.Errorf("prefs: no such key %s", key)
	}
	return p.Set(v)
}

// ApplyCommandLine sets preferences from the top of the command line stack.
// Entries in the stack that do not correspond to a key in the Group are left
// on the stack.
func (grp *Group) ApplyCommandLine() error {
	for _, key := range grp.keys() {
		if ok, v := GetCommandLinePref(key); ok {
			if err := grp.entries[key].Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", key, err)
			}
		}
	}
	return nil
}

// Reset all preferences in the Group to their default values.
func (grp *Group) Reset() error {
	for _, key := range grp.keys() {
		if err := grp.entries[key].Reset(); err != nil {
			return fmt.Errorf("prefs: %s: %w", key, err)
		}
	}
	return nil
}

// String returns the Group as a prefs string, sorted by key. The output can
// be used as the argument to PushCommandLineStack().
func (grp *Group) String() string {
	s := strings.Builder{}
	for _, key := range grp.keys() {
		s.WriteString(fmt.Sprintf("%s::%s; ", key, grp.entries[key].String()))
	}
	return strings.TrimSuffix(s.String(), "; ")
}

func (grp *Group) keys() []string {
	keys := make([]string, 0, len(grp.entries))
	for key := range grp.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
