// This file is part of probe-rs.
//
// probe-rs is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// probe-rs is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with probe-rs.  If not, see <https://www.gnu.org/licenses/>.

package debug

import "fmt"

// LocationKind tags the Variable.Location union (spec.md §3.1).
type LocationKind int

const (
	LocationUnknown LocationKind = iota
	LocationUnavailable
	LocationAddress
	LocationRegister
	// LocationValue means the value is intrinsic to the Variable and is
	// never read from target memory (invariant 5).
	LocationValue
	LocationError
	LocationUnsupported
)

// Location is the tagged union describing where a Variable's value lives.
type Location struct {
	Kind LocationKind

	Address  uint32
	Register int

	// Text carries the message for LocationError/LocationUnsupported.
	Text string
}

// Valid reports whether the location is one Extract() may read from:
// neither LocationUnknown, LocationUnavailable, LocationError nor
// LocationUnsupported (spec.md §4.3 "Early-exit conditions").
func (l Location) Valid() bool {
	switch l.Kind {
	case LocationUnknown, LocationUnavailable, LocationError, LocationUnsupported:
		return false
	}
	return true
}

// MemoryAddress returns the target address this location resolves to, for
// write-back via UpdateValue. ok is false for any location kind that has
// no single target address (registers, intrinsic values, errors).
func (l Location) MemoryAddress() (uint32, bool) {
	if l.Kind == LocationAddress {
		return l.Address, true
	}
	return 0, false
}

// debugString is the "<addr-or-location-debug>" half of a deferred
// Variable's placeholder text (spec.md §4.3).
func (l Location) debugString() string {
	switch l.Kind {
	case LocationAddress:
		return fmt.Sprintf("0x%08X", l.Address)
	case LocationRegister:
		return fmt.Sprintf("r%d", l.Register)
	case LocationValue:
		return "<value>"
	case LocationUnavailable:
		return "<unavailable>"
	case LocationError:
		return fmt.Sprintf("<error: %s>", l.Text)
	case LocationUnsupported:
		return fmt.Sprintf("<unsupported: %s>", l.Text)
	}
	return "<unknown>"
}
