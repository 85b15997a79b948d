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

// Error patterns for curated.Errorf/curated.Is/curated.Has (spec.md §7).
// A curated error is identified by the format pattern it was created
// with, not by a sentinel value, so these constants are the patterns
// themselves rather than error values.
const (
	ErrBadParent               = "no variable with key %d to parent onto"
	ErrDuplicateKey            = "key %d already exists in cache"
	ErrUnknownKey              = "no variable with key %d in cache"
	ErrRemoveFailed            = "failed to remove cache entry %d"
	ErrDecodeFailed            = "decode failed: %v"
	ErrUnwritable              = "variable is not writable: %s"
	ErrUnsupportedType         = "unsupported type for write: %s"
	ErrUnsupportedPointerWrite = "cannot write through a pointer/reference"
	ErrUnsupportedWrite        = "%s is read-only"
	ErrMemoryIO                = "memory error: %v"
)
