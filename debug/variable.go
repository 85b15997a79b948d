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

// Package debug is the on-target variable resolution core: it discovers,
// caches, formats and mutates program variables observed in a halted
// firmware image, given DWARF debug information and a handle onto live
// target memory and registers.
//
// The package never walks DWARF itself. An external DWARF walker builds a
// bare Variable (Key == 0) from the unit/type tree and hands it to a
// VariableCache to be interned. Everything downstream of that handoff —
// reading target memory, formatting composite values, writing a new scalar
// back — is this package's job.
package debug

import (
	stddwarf "debug/dwarf"
	"fmt"
)

// dwarfOffset is the standard library's representation of a DWARF section
// offset. See DESIGN.md for why this one corner of the module uses the
// standard library instead of a third-party DWARF library.
type dwarfOffset = stddwarf.Offset

// Key uniquely identifies a Variable within one VariableCache. The zero
// value means "not yet interned" (Variable.Invariant 1 in spec.md §3.1).
type Key int64

// NameKind tags the Variable.Name union.
type NameKind int

const (
	// NameUnknown is the zero value; a Variable built by a careless DWARF
	// walker that forgot to set a name lands here rather than on an empty
	// string, so it is visibly wrong instead of silently blank.
	NameUnknown NameKind = iota
	NameStaticScopeRoot
	NameRegistersRoot
	NameLocalScopeRoot
	NameArtificial
	NameAnonymousNamespace
	NameNamespace
	NameNamed
)

// Name is the tagged union described in spec.md §3.1. Text is only
// meaningful for NameNamespace and NameNamed.
type Name struct {
	Kind NameKind
	Text string
}

func (n Name) String() string {
	switch n.Kind {
	case NameStaticScopeRoot:
		return "<statics>"
	case NameRegistersRoot:
		return "<registers>"
	case NameLocalScopeRoot:
		return "<locals>"
	case NameArtificial:
		return "<artificial>"
	case NameAnonymousNamespace:
		return "<anonymous namespace>"
	case NameNamespace:
		return n.Text
	case NameNamed:
		return n.Text
	}
	return "<unknown>"
}

// IsIndexed reports whether a Named variable is a synthetic tuple-member
// name of the form "__0", "__1", etc. — the __ prefix followed by a digit
// at the third character. Used by Format() to decide whether a struct
// should be rendered using tuple syntax (spec.md §4.3, point 5).
func (n Name) IsIndexed() bool {
	if n.Kind != NameNamed {
		return false
	}
	if len(n.Text) < 3 || n.Text[0] != '_' || n.Text[1] != '_' {
		return false
	}
	return n.Text[2] >= '0' && n.Text[2] <= '9'
}

// ValueKind tags the Variable.Value union.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueValid
	ValueError
)

// Value is the tagged union from spec.md §3.1. Valid(_) and Error(_) are
// both "non-empty" (invariant 4).
type Value struct {
	Kind ValueKind
	Text string
}

// IsEmpty reports whether the value carries no text yet.
func (v Value) IsEmpty() bool { return v.Kind == ValueEmpty }

// IsValid reports whether the value is a successfully decoded Valid(_).
func (v Value) IsValid() bool { return v.Kind == ValueValid }

// IsError reports whether the value is a captured Error(_).
func (v Value) IsError() bool { return v.Kind == ValueError }

// String renders the value the way Format() embeds it: raw text for
// Valid, angle-bracketed for Error, empty string otherwise.
func (v Value) String() string {
	switch v.Kind {
	case ValueValid:
		return v.Text
	case ValueError:
		return fmt.Sprintf("< %s >", v.Text)
	}
	return ""
}

// SourceLocation is an optional (file, line, column) triple attached to a
// Variable's declaration.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// DebugInfoRef is the opaque pair of offsets into the DWARF section that
// the external DWARF walker uses to resolve lazy/deferred children. The
// core stores these verbatim; debug/dwarf.Offset is the standard-library
// representation for a DWARF section offset (golang.org/x/debug and
// delve both use it the same way), so there is no third-party type to
// prefer here.
type DebugInfoRef struct {
	UnitHeaderOffset dwarfOffset
	EntryOffset      dwarfOffset
}

// HasRef reports whether the back-reference pair has been populated.
func (r DebugInfoRef) HasRef() bool {
	return r.UnitHeaderOffset != 0 || r.EntryOffset != 0
}

// NodeTypeKind tags the Variable.NodeType union (spec.md §3.1).
type NodeTypeKind int

const (
	// NodeRecurseToBaseType is the default: children, if any, may be
	// built eagerly by the DWARF walker.
	NodeRecurseToBaseType NodeTypeKind = iota
	// NodeReferenceOffset means children are deferred behind a DWARF
	// reference-class attribute.
	NodeReferenceOffset
	// NodeTypeOffset means children are deferred behind a DWARF type
	// attribute — used to break cycles in self-referential types
	// (spec.md §9).
	NodeTypeOffset
	// NodeDirectLookup means children are deferred behind a direct,
	// already-known DWARF entry offset.
	NodeDirectLookup
	// NodeDoNotRecurse marks a Variable that must never be expanded, e.g. a
	// true leaf. AdoptGrandChildren does not collapse it unless its type is
	// TypeUnknown.
	NodeDoNotRecurse
)

// NodeType is the tagged union from spec.md §3.1.
type NodeType struct {
	Kind   NodeTypeKind
	Offset dwarfOffset
}

// IsDeferred reports whether children are not yet materialized and should
// be built lazily on external request (invariant 6).
func (nt NodeType) IsDeferred() bool {
	switch nt.Kind {
	case NodeReferenceOffset, NodeTypeOffset, NodeDirectLookup:
		return true
	}
	return false
}

// VariantRoleKind tags Variable.VariantRole (spec.md §3.1 / GLOSSARY).
type VariantRoleKind int

const (
	RoleNonVariant VariantRoleKind = iota
	RoleVariantPart
	RoleVariant
)

// VariantRole records which side of a DWARF tagged-union relationship a
// Variable plays, if any.
type VariantRole struct {
	Kind          VariantRoleKind
	Discriminant  uint64
	HasDiscrimant bool
}

// Variable is the tagged, structured representation of a single program
// variable, its type, its location and its value (spec.md §3.1).
//
// A Variable is immutable by default: callers of VariableCache only ever
// see clones (spec.md §4.2, "Clone-by-default API" in spec.md §9), and the
// only way to change a cached Variable is through VariableCache's own
// mutation operations.
type Variable struct {
	Key       Key
	ParentKey Key
	HasParent bool

	Name  Name
	Value Value

	SourceLocation   SourceLocation
	HasSourceLoc     bool
	Type             VariableType
	DebugInfo        DebugInfoRef
	NodeType         NodeType
	Location         Location
	ByteSize         uint64
	MemberIndex      int
	HasMemberIndex   bool
	RangeLowerBound  int64
	RangeUpperBound  int64
	HasRange         bool
	VariantRole      VariantRole
}

// Clone returns a value copy of the Variable. VariableCache hands these
// out from every read so callers never hold an aliasing reference into
// cache-owned storage.
func (v Variable) Clone() Variable {
	return v
}

// placeholderText is the string a deferred Variable displays before the
// UI has asked to expand it: "<type> @ <addr-or-location-debug>"
// (spec.md §4.3 Extraction, and the original source's lazy-node text).
func (v Variable) placeholderText() string {
	return fmt.Sprintf("%s @ %s", v.Type.Display(), v.Location.debugString())
}
