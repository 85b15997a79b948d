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

import (
	"fmt"
	"strings"
)

// TypeKind tags the Variable.Type union (spec.md §3.1).
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeBase
	TypeStruct
	TypeEnum
	TypeNamespace
	TypePointer
	TypeArray
	TypeUnnamed
	TypeOther
)

// VariableType is the tagged union describing a Variable's declared type.
// The zero value is TypeUnknown, matching spec.md §3.1's stated default.
type VariableType struct {
	Kind TypeKind

	// Name holds the base/struct/enum/other type name.
	Name string

	// PointerName holds the optional pointee type name for TypePointer;
	// empty means the pointer's target type is unknown.
	PointerName    string
	HasPointerName bool

	// Array-only fields.
	ArrayEntryTypeName string
	ArrayCount         int
}

// IsPhantomData reports whether this is a zero-size marker struct, named
// the way Rust's PhantomData<T> is (spec.md §4.4).
func (t VariableType) IsPhantomData() bool {
	return t.Kind == TypeStruct && strings.HasPrefix(t.Name, "PhantomData")
}

// IsReference reports whether this is a pointer type whose pointee name
// starts with "&", i.e. a borrow rather than a raw/owning pointer
// (spec.md §4.4).
func (t VariableType) IsReference() bool {
	return t.Kind == TypePointer && t.HasPointerName && strings.HasPrefix(t.PointerName, "&")
}

// IsArray reports whether the variant is TypeArray (spec.md §4.4).
func (t VariableType) IsArray() bool {
	return t.Kind == TypeArray
}

// IsStruct reports whether the variant is TypeStruct.
func (t VariableType) IsStruct() bool {
	return t.Kind == TypeStruct
}

// IsPointer reports whether the variant is TypePointer.
func (t VariableType) IsPointer() bool {
	return t.Kind == TypePointer
}

// Display renders the pretty name used in placeholder text and bug
// markers: "[T; N]" for arrays, "<namespace>" for namespaces, "<unknown>"
// for an unresolved type, and the bare name otherwise (spec.md §4.4).
func (t VariableType) Display() string {
	switch t.Kind {
	case TypeUnknown:
		return "<unknown>"
	case TypeNamespace:
		return "<namespace>"
	case TypeArray:
		return fmt.Sprintf("[%s; %d]", t.ArrayEntryTypeName, t.ArrayCount)
	case TypePointer:
		if t.HasPointerName {
			return t.PointerName
		}
		return "<unnamed>"
	case TypeUnnamed:
		return "<unnamed>"
	case TypeOther:
		return t.Name
	}
	return t.Name
}
