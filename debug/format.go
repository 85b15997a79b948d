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

	"github.com/Foundation-Devices/probe-rs/curated"
	"github.com/Foundation-Devices/probe-rs/logger"
)

// maxStringRead is the cap on how many bytes of a &str's backing buffer
// Extract will read, regardless of the reported length (spec.md §4.1).
// Overridable via SetStringReadCap, normally from config.Config.
var maxStringRead = 200

// SetStringReadCap overrides the &str truncation cap (in bytes). Values
// less than or equal to zero are ignored.
func SetStringReadCap(n int) {
	if n > 0 {
		maxStringRead = n
	}
}

// Extract mutates variable.Value in place, reading target memory through
// mem and the variable's own children through cache as needed (spec.md
// §4.3 "Extraction").
func Extract(variable *Variable, mem TargetMemory, cache *VariableCache) {
	if !variable.Value.IsEmpty() {
		return
	}
	if variable.Location.Kind == LocationValue {
		return
	}
	if !variable.Location.Valid() {
		return
	}
	if variable.Type.Kind == TypeUnknown {
		return
	}

	if variable.NodeType.IsDeferred() {
		variable.Value = Value{Kind: ValueValid, Text: variable.placeholderText()}
		return
	}

	switch variable.Type.Kind {
	case TypeBase:
		extractBase(variable, mem)
	case TypeStruct:
		if variable.Type.Name == "&str" {
			extractString(variable, mem, cache)
		}
		// any other struct is left Empty; aggregate rendering happens in
		// Format by walking children, not here.
	}
}

func extractBase(variable *Variable, mem TargetMemory) {
	switch variable.Type.Name {
	case "!":
		variable.Value = Value{Kind: ValueValid, Text: "<Never returns>"}
		return
	case "()":
		variable.Value = Value{Kind: ValueValid, Text: "()"}
		return
	case "None":
		variable.Value = Value{Kind: ValueValid, Text: "None"}
		return
	}

	codec, ok := scalarRegistry[variable.Type.Name]
	if !ok {
		return
	}

	addr, ok := variable.Location.MemoryAddress()
	if !ok {
		return
	}

	width := codec.width()
	b := make([]byte, width)
	var err error
	if width == 1 {
		var v uint8
		v, err = mem.ReadWord8(addr)
		b[0] = v
	} else {
		err = mem.Read(addr, b)
	}
	if err != nil {
		SetValue(variable, Value{Kind: ValueError, Text: curated.Errorf(ErrMemoryIO, err).Error()})
		return
	}

	text, err := codec.decode(b)
	if err != nil {
		SetValue(variable, Value{Kind: ValueError, Text: curated.Errorf(ErrDecodeFailed, err).Error()})
		return
	}
	SetValue(variable, Value{Kind: ValueValid, Text: text})
}

// extractString implements the &str composite decoder (spec.md §4.1): it
// reads two already-materialized children, "length" and "data_ptr",
// locates the backing bytes via data_ptr's first child's memory
// location, reads up to min(length, maxStringRead) bytes, and decodes as
// UTF-8.
func extractString(variable *Variable, mem TargetMemory, cache *VariableCache) {
	lengthVar, ok := cache.GetVariableByNameAndParent(Name{Kind: NameNamed, Text: "length"}, &variable.Key)
	if !ok {
		SetValue(variable, Value{Kind: ValueError, Text: "string has no length child"})
		return
	}
	dataPtrVar, ok := cache.GetVariableByNameAndParent(Name{Kind: NameNamed, Text: "data_ptr"}, &variable.Key)
	if !ok {
		SetValue(variable, Value{Kind: ValueError, Text: "string has no data_ptr child"})
		return
	}

	ptrChildren := cache.GetChildren(&dataPtrVar.Key)
	if len(ptrChildren) == 0 {
		SetValue(variable, Value{Kind: ValueError, Text: "string data_ptr has no dereferenced child"})
		return
	}
	bytesAddr, ok := ptrChildren[0].Location.MemoryAddress()
	if !ok {
		SetValue(variable, Value{Kind: ValueError, Text: "string data has no resolvable address"})
		return
	}

	length, err := parseUintText(lengthVar.Value.Text)
	if err != nil {
		SetValue(variable, Value{Kind: ValueError, Text: curated.Errorf(ErrDecodeFailed, err).Error()})
		return
	}

	toRead := length
	if toRead > maxStringRead {
		logger.Logf("debug: string decode", "truncating string of length %d to %d bytes", length, maxStringRead)
		toRead = maxStringRead
	}

	buf := make([]byte, toRead)
	if toRead > 0 {
		if err := mem.Read(bytesAddr, buf); err != nil {
			SetValue(variable, Value{Kind: ValueError, Text: curated.Errorf(ErrMemoryIO, err).Error()})
			return
		}
	}

	SetValue(variable, Value{Kind: ValueValid, Text: string(buf)})
}

func parseUintText(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length %d", n)
	}
	return n, nil
}

// SetValue applies the replacement policy from spec.md §4.3
// "set_value policy":
//
//   - a Valid new value always replaces the current one;
//   - an Error new value replaces a Valid current value;
//   - an Error new value concatenates onto a non-valid (Empty or Error)
//     current value as "{current} : {new}".
func SetValue(variable *Variable, newValue Value) {
	switch {
	case newValue.Kind == ValueValid:
		variable.Value = newValue
	case newValue.Kind == ValueError && variable.Value.Kind == ValueValid:
		variable.Value = newValue
	case newValue.Kind == ValueError:
		if variable.Value.Kind == ValueError {
			variable.Value = Value{Kind: ValueError, Text: fmt.Sprintf("%s : %s", variable.Value.Text, newValue.Text)}
		} else {
			variable.Value = newValue
		}
	default:
		variable.Value = newValue
	}
}

// UpdateValue writes a new scalar value to target memory and re-interns
// the Variable so readers see the write immediately (spec.md §4.3
// "update_value").
func UpdateValue(variable Variable, mem TargetMemory, cache *VariableCache, newText string) (Variable, error) {
	if !variable.Value.IsValid() {
		return Variable{}, curated.Errorf(ErrUnwritable, "current value is not valid")
	}
	if variable.Type.Kind == TypeUnknown {
		return Variable{}, curated.Errorf(ErrUnwritable, "type is unknown")
	}
	if !variable.Location.Valid() {
		return Variable{}, curated.Errorf(ErrUnwritable, "location is not valid")
	}

	if variable.Name.Kind == NameNamed && strings.HasPrefix(variable.Name.Text, "*") {
		return Variable{}, curated.Errorf(ErrUnsupportedPointerWrite)
	}

	if variable.Type.Kind == TypeStruct && variable.Type.Name == "&str" {
		return Variable{}, curated.Errorf(ErrUnsupportedWrite, variable.Type.Name)
	}

	if variable.Type.Kind != TypeBase {
		return Variable{}, curated.Errorf(ErrUnsupportedType, variable.Type.Display())
	}

	codec, ok := scalarRegistry[variable.Type.Name]
	if !ok {
		return Variable{}, curated.Errorf(ErrUnsupportedType, variable.Type.Name)
	}
	if !codec.writable {
		return Variable{}, curated.Errorf(ErrUnsupportedWrite, variable.Type.Name)
	}

	addr, ok := variable.Location.MemoryAddress()
	if !ok {
		return Variable{}, curated.Errorf(ErrUnwritable, "location has no target address")
	}

	b, err := codec.encode(newText)
	if err != nil {
		return Variable{}, curated.Errorf(ErrDecodeFailed, err)
	}

	if len(b) == 1 {
		err = mem.WriteWord8(addr, b[0])
	} else {
		err = mem.Write8(addr, b)
	}
	if err != nil {
		return Variable{}, curated.Errorf(ErrMemoryIO, err)
	}

	variable.Value = Value{Kind: ValueValid, Text: newText}
	var parent *Key
	if variable.HasParent {
		parent = &variable.ParentKey
	}
	return cache.CacheVariable(parent, variable, mem)
}

// Format produces the user-visible string for variable, walking its
// children through cache as needed for composite rendering (spec.md §4.3
// "Formatting"). The top-level call passes showName=true, so every branch
// that has a "name: type = " prefix shows it for variable; a pointer
// renders only its dereferenced first child, and a childless struct only
// its name.
func Format(variable Variable, cache *VariableCache) string {
	return formatAt(variable, cache, 0, true)
}

// formatAt is Format's recursive implementation. depth tracks nesting so
// nested lines get a leading newline and one tab per level of indent;
// showName controls whether this particular call renders variable's own
// "name: type = " prefix or just its bare value/compound text — composite
// callers pass showName=false for elements that should read as bare values
// (array/tuple members) and showName=true for elements that should read as
// fields in their own right (pointer targets, named struct fields).
func formatAt(variable Variable, cache *VariableCache, depth int, showName bool) string {
	lineFeed := ""
	if depth != 0 {
		lineFeed = "\n"
	}
	indent := strings.Repeat("\t", depth)

	if !variable.Value.IsEmpty() {
		if showName {
			return fmt.Sprintf("%s%s%s: %s = %s", lineFeed, indent, variable.Name.String(), variable.Type.Display(), variable.Value.String())
		}
		return fmt.Sprintf("%s%s%s", lineFeed, indent, variable.Value.String())
	}

	if variable.Name.Kind == NameAnonymousNamespace || variable.Name.Kind == NameNamespace {
		return ""
	}

	children := cache.GetChildren(&variable.Key)

	switch variable.Type.Kind {
	case TypePointer:
		if len(children) == 0 {
			return fmt.Sprintf("%s%sUnable to resolve referenced variable value", lineFeed, indent)
		}
		return fmt.Sprintf("%s%s%s", lineFeed, indent, formatAt(children[0], cache, depth+1, true))

	case TypeArray:
		parts := make([]string, len(children))
		for i, c := range children {
			parts[i] = formatAt(c, cache, depth+1, false)
		}
		return fmt.Sprintf("%s%s%s: %s = [%s%s%s]", lineFeed, indent, variable.Name.String(), variable.Type.Display(), strings.Join(parts, ", "), lineFeed, indent)

	case TypeStruct:
		if strings.HasPrefix(variable.Type.Name, "Ok") || strings.HasPrefix(variable.Type.Name, "Err") {
			parts := make([]string, len(children))
			for i, c := range children {
				parts[i] = formatAt(c, cache, depth+1, false)
			}
			return fmt.Sprintf("%s%s%s: %s = %s(%s%s%s)", lineFeed, indent, variable.Name.String(), variable.Type.Display(), variable.Type.Name, strings.Join(parts, ", "), lineFeed, indent)
		}
		return formatGenericStruct(variable, cache, children, lineFeed, indent, depth, showName)

	case TypeEnum, TypeOther, TypeUnnamed:
		return formatGenericStruct(variable, cache, children, lineFeed, indent, depth, showName)

	default:
		if variable.NodeType.IsDeferred() {
			return fmt.Sprintf("%s%s%s: %s", lineFeed, indent, variable.Name.String(), variable.Type.Display())
		}
		return fmt.Sprintf("%s%s<bug: %s has type %s and an invalid location>", lineFeed, indent, variable.Name.String(), variable.Type.Display())
	}
}

// formatGenericStruct implements spec.md §4.3's "Generic struct" branch:
// no children renders as a bare name (the idiomatic None case); a first
// child named like a tuple index (__0, __1, ...) renders as a tuple;
// otherwise as a named-field struct, where each field's own "name: type ="
// prefix comes from its own recursive call rather than being added here.
func formatGenericStruct(variable Variable, cache *VariableCache, children []Variable, lineFeed, indent string, depth int, showName bool) string {
	if len(children) == 0 {
		return fmt.Sprintf("%s%s%s", lineFeed, indent, variable.Name.String())
	}

	if children[0].Name.IsIndexed() {
		parts := make([]string, len(children))
		for i, c := range children {
			parts[i] = formatAt(c, cache, depth+1, false)
		}
		return fmt.Sprintf("%s%s%s: %s(%s) = %s(%s%s%s)", lineFeed, indent, variable.Name.String(), variable.Type.Display(), children[0].Type.Display(), variable.Type.Name, strings.Join(parts, ", "), lineFeed, indent)
	}

	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = formatAt(c, cache, depth+1, true)
	}
	prefix := fmt.Sprintf("%s%s%s {", lineFeed, indent, variable.Type.Display())
	if showName {
		prefix = fmt.Sprintf("%s%s%s: %s = %s {", lineFeed, indent, variable.Name.String(), variable.Type.Display(), variable.Type.Name)
	}
	return fmt.Sprintf("%s%s%s%s}", prefix, strings.Join(parts, ", "), lineFeed, indent)
}
