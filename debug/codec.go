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
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"unicode/utf8"
)

// scalarCodec is a per-base-type pair of (decode, encode) routines
// (spec.md §4.1, §9 "Inheritance-like polymorphism over Value" — a
// registry keyed by type name rather than virtual dispatch).
type scalarCodec struct {
	// width is the number of bytes this type occupies in target memory.
	// It is resolved at call time for isize/usize, which consult
	// wordSize rather than a fixed constant (spec.md §9 "Open question —
	// word size").
	width func() int

	decode func(b []byte) (string, error)
	encode func(text string) ([]byte, error)

	// writable is true for every registered codec. &str, which is
	// read-only, has no entry in the registry; UpdateValue rejects it
	// before this field is consulted.
	writable bool
}

// wordSize is the assumed byte width of isize/usize. This package decodes
// no pointer values, so nothing else reads it. The source hard-codes 32-bit; SetWordSize lets a caller who
// knows the DWARF unit's actual address size override it, per the open
// question in spec.md §9.
var wordSize = 4

// SetWordSize overrides the assumed word size (in bytes) used for
// isize/usize decoding. Valid values are 4 (32-bit) and 8 (64-bit); any
// other value is ignored. The default, matching the source's hard-coded
// behaviour, is 4.
func SetWordSize(bytes int) {
	if bytes == 4 || bytes == 8 {
		wordSize = bytes
	}
}

// WordSize returns the word size currently in effect.
func WordSize() int {
	return wordSize
}

func fixed(n int) func() int { return func() int { return n } }

func decodeUint(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func encodeUint(v uint64, width int) []byte {
	b := make([]byte, width)
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, v)
	}
	return b
}

func intCodec(width int, bits int) scalarCodec {
	return scalarCodec{
		width: fixed(width),
		decode: func(b []byte) (string, error) {
			u := decodeUint(b)
			// sign-extend from width*8 bits
			shift := 64 - uint(width)*8
			s := int64(u<<shift) >> shift
			return strconv.FormatInt(s, 10), nil
		},
		encode: func(text string) ([]byte, error) {
			v, err := strconv.ParseInt(text, 0, bits)
			if err != nil {
				return nil, err
			}
			return encodeUint(uint64(v), width), nil
		},
		writable: true,
	}
}

func uintCodec(width int, bits int) scalarCodec {
	return scalarCodec{
		width: fixed(width),
		decode: func(b []byte) (string, error) {
			return strconv.FormatUint(decodeUint(b), 10), nil
		},
		encode: func(text string) ([]byte, error) {
			v, err := strconv.ParseUint(text, 0, bits)
			if err != nil {
				return nil, err
			}
			return encodeUint(v, width), nil
		},
		writable: true,
	}
}

// bigIntCodec handles i128/u128, which don't fit in a machine word.
func bigIntCodec(signed bool) scalarCodec {
	return scalarCodec{
		width: fixed(16),
		decode: func(b []byte) (string, error) {
			// reverse to big-endian for big.Int.SetBytes
			rev := make([]byte, len(b))
			for i, v := range b {
				rev[len(b)-1-i] = v
			}
			n := new(big.Int).SetBytes(rev)
			if signed && len(b) == 16 && b[15]&0x80 != 0 {
				// two's complement: n -= 2^128
				full := new(big.Int).Lsh(big.NewInt(1), 128)
				n.Sub(n, full)
			}
			return n.String(), nil
		},
		encode: func(text string) ([]byte, error) {
			n, ok := new(big.Int).SetString(text, 0)
			if !ok {
				return nil, fmt.Errorf("not an integer: %q", text)
			}
			if n.Sign() < 0 {
				full := new(big.Int).Lsh(big.NewInt(1), 128)
				n = new(big.Int).Add(n, full)
			}
			be := n.Bytes()
			out := make([]byte, 16)
			for i, v := range be {
				out[16-len(be)+i] = v
			}
			// out is big-endian padded; reverse to little-endian
			for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
				out[i], out[j] = out[j], out[i]
			}
			return out, nil
		},
		writable: true,
	}
}

var scalarRegistry = map[string]scalarCodec{
	"bool": {
		width: fixed(1),
		decode: func(b []byte) (string, error) {
			return strconv.FormatBool(b[0] != 0), nil
		},
		encode: func(text string) ([]byte, error) {
			v, err := strconv.ParseBool(text)
			if err != nil {
				return nil, err
			}
			if v {
				return []byte{1}, nil
			}
			return []byte{0}, nil
		},
		writable: true,
	},
	"char": {
		width: fixed(4),
		decode: func(b []byte) (string, error) {
			r := rune(decodeUint(b))
			if !utf8.ValidRune(r) {
				return "?", nil
			}
			return string(r), nil
		},
		encode: func(text string) ([]byte, error) {
			r, _ := utf8.DecodeRuneInString(text)
			if r == utf8.RuneError {
				return nil, fmt.Errorf("not a valid character: %q", text)
			}
			return encodeUint(uint64(r), 4), nil
		},
		writable: true,
	},
	"i8":  intCodec(1, 8),
	"i16": intCodec(2, 16),
	"i32": intCodec(4, 32),
	"i64": intCodec(8, 64),
	"u8":  uintCodec(1, 8),
	"u16": uintCodec(2, 16),
	"u32": uintCodec(4, 32),
	"u64": uintCodec(8, 64),
	"i128": bigIntCodec(true),
	"u128": bigIntCodec(false),
	"f32": {
		width: fixed(4),
		decode: func(b []byte) (string, error) {
			bits := binary.LittleEndian.Uint32(b)
			return strconv.FormatFloat(float64(math.Float32frombits(bits)), 'g', -1, 32), nil
		},
		encode: func(text string) ([]byte, error) {
			v, err := strconv.ParseFloat(text, 32)
			if err != nil {
				return nil, err
			}
			return encodeUint(uint64(math.Float32bits(float32(v))), 4), nil
		},
		writable: true,
	},
	"f64": {
		width: fixed(8),
		decode: func(b []byte) (string, error) {
			bits := binary.LittleEndian.Uint64(b)
			return strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64), nil
		},
		encode: func(text string) ([]byte, error) {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, err
			}
			return encodeUint(math.Float64bits(v), 8), nil
		},
		writable: true,
	},
}

func init() {
	scalarRegistry["isize"] = scalarCodec{
		width:    func() int { return wordSize },
		decode:   func(b []byte) (string, error) { return intCodec(len(b), len(b)*8).decode(b) },
		encode:   func(text string) ([]byte, error) { return intCodec(wordSize, wordSize*8).encode(text) },
		writable: true,
	}
	scalarRegistry["usize"] = scalarCodec{
		width:    func() int { return wordSize },
		decode:   func(b []byte) (string, error) { return uintCodec(len(b), len(b)*8).decode(b) },
		encode:   func(text string) ([]byte, error) { return uintCodec(wordSize, wordSize*8).encode(text) },
		writable: true,
	}
}

// IsScalar reports whether name is a registered scalar base type.
func IsScalar(name string) bool {
	_, ok := scalarRegistry[name]
	return ok
}
