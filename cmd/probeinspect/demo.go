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

package main

import (
	"encoding/binary"
	"fmt"

	"github.com/Foundation-Devices/probe-rs/config"
	"github.com/Foundation-Devices/probe-rs/debug"
)

// simTarget is a flat byte-addressable memory standing in for a real
// debug-probe transport (spec.md §6.1 TargetMemory), so the CLI has
// something to read and write without an attached MCU.
type simTarget struct {
	mem map[uint32]byte
}

func newSimTarget() *simTarget {
	return &simTarget{mem: make(map[uint32]byte)}
}

func (s *simTarget) ReadWord8(addr uint32) (uint8, error) {
	return s.mem[addr], nil
}

func (s *simTarget) ReadWord32(addr uint32) (uint32, error) {
	b := make([]byte, 4)
	if err := s.Read(addr, b); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (s *simTarget) Read(addr uint32, buf []byte) error {
	for i := range buf {
		buf[i] = s.mem[addr+uint32(i)]
	}
	return nil
}

func (s *simTarget) WriteWord8(addr uint32, v uint8) error {
	s.mem[addr] = v
	return nil
}

func (s *simTarget) WriteWord32(addr uint32, v uint32) error {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return s.Write8(addr, b)
}

func (s *simTarget) Write8(addr uint32, buf []byte) error {
	for i, b := range buf {
		s.mem[addr+uint32(i)] = b
	}
	return nil
}

// buildDemoSession applies the resolved config to the core, seeds a
// simTarget with a handful of scalar variables, and interns them into a
// fresh VariableCache — standing in for what a DWARF walker would hand
// the core after halting at a breakpoint.
func buildDemoSession(cfg config.Config) (*debug.VariableCache, debug.TargetMemory) {
	debug.SetWordSize(cfg.WordSize)
	debug.SetStringReadCap(cfg.StringReadCap)

	mem := newSimTarget()
	cache := debug.NewVariableCache()

	const frameCounterAddr = 0x2000_0000
	const tempReadingAddr = 0x2000_0004
	mem.WriteWord32(frameCounterAddr, 42)
	mem.Write8(tempReadingAddr, []byte{0x00, 0x00, 0x20, 0x41}) // f32 10.0

	frameCounter := debug.Variable{
		Name:     debug.Name{Kind: debug.NameNamed, Text: "frame_counter"},
		Type:     debug.VariableType{Kind: debug.TypeBase, Name: "u32"},
		Location: debug.Location{Kind: debug.LocationAddress, Address: frameCounterAddr},
	}
	if _, err := cache.CacheVariable(nil, frameCounter, mem); err != nil {
		fmt.Println("warning: failed to seed frame_counter:", err)
	}

	tempReading := debug.Variable{
		Name:     debug.Name{Kind: debug.NameNamed, Text: "temp_reading"},
		Type:     debug.VariableType{Kind: debug.TypeBase, Name: "f32"},
		Location: debug.Location{Kind: debug.LocationAddress, Address: tempReadingAddr},
	}
	if _, err := cache.CacheVariable(nil, tempReading, mem); err != nil {
		fmt.Println("warning: failed to seed temp_reading:", err)
	}

	return cache, mem
}
