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
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/term"
	"github.com/spf13/cobra"

	"github.com/Foundation-Devices/probe-rs/debug"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Single-keypress navigator over the variable cache",
	Long: `repl puts the controlling terminal into raw mode and lets a single
keypress drive navigation: j/k move between siblings, l descends into
children, h returns to the parent, q quits. No Enter key required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, _ := buildDemoSession(cfg)
		return runREPL(cache)
	},
}

func runREPL(cache *debug.VariableCache) error {
	t, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return fmt.Errorf("repl: opening terminal: %w", err)
	}
	defer t.Restore()
	defer t.Close()

	var parent *debug.Key
	cursor := 0

	render := func() {
		children := cache.GetChildren(parent)
		for i, v := range children {
			line := debug.Format(v, cache)
			c := color.New()
			switch {
			case v.Value.IsError():
				c.Add(color.FgRed)
			case v.Type.IsPointer():
				c.Add(color.FgCyan)
			}
			if i == cursor {
				c.Add(color.Bold)
				c.Printf("> %s\n", line)
			} else {
				fmt.Printf("  ")
				c.Printf("%s\n", line)
			}
		}
	}

	render()

	buf := make([]byte, 1)
	for {
		if _, err := t.Read(buf); err != nil {
			return fmt.Errorf("repl: reading keypress: %w", err)
		}

		children := cache.GetChildren(parent)

		switch buf[0] {
		case 'q':
			return nil
		case 'j':
			if cursor < len(children)-1 {
				cursor++
			}
		case 'k':
			if cursor > 0 {
				cursor--
			}
		case 'l':
			if cursor < len(children) {
				key := children[cursor].Key
				if cache.HasChildren(children[cursor]) {
					parent = &key
					cursor = 0
				}
			}
		case 'h':
			if parent != nil {
				if v, ok := cache.GetVariableByKey(*parent); ok && v.HasParent {
					parent = &v.ParentKey
				} else {
					parent = nil
				}
				cursor = 0
			}
		}

		render()
	}
}
