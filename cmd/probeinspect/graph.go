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
	"os"

	"github.com/spf13/cobra"

	"github.com/Foundation-Devices/probe-rs/debug"
)

var graphOutputFile string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the variable cache as a Graphviz dot file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, _ := buildDemoSession(cfg)

		out := os.Stdout
		if graphOutputFile != "" {
			f, err := os.Create(graphOutputFile)
			if err != nil {
				return fmt.Errorf("graph: %w", err)
			}
			defer f.Close()
			out = f
		}

		debug.WriteGraphviz(out, cache, nil)
		return nil
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphOutputFile, "output-file", "o", "", "output file; stdout if omitted")
}
