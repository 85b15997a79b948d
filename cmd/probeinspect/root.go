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

// Command probeinspect is a reference front end for the variable
// resolution core: it attaches to a simulated target so the cache,
// formatter and write-back path can be exercised end to end without a
// real debug probe.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Foundation-Devices/probe-rs/config"
)

var configFile string
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "probeinspect",
	Short: "Inspect a halted target's variables through the variable resolution core",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(browseCmd, replCmd, dashboardCmd, graphCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
