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

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/spf13/cobra"
)

var dashboardAddr string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve a live runtime-stats dashboard for this process",
	Long: `dashboard starts an HTTP server exposing goroutine/memory/GC stats for
the dashboard process itself and blocks until interrupted. It builds no
variable cache, and the stats of a repl or browse run in another process
are not shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		viewer.SetConfiguration(viewer.WithAddr(dashboardAddr))
		statsview.New().Start()
		fmt.Printf("dashboard listening on http://%s/debug/statsview\n", dashboardAddr)
		select {}
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardAddr, "addr", "localhost:18066", "address to serve the dashboard on")
}
