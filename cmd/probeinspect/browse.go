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
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/Foundation-Devices/probe-rs/debug"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the variable cache as a collapsible tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, _ := buildDemoSession(cfg)
		return runBrowser(cache)
	},
}

func runBrowser(cache *debug.VariableCache) error {
	root := tview.NewTreeNode("<statics>").SetColor(tcell.ColorYellow)
	tree := tview.NewTreeView().SetRoot(root).SetCurrentNode(root)

	var addChildren func(node *tview.TreeNode, parent *debug.Key)
	addChildren = func(node *tview.TreeNode, parent *debug.Key) {
		for _, v := range cache.GetChildren(parent) {
			v := v
			label := debug.Format(v, cache)
			child := tview.NewTreeNode(label).SetSelectable(true)
			node.AddChild(child)
			if cache.HasChildren(v) {
				key := v.Key
				child.SetReference(&key)
			}
		}
	}
	addChildren(root, nil)

	tree.SetSelectedFunc(func(node *tview.TreeNode) {
		ref := node.GetReference()
		if ref == nil {
			return
		}
		key := ref.(*debug.Key)
		if len(node.GetChildren()) == 0 {
			addChildren(node, key)
		}
		node.SetExpanded(!node.IsExpanded())
	})

	app := tview.NewApplication()
	return app.SetRoot(tree, true).SetFocus(tree).Run()
}
