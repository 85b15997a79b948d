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
	"io"

	"github.com/bradleyjkemp/memviz"
)

// cacheSnapshot is the shape memviz walks: a plain tree of exported fields
// reconstructed from the VariableCache's key/parent map, since memviz
// renders a Go value graph rather than an arbitrary cache's internals
// directly.
type cacheSnapshot struct {
	Key      Key
	Name     string
	Type     string
	Value    string
	Children []*cacheSnapshot
}

func (c *VariableCache) snapshot(key *Key) *cacheSnapshot {
	var v Variable
	if key == nil {
		v = Variable{Name: Name{Kind: NameStaticScopeRoot}}
	} else {
		var ok bool
		v, ok = c.GetVariableByKey(*key)
		if !ok {
			return nil
		}
	}

	node := &cacheSnapshot{
		Name:  v.Name.String(),
		Type:  v.Type.Display(),
		Value: v.Value.String(),
	}
	if key != nil {
		node.Key = *key
	}

	for _, child := range c.GetChildren(key) {
		k := child.Key
		node.Children = append(node.Children, c.snapshot(&k))
	}

	return node
}

// WriteGraphviz renders the part of the cache rooted at parent (nil for
// the whole cache) as a Graphviz dot graph to w. It is a diagnostic aid: a
// human reviewing a session's live variable tree, not something the core
// itself consumes.
func WriteGraphviz(w io.Writer, c *VariableCache, parent *Key) {
	root := c.snapshot(parent)
	memviz.Map(w, root)
}
