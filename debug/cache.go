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
	"sort"
	"sync/atomic"

	"github.com/Foundation-Devices/probe-rs/assert"
	"github.com/Foundation-Devices/probe-rs/curated"
	"github.com/Foundation-Devices/probe-rs/logger"
)

// nextKey is the process-wide monotonically increasing key counter
// (spec.md §4.2 "Key allocator"). It is shared by every VariableCache so
// that keys remain globally disambiguable in diagnostics even when a
// debug session owns more than one cache. The first key handed out is 1.
var nextKey int64

func allocateKey() Key {
	return Key(atomic.AddInt64(&nextKey, 1))
}

// VariableCache owns every Variable belonging to one debug session. It
// assigns unique keys, enforces parent/child integrity, and is the only
// entity that holds a long-lived reference to a Variable's interior —
// every read below returns a clone (spec.md §3.2, §9 "Clone-by-default
// API").
//
// VariableCache assumes single-threaded cooperative access (spec.md §5):
// it does no internal locking, and callers must serialize their own
// access to it. The goroutine that constructs the cache is recorded and
// every subsequent call logs a warning, rather than failing, if it is
// reached from a different goroutine — this is a diagnostic aid, not an
// enforced invariant.
type VariableCache struct {
	owner     uint64
	variables map[Key]Variable
}

// NewVariableCache returns an empty VariableCache.
func NewVariableCache() *VariableCache {
	return &VariableCache{
		owner:     assert.GetGoRoutineID(),
		variables: make(map[Key]Variable),
	}
}

func (c *VariableCache) checkOwnership() {
	if g := assert.GetGoRoutineID(); g != c.owner {
		logger.Logf("debug: variable cache", "accessed from goroutine %d, created on %d", g, c.owner)
	}
}

// CacheVariable interns candidate into the cache (spec.md §4.2).
//
// If candidate.Key is zero a fresh key is allocated and candidate is
// inserted as a new entry. If candidate.Key is non-zero the existing
// entry with that key is overwritten in place. parent is validated first;
// when parent is nil, a fresh insert gets no parent, but an update keeps
// whatever parent candidate already carried (a nil parent on update is
// not a request to detach it — that goes through AdoptGrandChildren or
// RemoveCacheEntryChildren instead). The Value Extractor (Extract) is
// then run against the now-stored Variable, and a clone of the final
// stored Variable is returned.
func (c *VariableCache) CacheVariable(parent *Key, candidate Variable, mem TargetMemory) (Variable, error) {
	c.checkOwnership()

	if parent != nil {
		if _, ok := c.variables[*parent]; !ok {
			return Variable{}, curated.Errorf(ErrBadParent, int64(*parent))
		}
		candidate.ParentKey = *parent
		candidate.HasParent = true
	} else if candidate.Key == 0 {
		candidate.HasParent = false
	}

	if candidate.Key == 0 {
		k := allocateKey()
		if _, exists := c.variables[k]; exists {
			return Variable{}, curated.Errorf(ErrDuplicateKey, int64(k))
		}
		candidate.Key = k
	} else if _, ok := c.variables[candidate.Key]; !ok {
		return Variable{}, curated.Errorf(ErrUnknownKey, int64(candidate.Key))
	}

	c.variables[candidate.Key] = candidate

	stored := c.variables[candidate.Key]
	Extract(&stored, mem, c)
	c.variables[stored.Key] = stored

	return stored.Clone(), nil
}

// GetVariableByKey returns a clone of the Variable with the given key, if
// any is cached.
func (c *VariableCache) GetVariableByKey(key Key) (Variable, bool) {
	c.checkOwnership()
	v, ok := c.variables[key]
	return v.Clone(), ok
}

// GetVariableByNameAndParent returns a clone of the Variable with the
// given name and parent (parent == nil means root). If more than one
// Variable matches, the one with the largest key (i.e. the most recently
// inserted) is returned and a warning is logged.
func (c *VariableCache) GetVariableByNameAndParent(name Name, parent *Key) (Variable, bool) {
	c.checkOwnership()

	var best Variable
	found := false
	matches := 0

	for _, v := range c.variables {
		if v.Name != name {
			continue
		}
		if parent == nil {
			if v.HasParent {
				continue
			}
		} else {
			if !v.HasParent || v.ParentKey != *parent {
				continue
			}
		}

		matches++
		if !found || v.Key > best.Key {
			best = v
			found = true
		}
	}

	if matches > 1 {
		logger.Logf("debug: variable cache", "multiple variables named %q share a parent; returning the most recently inserted", name.String())
	}

	return best.Clone(), found
}

// GetVariableByName returns a clone of the first Variable (by ascending
// key, i.e. insertion order) with the given name, regardless of parent.
// If more than one Variable matches, a warning is logged.
func (c *VariableCache) GetVariableByName(name Name) (Variable, bool) {
	c.checkOwnership()

	var best Variable
	found := false
	matches := 0

	for _, v := range c.variables {
		if v.Name != name {
			continue
		}
		matches++
		if !found || v.Key < best.Key {
			best = v
			found = true
		}
	}

	if matches > 1 {
		logger.Logf("debug: variable cache", "multiple variables named %q in cache; returning the first inserted", name.String())
	}

	return best.Clone(), found
}

// GetChildren returns clones of every Variable whose parent is the given
// key (parent == nil means root), ordered ascending by key (spec.md §4.2,
// §5 "Ordering guarantees").
func (c *VariableCache) GetChildren(parent *Key) []Variable {
	c.checkOwnership()

	var children []Variable
	for _, v := range c.variables {
		if parent == nil {
			if v.HasParent {
				continue
			}
		} else {
			if !v.HasParent || v.ParentKey != *parent {
				continue
			}
		}
		children = append(children, v.Clone())
	}

	sort.Slice(children, func(i, j int) bool { return children[i].Key < children[j].Key })

	return children
}

// HasChildren reports whether variable has at least one child in the
// cache.
func (c *VariableCache) HasChildren(variable Variable) bool {
	return len(c.GetChildren(&variable.Key)) > 0
}

// AdoptGrandChildren collapses an intermediate DWARF node out of the
// cache: every current child of obsoleteChild is reassigned to
// newParent, and obsoleteChild is then removed (spec.md §4.2).
//
// The collapse only happens if obsoleteChild's type is Unknown or its
// node type is anything other than DoNotRecurse; otherwise this is a
// silent no-op, because obsoleteChild is presumed to be a real,
// user-meaningful node rather than a DWARF-emitted intermediate wrapper
// (spec.md §9, "Open question — intermediate-node detection").
func (c *VariableCache) AdoptGrandChildren(newParent Variable, obsoleteChild Variable) error {
	c.checkOwnership()

	if obsoleteChild.Type.Kind != TypeUnknown && obsoleteChild.NodeType.Kind == NodeDoNotRecurse {
		return nil
	}

	for _, child := range c.GetChildren(&obsoleteChild.Key) {
		child.ParentKey = newParent.Key
		child.HasParent = true
		c.variables[child.Key] = child
	}

	return c.RemoveCacheEntry(obsoleteChild.Key)
}

// RemoveCacheEntryChildren removes every current direct child of key.
// Because RemoveCacheEntry is itself recursive, this in turn removes
// entire subtrees rooted at each direct child.
func (c *VariableCache) RemoveCacheEntryChildren(key Key) error {
	c.checkOwnership()

	for _, child := range c.GetChildren(&key) {
		if err := c.removeCacheEntry(child.Key); err != nil {
			return err
		}
	}
	return nil
}

// RemoveCacheEntry removes key and every descendant of key from the
// cache (spec.md §4.2).
func (c *VariableCache) RemoveCacheEntry(key Key) error {
	c.checkOwnership()
	return c.removeCacheEntry(key)
}

// removeCacheEntry is the unexported, non-ownership-checked recursive
// implementation shared by RemoveCacheEntry and RemoveCacheEntryChildren
// (avoiding repeated goroutine-ownership logging on every recursive
// step).
func (c *VariableCache) removeCacheEntry(key Key) error {
	var children []Key
	for k, v := range c.variables {
		if v.HasParent && v.ParentKey == key {
			children = append(children, k)
		}
	}
	for _, child := range children {
		if err := c.removeCacheEntry(child); err != nil {
			return err
		}
	}

	if _, ok := c.variables[key]; !ok {
		return curated.Errorf(ErrRemoveFailed, int64(key))
	}
	delete(c.variables, key)

	return nil
}
