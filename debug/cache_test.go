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
	"testing"

	"github.com/Foundation-Devices/probe-rs/curated"
	"github.com/Foundation-Devices/probe-rs/test"
)

// Invariant 1: a Variable's Key is unset (zero) until it has been
// interned via CacheVariable.
func TestCacheVariableAssignsFreshKey(t *testing.T) {
	mem := newMemTarget()
	cache := NewVariableCache()

	v := Variable{Name: Name{Kind: NameNamed, Text: "x"}}
	stored, err := cache.CacheVariable(nil, v, mem)
	test.ExpectSuccess(t, err)
	test.ExpectInequality(t, stored.Key, Key(0))
}

// cache_variable with a parent key that does not exist fails BadParent.
func TestCacheVariableBadParent(t *testing.T) {
	mem := newMemTarget()
	cache := NewVariableCache()

	bogus := Key(999)
	_, err := cache.CacheVariable(&bogus, Variable{Name: Name{Kind: NameNamed, Text: "x"}}, mem)
	if test.ExpectFailure(t, err) {
		test.ExpectEquality(t, curated.Is(err, ErrBadParent), true)
	}
}

// cache_variable with a non-zero key that isn't already cached fails
// UnknownKey rather than silently inserting.
func TestCacheVariableUnknownKeyOnUpdate(t *testing.T) {
	mem := newMemTarget()
	cache := NewVariableCache()

	v := Variable{Key: Key(123456), Name: Name{Kind: NameNamed, Text: "x"}}
	_, err := cache.CacheVariable(nil, v, mem)
	if test.ExpectFailure(t, err) {
		test.ExpectEquality(t, curated.Is(err, ErrUnknownKey), true)
	}
}

// get_variable_by_name_and_parent returns the most-recently-inserted
// match when more than one Variable shares a name under the same parent.
func TestGetVariableByNameAndParentPrefersLatest(t *testing.T) {
	mem := newMemTarget()
	cache := NewVariableCache()

	parent, err := cache.CacheVariable(nil, Variable{Name: Name{Kind: NameNamed, Text: "scope"}}, mem)
	test.ExpectSuccess(t, err)
	parentKey := parent.Key

	first, err := cache.CacheVariable(&parentKey, Variable{Name: Name{Kind: NameNamed, Text: "x"}}, mem)
	test.ExpectSuccess(t, err)
	second, err := cache.CacheVariable(&parentKey, Variable{Name: Name{Kind: NameNamed, Text: "x"}}, mem)
	test.ExpectSuccess(t, err)

	got, ok := cache.GetVariableByNameAndParent(Name{Kind: NameNamed, Text: "x"}, &parentKey)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, got.Key, second.Key)
	test.ExpectInequality(t, got.Key, first.Key)
}

// get_children returns clones ordered ascending by key (insertion order),
// and has_children reflects that list.
func TestGetChildrenOrderAndHasChildren(t *testing.T) {
	mem := newMemTarget()
	cache := NewVariableCache()

	root, err := cache.CacheVariable(nil, Variable{Name: Name{Kind: NameNamed, Text: "root"}}, mem)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cache.HasChildren(root), false)

	rootKey := root.Key
	first, err := cache.CacheVariable(&rootKey, Variable{Name: Name{Kind: NameNamed, Text: "a"}}, mem)
	test.ExpectSuccess(t, err)
	second, err := cache.CacheVariable(&rootKey, Variable{Name: Name{Kind: NameNamed, Text: "b"}}, mem)
	test.ExpectSuccess(t, err)

	children := cache.GetChildren(&rootKey)
	test.ExpectEquality(t, len(children), 2)
	test.ExpectEquality(t, children[0].Key, first.Key)
	test.ExpectEquality(t, children[1].Key, second.Key)

	root, _ = cache.GetVariableByKey(rootKey)
	test.ExpectEquality(t, cache.HasChildren(root), true)
}

// S6: adopt_grand_children reassigns an intermediate node's children to
// the new parent and removes the intermediate node, when the
// intermediate node's type is Unknown.
func TestAdoptGrandChildrenCollapsesUnknownIntermediate(t *testing.T) {
	mem := newMemTarget()
	cache := NewVariableCache()

	p, err := cache.CacheVariable(nil, Variable{Name: Name{Kind: NameNamed, Text: "P"}}, mem)
	test.ExpectSuccess(t, err)

	intermediate, err := cache.CacheVariable(nil, Variable{
		Name: Name{Kind: NameNamed, Text: "I"},
		Type: VariableType{Kind: TypeUnknown},
	}, mem)
	test.ExpectSuccess(t, err)
	iKey := intermediate.Key

	c1, err := cache.CacheVariable(&iKey, Variable{Name: Name{Kind: NameNamed, Text: "c1"}}, mem)
	test.ExpectSuccess(t, err)
	c2, err := cache.CacheVariable(&iKey, Variable{Name: Name{Kind: NameNamed, Text: "c2"}}, mem)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, cache.AdoptGrandChildren(p, intermediate))

	_, stillPresent := cache.GetVariableByKey(iKey)
	test.ExpectEquality(t, stillPresent, false)

	gotC1, ok := cache.GetVariableByKey(c1.Key)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, gotC1.ParentKey, p.Key)

	gotC2, ok := cache.GetVariableByKey(c2.Key)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, gotC2.ParentKey, p.Key)
}

// adopt_grand_children is a no-op when the intermediate node is a real,
// non-Unknown-typed node marked DoNotRecurse.
func TestAdoptGrandChildrenNoOpForDoNotRecurse(t *testing.T) {
	mem := newMemTarget()
	cache := NewVariableCache()

	p, err := cache.CacheVariable(nil, Variable{Name: Name{Kind: NameNamed, Text: "P"}}, mem)
	test.ExpectSuccess(t, err)

	leaf, err := cache.CacheVariable(nil, Variable{
		Name:     Name{Kind: NameNamed, Text: "leaf"},
		Type:     VariableType{Kind: TypeBase, Name: "u32"},
		NodeType: NodeType{Kind: NodeDoNotRecurse},
	}, mem)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, cache.AdoptGrandChildren(p, leaf))

	_, stillPresent := cache.GetVariableByKey(leaf.Key)
	test.ExpectSuccess(t, stillPresent)
}

// remove_cache_entry recursively removes a key and every descendant.
func TestRemoveCacheEntryRecursive(t *testing.T) {
	mem := newMemTarget()
	cache := NewVariableCache()

	root, err := cache.CacheVariable(nil, Variable{Name: Name{Kind: NameNamed, Text: "root"}}, mem)
	test.ExpectSuccess(t, err)
	rootKey := root.Key

	child, err := cache.CacheVariable(&rootKey, Variable{Name: Name{Kind: NameNamed, Text: "child"}}, mem)
	test.ExpectSuccess(t, err)
	childKey := child.Key

	grandchild, err := cache.CacheVariable(&childKey, Variable{Name: Name{Kind: NameNamed, Text: "grandchild"}}, mem)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, cache.RemoveCacheEntry(rootKey))

	_, ok := cache.GetVariableByKey(rootKey)
	test.ExpectEquality(t, ok, false)
	_, ok = cache.GetVariableByKey(childKey)
	test.ExpectEquality(t, ok, false)
	_, ok = cache.GetVariableByKey(grandchild.Key)
	test.ExpectEquality(t, ok, false)
}

// remove_cache_entry on an absent key fails RemoveFailed.
func TestRemoveCacheEntryAbsentFails(t *testing.T) {
	cache := NewVariableCache()
	err := cache.RemoveCacheEntry(Key(42))
	if test.ExpectFailure(t, err) {
		test.ExpectEquality(t, curated.Is(err, ErrRemoveFailed), true)
	}
}
