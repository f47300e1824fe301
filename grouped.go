// Copyright 2024 The Probestat Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package probestat

import (
	"fmt"
	"math/bits"
)

// groupedSlots is the per-group element capacity of the grouped model.
// One byte of the simulated design's 16-byte metadata word holds the
// overflow bitmap, leaving room for 15 elements.
const groupedSlots = 15

// group is a fixed-capacity bucket of the grouped model. Elements keep
// insertion order; n is the number of occupied slots.
type group struct {
	elements [groupedSlots]uint64
	n        int
	// overflow records, per hash%8 equivalence class, whether any key
	// of that class has ever spilled past this group during insertion.
	// Bits are set and never cleared for the lifetime of the table.
	overflow uint8
}

func (g *group) full() bool {
	return g.n == groupedSlots
}

// GroupedTable models a boost::unordered_flat_map-style table: buckets
// are groups of up to 15 elements, an unsuccessful lookup stops at the
// first group whose overflow bitmap proves the key's equivalence class
// never spilled past it, and a reduced one-byte tag prunes equality
// comparisons within a group.
type GroupedTable struct {
	groups []group
	// shift is chosen so that the top bits of a hash select the group,
	// leaving the low bits for the reduced tag and the overflow class.
	shift uint
	used  int
}

var _ Table = (*GroupedTable)(nil)

// NewGroupedTable constructs a table with the given number of groups,
// which must be a power of two.
func NewGroupedTable(capacity int) *GroupedTable {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic(fmt.Sprintf("capacity %d is not a power of two", capacity))
	}
	return &GroupedTable{
		groups: make([]group, capacity),
		shift:  64 - uint(bits.Len(uint(capacity-1))),
	}
}

// reducedTag is the one-byte digest used to prune equality
// comparisons: the low 8 bits of the hash, with the reserved metadata
// byte values 0 and 1 remapped to 8 and 9 so a tag never collides with
// the simulated design's sentinel markers.
func reducedTag(h uint64) uint8 {
	switch t := uint8(h); t {
	case 0:
		return 8
	case 1:
		return 9
	default:
		return t
	}
}

func (t *GroupedTable) positionFor(h uint64) uint64 {
	return h >> t.shift
}

func (t *GroupedTable) overflowBit(h uint64) uint8 {
	return 1 << (h % 8)
}

// Find reports whether h is present. A comparison is counted for every
// stored element whose reduced tag matches h's tag: a tag hit forces a
// full equality check in the simulated design even when the element
// ultimately differs. The matching element itself counts exactly one
// comparison.
func (t *GroupedTable) Find(h uint64) (Cost, bool) {
	var cost Cost
	mask := uint64(len(t.groups) - 1)
	tag := reducedTag(h)
	for seq := makeProbeSeq(t.positionFor(h)); ; seq.next(mask) {
		g := &t.groups[seq.get()]
		for i := 0; i < g.n; i++ {
			if g.elements[i] == h {
				cost.Cmps++
				return cost, true
			}
			if reducedTag(g.elements[i]) == tag {
				cost.Cmps++
			}
		}
		if g.overflow&t.overflowBit(h) == 0 {
			// No key of h's class ever spilled past this group, so h
			// is provably absent.
			return cost, false
		}
		cost.Hops++
	}
}

// Insert places h into the first group along its probe sequence with a
// free slot, marking the overflow bit for h's class on every full
// group skipped along the way. It returns false if h is already
// present.
func (t *GroupedTable) Insert(h uint64) bool {
	if _, ok := t.Find(h); ok {
		return false
	}
	mask := uint64(len(t.groups) - 1)
	for seq := makeProbeSeq(t.positionFor(h)); ; {
		g := &t.groups[seq.get()]
		if !g.full() {
			g.elements[g.n] = h
			g.n++
			t.used++
			return true
		}
		g.overflow |= t.overflowBit(h)
		if !seq.next(mask) {
			// A full probe cycle visited every group and found no
			// room. The load-factor ceiling is supposed to make this
			// unreachable.
			panic("grouped table saturated: every group is full")
		}
	}
}

// PrGroupFull returns the fraction of groups holding their maximum of
// 15 elements.
func (t *GroupedTable) PrGroupFull() float64 {
	full := 0
	for i := range t.groups {
		if t.groups[i].full() {
			full++
		}
	}
	return float64(full) / float64(len(t.groups))
}

// SlotsPerGroup returns the per-group element capacity, 15.
func (t *GroupedTable) SlotsPerGroup() int {
	return groupedSlots
}

// Len returns the number of stored elements.
func (t *GroupedTable) Len() int {
	return t.used
}
