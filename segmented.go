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

import "fmt"

// segmentedSlots is the window width of the segmented model, matching
// the 16-byte SIMD metadata group of the simulated design.
const segmentedSlots = 16

// slot is an optional element. A separate occupancy flag avoids
// reserving a key value as the empty sentinel.
type slot struct {
	hash uint64
	full bool
}

// SegmentedTable models an absl::flat_hash_map-style table: a single
// flat, circular array of capacity*16 optional slots. A key's initial
// position splits into a probe group, advanced by the probe sequence,
// and a fixed offset within the group that is preserved across every
// probed group. The low 7 bits of a key act as the metadata tag and an
// empty slot in a window terminates an unsuccessful lookup.
type SegmentedTable struct {
	slots []slot
	used  int
}

var _ Table = (*SegmentedTable)(nil)

// NewSegmentedTable constructs a table with the given number of probe
// groups, which must be a power of two. Physical storage is
// capacity*16 slots, all initially empty.
func NewSegmentedTable(capacity int) *SegmentedTable {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic(fmt.Sprintf("capacity %d is not a power of two", capacity))
	}
	return &SegmentedTable{slots: make([]slot, capacity*segmentedSlots)}
}

// positionFor derives a flat slot index from middle hash bits; the low
// 7 bits are the tag and take no part in placement.
func (t *SegmentedTable) positionFor(h uint64) uint64 {
	return (h >> 7) & uint64(len(t.slots)-1)
}

// at returns the slot at pos modulo the array length. Windows near the
// end of the array wrap around to the front.
func (t *SegmentedTable) at(pos uint64) *slot {
	return &t.slots[pos&uint64(len(t.slots)-1)]
}

// Find reports whether h is present. Within each probed window a
// comparison is counted for every occupied slot whose low 7 bits match
// h's, whether or not the full value matches; the matching slot itself
// counts exactly one comparison. A window containing an empty slot
// proves h absent and ends the search.
func (t *SegmentedTable) Find(h uint64) (Cost, bool) {
	var cost Cost
	pos := t.positionFor(h)
	off := pos % segmentedSlots
	mask := uint64(len(t.slots)/segmentedSlots - 1)
	for seq := makeProbeSeq(pos / segmentedSlots); ; seq.next(mask) {
		base := seq.get()*segmentedSlots + off
		empty := false
		for i := uint64(0); i < segmentedSlots; i++ {
			s := t.at(base + i)
			if !s.full {
				empty = true
				continue
			}
			if s.hash == h {
				cost.Cmps++
				return cost, true
			}
			if s.hash&0x7f == h&0x7f {
				cost.Cmps++
			}
		}
		if empty {
			return cost, false
		}
		cost.Hops++
	}
}

// Insert places h into the first empty slot of the first non-full
// window along its probe sequence. It returns false if h is already
// present.
func (t *SegmentedTable) Insert(h uint64) bool {
	if _, ok := t.Find(h); ok {
		return false
	}
	pos := t.positionFor(h)
	off := pos % segmentedSlots
	mask := uint64(len(t.slots)/segmentedSlots - 1)
	for seq := makeProbeSeq(pos / segmentedSlots); ; {
		base := seq.get()*segmentedSlots + off
		for i := uint64(0); i < segmentedSlots; i++ {
			if s := t.at(base + i); !s.full {
				s.hash = h
				s.full = true
				t.used++
				return true
			}
		}
		if !seq.next(mask) {
			// The windows visited by a full probe cycle tile the whole
			// array, so finding no empty slot means the table is
			// completely full. The load-factor ceiling is supposed to
			// make this unreachable.
			panic("segmented table saturated: every slot is occupied")
		}
	}
}

// PrGroupFull returns the fraction of probe windows containing no
// empty slot. Every raw slot position starts a window, matching the
// simulated design's unaligned group granularity; overlapping windows
// are all counted rather than deduplicated to group boundaries.
func (t *SegmentedTable) PrGroupFull() float64 {
	full := 0
	for pos := range t.slots {
		if t.windowFull(uint64(pos)) {
			full++
		}
	}
	return float64(full) / float64(len(t.slots))
}

func (t *SegmentedTable) windowFull(base uint64) bool {
	for i := uint64(0); i < segmentedSlots; i++ {
		if !t.at(base + i).full {
			return false
		}
	}
	return true
}

// SlotsPerGroup returns the window width, 16.
func (t *SegmentedTable) SlotsPerGroup() int {
	return segmentedSlots
}

// Len returns the number of stored elements.
func (t *SegmentedTable) Len() int {
	return t.used
}
