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

// Package probestat estimates, by simulation, probe-sequence
// statistics of two families of grouped open-addressing hash tables: a
// boost::unordered_flat_map-style table (fixed-capacity groups with a
// per-group overflow bitmap) and an absl::flat_hash_map-style table (a
// flat slot array probed through overlapping windows, terminated by
// empty slots). See https://abseil.io/about/design/swisstables for the
// design family being modelled.
//
// The tables are deliberately simplified: keys are already-uniform
// random values standing in for hashes, there is no deletion and no
// resizing. What is reproduced exactly is the probe arithmetic, the
// group capacity semantics, the overflow tracking and the tag-based
// comparison pruning, since those are what determine the measured
// statistics.
package probestat

// Table is the capability set shared by the simulated models. Both
// tables are exclusive to a single sampling run and are not
// goroutine-safe.
type Table interface {
	// Insert places h into the table. It returns false, without
	// modifying the table, if h is already present.
	Insert(h uint64) bool
	// Find reports whether h is present, along with the probe cost of
	// the lookup.
	Find(h uint64) (Cost, bool)
	// PrGroupFull returns the fraction of probe groups that are
	// saturated.
	PrGroupFull() float64
	// SlotsPerGroup returns the model's nominal per-group capacity.
	SlotsPerGroup() int
	// Len returns the number of stored elements.
	Len() int
}

// KeySource yields the pre-hashed keys fed to a table. Reseeding with
// the same seed must replay the identical sequence; the sampler relies
// on this to revisit the inserted key set during successful-lookup
// measurement.
type KeySource interface {
	Seed(seed uint64)
	Uint64() uint64
}

// Model pairs a table constructor with the label its statistics are
// reported under.
type Model struct {
	Label string
	New   func(capacity int) Table
}

// Models lists the simulated designs in report order.
func Models() []Model {
	return []Model{
		{
			Label: "boost::unordered_flat_map",
			New:   func(capacity int) Table { return NewGroupedTable(capacity) },
		},
		{
			Label: "absl::flat_hash_map",
			New:   func(capacity int) Table { return NewSegmentedTable(capacity) },
		},
	}
}
