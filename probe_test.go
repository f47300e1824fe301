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
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func genProbeSeq(n int, pos, mask uint64) []uint64 {
	seq := makeProbeSeq(pos)
	vals := make([]uint64, n)
	for i := 0; i < n; i++ {
		vals[i] = seq.get()
		seq.next(mask)
	}
	return vals
}

func TestProbeSeq(t *testing.T) {
	// The triangular sequence from the Abseil probing test cases.
	expected := []uint64{0, 1, 3, 6, 10, 15, 5, 12, 4, 13, 7, 2, 14, 11, 9, 8}
	require.Equal(t, expected, genProbeSeq(16, 0, 15))
}

func TestProbeSeqFullCycle(t *testing.T) {
	// A full cycle with mask m-1 visits every group exactly once, no
	// matter where it starts.
	for _, m := range []uint64{1, 2, 4, 8, 16, 64, 1024} {
		for _, start := range []uint64{0, 1, m / 2, m - 1} {
			vals := genProbeSeq(int(m), start%m, m-1)
			sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
			for i, v := range vals {
				require.EqualValues(t, i, v, "m=%d start=%d", m, start)
			}
		}
	}
}

func TestProbeSeqExhaustion(t *testing.T) {
	// next keeps returning true until mask+1 groups have been visited,
	// then signals exhaustion.
	const mask = 7
	seq := makeProbeSeq(3)
	visited := 1
	for seq.next(mask) {
		visited++
	}
	require.Equal(t, mask+1, visited)

	// Driving the sequence further is allowed; it re-enters groups
	// already visited.
	require.Less(t, seq.get(), uint64(mask+1))
}
