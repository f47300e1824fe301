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
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSweepOptions() []option {
	return []option{
		WithCapacity(64),
		WithPoints(12),
	}
}

// runSweep runs a small sweep for every model and returns the output.
func runSweep(t *testing.T, options ...option) string {
	t.Helper()
	var buf bytes.Buffer
	s := NewSampler(options...)
	for _, m := range Models() {
		require.NoError(t, s.Run(&buf, m.Label, m.New))
	}
	return buf.String()
}

// parseRows returns the data rows following the given label, each
// split into its six float fields.
func parseRows(t *testing.T, out, label string) [][]float64 {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	start := -1
	for i, l := range lines {
		if l == label {
			start = i
			break
		}
	}
	require.GreaterOrEqual(t, start, 0, "label %q not found", label)
	require.Equal(t, strings.TrimSuffix(header, "\n"), lines[start+1])

	var rows [][]float64
	for _, l := range lines[start+2:] {
		if !strings.Contains(l, ";") {
			break
		}
		fields := strings.Split(l, ";")
		require.Len(t, fields, 6)
		row := make([]float64, 6)
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			require.NoError(t, err)
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows
}

func TestSamplerOutputShape(t *testing.T) {
	out := runSweep(t, testSweepOptions()...)
	for _, m := range Models() {
		rows := parseRows(t, out, m.Label)
		require.Len(t, rows, 12)

		// The first row samples an empty table.
		require.Equal(t, []float64{0, 0, 0, 0, 0, 0}, rows[0])

		// Load factors are equally spaced from 0 to the maximum.
		require.InDelta(t, DefaultMaxLoadFactor, rows[len(rows)-1][0], 1e-9)
		for i := 1; i < len(rows); i++ {
			require.Greater(t, rows[i][0], rows[i-1][0])
		}
	}
}

func TestSamplerDeterminism(t *testing.T) {
	first := runSweep(t, testSweepOptions()...)
	second := runSweep(t, testSweepOptions()...)
	require.Equal(t, first, second)

	// Different seeds change the measurement.
	reseeded := runSweep(t, append(testSweepOptions(), WithSeeds(7, 8))...)
	require.NotEqual(t, first, reseeded)
}

func TestSamplerPrGroupFullMonotonic(t *testing.T) {
	out := runSweep(t, testSweepOptions()...)
	for _, m := range Models() {
		rows := parseRows(t, out, m.Label)
		prev := 0.0
		for _, row := range rows {
			require.GreaterOrEqual(t, row[1], prev, "model=%s lf=%g", m.Label, row[0])
			prev = row[1]
		}
	}
}

func TestSamplerSuccessfulLookupCost(t *testing.T) {
	out := runSweep(t, testSweepOptions()...)
	for _, m := range Models() {
		rows := parseRows(t, out, m.Label)
		for _, row := range rows[1:] {
			// Every successful lookup ends with a confirming equality
			// check, so its mean comparison count is at least 1.
			require.GreaterOrEqual(t, row[3], 1.0, "model=%s lf=%g", m.Label, row[0])
		}
	}
}

func TestSamplerSinglePoint(t *testing.T) {
	out := runSweep(t, WithCapacity(64), WithPoints(1))
	for _, m := range Models() {
		rows := parseRows(t, out, m.Label)
		require.Len(t, rows, 1)
		require.Equal(t, []float64{0, 0, 0, 0, 0, 0}, rows[0])
	}
}

func TestCostAdd(t *testing.T) {
	a := Cost{Hops: 1, Cmps: 2}
	b := Cost{Hops: 3, Cmps: 5}
	require.Equal(t, Cost{Hops: 4, Cmps: 7}, a.Add(b))
	require.Equal(t, a.Add(b), b.Add(a))
	require.Equal(t, a, a.Add(Cost{}))
}
