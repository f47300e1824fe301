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
	"io"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// Default sweep parameters, matching the reference measurement of the
// simulated designs.
const (
	// DefaultCapacity is the number of probe groups per table.
	DefaultCapacity = 0x20000
	// DefaultPoints is the number of load factors swept, equally
	// spaced from 0 to the maximum.
	DefaultPoints = 101
	// DefaultMaxLoadFactor is the load factor the sweep ends at. It is
	// a pragmatic ceiling below which insertion never saturates a
	// table, not a proven bound.
	DefaultMaxLoadFactor = 0.875
	// DefaultInsertSeed seeds the key stream used for insertion and
	// replayed for successful lookups.
	DefaultInsertSeed = 0
	// DefaultMissSeed seeds the key stream used for unsuccessful
	// lookups.
	DefaultMissSeed = 1
)

// header is the column line emitted before the data rows of each
// model.
const header = "load factor;Pr(group full);" +
	"E(num hops), successful lookup;E(num cmps), successful lookup;" +
	"E(num hops), unsuccessful lookup;E(num cmps), unsuccessful lookup\n"

// Sampler sweeps a table model across load factors, measuring averaged
// probe costs and group saturation at each point. Each sampled row
// builds a fresh table, so a Sampler can be reused across models. A
// Sampler is not goroutine-safe.
type Sampler struct {
	capacity   int
	points     int
	mlf        float64
	insertSeed uint64
	missSeed   uint64
	src        KeySource
	log        *zap.Logger
}

// NewSampler constructs a Sampler with the reference sweep parameters.
// Options can override the capacity, sweep resolution, seeds, key
// source and logger.
func NewSampler(options ...option) *Sampler {
	s := &Sampler{
		capacity:   DefaultCapacity,
		points:     DefaultPoints,
		mlf:        DefaultMaxLoadFactor,
		insertSeed: DefaultInsertSeed,
		missSeed:   DefaultMissSeed,
		src:        rand.New(rand.NewSource(0)),
		log:        zap.NewNop(),
	}
	for _, op := range options {
		op.apply(s)
	}
	return s
}

// Run sweeps the model across the configured load factors and writes a
// label line, a header line and one semicolon-separated row per load
// factor to w. Output depends only on the configured seeds, so two
// runs with identical parameters produce identical bytes.
func (s *Sampler) Run(w io.Writer, label string, newTable func(capacity int) Table) error {
	s.log.Info("sampling model",
		zap.String("model", label),
		zap.Int("groups", s.capacity),
		zap.Int("points", s.points),
		zap.Float64("maxLoadFactor", s.mlf))

	if _, err := fmt.Fprintf(w, "%s\n", label); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	steps := s.points - 1
	if steps == 0 {
		steps = 1
	}
	for i := 0; i < s.points; i++ {
		lf := s.mlf * float64(i) / float64(steps)
		if err := s.row(w, lf, newTable); err != nil {
			return err
		}
	}
	return nil
}

// row samples a single load factor: build a fresh table, insert the
// target population, then measure successful lookups by replaying the
// insertion stream and unsuccessful lookups from the miss stream.
func (s *Sampler) row(w io.Writer, lf float64, newTable func(capacity int) Table) error {
	t := newTable(s.capacity)
	size := int(float64(s.capacity) * lf * float64(t.SlotsPerGroup()))

	// Duplicate draws from the stream insert nothing and don't count
	// toward the target population.
	s.src.Seed(s.insertSeed)
	for n := 0; n != size; {
		if t.Insert(s.src.Uint64()) {
			n++
		}
	}

	// Replaying the insertion seed revisits exactly the inserted key
	// set, so every one of these lookups succeeds.
	var hit Cost
	s.src.Seed(s.insertSeed)
	for n := 0; n != size; n++ {
		c, _ := t.Find(s.src.Uint64())
		hit = hit.Add(c)
	}

	// Keys from the miss stream that happen to collide with inserted
	// ones are skipped; only observed misses count.
	var miss Cost
	s.src.Seed(s.missSeed)
	for n := 0; n != size; {
		c, ok := t.Find(s.src.Uint64())
		if !ok {
			miss = miss.Add(c)
			n++
		}
	}

	s.log.Debug("sampled row",
		zap.Float64("loadFactor", lf),
		zap.Int("size", size),
		zap.Int("stored", t.Len()))

	_, err := fmt.Fprintf(w, "%g;%g;%g;%g;%g;%g\n",
		lf, t.PrGroupFull(),
		mean(hit.Hops, size), mean(hit.Cmps, size),
		mean(miss.Hops, size), mean(miss.Cmps, size))
	return err
}

// mean averages a cost total over n lookups, reporting 0 when none
// were performed.
func mean(total uint64, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
