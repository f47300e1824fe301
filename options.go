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

import "go.uber.org/zap"

// option provides an interface to do work on a Sampler while it is
// being created.
type option interface {
	apply(s *Sampler)
}

type optionFunc func(*Sampler)

func (f optionFunc) apply(s *Sampler) {
	f(s)
}

// WithCapacity is an option setting the number of probe groups per
// sampled table. capacity must be a power of two.
func WithCapacity(capacity int) option {
	return optionFunc(func(s *Sampler) { s.capacity = capacity })
}

// WithPoints is an option setting the number of load factors sampled,
// equally spaced from 0 to the maximum load factor.
func WithPoints(points int) option {
	return optionFunc(func(s *Sampler) { s.points = points })
}

// WithMaxLoadFactor is an option setting the load factor the sweep
// ends at. Values above DefaultMaxLoadFactor risk saturating a table
// mid-insert.
func WithMaxLoadFactor(mlf float64) option {
	return optionFunc(func(s *Sampler) { s.mlf = mlf })
}

// WithSeeds is an option setting the seeds of the insertion stream and
// of the unsuccessful-lookup stream.
func WithSeeds(insert, miss uint64) option {
	return optionFunc(func(s *Sampler) {
		s.insertSeed = insert
		s.missSeed = miss
	})
}

// WithKeySource is an option replacing the random key generator. The
// source must replay an identical sequence after reseeding with the
// same seed.
func WithKeySource(src KeySource) option {
	return optionFunc(func(s *Sampler) { s.src = src })
}

// WithLogger is an option setting the logger sweep progress is
// reported to. The default is a no-op logger; progress never goes to
// the statistics writer.
func WithLogger(log *zap.Logger) option {
	return optionFunc(func(s *Sampler) { s.log = log })
}
