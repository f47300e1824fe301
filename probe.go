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

// probeSeq maintains the state for a probe sequence over group indices.
// The sequence is a triangular progression of the form
//
//	p(i) := pos0 + (i^2 + i)/2 (mod mask+1)
//
// It turns out that this sequence visits every group exactly once if
// the number of groups is a power of two, since (i^2+i)/2 is a
// bijection in Z/(2^m). See
// https://en.wikipedia.org/wiki/Quadratic_probing
type probeSeq struct {
	pos  uint64
	step uint64
}

func makeProbeSeq(pos uint64) probeSeq {
	return probeSeq{pos: pos}
}

// get returns the current group index.
func (s *probeSeq) get() uint64 {
	return s.pos
}

// next advances one triangular step. It returns true while unvisited
// groups may remain; once false is returned, every group has been
// visited and further steps only re-enter groups already seen. mask
// must be a power of two minus one.
func (s *probeSeq) next(mask uint64) bool {
	s.step++
	s.pos = (s.pos + s.step) & mask
	return s.step <= mask
}
