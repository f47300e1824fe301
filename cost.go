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

// Cost tallies the work performed by a single table probe: the number
// of groups visited beyond the first (hops) and the number of element
// comparisons performed, tag-induced false positives included.
type Cost struct {
	Hops uint64
	Cmps uint64
}

// Add returns the component-wise sum of c and o. The zero Cost is the
// identity; Add is commutative and associative.
func (c Cost) Add(o Cost) Cost {
	return Cost{Hops: c.Hops + o.Hops, Cmps: c.Cmps + o.Cmps}
}
