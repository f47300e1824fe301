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

	"github.com/BurntSushi/toml"
)

// Config holds the sweep parameters of a sampling run.
type Config struct {
	Capacity      int     `toml:"capacity"`
	Points        int     `toml:"points"`
	MaxLoadFactor float64 `toml:"max-load-factor"`
	InsertSeed    uint64  `toml:"insert-seed"`
	MissSeed      uint64  `toml:"miss-seed"`
}

// DefaultConfig returns the reference sweep parameters.
func DefaultConfig() Config {
	return Config{
		Capacity:      DefaultCapacity,
		Points:        DefaultPoints,
		MaxLoadFactor: DefaultMaxLoadFactor,
		InsertSeed:    DefaultInsertSeed,
		MissSeed:      DefaultMissSeed,
	}
}

// LoadConfig reads a TOML sweep configuration from path. Fields absent
// from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports whether the configuration describes a runnable
// sweep.
func (c Config) Validate() error {
	if c.Capacity <= 0 || c.Capacity&(c.Capacity-1) != 0 {
		return fmt.Errorf("capacity %d is not a power of two", c.Capacity)
	}
	if c.Points < 1 {
		return fmt.Errorf("points %d is not positive", c.Points)
	}
	if c.MaxLoadFactor < 0 || c.MaxLoadFactor > DefaultMaxLoadFactor {
		return fmt.Errorf("max load factor %g is outside [0, %g]",
			c.MaxLoadFactor, DefaultMaxLoadFactor)
	}
	if c.InsertSeed == c.MissSeed {
		return fmt.Errorf("insert seed and miss seed are both %d; the miss stream must differ from the insertion stream",
			c.InsertSeed)
	}
	return nil
}

// Options expands the configuration into sampler options.
func (c Config) Options() []option {
	return []option{
		WithCapacity(c.Capacity),
		WithPoints(c.Points),
		WithMaxLoadFactor(c.MaxLoadFactor),
		WithSeeds(c.InsertSeed, c.MissSeed),
	}
}
