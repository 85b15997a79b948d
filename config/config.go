// This file is part of probe-rs.
//
// probe-rs is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// probe-rs is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with probe-rs.  If not, see <https://www.gnu.org/licenses/>.

// Package config resolves the handful of knobs the variable resolution
// core and its command-line front end need, from (in ascending priority)
// built-in defaults, a YAML config file, and PROBE_-prefixed environment
// variables. Command-line flags are not a source of these values.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved set of tunables. WordSize and StringReadCap feed
// the debug package's open questions (spec.md §9); LogCapacity is loaded
// and validated but not applied to any logger.
type Config struct {
	// WordSize is the assumed byte width of isize/usize: 4 (32-bit) or 8
	// (64-bit).
	WordSize int

	// StringReadCap bounds how many bytes of a &str's backing buffer
	// Extract will read, regardless of the reported length.
	StringReadCap int

	// LogCapacity is an entry count for the ring logger. Load validates it,
	// but nothing applies it: the package-level logger keeps its fixed
	// capacity of 1000 entries.
	LogCapacity int
}

// defaults mirror the source's hard-coded behaviour: 32-bit words, a
// 200-byte string cap, and a 1000-entry log.
func defaults() Config {
	return Config{
		WordSize:      4,
		StringReadCap: 200,
		LogCapacity:   1000,
	}
}

// Load resolves a Config from optional configPath (a YAML file; empty
// string skips it) layered under PROBE_-prefixed environment overrides.
func Load(configPath string) (Config, error) {
	d := defaults()

	v := viper.New()
	v.SetEnvPrefix("PROBE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("wordsize", d.WordSize)
	v.SetDefault("stringreadcap", d.StringReadCap)
	v.SetDefault("logcapacity", d.LogCapacity)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	c := Config{
		WordSize:      v.GetInt("wordsize"),
		StringReadCap: v.GetInt("stringreadcap"),
		LogCapacity:   v.GetInt("logcapacity"),
	}

	if c.WordSize != 4 && c.WordSize != 8 {
		return Config{}, fmt.Errorf("config: wordsize must be 4 or 8, got %d", c.WordSize)
	}
	if c.StringReadCap <= 0 {
		return Config{}, fmt.Errorf("config: stringreadcap must be greater than zero, got %d", c.StringReadCap)
	}
	if c.LogCapacity <= 0 {
		return Config{}, fmt.Errorf("config: logcapacity must be greater than zero, got %d", c.LogCapacity)
	}

	return c, nil
}
