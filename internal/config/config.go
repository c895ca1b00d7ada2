// Package config provides the immutable, ordered configuration mapping that
// drives every diagnostic. A Config is created once, from a parsed YAML
// document or a plain map, and is never mutated afterwards; derived
// configurations are produced by With and Without.
package config

import (
	"fmt"
	"sort"
)

// Config is an ordered, read-only mapping from string keys to heterogeneous
// values. Nested mappings are themselves *Config values; sequences are []any.
type Config struct {
	keys   []string
	values map[string]any
}

// Pair is one key/value entry used to build a Config in a specific order.
type Pair struct {
	Key   string
	Value any
}

// StructureError reports a missing or malformed required configuration
// section.
type StructureError struct {
	Key string
	Msg string
}

// Error implements the error interface for StructureError.
func (e *StructureError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config: %q: %s", e.Key, e.Msg)
	}
	return "config: " + e.Msg
}

// FromPairs builds a Config that iterates in the order of the given pairs.
// A repeated key keeps its first position and the last value.
func FromPairs(pairs []Pair) *Config {
	c := &Config{values: make(map[string]any, len(pairs))}
	for _, p := range pairs {
		if _, exists := c.values[p.Key]; !exists {
			c.keys = append(c.keys, p.Key)
		}
		c.values[p.Key] = p.Value
	}
	return c
}

// FromMap builds a Config from an already-parsed mapping. Go maps carry no
// order of their own, so keys are ordered lexically. Nested maps and slices
// are converted recursively.
func FromMap(m map[string]any) *Config {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: convert(m[k])})
	}
	return FromPairs(pairs)
}

func convert(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return FromMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = convert(e)
		}
		return out
	default:
		return v
	}
}

// Len returns the number of top-level keys.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns the top-level keys in configuration order.
func (c *Config) Keys() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Has reports whether key is present.
func (c *Config) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.values[key]
	return ok
}

// Get returns the raw value stored under key.
func (c *Config) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// GetString returns the string under key, or def when the key is absent, nil,
// or not a string.
func (c *Config) GetString(key, def string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetInt returns the integer under key, or def when absent or not numeric.
func (c *Config) GetInt(key string, def int) int {
	if v, ok := c.Get(key); ok {
		switch t := v.(type) {
		case int:
			return t
		case int64:
			return int(t)
		case float64:
			return int(t)
		}
	}
	return def
}

// GetFloat returns the float under key, or def when absent or not numeric.
func (c *Config) GetFloat(key string, def float64) float64 {
	if v, ok := c.Get(key); ok {
		switch t := v.(type) {
		case float64:
			return t
		case int:
			return float64(t)
		case int64:
			return float64(t)
		}
	}
	return def
}

// GetBool returns the boolean under key, or def when absent or not a bool.
func (c *Config) GetBool(key string, def bool) bool {
	if v, ok := c.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// GetList returns the sequence under key.
func (c *Config) GetList(key string) ([]any, bool) {
	if v, ok := c.Get(key); ok {
		if l, ok := v.([]any); ok {
			return l, true
		}
	}
	return nil, false
}

// GetSection returns the nested mapping under key.
func (c *Config) GetSection(key string) (*Config, bool) {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(*Config); ok {
			return s, true
		}
	}
	return nil, false
}

// With returns a copy of the configuration with key set to value. An existing
// key keeps its position; a new key is appended.
func (c *Config) With(key string, value any) *Config {
	out := c.clone()
	if _, exists := out.values[key]; !exists {
		out.keys = append(out.keys, key)
	}
	out.values[key] = value
	return out
}

// Without returns a copy of the configuration with the given keys removed.
func (c *Config) Without(keys ...string) *Config {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	out := &Config{values: make(map[string]any)}
	for _, k := range c.Keys() {
		if _, skip := drop[k]; skip {
			continue
		}
		out.keys = append(out.keys, k)
		out.values[k] = c.values[k]
	}
	return out
}

func (c *Config) clone() *Config {
	out := &Config{
		keys:   make([]string, 0, c.Len()),
		values: make(map[string]any, c.Len()),
	}
	if c == nil {
		return out
	}
	out.keys = append(out.keys, c.keys...)
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}
