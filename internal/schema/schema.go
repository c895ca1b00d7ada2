// Package schema merges default schema documents with per-instance
// configuration overrides. Every override key must exist in the default
// schema, so configuration typos fail loudly instead of being carried along
// silently.
package schema

import (
	"fmt"

	"github.com/vk/eva/internal/config"
)

// UnknownKeyError reports an override key that does not exist in the default
// schema document.
type UnknownKeyError struct {
	Key string
}

// Error implements the error interface for UnknownKeyError.
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%q not in default schema, not a valid entry", e.Key)
}

// ignoredKeys are structural keys that may appear in overrides without being
// part of any schema document.
var ignoredKeys = map[string]struct{}{
	"type":       {},
	"comparison": {},
}

// Merge overlays overrides onto the base schema, key by key in override
// order. Keys absent from base (and not in the structural ignore list) fail
// with an UnknownKeyError. Neither input is mutated.
func Merge(base, overrides *config.Config) (*config.Config, error) {
	merged := base
	for _, key := range overrides.Keys() {
		if _, ignored := ignoredKeys[key]; !ignored && !base.Has(key) {
			return nil, &UnknownKeyError{Key: key}
		}
		v, _ := overrides.Get(key)
		merged = merged.With(key, v)
	}
	return merged, nil
}

// MergeFile loads the default schema document at path and overlays overrides
// onto it.
func MergeFile(path string, overrides *config.Config) (*config.Config, error) {
	base, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	return Merge(base, overrides)
}

// MergeBytes parses an in-memory default schema document and overlays
// overrides onto it.
func MergeBytes(data []byte, overrides *config.Config) (*config.Config, error) {
	base, err := config.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return Merge(base, overrides)
}
