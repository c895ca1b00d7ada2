package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envPattern matches string scalars carrying a ${NAME} environment-variable
// reference.
var envPattern = regexp.MustCompile(`\$\{[^}{]+\}`)

// Load reads the YAML document at path into a Config. Any string scalar that
// contains a ${NAME} reference is expanded against the process environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("configuration %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document into a Config, preserving the key order of
// every mapping and applying the same environment expansion as Load.
func Parse(data []byte) (*Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return FromPairs(nil), nil
	}

	v, err := decodeNode(root.Content[0])
	if err != nil {
		return nil, err
	}
	cfg, ok := v.(*Config)
	if !ok {
		return nil, &StructureError{Msg: "top-level yaml document must be a mapping"}
	}
	return cfg, nil
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		pairs := make([]Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("parsing yaml mapping key at line %d: %w", n.Content[i].Line, err)
			}
			val, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, Pair{Key: key, Value: val})
		}
		return FromPairs(pairs), nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("parsing yaml scalar at line %d: %w", n.Line, err)
		}
		if s, ok := v.(string); ok && envPattern.MatchString(s) {
			return os.ExpandEnv(s), nil
		}
		return v, nil

	case yaml.AliasNode:
		return decodeNode(n.Alias)

	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d at line %d", n.Kind, n.Line)
	}
}
