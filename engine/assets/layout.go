package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/trellis/engine/ui"
)

// LoadLayout reads a YAML widget tree. The document is either a list of
// packed widgets or a single one.
func LoadLayout(path string) ([]ui.Packed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	packed, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", path, err)
	}
	return packed, nil
}

func ParseLayout(data []byte) ([]ui.Packed, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	var out []ui.Packed
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&out); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var p ui.Packed
		if err := root.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	default:
		return nil, fmt.Errorf("line %d: expected a widget or a list of widgets", root.Line)
	}
	return out, nil
}
