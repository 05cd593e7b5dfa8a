package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/teksel-io/teksel/object"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a grid from a JSON or YAML file. YAML files hold a sparse
// map of addresses to scalars:
//
//	A1: 10
//	A2: 2.5
//	B1: "=A1*2"
func LoadFile(path string, rows int) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data, rows)
	default:
		return Decode(data, rows)
	}
}

// DecodeYAML parses a sparse YAML grid. Scalar tags decide the value type,
// so 2.0 stays a float.
func DecodeYAML(data []byte, rows int) (*Grid, error) {
	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}
	var result *multierror.Error
	values := make(map[string]any, len(nodes))
	for key, node := range nodes {
		value, err := scalar(&node)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("cell %s: %w", key, err))
			continue
		}
		values[key] = value
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return FromMap(values, rows)
}

func scalar(node *yaml.Node) (object.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	switch node.ShortTag() {
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return nil, err
		}
		return object.NewInt(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return object.NewFloat(f), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return object.NewBool(b), nil
	case "!!null":
		return object.EmptyText, nil
	}
	return object.NewText(node.Value), nil
}
