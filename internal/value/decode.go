// ABOUTME: Converts yaml.v3 node trees into Values at the parsing boundary
// ABOUTME: Scalar kinds follow the YAML resolver's tags, never Go's interface{} guesses
package value

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// maxDepth bounds alias expansion and pathological nesting
const maxDepth = 256

// Decode parses a YAML (or JSON) document. Empty input decodes to null.
func Decode(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, err
	}
	if doc.Kind == 0 {
		return Null(), nil
	}
	return FromNode(&doc)
}

// FromNode converts a decoded YAML node into a Value
func FromNode(node *yaml.Node) (Value, error) {
	return fromNode(node, 0)
}

func fromNode(node *yaml.Node, depth int) (Value, error) {
	if node == nil {
		return Null(), nil
	}
	if depth > maxDepth {
		return Value{}, fmt.Errorf("line %d: document nested deeper than %d levels", node.Line, maxDepth)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return fromNode(node.Content[0], depth+1)
	case yaml.AliasNode:
		return fromNode(node.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := fromNode(child, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{kind: KindArray, arr: items}, nil
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			key, err := mappingKey(keyNode)
			if err != nil {
				return Value{}, err
			}
			item, err := fromNode(valNode, depth+1)
			if err != nil {
				return Value{}, err
			}
			obj.Set(key, item)
		}
		return ObjectOf(obj), nil
	case yaml.ScalarNode:
		return fromScalar(node)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func mappingKey(node *yaml.Node) (string, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping keys must be scalars", node.Line)
	}
	return node.Value, nil
}

func fromScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return Int(i), nil
		}
		// Out of int64 range: keep the magnitude as a float
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text
		return String(node.Value), nil
	}
}
