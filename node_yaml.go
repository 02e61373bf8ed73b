// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// maxYAMLDepth bounds alias expansion depth for YAML input.
const maxYAMLDepth = 256

// ParseYAML decodes one YAML document into Node preserving mapping key order.
func ParseYAML(data []byte) (Node, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return Node{}, err
	}

	if document.Kind == 0 {
		return Node{}, errors.New("empty yaml document")
	}

	return nodeFromYAML(&document, 0)
}

// nodeFromYAML converts yaml.Node tree into Node.
func nodeFromYAML(node *yaml.Node, depth int) (Node, error) {
	if node == nil {
		return Node{}, nil
	}

	if depth > maxYAMLDepth {
		return Node{}, fmt.Errorf("yaml nesting deeper than %d at line %d", maxYAMLDepth, node.Line)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Node{}, nil
		}

		return nodeFromYAML(node.Content[0], depth+1)

	case yaml.AliasNode:
		return nodeFromYAML(node.Alias, depth+1)

	case yaml.MappingNode:
		out := NewObject()
		for index := 0; index+1 < len(node.Content); index += 2 {
			keyNode := node.Content[index]
			if keyNode.Kind != yaml.ScalarNode {
				return Node{}, fmt.Errorf("yaml mapping key at line %d must be scalar", keyNode.Line)
			}

			value, err := nodeFromYAML(node.Content[index+1], depth+1)
			if err != nil {
				return Node{}, err
			}

			out.Set(keyNode.Value, value)
		}

		return out, nil

	case yaml.SequenceNode:
		items := make([]Node, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := nodeFromYAML(child, depth+1)
			if err != nil {
				return Node{}, err
			}

			items = append(items, item)
		}

		return NewArray(items...), nil

	case yaml.ScalarNode:
		return scalarFromYAML(node)

	default:
		return Node{}, fmt.Errorf("unsupported yaml node kind %d at line %d", node.Kind, node.Line)
	}
}

// scalarFromYAML maps resolved YAML scalar tag to JSON kind.
func scalarFromYAML(node *yaml.Node) (Node, error) {
	switch node.ShortTag() {
	case "!!null":
		return Node{}, nil

	case "!!bool":
		var value bool
		if err := node.Decode(&value); err != nil {
			return Node{}, err
		}

		return NewBool(value), nil

	case "!!int":
		var signed int64
		if err := node.Decode(&signed); err == nil {
			return NewNumber(json.Number(strconv.FormatInt(signed, 10))), nil
		}

		var unsigned uint64
		if err := node.Decode(&unsigned); err != nil {
			return Node{}, err
		}

		return NewNumber(json.Number(strconv.FormatUint(unsigned, 10))), nil

	case "!!float":
		var value float64
		if err := node.Decode(&value); err != nil {
			return Node{}, err
		}

		if math.IsInf(value, 0) || math.IsNaN(value) {
			return Node{}, fmt.Errorf("yaml value %q at line %d has no json representation", node.Value, node.Line)
		}

		return NewNumber(json.Number(strconv.FormatFloat(value, 'g', -1, 64))), nil

	default:
		return NewString(node.Value), nil
	}
}

// yamlFromNode builds yaml.Node tree from Node keeping object key order.
func yamlFromNode(node Node) *yaml.Node {
	switch node.Kind {
	case KindNull:
		return yamlScalarNode("!!null", "null")

	case KindBool:
		value, _ := node.Bool()
		return yamlScalarNode("!!bool", strconv.FormatBool(value))

	case KindNumber:
		number, _ := node.Scalar.(json.Number)
		if _, err := number.Int64(); err == nil {
			return yamlScalarNode("!!int", number.String())
		}

		return yamlScalarNode("!!float", number.String())

	case KindString:
		value, _ := node.Str()
		return yamlScalarNode("!!str", value)

	case KindArray:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range node.Array {
			out.Content = append(out.Content, yamlFromNode(item))
		}

		return out

	default:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if node.Object == nil {
			return out
		}

		for pair := node.Object.Oldest(); pair != nil; pair = pair.Next() {
			out.Content = append(out.Content, yamlScalarNode("!!str", pair.Key), yamlFromNode(pair.Value))
		}

		return out
	}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
