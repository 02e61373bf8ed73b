// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies JSON value type held by Node.
type Kind uint8

const (
	// KindNull is JSON null and the zero Node.
	KindNull Kind = iota
	// KindBool is JSON true or false.
	KindBool
	// KindNumber is JSON number kept as its literal text.
	KindNumber
	// KindString is JSON string.
	KindString
	// KindArray is JSON array.
	KindArray
	// KindObject is JSON object with insertion-ordered keys.
	KindObject
)

// String returns lower-case JSON type name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ObjectMap is insertion-ordered JSON object storage.
type ObjectMap = orderedmap.OrderedMap[string, Node]

// Node is one decoded JSON value. Objects keep source key order.
type Node struct {
	// Object holds members when Kind is KindObject.
	Object *ObjectMap
	// Scalar holds bool, json.Number or string for scalar kinds.
	Scalar any
	// Array holds items when Kind is KindArray.
	Array []Node
	// Kind selects which field is meaningful.
	Kind Kind
}

// NewObject returns empty object node.
func NewObject() Node {
	return Node{Kind: KindObject, Object: orderedmap.New[string, Node]()}
}

// NewArray returns array node with given items.
func NewArray(items ...Node) Node {
	if items == nil {
		items = []Node{}
	}

	return Node{Kind: KindArray, Array: items}
}

// NewString returns string node.
func NewString(value string) Node {
	return Node{Kind: KindString, Scalar: value}
}

// NewBool returns boolean node.
func NewBool(value bool) Node {
	return Node{Kind: KindBool, Scalar: value}
}

// NewNumber returns number node from JSON number literal.
func NewNumber(value json.Number) Node {
	return Node{Kind: KindNumber, Scalar: value}
}

// IsObject reports whether node is JSON object.
func (n Node) IsObject() bool {
	return n.Kind == KindObject && n.Object != nil
}

// Get returns object member by key.
func (n Node) Get(key string) (Node, bool) {
	if !n.IsObject() {
		return Node{}, false
	}

	return n.Object.Get(key)
}

// Has reports whether object has member key.
func (n Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Set stores object member, keeping position of existing key.
func (n Node) Set(key string, value Node) {
	if !n.IsObject() {
		return
	}

	n.Object.Set(key, value)
}

// Len returns number of object members or array items.
func (n Node) Len() int {
	switch n.Kind {
	case KindObject:
		if n.Object == nil {
			return 0
		}

		return n.Object.Len()
	case KindArray:
		return len(n.Array)
	default:
		return 0
	}
}

// Keys returns object keys in insertion order.
func (n Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}

	keys := make([]string, 0, n.Object.Len())
	for pair := n.Object.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Str returns string value and true for string nodes.
func (n Node) Str() (string, bool) {
	if n.Kind != KindString {
		return "", false
	}

	value, ok := n.Scalar.(string)
	return value, ok
}

// Bool returns boolean value and true for boolean nodes.
func (n Node) Bool() (bool, bool) {
	if n.Kind != KindBool {
		return false, false
	}

	value, ok := n.Scalar.(bool)
	return value, ok
}

// Clone deep-copies node.
func (n Node) Clone() Node {
	switch n.Kind {
	case KindObject:
		if n.Object == nil {
			return NewObject()
		}

		out := orderedmap.New[string, Node](n.Object.Len())
		for pair := n.Object.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value.Clone())
		}

		return Node{Kind: KindObject, Object: out}
	case KindArray:
		items := make([]Node, 0, len(n.Array))
		for _, item := range n.Array {
			items = append(items, item.Clone())
		}

		return Node{Kind: KindArray, Array: items}
	default:
		return n
	}
}

// Equal reports deep structural equality including object key order.
func (n Node) Equal(other Node) bool {
	if n.Kind != other.Kind {
		return false
	}

	switch n.Kind {
	case KindObject:
		if n.Len() != other.Len() {
			return false
		}

		left, right := n.Object.Oldest(), other.Object.Oldest()
		for left != nil && right != nil {
			if left.Key != right.Key || !left.Value.Equal(right.Value) {
				return false
			}

			left, right = left.Next(), right.Next()
		}

		return left == nil && right == nil
	case KindArray:
		if len(n.Array) != len(other.Array) {
			return false
		}

		for i := range n.Array {
			if !n.Array[i].Equal(other.Array[i]) {
				return false
			}
		}

		return true
	default:
		return n.Scalar == other.Scalar
	}
}

// MarshalJSON encodes node as compact JSON without HTML escaping.
func (n Node) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	if err := n.writeJSON(&out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// UnmarshalJSON decodes any JSON value preserving object key order.
func (n *Node) UnmarshalJSON(data []byte) error {
	decoded, err := ParseJSON(data)
	if err != nil {
		return err
	}

	*n = decoded
	return nil
}

// writeJSON appends compact JSON text of node to buffer.
func (n Node) writeJSON(out *bytes.Buffer) error {
	switch n.Kind {
	case KindNull:
		out.WriteString("null")
	case KindObject:
		out.WriteByte('{')
		if n.Object != nil {
			first := true
			for pair := n.Object.Oldest(); pair != nil; pair = pair.Next() {
				if !first {
					out.WriteByte(',')
				}

				first = false
				if err := writeJSONScalar(out, pair.Key); err != nil {
					return err
				}

				out.WriteByte(':')
				if err := pair.Value.writeJSON(out); err != nil {
					return err
				}
			}
		}

		out.WriteByte('}')
	case KindArray:
		out.WriteByte('[')
		for i, item := range n.Array {
			if i > 0 {
				out.WriteByte(',')
			}

			if err := item.writeJSON(out); err != nil {
				return err
			}
		}

		out.WriteByte(']')
	default:
		return writeJSONScalar(out, n.Scalar)
	}

	return nil
}

// writeJSONScalar encodes scalar value with HTML escaping disabled.
func writeJSONScalar(out *bytes.Buffer, value any) error {
	var scratch bytes.Buffer
	encoder := json.NewEncoder(&scratch)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(value); err != nil {
		return err
	}

	out.Write(bytes.TrimRight(scratch.Bytes(), "\n"))
	return nil
}

// ParseJSON decodes one JSON value into Node preserving object key order.
func ParseJSON(data []byte) (Node, error) {
	if !json.Valid(data) {
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return Node{}, err
		}

		return Node{}, errors.New("invalid json")
	}

	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return Node{}, err
	}

	return decodeJSONValue(value, dataType)
}

// decodeJSONValue converts one jsonparser value into Node.
func decodeJSONValue(data []byte, dataType jsonparser.ValueType) (Node, error) {
	switch dataType {
	case jsonparser.Object:
		return decodeJSONObject(data)
	case jsonparser.Array:
		return decodeJSONArray(data)
	case jsonparser.String:
		value, err := jsonparser.ParseString(data)
		if err != nil {
			return Node{}, err
		}

		return NewString(value), nil
	case jsonparser.Number:
		return NewNumber(json.Number(string(data))), nil
	case jsonparser.Boolean:
		value, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return Node{}, err
		}

		return NewBool(value), nil
	case jsonparser.Null:
		return Node{}, nil
	default:
		return Node{}, fmt.Errorf("unexpected json value %q", string(data))
	}
}

// decodeJSONObject decodes object members in source order.
func decodeJSONObject(data []byte) (Node, error) {
	node := NewObject()
	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("object key %q: %w", string(key), err)
		}

		child, err := decodeJSONValue(value, dataType)
		if err != nil {
			return fmt.Errorf("%s: %w", jsonPointer(name), err)
		}

		node.Object.Set(name, child)
		return nil
	})
	if err != nil {
		return Node{}, err
	}

	return node, nil
}

// decodeJSONArray decodes array items in source order.
func decodeJSONArray(data []byte) (Node, error) {
	items := make([]Node, 0)

	var itemErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if itemErr != nil {
			return
		}

		if err != nil {
			itemErr = err
			return
		}

		child, err := decodeJSONValue(value, dataType)
		if err != nil {
			itemErr = fmt.Errorf("[%d]: %w", len(items), err)
			return
		}

		items = append(items, child)
	})
	if itemErr != nil {
		return Node{}, itemErr
	}

	if err != nil {
		return Node{}, err
	}

	return NewArray(items...), nil
}
