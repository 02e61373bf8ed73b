// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// schemaMetaKey is JSON Schema dialect marker stripped before rendering.
	schemaMetaKey = "$schema"
	// legacyDefinitionsKey is unused top-level key hidden from presentable output.
	legacyDefinitionsKey = "definitions"
	// presentableIndent is indentation used by presentable JSON text.
	presentableIndent = "    "
)

// InputFormat selects schema document syntax.
type InputFormat string

const (
	// InputFormatAuto detects format from file extension.
	InputFormatAuto InputFormat = ""
	// InputFormatJSON decodes schema as JSON.
	InputFormatJSON InputFormat = "json"
	// InputFormatYAML decodes schema as YAML.
	InputFormatYAML InputFormat = "yaml"
)

// DetectInputFormat maps file extension to input format, defaulting to JSON.
func DetectInputFormat(path string) InputFormat {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(path))) {
	case ".yaml", ".yml":
		return InputFormatYAML
	default:
		return InputFormatJSON
	}
}

// normalizeInputFormat validates caller format value.
func normalizeInputFormat(format InputFormat) (InputFormat, error) {
	normalized := InputFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case "auto":
		return InputFormatAuto, nil
	case InputFormatAuto, InputFormatJSON, InputFormatYAML:
		return normalized, nil
	case "yml":
		return InputFormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownInputFormat, format)
	}
}

// ParseDocument decodes schema bytes and requires object root.
func ParseDocument(schemaBytes []byte, format InputFormat) (Node, error) {
	format, err := normalizeInputFormat(format)
	if err != nil {
		return Node{}, err
	}

	var root Node
	switch format {
	case InputFormatYAML:
		root, err = ParseYAML(schemaBytes)
	default:
		root, err = ParseJSON(bytes.TrimSpace(schemaBytes))
	}

	if err != nil {
		return Node{}, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	if !root.IsObject() {
		return Node{}, fmt.Errorf("%w, got %s", ErrSchemaRootType, root.Kind)
	}

	return root, nil
}

// SchemaDialect returns raw "$schema" value of document root, if any.
func SchemaDialect(root Node) string {
	value, ok := root.Get(schemaMetaKey)
	if !ok {
		return ""
	}

	text, _ := value.Str()
	return strings.TrimSpace(text)
}

// StripSchemaProps returns deep copy of node without "$schema" keys at any depth.
func StripSchemaProps(node Node) Node {
	switch node.Kind {
	case KindObject:
		out := NewObject()
		if node.Object == nil {
			return out
		}

		for pair := node.Object.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Key == schemaMetaKey {
				continue
			}

			out.Set(pair.Key, StripSchemaProps(pair.Value))
		}

		return out
	case KindArray:
		items := make([]Node, 0, len(node.Array))
		for _, item := range node.Array {
			items = append(items, StripSchemaProps(item))
		}

		return NewArray(items...)
	default:
		return node
	}
}

// PresentableJSON pretty-prints node with 4-space indent, hiding top-level "definitions".
func PresentableJSON(node Node) (string, error) {
	if node.IsObject() && node.Has(legacyDefinitionsKey) {
		trimmed := NewObject()
		for pair := node.Object.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Key == legacyDefinitionsKey {
				continue
			}

			trimmed.Set(pair.Key, pair.Value)
		}

		node = trimmed
	}

	text, err := indentJSON(node)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeSchema, err)
	}

	return text, nil
}

// indentJSON encodes node as JSON text indented with presentableIndent.
func indentJSON(node Node) (string, error) {
	compact, err := node.MarshalJSON()
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", presentableIndent); err != nil {
		return "", err
	}

	return out.String(), nil
}
