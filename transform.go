// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import (
	"fmt"
	"strings"
)

const (
	// defsReferencePrefix is the only reference form accepted by the transformer.
	defsReferencePrefix = "#/$defs/"
	// refTypeTag is SchemaParameter.Type value for referenced properties.
	refTypeTag = "$ref"
)

// SchemaParameter is one top-level event property row.
type SchemaParameter struct {
	Name        string
	Type        string
	Description string
}

// DefinitionReference points to another named definition.
type DefinitionReference struct {
	Name string
	// Anchor is lower-cased Name used as in-page link target.
	Anchor string
}

// DefinitionFieldDescription is a definition property with explicit description.
type DefinitionFieldDescription struct {
	FieldName   string
	Description string
}

// SchemaDefinition is one "$defs" entry prepared for presentation.
type SchemaDefinition struct {
	Name         string
	Schema       string
	References   []DefinitionReference
	Descriptions []DefinitionFieldDescription
}

// Document holds presentation artifacts extracted from one event schema.
type Document struct {
	EventSchema string
	Parameters  []SchemaParameter
	Definitions []SchemaDefinition
}

// Transform strips metadata and extracts parameters, definitions and summary text.
func Transform(root Node) (Document, error) {
	if !root.IsObject() {
		return Document{}, fmt.Errorf("%w, got %s", ErrSchemaRootType, root.Kind)
	}

	cleaned := StripSchemaProps(root)

	parameters, err := ExtractParameters(cleaned)
	if err != nil {
		return Document{}, err
	}

	definitions, err := ExtractDefinitions(cleaned)
	if err != nil {
		return Document{}, err
	}

	eventSchema, err := PresentableJSON(cleaned)
	if err != nil {
		return Document{}, err
	}

	return Document{
		EventSchema: eventSchema,
		Parameters:  parameters,
		Definitions: definitions,
	}, nil
}

// ExtractRefNameAndAnchor splits "#/$defs/<name>" into name and lower-cased anchor.
func ExtractRefNameAndAnchor(ref string) (string, string, error) {
	name, ok := strings.CutPrefix(ref, defsReferencePrefix)
	if !ok || name == "" {
		return "", "", fmt.Errorf("%w %q: want %q prefix", ErrMalformedReference, ref, defsReferencePrefix+"<name>")
	}

	return name, strings.ToLower(name), nil
}

// ExtractParameters builds one row per top-level property in document order.
func ExtractParameters(root Node) ([]SchemaParameter, error) {
	properties, ok := root.Get("properties")
	if !ok || !properties.IsObject() {
		return nil, newShapeError(ErrMissingProperties, "")
	}

	parameters := make([]SchemaParameter, 0, properties.Len())
	for pair := properties.Object.Oldest(); pair != nil; pair = pair.Next() {
		name, prop := pair.Key, pair.Value
		if !prop.IsObject() {
			return nil, newShapeError(ErrInvalidNode, "got "+prop.Kind.String(), "properties", name)
		}

		if ref, ok := prop.Get(refTypeTag); ok {
			refName, refAnchor, err := propertyReference(ref, "properties", name, refTypeTag)
			if err != nil {
				return nil, err
			}

			parameters = append(parameters, SchemaParameter{
				Name:        name,
				Type:        refTypeTag,
				Description: fmt.Sprintf("Please see [%s](#%s)", refName, refAnchor),
			})

			continue
		}

		typeNode, ok := prop.Get("type")
		if !ok {
			return nil, newShapeError(ErrMissingPropertyType, "", "properties", name)
		}

		parameters = append(parameters, SchemaParameter{
			Name: name,
			Type: displayText(typeNode),
		})
	}

	return parameters, nil
}

// ExtractDefinitions builds one entry per "$defs" member in document order.
func ExtractDefinitions(root Node) ([]SchemaDefinition, error) {
	defs, ok := root.Get("$defs")
	if !ok || !defs.IsObject() {
		return nil, newShapeError(ErrMissingDefs, "")
	}

	definitions := make([]SchemaDefinition, 0, defs.Len())
	for pair := defs.Object.Oldest(); pair != nil; pair = pair.Next() {
		name, definition := pair.Key, pair.Value
		if !definition.IsObject() {
			return nil, newShapeError(ErrInvalidNode, "got "+definition.Kind.String(), "$defs", name)
		}

		references := make([]DefinitionReference, 0)
		descriptions := make([]DefinitionFieldDescription, 0)

		properties, ok := definition.Get("properties")
		if ok && !properties.IsObject() {
			return nil, newShapeError(ErrInvalidNode, "got "+properties.Kind.String(), "$defs", name, "properties")
		}

		for _, propName := range properties.Keys() {
			prop, _ := properties.Get(propName)
			if !prop.IsObject() {
				return nil, newShapeError(ErrInvalidNode, "got "+prop.Kind.String(), "$defs", name, "properties", propName)
			}

			if ref, ok := prop.Get(refTypeTag); ok {
				refName, refAnchor, err := propertyReference(ref, "$defs", name, "properties", propName, refTypeTag)
				if err != nil {
					return nil, err
				}

				references = append(references, DefinitionReference{Name: refName, Anchor: refAnchor})
			}

			if description, ok := prop.Get("description"); ok {
				descriptions = append(descriptions, DefinitionFieldDescription{
					FieldName:   propName,
					Description: displayText(description),
				})
			}
		}

		schema, err := PresentableJSON(definition)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", name, err)
		}

		definitions = append(definitions, SchemaDefinition{
			Name:         name,
			Schema:       schema,
			References:   references,
			Descriptions: descriptions,
		})
	}

	return definitions, nil
}

// propertyReference validates "$ref" node and resolves its name and anchor.
func propertyReference(ref Node, pointer ...string) (string, string, error) {
	text, ok := ref.Str()
	if !ok {
		return "", "", newShapeError(ErrMalformedReference, "got "+ref.Kind.String(), pointer...)
	}

	name, anchor, err := ExtractRefNameAndAnchor(text)
	if err != nil {
		return "", "", newShapeError(ErrMalformedReference, fmt.Sprintf("%q", text), pointer...)
	}

	return name, anchor, nil
}

// displayText renders string nodes verbatim and other nodes as compact JSON.
func displayText(node Node) string {
	if text, ok := node.Str(); ok {
		return text
	}

	data, err := node.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", node.Scalar)
	}

	return string(data)
}
