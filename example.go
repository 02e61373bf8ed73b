// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleModeAll builds example with all declared properties.
	ExampleModeAll ExampleMode = "all"
	// ExampleModeRequired builds example with required properties only.
	ExampleModeRequired ExampleMode = "required"
)

// ExampleMode configures example generation property coverage.
type ExampleMode string

const (
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for generated example payload.
type ExampleFormat string

// exampleBuilder converts event schema tree into example values.
type exampleBuilder struct {
	activeRefs map[string]int
	mode       ExampleMode
	root       Node
}

// GenerateExampleJSON returns example payload for JSON schema bytes encoded as JSON.
func GenerateExampleJSON(schemaBytes []byte, mode ExampleMode) ([]byte, error) {
	return GenerateExample(schemaBytes, InputFormatJSON, mode, ExampleFormatJSON)
}

// GenerateExampleYAML returns example payload for JSON schema bytes encoded as YAML.
func GenerateExampleYAML(schemaBytes []byte, mode ExampleMode) ([]byte, error) {
	return GenerateExample(schemaBytes, InputFormatJSON, mode, ExampleFormatYAML)
}

// GenerateExample decodes schema in given input format and returns encoded example payload.
func GenerateExample(schemaBytes []byte, input InputFormat, mode ExampleMode, format ExampleFormat) ([]byte, error) {
	root, err := ParseDocument(schemaBytes, input)
	if err != nil {
		return nil, err
	}

	return exampleForRoot(root, mode, format)
}

// exampleForRoot builds and encodes example payload for decoded schema root.
func exampleForRoot(root Node, mode ExampleMode, format ExampleFormat) ([]byte, error) {
	mode, err := normalizeExampleMode(mode)
	if err != nil {
		return nil, err
	}

	format, err = normalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	builder := exampleBuilder{
		root:       root,
		mode:       mode,
		activeRefs: make(map[string]int),
	}

	value := builder.buildNode(root)

	switch format {
	case ExampleFormatYAML:
		yamlNode := yamlFromNode(value)
		builder.annotateYAMLNode(yamlNode, root)

		data, err := marshalExampleYAMLNode(yamlNode)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
		}

		return data, nil
	default:
		text, err := indentJSON(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
		}

		return []byte(text + "\n"), nil
	}
}

// normalizeExampleMode validates and normalizes caller mode value.
func normalizeExampleMode(mode ExampleMode) (ExampleMode, error) {
	normalized := ExampleMode(strings.ToLower(strings.TrimSpace(string(mode))))
	switch normalized {
	case "":
		return ExampleModeAll, nil
	case ExampleModeAll, ExampleModeRequired:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleMode, mode)
	}
}

// normalizeExampleFormat validates and normalizes caller format value.
func normalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	case "yml":
		return ExampleFormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// buildNode recursively builds example value for one schema node.
func (builder *exampleBuilder) buildNode(node Node) Node {
	if !node.IsObject() {
		return Node{}
	}

	if resolved, release, handled := builder.resolvedObjectForReference(node); handled {
		if release != nil {
			defer release()
		}

		if !resolved.IsObject() {
			return Node{}
		}

		return builder.buildNode(resolved)
	}

	return builder.buildFromObject(node)
}

// buildFromObject builds example from schema object without "$ref".
func (builder *exampleBuilder) buildFromObject(object Node) Node {
	schemaType := schemaTypeName(object)
	properties, required := builder.collectObjectShape(object)

	if schemaType == "object" || properties.Len() > 0 || len(required) > 0 {
		return builder.buildObjectFromShape(properties, required)
	}

	if schemaType == "array" || hasArrayShape(object) {
		return builder.buildArrayFromObject(object)
	}

	if value, ok := explicitExampleValue(object); ok {
		return value.Clone()
	}

	if value, ok := object.Get("const"); ok {
		return value.Clone()
	}

	if value, ok := enumExampleValue(object); ok {
		return value.Clone()
	}

	if value, ok := builder.buildCompositionFallback(object); ok {
		return value
	}

	if value, ok := scalarPlaceholder(schemaType); ok {
		return value
	}

	return Node{}
}

// buildObjectFromShape materializes object value in schema property order.
func (builder *exampleBuilder) buildObjectFromShape(properties Node, required []string) Node {
	out := NewObject()
	for _, key := range properties.Keys() {
		if builder.mode == ExampleModeRequired && !slices.Contains(required, key) {
			continue
		}

		prop, _ := properties.Get(key)
		out.Set(key, builder.buildNode(prop))
	}

	return out
}

// buildArrayFromObject materializes array value from schema items/prefixItems.
func (builder *exampleBuilder) buildArrayFromObject(object Node) Node {
	if value, ok := explicitExampleValue(object); ok && value.Kind == KindArray {
		return value.Clone()
	}

	if value, ok := object.Get("const"); ok && value.Kind == KindArray {
		return value.Clone()
	}

	if value, ok := enumExampleValue(object); ok && value.Kind == KindArray {
		return value.Clone()
	}

	if prefixItems, ok := object.Get("prefixItems"); ok && prefixItems.Len() > 0 && prefixItems.Kind == KindArray {
		items := make([]Node, 0, len(prefixItems.Array))
		for _, item := range prefixItems.Array {
			items = append(items, builder.buildNode(item))
		}

		return NewArray(items...)
	}

	if item, ok := object.Get("items"); ok && item.IsObject() {
		return NewArray(builder.buildNode(item))
	}

	return NewArray()
}

// collectObjectShape returns merged object properties and required keys for node.
func (builder *exampleBuilder) collectObjectShape(node Node) (Node, []string) {
	if !node.IsObject() {
		return NewObject(), nil
	}

	if resolved, release, handled := builder.resolvedObjectForReference(node); handled {
		if release != nil {
			defer release()
		}

		return builder.collectObjectShape(resolved)
	}

	properties, ok := node.Get("properties")
	if !ok || !properties.IsObject() {
		properties = NewObject()
	}

	required := stringItems(node, "required")

	allOf, _ := node.Get("allOf")
	for _, schema := range allOf.Array {
		nestedProperties, nestedRequired := builder.collectObjectShape(schema)
		properties = mergePropertySchemas(properties, nestedProperties)
		required = mergeRequiredKeys(required, nestedRequired)
	}

	return properties, required
}

// mergePropertySchemas appends right-side properties missing on the left.
func mergePropertySchemas(left, right Node) Node {
	if right.Len() == 0 {
		return left
	}

	out := left.Clone()
	for _, key := range right.Keys() {
		if out.Has(key) {
			continue
		}

		value, _ := right.Get(key)
		out.Set(key, value)
	}

	return out
}

// mergeRequiredKeys appends unique required keys while preserving first-seen order.
func mergeRequiredKeys(left, right []string) []string {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(left)+len(right))
	out := make([]string, 0, len(left)+len(right))

	for _, key := range slices.Concat(left, right) {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	return out
}

// buildCompositionFallback builds value from first schema of oneOf/anyOf/allOf.
func (builder *exampleBuilder) buildCompositionFallback(object Node) (Node, bool) {
	for _, keyword := range []string{"oneOf", "anyOf", "allOf"} {
		items, _ := object.Get(keyword)
		for _, item := range items.Array {
			if !item.IsObject() {
				continue
			}

			return builder.buildNode(item), true
		}
	}

	return Node{}, false
}

// resolvedObjectForReference resolves local ref and merges sibling override keywords.
func (builder *exampleBuilder) resolvedObjectForReference(object Node) (Node, func(), bool) {
	refNode, ok := object.Get("$ref")
	if !ok {
		return Node{}, nil, false
	}

	ref, _ := refNode.Str()
	resolved, ok := resolveJSONPointer(builder.root, ref)
	if !ok || !resolved.IsObject() {
		return stripReferenceKeyword(object), nil, true
	}

	release, ok := builder.enterReference(ref)
	if !ok {
		return Node{}, nil, true
	}

	return mergeSchemaObjects(resolved, object), release, true
}

// resolveJSONPointer resolves local "#/..." pointer against root document.
func resolveJSONPointer(root Node, ref string) (Node, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "#" {
		return root, true
	}

	if !strings.HasPrefix(ref, "#/") {
		return Node{}, false
	}

	current := root
	for token := range strings.SplitSeq(strings.TrimPrefix(ref, "#/"), "/") {
		token = decodeJSONPointerToken(token)

		switch current.Kind {
		case KindObject:
			next, exists := current.Get(token)
			if !exists {
				return Node{}, false
			}

			current = next
		case KindArray:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(current.Array) {
				return Node{}, false
			}

			current = current.Array[index]
		default:
			return Node{}, false
		}
	}

	return current, true
}

// decodeJSONPointerToken unescapes one JSON pointer token.
func decodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// enterReference registers active local ref and returns release callback.
func (builder *exampleBuilder) enterReference(ref string) (func(), bool) {
	if builder.activeRefs[ref] > 0 {
		return nil, false
	}

	builder.activeRefs[ref]++
	return func() {
		builder.activeRefs[ref]--
		if builder.activeRefs[ref] <= 0 {
			delete(builder.activeRefs, ref)
		}
	}, true
}

// schemaTypeName returns first non-null type value from schema "type" keyword.
func schemaTypeName(object Node) string {
	typeValue, exists := object.Get("type")
	if !exists {
		return ""
	}

	if text, ok := typeValue.Str(); ok {
		return strings.ToLower(text)
	}

	fallback := ""
	for _, item := range typeValue.Array {
		text, _ := item.Str()
		text = strings.ToLower(text)
		if text == "null" {
			fallback = text
			continue
		}

		if text != "" {
			return text
		}
	}

	return fallback
}

// hasArrayShape reports whether schema has array structure keywords.
func hasArrayShape(object Node) bool {
	if items, ok := object.Get("items"); ok && items.IsObject() {
		return true
	}

	prefixItems, _ := object.Get("prefixItems")
	return prefixItems.Kind == KindArray && prefixItems.Len() > 0
}

// explicitExampleValue returns preferred explicit example value from schema object.
func explicitExampleValue(object Node) (Node, bool) {
	if value, ok := object.Get("default"); ok {
		return value, true
	}

	if examples, ok := object.Get("examples"); ok && examples.Kind == KindArray && len(examples.Array) > 0 {
		return examples.Array[0], true
	}

	if value, ok := object.Get("example"); ok {
		return value, true
	}

	return Node{}, false
}

// enumExampleValue returns first enum value as example when available.
func enumExampleValue(object Node) (Node, bool) {
	values, ok := object.Get("enum")
	if !ok || values.Kind != KindArray || len(values.Array) == 0 {
		return Node{}, false
	}

	return values.Array[0], true
}

// scalarPlaceholder returns fallback placeholder for known scalar schema types.
func scalarPlaceholder(schemaType string) (Node, bool) {
	switch schemaType {
	case "string":
		return NewString("<string>"), true
	case "number", "integer":
		return NewNumber("0"), true
	case "boolean":
		return NewBool(false), true
	case "null":
		return Node{}, true
	default:
		return Node{}, false
	}
}

// stripReferenceKeyword returns shallow copy without "$ref" keyword.
func stripReferenceKeyword(object Node) Node {
	out := NewObject()
	for pair := object.Object.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "$ref" {
			continue
		}

		out.Set(pair.Key, pair.Value)
	}

	return out
}

// mergeSchemaObjects overlays sibling keywords of "$ref" on resolved schema.
func mergeSchemaObjects(base, overlay Node) Node {
	out := NewObject()
	for pair := base.Object.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}

	for pair := overlay.Object.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "$ref" {
			continue
		}

		out.Set(pair.Key, pair.Value)
	}

	return out
}

// stringItems returns string members of array keyword.
func stringItems(object Node, keyword string) []string {
	values, _ := object.Get(keyword)
	out := make([]string, 0, len(values.Array))
	for _, item := range values.Array {
		if text, ok := item.Str(); ok {
			out = append(out, text)
		}
	}

	return out
}

// marshalExampleYAMLNode serializes example payload as YAML.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// annotateYAMLNode assigns schema title/description comments to YAML map keys.
func (builder *exampleBuilder) annotateYAMLNode(node *yaml.Node, schema Node) {
	resolved, release := builder.resolveSchemaValue(schema)
	if release != nil {
		defer release()
	}

	switch node.Kind {
	case yaml.MappingNode:
		properties, _ := builder.collectObjectShape(resolved)
		for index := 0; index+1 < len(node.Content); index += 2 {
			keyNode := node.Content[index]
			valueNode := node.Content[index+1]

			property, ok := properties.Get(keyNode.Value)
			if !ok {
				continue
			}

			if comment := schemaKeyComment(property); comment != "" {
				keyNode.HeadComment = comment
			}

			builder.annotateYAMLNode(valueNode, property)
		}
	case yaml.SequenceNode:
		if len(node.Content) == 0 || !resolved.IsObject() {
			return
		}

		itemSchema := sequenceItemSchema(resolved)
		for _, item := range node.Content {
			builder.annotateYAMLNode(item, itemSchema)
		}
	}
}

// resolveSchemaValue expands local references for schema node and returns release callback.
func (builder *exampleBuilder) resolveSchemaValue(schema Node) (Node, func()) {
	if !schema.IsObject() {
		return schema, nil
	}

	resolved, release, handled := builder.resolvedObjectForReference(schema)
	if !handled {
		return schema, nil
	}

	return resolved, release
}

// sequenceItemSchema selects schema for sequence item annotations.
func sequenceItemSchema(schema Node) Node {
	if item, ok := schema.Get("items"); ok && item.IsObject() {
		return item
	}

	prefixItems, _ := schema.Get("prefixItems")
	for _, item := range prefixItems.Array {
		if item.IsObject() {
			return item
		}
	}

	return Node{}
}

// schemaKeyComment builds YAML key comment from schema title and description.
func schemaKeyComment(schema Node) string {
	titleNode, _ := schema.Get("title")
	descriptionNode, _ := schema.Get("description")

	title, _ := titleNode.Str()
	description, _ := descriptionNode.Str()
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	switch {
	case title == "" && description == "":
		return ""
	case title == "":
		return normalizeYAMLComment(description)
	case description == "" || title == description:
		return normalizeYAMLComment(title)
	default:
		return normalizeYAMLComment(title + "\n" + description)
	}
}

// normalizeYAMLComment drops blank lines from comment body.
func normalizeYAMLComment(comment string) string {
	lines := strings.Split(normalizeLineEndings(comment), "\n")
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		normalized = append(normalized, strings.TrimRight(line, " \t"))
	}

	return strings.Join(normalized, "\n")
}

// exampleText decodes embedded example payload into template-ready text.
func exampleText(root Node, mode ExampleMode, format ExampleFormat) (string, ExampleFormat, error) {
	format, err := normalizeExampleFormat(format)
	if err != nil {
		return "", "", err
	}

	data, err := exampleForRoot(root, mode, format)
	if err != nil {
		return "", "", err
	}

	return strings.TrimRight(string(data), "\n"), format, nil
}
