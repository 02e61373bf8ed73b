// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	// defaultTitle is used when caller does not provide custom title.
	defaultTitle = "Event schema reference"
	// defaultTemplateName is used when caller does not provide template name.
	defaultTemplateName = templateEventName
)

const (
	templateEventName   = "event"
	templateCompactName = "compact"
)

// customTemplateName names caller-provided template text in errors.
const customTemplateName = "custom"

// Options configures document rendering.
type Options struct {
	// Title is document heading passed to template.
	Title string
	// SourcePath is shown as schema origin; RenderFile fills it from path.
	SourcePath string
	// TemplateName selects built-in template when TemplateText is empty.
	TemplateName string
	// TemplateText is custom text/template source.
	TemplateText string
	// InputFormat selects schema syntax; empty means JSON for Render and
	// extension-based detection for RenderFile.
	InputFormat InputFormat
	// ExampleMode selects example coverage when ExampleFormat is set.
	ExampleMode ExampleMode
	// ExampleFormat enables embedded example payload in chosen format.
	ExampleFormat ExampleFormat
}

// renderView is the root view model passed to document templates.
type renderView struct {
	Title         string
	SourceSchema  string
	EventSchema   string
	Parameters    []SchemaParameter
	Definitions   []SchemaDefinition
	Example       string
	ExampleFormat string
}

// RenderFile reads schema from file and renders documentation page.
func RenderFile(path string, opt Options) (string, error) {
	schemaBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	if strings.TrimSpace(opt.SourcePath) == "" {
		opt.SourcePath = path
	}

	if format, err := normalizeInputFormat(opt.InputFormat); err == nil && format == InputFormatAuto {
		opt.InputFormat = DetectInputFormat(path)
	}

	return Render(schemaBytes, opt)
}

// Render converts event schema bytes into documentation page text.
func Render(schemaBytes []byte, opt Options) (string, error) {
	root, err := ParseDocument(schemaBytes, opt.InputFormat)
	if err != nil {
		return "", err
	}

	return RenderDocument(root, opt)
}

// RenderDocument renders already decoded schema root.
func RenderDocument(root Node, opt Options) (string, error) {
	doc, err := Transform(root)
	if err != nil {
		return "", err
	}

	view, err := buildRenderView(root, doc, opt)
	if err != nil {
		return "", err
	}

	documentTemplate, err := resolveTemplate(opt)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := documentTemplate.Execute(&out, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteTemplate, err)
	}

	return ensureTrailingNewline(normalizeMarkdownOutput(out.String())), nil
}

// buildRenderView prepares data for template rendering.
func buildRenderView(root Node, doc Document, opt Options) (renderView, error) {
	title := sanitizeText(opt.Title)
	if title == "" {
		title = defaultTitle
	}

	view := renderView{
		Title:        title,
		SourceSchema: strings.TrimSpace(opt.SourcePath),
		EventSchema:  doc.EventSchema,
		Parameters:   doc.Parameters,
		Definitions:  doc.Definitions,
	}

	if strings.TrimSpace(string(opt.ExampleFormat)) == "" {
		return view, nil
	}

	example, format, err := exampleText(StripSchemaProps(root), opt.ExampleMode, opt.ExampleFormat)
	if err != nil {
		return renderView{}, err
	}

	view.Example = example
	view.ExampleFormat = string(format)
	return view, nil
}

// BuiltinTemplateNames returns all available built-in template names.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for name := range builtInTemplateFiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns one built-in template by name.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	path, ok := builtInTemplateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}
