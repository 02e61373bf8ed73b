// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

/*
Package eventdoc renders documentation pages from JSON Schema descriptions of
event payloads.

A schema is decoded with object key order preserved, "$schema" markers are
stripped, and the result is split into top-level parameters and named
"$defs" definitions with their cross-references and field descriptions.
Both the whole schema and every definition body are pretty-printed with
4-space indentation for embedding into the page. It supports built-in
templates ("event", "compact") and custom template text.

Render from schema bytes:

	schemaBytes, err := os.ReadFile("event.schema.json")
	if err != nil {
		return err
	}

	page, err := eventdoc.Render(schemaBytes, eventdoc.Options{
		Title: "Backend event",
	})
	if err != nil {
		return err
	}

	fmt.Println(page)

Render directly from file with a custom template:

	page, err := eventdoc.RenderFile("event.schema.yaml", eventdoc.Options{
		TemplateText: "{{ range .Parameters }}{{ .Name }}: {{ .Type }}\n{{ end }}",
	})
	if err != nil {
		return err
	}

Use the transformer alone:

	root, err := eventdoc.ParseJSON(schemaBytes)
	if err != nil {
		return err
	}

	doc, err := eventdoc.Transform(root)
	if err != nil {
		return err
	}

	for _, param := range doc.Parameters {
		fmt.Println(param.Name, param.Type, param.Description)
	}

Shape problems are reported as *ShapeError with a JSON pointer:

	var shapeErr *eventdoc.ShapeError
	if errors.As(err, &shapeErr) && errors.Is(err, eventdoc.ErrMalformedReference) {
		fmt.Println("bad $ref at", shapeErr.Pointer)
	}

Generate example payload from schema:

	data, err := eventdoc.GenerateExampleJSON(schemaBytes, eventdoc.ExampleModeRequired)
	if err != nil {
		return err
	}

	fmt.Println(string(data))
*/
package eventdoc
