// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import (
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkParseDocument measures schema decoding and normalization cost.
func BenchmarkParseDocument(b *testing.B) {
	schemaPath := filepath.Join("testdata", "schema.fixture.json")
	schemaBytes := readBenchmarkFile(b, schemaPath)

	b.ReportAllocs()
	b.SetBytes(int64(len(schemaBytes)))

	for i := 0; i < b.N; i++ {
		if _, err := ParseDocument(schemaBytes, InputFormatJSON); err != nil {
			b.Fatalf("ParseDocument: %v", err)
		}
	}
}

// BenchmarkTransform measures extraction and pretty-printing on decoded schema.
func BenchmarkTransform(b *testing.B) {
	schemaBytes := readBenchmarkFile(b, filepath.Join("testdata", "schema.fixture.json"))
	root, err := ParseDocument(schemaBytes, InputFormatJSON)
	if err != nil {
		b.Fatalf("ParseDocument: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Transform(root); err != nil {
			b.Fatalf("Transform: %v", err)
		}
	}
}

// BenchmarkRenderEventTemplate measures full in-memory render flow for event template.
func BenchmarkRenderEventTemplate(b *testing.B) {
	benchmarkRenderTemplate(b, "event")
}

// BenchmarkRenderCompactTemplate measures full in-memory render flow for compact template.
func BenchmarkRenderCompactTemplate(b *testing.B) {
	benchmarkRenderTemplate(b, "compact")
}

// BenchmarkRenderFileYAML measures read + render flow from YAML file path.
func BenchmarkRenderFileYAML(b *testing.B) {
	schemaPath := filepath.Join("testdata", "schema.fixture.yaml")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := RenderFile(schemaPath, Options{
			Title:        "schema reference",
			TemplateName: "event",
		})
		if err != nil {
			b.Fatalf("RenderFile: %v", err)
		}
	}
}

// benchmarkRenderTemplate runs common in-memory benchmark for selected template.
func benchmarkRenderTemplate(b *testing.B, templateName string) {
	schemaPath := filepath.Join("testdata", "schema.fixture.json")
	schemaBytes := readBenchmarkFile(b, schemaPath)

	options := Options{
		Title:        "schema reference",
		SourcePath:   schemaPath,
		TemplateName: templateName,
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(schemaBytes)))

	for i := 0; i < b.N; i++ {
		_, err := Render(schemaBytes, options)
		if err != nil {
			b.Fatalf("Render: %v", err)
		}
	}
}

// readBenchmarkFile loads benchmark fixture file and fails benchmark on read errors.
func readBenchmarkFile(b *testing.B, path string) []byte {
	b.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatalf("read benchmark file %q: %v", path, err)
	}

	if len(data) == 0 {
		b.Fatalf("empty benchmark file: %s", path)
	}

	return data
}
