// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var updateGolden = flag.Bool("update", false, "update golden files")

const minimalEventSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"properties": {
		"a": {"type": "integer"},
		"b": {"$ref": "#/$defs/B"}
	},
	"$defs": {
		"B": {"properties": {"x": {"description": "desc"}}}
	}
}`

func TestRenderDefaultTemplateSections(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(minimalEventSchema), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "# Event schema reference\n")
	assertContains(t, rendered, "## Schema\n\n```json\n{\n    \"properties\": {")
	assertContains(t, rendered, "| `a` | integer |  |")
	assertContains(t, rendered, "| `b` | $ref | Please see [B](#b) |")
	assertContains(t, rendered, "## `B`")
	assertContains(t, rendered, "| `x` | desc |")
	assertNotContains(t, rendered, "$schema")
	assertNotContains(t, rendered, "Source schema:")
	assertNotContains(t, rendered, "| References |")
	assertNotContains(t, rendered, "\n\n\n")

	if !strings.HasSuffix(rendered, "|\n") {
		t.Fatalf("rendered output must end with single newline:\n%q", rendered)
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(minimalEventSchema), Options{
		TemplateText: "{{ range .Parameters }}{{ .Name }}={{ .Type }};{{ end }}" +
			"{{ range .Definitions }}{{ .Name }}:{{ len .Descriptions }}{{ end }}",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if rendered != "a=integer;b=$ref;B:1\n" {
		t.Fatalf("unexpected custom render output: %q", rendered)
	}
}

func TestRenderCustomTemplateFuncs(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(minimalEventSchema), Options{
		TemplateText: "{{ range .Definitions }}{{ lower .Name }} {{ jsonInline .Descriptions }}{{ end }}",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if rendered != "b [{\"FieldName\":\"x\",\"Description\":\"desc\"}]\n" {
		t.Fatalf("unexpected custom render output: %q", rendered)
	}
}

func TestRenderCustomTemplateErrors(t *testing.T) {
	t.Parallel()

	_, err := Render([]byte(minimalEventSchema), Options{TemplateText: "{{ range .Parameters }"})
	if !errors.Is(err, ErrParseTemplate) {
		t.Fatalf("expected ErrParseTemplate, got: %v", err)
	}

	if !strings.HasPrefix(err.Error(), `parse template "custom": `) {
		t.Fatalf("parse error should name the template, got: %v", err)
	}

	_, err = Render([]byte(minimalEventSchema), Options{TemplateText: "{{ .Missing }}"})
	if !errors.Is(err, ErrExecuteTemplate) {
		t.Fatalf("expected ErrExecuteTemplate, got: %v", err)
	}

	_, err = Render([]byte(minimalEventSchema), Options{TemplateName: "missing"})
	if !errors.Is(err, ErrUnknownBuiltinTemplate) {
		t.Fatalf("expected ErrUnknownBuiltinTemplate, got: %v", err)
	}
}

func TestRenderPropagatesShapeErrors(t *testing.T) {
	t.Parallel()

	_, err := Render([]byte(`{"properties": {"a": {"type": "string"}}}`), Options{})
	if !errors.Is(err, ErrMissingDefs) {
		t.Fatalf("expected ErrMissingDefs, got: %v", err)
	}

	_, err = Render([]byte(`{"properties": {"a": {"$ref": "#/definitions/A"}}, "$defs": {}}`), Options{})

	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) || shapeErr.Pointer != "/properties/a/$ref" {
		t.Fatalf("expected shape error at /properties/a/$ref, got: %v", err)
	}
}

func TestRenderFileMissing(t *testing.T) {
	t.Parallel()

	_, err := RenderFile(filepath.Join("testdata", "missing.json"), Options{})
	if !errors.Is(err, ErrReadSchemaFile) {
		t.Fatalf("expected ErrReadSchemaFile, got: %v", err)
	}
}

func TestRenderYAMLInputMatchesJSON(t *testing.T) {
	t.Parallel()

	options := Options{Title: "schema reference", SourcePath: "event"}

	fromJSON, err := RenderFile(filepath.Join("testdata", "schema.fixture.json"), options)
	if err != nil {
		t.Fatalf("RenderFile json: %v", err)
	}

	fromYAML, err := RenderFile(filepath.Join("testdata", "schema.fixture.yaml"), options)
	if err != nil {
		t.Fatalf("RenderFile yaml: %v", err)
	}

	if fromJSON != fromYAML {
		t.Fatalf("yaml render differs from json render\njson:\n%s\nyaml:\n%s", fromJSON, fromYAML)
	}
}

func TestRenderEmbedsExampleJSON(t *testing.T) {
	t.Parallel()

	rendered, err := RenderFile(filepath.Join("testdata", "schema.fixture.json"), Options{
		ExampleFormat: ExampleFormatJSON,
	})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	assertContains(t, rendered, "## Example json event")
	assertContains(t, rendered, "```json\n{\n    \"event_id\": \"<string>\",\n    \"amount\": 0,")
	assertContains(t, rendered, "\"city\": \"<string>\"")
}

func TestRenderEmbedsExampleYAMLRequiredMode(t *testing.T) {
	t.Parallel()

	rendered, err := RenderFile(filepath.Join("testdata", "schema.fixture.json"), Options{
		ExampleFormat: ExampleFormatYAML,
		ExampleMode:   ExampleModeRequired,
	})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	assertContains(t, rendered, "## Example yaml event")
	assertContains(t, rendered, "```yaml")
	assertContains(t, rendered, "event_id: <string>")
	assertNotContains(t, rendered, "amount: 0")
}

func TestRenderFixtures(t *testing.T) {
	t.Parallel()

	fixtures, err := filepath.Glob(filepath.Join("testdata", "fixtures", "*.json"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}

	if len(fixtures) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, fixture := range fixtures {
		t.Run(filepath.Base(fixture), func(t *testing.T) {
			t.Parallel()

			for _, name := range BuiltinTemplateNames() {
				output, err := RenderFile(fixture, Options{TemplateName: name})
				if err != nil {
					t.Fatalf("RenderFile(%s, %s): %v", fixture, name, err)
				}

				if strings.TrimSpace(output) == "" {
					t.Fatalf("empty %s output for %s", name, fixture)
				}

				assertNotContains(t, output, "$schema")
			}
		})
	}
}

func TestRenderHidesLegacyDefinitionsInEventSchema(t *testing.T) {
	t.Parallel()

	rendered, err := RenderFile(filepath.Join("testdata", "fixtures", "user-signed-up.json"), Options{})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	assertNotContains(t, rendered, `"definitions"`)
	assertNotContains(t, rendered, "Legacy")
	assertContains(t, rendered, "| `profile` | Optional public profile |")
	assertContains(t, rendered, "| [Profile](#profile) |")
	assertContains(t, rendered, "| `source` | [\"string\",\"null\"] |  |")
}

func TestRenderLinksUseReferenceAnchor(t *testing.T) {
	t.Parallel()

	schema := []byte(`{
		"properties": {"item": {"$ref": "#/$defs/Foo_Bar"}},
		"$defs": {
			"Foo_Bar": {"type": "object"},
			"Other": {"properties": {"link": {"$ref": "#/$defs/Foo_Bar"}}}
		}
	}`)

	for _, name := range BuiltinTemplateNames() {
		rendered, err := Render(schema, Options{TemplateName: name})
		if err != nil {
			t.Fatalf("Render(%s): %v", name, err)
		}

		assertContains(t, rendered, "Please see [Foo_Bar](#foo_bar)")
		if got := strings.Count(rendered, "[Foo_Bar](#foo_bar)"); got != 2 {
			t.Fatalf("%s: want parameter and definition links to Foo_Bar, got %d:\n%s", name, got, rendered)
		}

		assertNotContains(t, rendered, "#foo-bar")
	}
}

func TestBuiltinTemplates(t *testing.T) {
	t.Parallel()

	names := BuiltinTemplateNames()
	if strings.Join(names, ",") != "compact,event" {
		t.Fatalf("unexpected template names: %v", names)
	}

	text, err := BuiltinTemplate(" EVENT ")
	if err != nil {
		t.Fatalf("BuiltinTemplate: %v", err)
	}

	assertContains(t, text, "{{ .EventSchema }}")

	if _, err := BuiltinTemplate("missing"); !errors.Is(err, ErrUnknownBuiltinTemplate) {
		t.Fatalf("expected ErrUnknownBuiltinTemplate, got: %v", err)
	}
}

func TestRenderOutputHasNoHTML(t *testing.T) {
	t.Parallel()

	rendered, err := RenderFile(filepath.Join("testdata", "schema.fixture.json"), Options{})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	htmlPattern := regexp.MustCompile(`<[A-Za-z/][^>]*>`)
	if htmlPattern.MatchString(rendered) {
		t.Fatalf("rendered markdown contains html tags")
	}
}

func TestMarkdownHeadingAnchor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"UserInfo":         "userinfo",
		"  Order Line  ":   "order-line",
		"snake_case--name": "snake-case-name",
		"v2.Event!":        "v2event",
		"":                 "",
	}

	for input, want := range cases {
		if got := markdownHeadingAnchor(input); got != want {
			t.Fatalf("markdownHeadingAnchor(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeMarkdownOutputKeepsFencedBlankLines(t *testing.T) {
	t.Parallel()

	got := normalizeMarkdownOutput("\n\n# T  \n\n\n\ntext\n```\na\n\n\nb\n```\n\n\n")
	want := "# T\n\ntext\n```\na\n\n\nb\n```"
	if got != want {
		t.Fatalf("normalizeMarkdownOutput = %q, want %q", got, want)
	}
}

func TestRenderGoldenEvent(t *testing.T) {
	testRenderGoldenTemplate(t, "event", filepath.Join("testdata", "schema.golden.event.md"))
}

func TestRenderGoldenCompact(t *testing.T) {
	testRenderGoldenTemplate(t, "compact", filepath.Join("testdata", "schema.golden.compact.md"))
}

func testRenderGoldenTemplate(t *testing.T, templateName, goldenPath string) {
	t.Helper()

	schemaPath := filepath.Join("testdata", "schema.fixture.json")
	const sourcePath = "testdata/schema.fixture.json"
	got, err := RenderFile(schemaPath, Options{
		Title:        "schema reference",
		SourcePath:   sourcePath,
		TemplateName: templateName,
	})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	if *updateGolden {
		if err := os.WriteFile(goldenPath, []byte(got), 0o600); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}

	wantBytes, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	want := string(wantBytes)
	if got != want {
		t.Fatalf("golden mismatch for %s; run `go test . -run TestRenderGolden -update`", templateName)
	}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("missing substring %q in:\n%s", needle, haystack)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if strings.Contains(haystack, needle) {
		t.Fatalf("unexpected substring %q in:\n%s", needle, haystack)
	}
}
