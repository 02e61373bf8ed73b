// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

// eventdoc generates event documentation pages from JSON Schema.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/eventdoc"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/eventdoc"
	_buildTime string
)

// cliOptions describes eventdoc CLI flags and subcommands.
type cliOptions struct {
	Version  versionCommand  `command:"version" description:"Print version information"`
	Template templateCommand `command:"template" description:"Print built-in document template"`
	Example  exampleCommand  `command:"example" description:"Print example event payload generated from schema"`

	Render renderFlags `group:"Render"`
}

// renderFlags groups root render flags used when no subcommand is given.
type renderFlags struct {
	InputPath     string `short:"i" long:"input" description:"Input JSON Schema file (stdin when omitted)"`
	OutputPath    string `short:"o" long:"output" description:"Output file, overwritten when present (stdout when omitted)"`
	TemplatePath  string `short:"f" long:"template" description:"Path to custom document template (.gotmpl)"`
	BuiltinName   string `short:"b" long:"builtin" description:"Built-in template style" choice:"event" choice:"compact" default:"event"`
	Title         string `short:"T" long:"title" description:"Document title" default:"Event schema reference"`
	InputFormat   string `short:"F" long:"format" description:"Input schema format" choice:"auto" choice:"json" choice:"yaml" default:"auto"`
	ExampleFormat string `long:"example-format" description:"Embed example event payload in selected format" choice:"json" choice:"yaml"`
	ExampleMode   string `long:"example-mode" description:"Example property coverage" choice:"all" choice:"required" default:"all"`
}

// exampleFlags groups example generation flags.
type exampleFlags struct {
	Mode     string `short:"m" long:"mode" description:"Example property coverage" choice:"all" choice:"required" default:"all"`
	Encoding string `short:"e" long:"encoding" description:"Example encoding" choice:"json" choice:"yaml" default:"json"`
}

// templateCommand exports built-in document template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	Name string `short:"t" long:"name" description:"Built-in template name" choice:"event" choice:"compact" default:"event"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.Name, command.Args.Output)
}

// exampleCommand prints generated example payload.
type exampleCommand struct {
	runner *cliRunner
	root   *renderFlags
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output example file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	ExampleFlags exampleFlags `group:"Example"`
}

// Execute runs example subcommand.
func (command *exampleCommand) Execute(_ []string) error {
	return command.runner.runExample(
		command.Args.Input,
		command.Args.Output,
		command.root.InputFormat,
		command.ExampleFlags.Mode,
		command.ExampleFlags.Encoding,
	)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	command.runner.printVersionInfo()
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "eventdoc"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// parseCLIArgs parses CLI arguments and runs selected subcommand or root render flow.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Template.runner = runner
	options.Example.runner = runner
	options.Example.root = &options.Render

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.SubcommandsOptional = true
	applyCommandLongDescriptions(parser, runner.programName)

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	if parser.Active != nil {
		return nil
	}

	if len(rest) > 0 {
		return &flags.Error{
			Type:    flags.ErrUnknownCommand,
			Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(rest, " ")),
		}
	}

	return runner.runRender(options.Render)
}

// runRender executes schema-to-document flow and writes result to stdout or file.
func (runner *cliRunner) runRender(opts renderFlags) error {
	schemaBytes, sourcePath, err := runner.readSchemaInput(opts.InputPath)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	inputFormat := resolveInputFormat(opts.InputFormat, opts.InputPath)
	root, err := eventdoc.ParseDocument(schemaBytes, inputFormat)
	if err != nil {
		return err
	}

	runner.warnDraft(root)

	renderOptions := eventdoc.Options{
		Title:         opts.Title,
		SourcePath:    sourcePath,
		TemplateName:  opts.BuiltinName,
		InputFormat:   inputFormat,
		ExampleMode:   eventdoc.ExampleMode(opts.ExampleMode),
		ExampleFormat: eventdoc.ExampleFormat(opts.ExampleFormat),
	}

	if opts.TemplatePath != "" {
		customTemplate, err := os.ReadFile(opts.TemplatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", opts.TemplatePath, err)
		}

		renderOptions.TemplateText = string(customTemplate)
	}

	rendered, err := eventdoc.RenderDocument(root, renderOptions)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	return runner.writeOutput(opts.OutputPath, []byte(rendered), "document")
}

// runExample writes generated example payload to stdout or file.
func (runner *cliRunner) runExample(inputPath, outputPath, inputFormat, mode, encoding string) error {
	schemaBytes, _, err := runner.readSchemaInput(inputPath)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	data, err := eventdoc.GenerateExample(
		schemaBytes,
		resolveInputFormat(inputFormat, inputPath),
		eventdoc.ExampleMode(mode),
		eventdoc.ExampleFormat(encoding),
	)
	if err != nil {
		return fmt.Errorf("generate example: %w", err)
	}

	return runner.writeOutput(outputPath, data, "example")
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := eventdoc.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	return runner.writeOutput(outputPath, []byte(tpl), "template")
}

// writeOutput writes data to file path or stdout when path is empty.
func (runner *cliRunner) writeOutput(path string, data []byte, what string) error {
	if strings.TrimSpace(path) == "" {
		if _, err := runner.stdout.Write(data); err != nil {
			return fmt.Errorf("write %s to stdout: %w", what, err)
		}

		return nil
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", what, path, err)
	}

	return nil
}

// warnDraft reports missing or unknown "$schema" dialect on stderr.
func (runner *cliRunner) warnDraft(root eventdoc.Node) {
	dialect := eventdoc.SchemaDialect(root)
	if dialect == "" {
		_, _ = fmt.Fprintln(runner.stderr, "warning: schema has no $schema value; draft support is unknown")
		return
	}

	if draft := eventdoc.DetectDraft(dialect); !draft.Supported {
		_, _ = fmt.Fprintf(runner.stderr, "warning: unsupported $schema value %q\n", dialect)
	}
}

// readSchemaInput reads schema from file path or stdin and returns source marker.
func (runner *cliRunner) readSchemaInput(path string) ([]byte, string, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("%w %q: %w", eventdoc.ErrReadSchemaFile, path, err)
		}

		return data, path, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read schema from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", errors.New("read schema from stdin: empty input")
	}

	return data, "", nil
}

// resolveInputFormat maps CLI format choice to input format, detecting "auto" by extension.
func resolveInputFormat(choice, path string) eventdoc.InputFormat {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "json":
		return eventdoc.InputFormatJSON
	case "yaml":
		return eventdoc.InputFormatYAML
	default:
		return eventdoc.DetectInputFormat(path)
	}
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	parser.LongDescription = strings.TrimSpace(fmt.Sprintf(`
Render event documentation page from JSON Schema.
Without subcommand reads schema from --input or stdin and writes page to --output or stdout.

Examples:
> $ %s --input event.schema.json --output event.md
> $ %s -i event.schema.json -f backend.md.gotmpl -o backend.md
> $ cat event.schema.yaml | %s --format yaml --builtin compact
`, programName, programName, programName))

	descriptions := map[string]string{
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in document template text (`+"`event` or `compact`"+`).
Use it as a starting point for a custom template file.

Examples:
> $ %s template > event.md.gotmpl
> $ %s template -t compact templates/compact.md.gotmpl
`, programName, programName)),
		"example": strings.TrimSpace(fmt.Sprintf(`
Generate example event payload from schema.
Reads schema from file argument or stdin; writes payload to file argument or stdout.

Examples:
> $ %s example event.schema.json
> $ %s example -m required -e yaml event.schema.json event.example.yaml
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// printVersionInfo writes build metadata to stdout.
func (runner *cliRunner) printVersionInfo() {
	_, _ = fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
