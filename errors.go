// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import (
	"errors"
	"strings"
)

var (
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrDecodeSchema is returned when schema JSON or YAML decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrSchemaRootType is returned when schema root is not an object.
	ErrSchemaRootType = errors.New("schema root must be object")
	// ErrUnknownInputFormat is returned when requested input format is not supported.
	ErrUnknownInputFormat = errors.New("unknown input format")
	// ErrEncodeSchema is returned when schema node cannot be encoded back to JSON text.
	ErrEncodeSchema = errors.New("encode schema")
	// ErrMissingProperties is returned when schema root has no "properties" object.
	ErrMissingProperties = errors.New(`missing "properties" object`)
	// ErrMissingDefs is returned when schema root has no "$defs" object.
	ErrMissingDefs = errors.New(`missing "$defs" object`)
	// ErrMalformedReference is returned when "$ref" is not a local "#/$defs/<name>" pointer.
	ErrMalformedReference = errors.New("malformed reference")
	// ErrMissingPropertyType is returned when property has neither "$ref" nor "type".
	ErrMissingPropertyType = errors.New(`property has neither "$ref" nor "type"`)
	// ErrInvalidNode is returned when a property or definition is not an object.
	ErrInvalidNode = errors.New("schema node must be object")
	// ErrExecuteTemplate is returned when document template execution fails.
	ErrExecuteTemplate = errors.New("execute template")
	// ErrParseTemplate is returned when document template parsing fails.
	ErrParseTemplate = errors.New("parse template")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrUnknownExampleMode is returned when example generation mode is not supported.
	ErrUnknownExampleMode = errors.New("unknown example mode")
	// ErrUnknownExampleFormat is returned when example generation format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExampleJSON is returned when generated example JSON encoding fails.
	ErrEncodeExampleJSON = errors.New("encode example json")
	// ErrEncodeExampleYAML is returned when generated example YAML encoding fails.
	ErrEncodeExampleYAML = errors.New("encode example yaml")
)

// ShapeError reports a schema shape problem at a JSON pointer location.
type ShapeError struct {
	// Pointer is RFC 6901 pointer to offending node, "" for document root.
	Pointer string
	// Err is one of the shape sentinel errors.
	Err error
	// Detail is optional extra context, for example the rejected value.
	Detail string
}

// Error formats shape error as "<sentinel> at <pointer>: <detail>".
func (e *ShapeError) Error() string {
	if e == nil {
		return "shape error <nil>"
	}

	var b strings.Builder
	b.WriteString(e.Err.Error())

	pointer := e.Pointer
	if pointer == "" {
		pointer = "/"
	}

	b.WriteString(" at ")
	b.WriteString(pointer)

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

// Unwrap exposes sentinel for errors.Is.
func (e *ShapeError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// newShapeError builds shape error for pointer built from path tokens.
func newShapeError(err error, detail string, tokens ...string) *ShapeError {
	return &ShapeError{
		Pointer: jsonPointer(tokens...),
		Err:     err,
		Detail:  detail,
	}
}

// jsonPointer joins raw tokens into escaped RFC 6901 pointer.
func jsonPointer(tokens ...string) string {
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	for _, token := range tokens {
		token = strings.ReplaceAll(token, "~", "~0")
		token = strings.ReplaceAll(token, "/", "~1")
		b.WriteByte('/')
		b.WriteString(token)
	}

	return b.String()
}
