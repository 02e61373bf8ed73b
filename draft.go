// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import "strings"

// DraftInfo describes detected JSON Schema dialect.
type DraftInfo struct {
	// Raw is the original "$schema" value.
	Raw string
	// Canonical is short draft name such as "2020-12" or "draft-07".
	Canonical string
	// Supported reports whether draft is known to this package.
	Supported bool
}

// supportedDrafts lists canonical draft names accepted by DetectDraft.
var supportedDrafts = map[string]struct{}{
	"draft-04": {},
	"draft-05": {},
	"draft-06": {},
	"draft-07": {},
	"2019-09":  {},
	"2020-12":  {},
}

// DetectDraft normalizes "$schema" URI into canonical draft name.
func DetectDraft(uri string) DraftInfo {
	info := DraftInfo{Raw: uri}

	value := strings.ToLower(strings.TrimSpace(uri))
	if value == "" {
		return info
	}

	value = strings.TrimPrefix(value, "https://")
	value = strings.TrimPrefix(value, "http://")
	value = strings.TrimSuffix(value, "#")
	value = strings.TrimSuffix(value, "/")
	value = strings.TrimSuffix(value, "/schema")

	switch {
	case strings.HasPrefix(value, "json-schema.org/draft/"):
		info.Canonical = strings.TrimPrefix(value, "json-schema.org/draft/")
	case strings.HasPrefix(value, "json-schema.org/"):
		info.Canonical = strings.TrimPrefix(value, "json-schema.org/")
	default:
		info.Canonical = value
	}

	_, info.Supported = supportedDrafts[info.Canonical]
	return info
}
