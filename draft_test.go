// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/eventdoc

package eventdoc

import "testing"

func TestDetectDraft(t *testing.T) {
	t.Parallel()

	cases := []struct {
		uri       string
		canonical string
		supported bool
	}{
		{"https://json-schema.org/draft/2020-12/schema", "2020-12", true},
		{"https://json-schema.org/draft/2019-09/schema#", "2019-09", true},
		{"http://json-schema.org/draft-07/schema#", "draft-07", true},
		{"http://json-schema.org/draft-04/schema", "draft-04", true},
		{"  HTTPS://JSON-SCHEMA.ORG/DRAFT-06/SCHEMA#  ", "draft-06", true},
		{"https://example.com/custom/schema", "example.com/custom", false},
		{"", "", false},
	}

	for _, tc := range cases {
		info := DetectDraft(tc.uri)
		if info.Raw != tc.uri {
			t.Fatalf("DetectDraft(%q).Raw = %q", tc.uri, info.Raw)
		}

		if info.Canonical != tc.canonical || info.Supported != tc.supported {
			t.Fatalf("DetectDraft(%q) = %+v, want canonical %q supported %v", tc.uri, info, tc.canonical, tc.supported)
		}
	}
}
