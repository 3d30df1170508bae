package util

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and paragraph",
			source:   "## Findings\n\nThe policy covers access control.",
			contains: []string{"<h2", "Findings", "<p>The policy covers access control.</p>"},
		},
		{
			name:     "bold and list",
			source:   "**Strong** points:\n\n- encryption\n- audits",
			contains: []string{"<strong>Strong</strong>", "<li>encryption</li>", "<li>audits</li>"},
		},
		{
			name:     "script tags stripped",
			source:   "hello <script>alert(1)</script> world",
			contains: []string{"hello"},
			excludes: []string{"<script>", "alert(1)"},
		},
		{
			name:     "raw event handlers stripped",
			source:   `<a href="https://example.com" onclick="steal()">link</a>`,
			contains: []string{"link"},
			excludes: []string{"onclick"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderMarkdown(tt.source)
			if err != nil {
				t.Fatalf("RenderMarkdown(%q) error: %v", tt.source, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output %q missing %q", got, want)
				}
			}
			for _, not := range tt.excludes {
				if strings.Contains(got, not) {
					t.Errorf("output %q should not contain %q", got, not)
				}
			}
		})
	}
}
