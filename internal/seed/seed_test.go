package seed

import (
	"testing"

	"github.com/evaldesk/evaldesk/internal/model"
)

func TestParseStatusOptions(t *testing.T) {
	options, err := ParseStatusOptions()
	if err != nil {
		t.Fatalf("ParseStatusOptions: %v", err)
	}
	if len(options) == 0 {
		t.Fatal("expected at least one seeded status option")
	}

	seen := map[string]bool{}
	for _, opt := range options {
		if opt.Scope != model.StatusOptionScopeSystem {
			t.Errorf("option %q scope = %q, want system", opt.Label, opt.Scope)
		}
		if opt.Label == "" {
			t.Error("option with empty label")
		}
		if seen[opt.Label] {
			t.Errorf("duplicate label %q", opt.Label)
		}
		seen[opt.Label] = true
	}

	if !seen["Compliant"] || !seen["Non-Compliant"] {
		t.Errorf("expected Compliant and Non-Compliant in defaults, got %v", seen)
	}
}
