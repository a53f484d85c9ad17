package importfilter

import (
	"strings"
	"testing"
)

func TestCanonicalizeHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"exact canonical name", "INDIAN IMPORTER NAME", ColIndianImporterName},
		{"lower case", "indian importer name", ColIndianImporterName},
		{"mixed case", "Indian Importer Name", ColIndianImporterName},
		{"surrounding whitespace", "  DATE  ", ColDate},
		{"multi-word numeric column", "total ass value in foreign currency", ColTotalValueForeign},
		{"unknown header passes through trimmed", "  HS CODE  ", "HS CODE"},
		{"unknown header keeps its case", "Consignee Phone", "Consignee Phone"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := canonicalizeHeader(tt.raw); got != tt.want {
				t.Errorf("canonicalizeHeader(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNumericColumnsAreCanonical(t *testing.T) {
	t.Parallel()

	for name := range numericColumns {
		if canonicalizeHeader(name) != name {
			t.Errorf("numeric column %q is not in the canonical allow-list", name)
		}
	}
}

func TestAWPKeywordsVocabulary(t *testing.T) {
	t.Parallel()

	if len(AWPKeywords) == 0 {
		t.Fatal("AWP keyword vocabulary must not be empty")
	}
	seen := make(map[string]bool)
	for _, kw := range AWPKeywords {
		if strings.TrimSpace(kw) == "" {
			t.Error("blank keyword in vocabulary")
		}
		if seen[kw] {
			t.Errorf("duplicate keyword %q", kw)
		}
		seen[kw] = true
	}
}
