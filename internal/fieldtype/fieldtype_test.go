package fieldtype

import (
	"strings"
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		in   Type
		want string
	}{
		{DateTime, "Date with time"},
		{MultilineText, "Long text"},
		{MultipleAttachments, "Attachments"},
		{MultipleRecordLinks, "Linked records"},
		{MultipleSelects, "Multiple select"},
		{URL, "URL"},
		{Checkbox, "Checkbox"},
		{SingleLineText, "Single line text"},
		{PhoneNumber, "Phone number"},
		{MultipleLookupValues, "Multiple lookup values"},
		{AIText, "Ai text"},
		{Type("brandNewKind"), "Brand new kind"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := Label(tt.in); got != tt.want {
				t.Fatalf("Label(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLabel_AttachmentsIsCurated(t *testing.T) {
	if got := Label(MultipleAttachments); got == fromCamel(string(MultipleAttachments)) {
		t.Fatalf("Label(multipleAttachments) = %q, want curated label", got)
	}
}

func TestLabel_GenericShape(t *testing.T) {
	for _, kind := range All() {
		if _, ok := curated[kind]; ok {
			continue
		}
		got := Label(kind)
		if got == "" {
			t.Fatalf("Label(%q) is empty", kind)
		}
		if strings.ToUpper(got[:1]) != got[:1] {
			t.Fatalf("Label(%q) = %q, want first letter upper case", kind, got)
		}
		if rest := got[1:]; strings.ToLower(rest) != rest {
			t.Fatalf("Label(%q) = %q, want remainder lower case", kind, got)
		}
		if strings.Count(got, " ") != countUpper(string(kind)) {
			t.Fatalf("Label(%q) = %q, want one space per word boundary", kind, got)
		}
	}
}

func TestIconAndKnown(t *testing.T) {
	for _, kind := range All() {
		if !Known(kind) {
			t.Fatalf("Known(%q) = false, want true", kind)
		}
		if Icon(kind) == fallbackIcon {
			t.Fatalf("Icon(%q) uses fallback glyph", kind)
		}
	}
	if Known(Type("mystery")) {
		t.Fatalf("Known(mystery) = true, want false")
	}
	if got := Icon(Type("mystery")); got != fallbackIcon {
		t.Fatalf("Icon(mystery) = %q, want %q", got, fallbackIcon)
	}
}

func countUpper(s string) int {
	n := 0
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			n++
		}
	}
	return n
}
