package glyphs

import (
	"slices"
	"testing"
)

func TestUnicodeRange(t *testing.T) {
	tests := []struct {
		name  string
		input []uint32
		want  string
	}{
		{"empty", nil, ""},
		{"single", []uint32{0x41}, "U+41"},
		{"consecutive run", []uint32{0x41, 0x42, 0x43}, "U+41-43"},
		{"two runs", []uint32{0x41, 0x42, 0x43, 0x61, 0x62}, "U+41-43,U+61-62"},
		{"isolated points", []uint32{0x20, 0x41, 0x7A}, "U+20,U+41,U+7A"},
		{"unsorted input", []uint32{0x43, 0x41, 0x42}, "U+41-43"},
		{"duplicates collapse", []uint32{0x41, 0x41, 0x42}, "U+41-42"},
		{"uppercase hex no padding", []uint32{0x4E00, 0xA}, "U+A,U+4E00"},
		{"run of two", []uint32{0x30, 0x31}, "U+30-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnicodeRange(tt.input); got != tt.want {
				t.Errorf("UnicodeRange(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnicodeRange_DoesNotMutateInput(t *testing.T) {
	input := []uint32{0x43, 0x41, 0x42}
	UnicodeRange(input)
	if !slices.Equal(input, []uint32{0x43, 0x41, 0x42}) {
		t.Errorf("input was mutated: %v", input)
	}
}

func TestParseUnicodeRange(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		want := []uint32{0x20, 0x41, 0x42, 0x43, 0x4E00}
		got, err := ParseUnicodeRange(UnicodeRange(want))
		if err != nil {
			t.Fatalf("ParseUnicodeRange() error = %v", err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("round trip = %v, want %v", got, want)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got, err := ParseUnicodeRange("")
		if err != nil {
			t.Fatalf("ParseUnicodeRange() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("ParseUnicodeRange(\"\") = %v, want empty", got)
		}
	})

	t.Run("bad tokens", func(t *testing.T) {
		for _, s := range []string{"41", "U+GG", "U+43-41", "U+,U+41"} {
			if _, err := ParseUnicodeRange(s); err == nil {
				t.Errorf("ParseUnicodeRange(%q) expected error", s)
			}
		}
	})
}
