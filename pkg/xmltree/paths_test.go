package xmltree

import (
	"testing"
)

func TestToAbsolute(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"relative", "./A/B", "/A/B"},
		{"bare", "A/B", "/A/B"},
		{"already absolute", "/A/B", "/A/B"},
		{"attribute", "./A/@x", "/A/@x"},
		{"alternation", "(./A/B | /A/@b)", "(/A/B | /A/@b)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToAbsolute(tt.in); got != tt.want {
				t.Errorf("ToAbsolute(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToRelative(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute", "/A/B", "./A/B"},
		{"already relative", "./A/B", "./A/B"},
		{"alternation", "(/A/B | ./C)", "(./A/B | ./C)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRelative(tt.in); got != tt.want {
				t.Errorf("ToRelative(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAlternatives(t *testing.T) {
	got := Alternatives("( /A/B | ./C/@d )")
	if len(got) != 2 || got[0] != "/A/B" || got[1] != "./C/@d" {
		t.Errorf("Alternatives() = %v", got)
	}

	got = Alternatives("/A")
	if len(got) != 1 || got[0] != "/A" {
		t.Errorf("Alternatives() = %v", got)
	}
}

func TestSplitAttribute(t *testing.T) {
	parent, attr, ok := SplitAttribute("./A/B/@x")
	if !ok || parent != "./A/B" || attr != "x" {
		t.Errorf("SplitAttribute() = %q, %q, %v", parent, attr, ok)
	}

	parent, attr, ok = SplitAttribute("./@x")
	if !ok || parent != "." || attr != "x" {
		t.Errorf("SplitAttribute() = %q, %q, %v", parent, attr, ok)
	}

	if _, _, ok := SplitAttribute("./A/B"); ok {
		t.Error("SplitAttribute() accepted an element path")
	}
}

func TestRelativeTo(t *testing.T) {
	if got := RelativeTo("/A/B/C", "/A/B"); got != "./C" {
		t.Errorf("RelativeTo() = %q, want ./C", got)
	}
	if got := RelativeTo("/A/B", "/A/B"); got != "." {
		t.Errorf("RelativeTo() = %q, want .", got)
	}
}
