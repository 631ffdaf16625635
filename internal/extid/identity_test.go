package extid

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Identity
	}{
		{"versioned", "ms-vscode.cpptools@1.20.5", Identity{"ms-vscode", "cpptools", "1.20.5"}},
		{"unversioned", "rust-lang.rust-analyzer", Identity{"rust-lang", "rust-analyzer", ""}},
		{"lower-cases vendor and name", "EFanZh.Graphviz-Preview@1.7.2", Identity{"efanzh", "graphviz-preview", "1.7.2"}},
		{"name keeps later dots", "vendor.name.with.dots@2.0.0", Identity{"vendor", "name.with.dots", "2.0.0"}},
		{"surrounding whitespace", "  a.b@1.0 ", Identity{"a", "b", "1.0"}},
		{"no separator", "garbage", Identity{"garbage", "", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, s := range []string{"vend.ext@1.0.0", "a.b@1.0", "vend.ext", "x.y"} {
		if got := Parse(s).String(); got != s {
			t.Errorf("Parse(%q).String() = %q", s, got)
		}
	}
}

func TestValid(t *testing.T) {
	if !Parse("a.b").Valid() {
		t.Error("expected a.b to be valid")
	}
	if Parse("ab").Valid() {
		t.Error("expected ab to be invalid")
	}
	if Parse(".b").Valid() {
		t.Error("expected .b to be invalid")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name           string
		a, b           string
		compareVersion bool
		want           bool
	}{
		{"same full", "a.b@1.0", "a.b@1.0", true, true},
		{"different version strict", "a.b@1.0", "a.b@2.0", true, false},
		{"different version relaxed", "a.b@1.0", "a.b@2.0", false, true},
		{"case insensitive", "A.B@1.0", "a.b@1.0", true, true},
		{"different name", "a.b@1.0", "a.c@1.0", false, false},
		{"different vendor", "a.b", "c.b", false, false},
		{"versioned vs unversioned strict", "a.b@1.0", "a.b", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.a).Equal(Parse(tt.b), tt.compareVersion)
			if got != tt.want {
				t.Errorf("Equal(%q, %q, %v) = %v, want %v", tt.a, tt.b, tt.compareVersion, got, tt.want)
			}
		})
	}
}

func TestEqual_FullImpliesNameEqual(t *testing.T) {
	ids := ParseAll([]string{"a.b@1.0", "a.b@2.0", "a.b", "c.d@1.0", "C.D@1.0"})
	for _, x := range ids {
		for _, y := range ids {
			if x.Equal(y, true) && !x.Equal(y, false) {
				t.Errorf("%s and %s fully equal but not name equal", x, y)
			}
		}
	}
}

func TestFind(t *testing.T) {
	set := ParseAll([]string{"a.b@1.0", "c.d@2.0"})

	got, ok := Find(set, Parse("c.d@3.0"), false)
	if !ok {
		t.Fatal("expected name match for c.d")
	}
	if got.Version != "2.0" {
		t.Errorf("found version %q, want 2.0", got.Version)
	}

	if Contains(set, Parse("c.d@3.0"), true) {
		t.Error("expected no full match for c.d@3.0")
	}
	if Contains(set, Parse("e.f"), false) {
		t.Error("expected no match for e.f")
	}
}
