package resolver

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestValue_Int(t *testing.T) {
	tests := []struct {
		input string
		def   int
		want  int
	}{
		{"42", 0, 42},
		{"-7", 0, -7},
		{" 12 ", 9, 9},
		{"12\n", 9, 9},
		{"+3", 0, 3},
		{"1_000", 9, 9},
		{"99999999999999999999", 9, 9},
		{"4.5", 9, 9},
		{"0x10", 9, 9},
		{"", 9, 9},
		{NotFound, 5, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Value(tt.input).Int(tt.def), "Int(%q)", tt.input)
	}
}

func TestValue_Float(t *testing.T) {
	tests := []struct {
		input string
		def   float64
		want  float64
	}{
		{"3.14", 0, 3.14},
		{"2", 0, 2},
		{"-1e3", 0, -1000},
		{".5", 0, 0.5},
		{"5.", 0, 5},
		{" 2.5 ", 0, 2.5},
		{"1.5f", 0, 1.5},
		{"2D", 0, 2},
		{"0x1p4", 0, 16},
		{"0x1.8p1d", 0, 3},
		{"abc", 1.5, 1.5},
		{"inf", 1.5, 1.5},
		{"infinity", 1.5, 1.5},
		{"nan", 1.5, 1.5},
		{"1_000.5", 1.5, 1.5},
		{"0x10", 1.5, 1.5},
		{"1.5ff", 1.5, 1.5},
		{"", 1.5, 1.5},
		{"-", 1.5, 1.5},
		{NotFound, 2.5, 2.5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Value(tt.input).Float(tt.def), 1e-9, "Float(%q)", tt.input)
	}
}

func TestValue_FloatSpecialWords(t *testing.T) {
	assert.True(t, math.IsInf(Value("Infinity").Float(0), 1))
	assert.True(t, math.IsInf(Value("-Infinity").Float(0), -1))
	assert.True(t, math.IsNaN(Value("NaN").Float(0)))
	assert.True(t, math.IsInf(Value("1e400").Float(0), 1))
}

func TestValue_Bool(t *testing.T) {
	for _, s := range []string{"true", "1", "yes", "on", "TRUE", "Yes", " On "} {
		assert.True(t, Value(s).Bool(false), "Bool(%q)", s)
	}

	for _, s := range []string{"false", "0", "no", "off", "FALSE", "No", " OFF"} {
		assert.False(t, Value(s).Bool(true), "Bool(%q)", s)
	}

	for _, s := range []string{"", "y", "enabled", "2", NotFound} {
		assert.True(t, Value(s).Bool(true), "Bool(%q) should fall back", s)
		assert.False(t, Value(s).Bool(false), "Bool(%q) should fall back", s)
	}
}

func TestValue_BoolCaseInsensitive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.SampledFrom([]string{"true", "1", "yes", "on", "false", "0", "no", "off"}).Draw(t, "word")
		upper := rapid.SliceOfN(rapid.Bool(), len(word), len(word)).Draw(t, "upper")
		def := rapid.Bool().Draw(t, "def")

		var b strings.Builder
		for i, r := range word {
			if upper[i] {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteRune(r)
			}
		}

		want := word == "true" || word == "1" || word == "yes" || word == "on"
		if got := Value(b.String()).Bool(def); got != want {
			t.Fatalf("Bool(%q) = %v, want %v", b.String(), got, want)
		}
	})
}

func TestValue_BoolUnknownFallsBack(t *testing.T) {
	known := map[string]bool{"true": true, "1": true, "yes": true, "on": true, "false": true, "0": true, "no": true, "off": true}

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		if known[strings.ToLower(strings.TrimSpace(s))] {
			t.Skip("recognised word")
		}

		def := rapid.Bool().Draw(t, "def")
		if got := Value(s).Bool(def); got != def {
			t.Fatalf("Bool(%q) = %v, want default %v", s, got, def)
		}
	})
}

func TestValue_List(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim string
		want  []string
	}{
		{"comma separated with spaces", "a, b ,c", ",", []string{"a", "b", "c"}},
		{"empty pieces dropped", "a,,b, ,", ",", []string{"a", "b"}},
		{"custom delimiter", "x|y | z", "|", []string{"x", "y", "z"}},
		{"empty delimiter means comma", "x,y", "", []string{"x", "y"}},
		{"single value", "only", ",", []string{"only"}},
		{"blank", "   ", ",", []string{}},
		{"empty", "", ",", []string{}},
		{"sentinel", NotFound, ",", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.input).List(tt.delim))
		})
	}
}

func TestValue_ListItemsAreTrimmedAndNonEmpty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(rapid.StringMatching(`[ a-z]{0,6}`)).Draw(t, "items")
		got := Value(strings.Join(items, ",")).List(",")

		want := make([]string, 0)
		for _, item := range items {
			if s := strings.TrimSpace(item); s != "" {
				want = append(want, s)
			}
		}

		if len(got) != len(want) {
			t.Fatalf("got %q, want %q", got, want)
		}

		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("item %d: got %q, want %q", i, got[i], want[i])
			}
		}
	})
}

func TestValue_Found(t *testing.T) {
	assert.True(t, Value("").Found())
	assert.True(t, Value("x").Found())
	assert.False(t, Value(NotFound).Found())
}
