package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int", -100, "-100"},
		{"bool", true, "true"},
		{"nil slice", []string(nil), "null"},
		{"empty slice", []string{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"html not escaped", "<a & b>", `"<a & b>"`},
		{"newline escaped", "a\nb", `"a\nb"`},
		{"line separator literal", "a\u2028b", "\"a\u2028b\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": 1,
		"alpha": 2,
		"beta":  map[string]any{"y": 1, "x": 2},
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":{"x":2,"y":1},"zebra":1}`, string(result))
}

func TestMarshalCanonicalStructUsesJSONTags(t *testing.T) {
	result, err := MarshalCanonical(GridSize{Rows: 6, Columns: 10})
	require.NoError(t, err)
	assert.Equal(t, `{"columns":10,"rows":6}`, string(result))
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"x": 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// e + combining acute vs precomposed e-acute
	decomposed, err := MarshalCanonical("é")
	require.NoError(t, err)
	composed, err := MarshalCanonical("\u00e9")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestCompareUTF16(t *testing.T) {
	// U+1F600 encodes as a surrogate pair (0xD83D...) which sorts before U+FF61
	assert.Less(t, compareUTF16("\U0001F600", "\uFF61"), 0)
	assert.Equal(t, 0, compareUTF16("abc", "abc"))
	assert.Less(t, compareUTF16("ab", "abc"), 0)
}
