package detail

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"z": 1, "a": 2, "m": 3}`))
	require.NoError(t, err)
	require.Equal(t, Map, v.Kind())

	var keys []string
	for _, e := range v.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestParseScalars(t *testing.T) {
	v, err := Parse([]byte(`["s", 12.50, true, null]`))
	require.NoError(t, err)
	require.Equal(t, List, v.Kind())
	require.Len(t, v.Items(), 4)

	assert.Equal(t, "s", v.Items()[0].Text())
	assert.Equal(t, "12.50", v.Items()[1].Text(), "numbers keep their literal form")
	assert.Equal(t, "true", v.Items()[2].Text())
	assert.Equal(t, "null", v.Items()[3].Text())
}

func TestParseRejectsTrailingData(t *testing.T) {
	_, err := Parse([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	in := `{"b":[1,2,{"x":null}],"a":"q"}`
	v, err := Parse([]byte(in))
	require.NoError(t, err)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestGet(t *testing.T) {
	v := NewMap(Entry{Key: "bill", Value: NewMap(Entry{Key: "number", Value: String("16")})})
	bill, ok := v.Get("bill")
	require.True(t, ok)
	num, ok := bill.Get("number")
	require.True(t, ok)
	assert.Equal(t, "16", num.Text())

	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestRenderKeepsEveryLeaf(t *testing.T) {
	v, err := Parse([]byte(`{"a": {"b": 1, "c": [2, 3]}, "d": "x"}`))
	require.NoError(t, err)

	out := Render(v, Theme{})
	for _, leaf := range []string{"1", "2", "3", "x"} {
		assert.Contains(t, out, leaf)
	}
	for _, key := range []string{"a", "b", "c", "d"} {
		assert.Contains(t, out, key)
	}
}

func TestRenderLayout(t *testing.T) {
	v, err := Parse([]byte(`{"a": {"b": 1, "cc": [2, 3]}, "d": "x"}`))
	require.NoError(t, err)

	want := strings.Join([]string{
		"a",
		"  b   1",
		"  cc  [",
		"        2,",
		"        3",
		"      ]",
		"d",
		"x",
	}, "\n")
	assert.Equal(t, want, Render(v, Theme{}))
}

func TestRenderListRecursesDeeper(t *testing.T) {
	v := NewList(String("top"), NewList(String("nested")))
	assert.Equal(t, "  top\n    nested", Render(v, Theme{}))
}

func TestRenderListChildAsIndexedTable(t *testing.T) {
	v := NewMap(Entry{Key: "cosponsors", Value: NewList(String("A"), String("B"))})
	assert.Equal(t, "cosponsors\n  0  A\n  1  B", Render(v, Theme{}))
}

func TestRenderDeepNesting(t *testing.T) {
	doc := `"leaf"`
	for i := 0; i < 200; i++ {
		doc = "[" + doc + "]"
	}
	v, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Contains(t, Render(v, Theme{}), "leaf")
}

func TestRenderAppliesTheme(t *testing.T) {
	v := NewMap(Entry{Key: "title", Value: String("An Act")})
	theme := Theme{
		Heading: func(s ...string) string { return "# " + strings.Join(s, "") },
		Text:    func(s ...string) string { return strings.ToUpper(strings.Join(s, "")) },
	}
	assert.Equal(t, "# title\nAN ACT", Render(v, theme))
}

func TestRenderAcceptsLipglossStyles(t *testing.T) {
	plain := lipgloss.NewStyle()
	v := NewMap(
		Entry{Key: "title", Value: String("An Act")},
		Entry{Key: "sponsors", Value: NewList(String("Rep. A"))},
	)
	out := Render(v, Theme{Heading: plain.Render, Key: plain.Render, Text: plain.Render})
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "An Act")
	assert.Contains(t, out, "Rep. A")
}
