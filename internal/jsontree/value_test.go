package jsontree

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesMemberOrder(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"zeta": 1, "alpha": 2, "mid": {"b": true, "a": null}}`))
	require.NoError(t, err)

	members, err := v.Members()
	require.NoError(t, err)

	var keys []string
	for _, m := range members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
	}{
		"empty input":      {input: ""},
		"trailing comma":   {input: `{"a": 1,}`},
		"inline comment":   {input: "{\"a\": 1 // note\n}"},
		"trailing data":    {input: `{"a": 1} {"b": 2}`},
		"unterminated":     {input: `{"a": [1, 2`},
		"single quotes":    {input: `{'a': 1}`},
		"array trailing ,": {input: `[1, 2,]`},
		"bare identifier":  {input: `{"a": undefined}`},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestDecode_SyntaxErrorCarriesOffset(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{\n  \"a\": 1,\n}"))
	var syntaxErr *json.SyntaxError
	require.True(t, errors.As(err, &syntaxErr), "want *json.SyntaxError, got %T", err)
	assert.Greater(t, syntaxErr.Offset, int64(0))
}

func TestDecode_RejectsInvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{\"a\": \"ok\", \"b\": \"caf\xe9\"}"))
	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr), "want *EncodingError, got %T", err)
	assert.Equal(t, int64(21), encErr.Offset)

	v, err := Decode([]byte(`{"r": "\ufffd", "s": "�"}`))
	require.NoError(t, err, "a literal replacement character is valid input")
	out, err := Encode(v, "")
	require.NoError(t, err)
	assert.Equal(t, `{"r":"�","s":"�"}`+"\n", string(out))
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	input := `{"b":1.50,"a":[1e3,-0,12345678901234567890],"s":"<tag> & \"q\"","u":"héllo","n":null,"e":{},"l":[],"dup":1,"dup":2}`

	v, err := Decode([]byte(input))
	require.NoError(t, err)

	out, err := Encode(v, "")
	require.NoError(t, err)
	assert.Equal(t, input+"\n", string(out))
}

func TestEncode_Indent(t *testing.T) {
	t.Parallel()

	v := NewObject(
		Member{Key: "keys", Value: NewString("ctrl+.")},
		Member{Key: "list", Value: NewArray(NewInt(1), NewInt(2))},
		Member{Key: "empty", Value: NewArray()},
	)

	out, err := Encode(v, "    ")
	require.NoError(t, err)

	want := "{\n    \"keys\": \"ctrl+.\",\n    \"list\": [\n        1,\n        2\n    ],\n    \"empty\": []\n}\n"
	assert.Equal(t, want, string(out))
}

func TestAccessors_ShapeErrors(t *testing.T) {
	t.Parallel()

	str := NewString("x")

	_, err := str.AsArray()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShape))

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, Array, shapeErr.Want)
	assert.Equal(t, String, shapeErr.Got)
	assert.Equal(t, "expected array, got string", err.Error())

	_, _, err = str.Get("k")
	assert.ErrorIs(t, err, ErrShape)
	assert.ErrorIs(t, str.Set("k", NewNull()), ErrShape)
	assert.ErrorIs(t, str.Append(NewNull()), ErrShape)

	_, err = NewInt(1).AsString()
	assert.ErrorIs(t, err, ErrShape)
	_, err = NewNull().AsBool()
	assert.ErrorIs(t, err, ErrShape)
}

func TestGetSet(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"a": 1, "a": 2, "b": 3}`))
	require.NoError(t, err)

	got, ok, err := v.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	n, err := got.AsNumber()
	require.NoError(t, err)
	assert.Equal(t, json.Number("2"), n, "last duplicate wins")

	_, ok, err = v.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, v.Set("c", NewBool(true)))
	require.NoError(t, v.Set("b", NewString("x")))

	out, err := Encode(v, "")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"a":2,"b":"x","c":true}`+"\n", string(out))
}

func TestNilValueIsNull(t *testing.T) {
	t.Parallel()

	var v *Value
	assert.Equal(t, Null, v.Kind())
	assert.True(t, v.IsNull())
	assert.Equal(t, 0, v.Len())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b string
		want bool
	}{
		"member order ignored": {a: `{"a":1,"b":2}`, b: `{"b":2,"a":1}`, want: true},
		"numeric equality":     {a: `{"n":1.0}`, b: `{"n":1}`, want: true},
		"exponent equality":    {a: `[1e2]`, b: `[100]`, want: true},
		"array order matters":  {a: `[1,2]`, b: `[2,1]`, want: false},
		"missing member":       {a: `{"a":1}`, b: `{"a":1,"b":2}`, want: false},
		"different kinds":      {a: `{"a":"1"}`, b: `{"a":1}`, want: false},
		"nested difference":    {a: `{"a":{"b":[true]}}`, b: `{"a":{"b":[false]}}`, want: false},
		"null equals null":     {a: `null`, b: `null`, want: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			a, err := Decode([]byte(tt.a))
			require.NoError(t, err)
			b, err := Decode([]byte(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, Equal(a, b))
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	orig, err := Decode([]byte(`{"list":[{"k":"v"}]}`))
	require.NoError(t, err)

	c := orig.Clone()
	list, _, err := c.Get("list")
	require.NoError(t, err)
	require.NoError(t, list.Append(NewInt(7)))

	origList, _, err := orig.Get("list")
	require.NoError(t, err)
	assert.Equal(t, 1, origList.Len())
	assert.Equal(t, 2, list.Len())
}

func TestInterface(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"action":"adjustFontSize","delta":-1,"scale":1.5,"on":true,"x":null,"l":["a"]}`))
	require.NoError(t, err)

	want := map[string]any{
		"action": "adjustFontSize",
		"delta":  int64(-1),
		"scale":  1.5,
		"on":     true,
		"x":      nil,
		"l":      []any{"a"},
	}
	if diff := cmp.Diff(want, v.Interface()); diff != "" {
		t.Errorf("Interface() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	t.Parallel()

	var holder struct {
		Command *Value `json:"command"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"command":{"action":"adjustFontSize","delta":1}}`), &holder))

	action, _, err := holder.Command.Get("action")
	require.NoError(t, err)
	s, err := action.AsString()
	require.NoError(t, err)
	assert.Equal(t, "adjustFontSize", s)
}
