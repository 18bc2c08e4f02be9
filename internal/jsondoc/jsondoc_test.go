package jsondoc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesKeyOrder(t *testing.T) {
	obj, err := DecodeObject([]byte(`{"zeta": 1, "alpha": {"b": 2, "a": 3}, "mid": [1, "x", null]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
	inner, ok := obj.GetObject("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, inner.Keys())

	arr, ok := obj.GetArray("mid")
	require.True(t, ok)
	assert.Equal(t, []any{json.Number("1"), "x", nil}, arr)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(""))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"a": `))
	assert.Error(t, err)

	_, err = DecodeObject([]byte("{\"note\": \"caf\xe9\"}"))
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	_, err = DecodeObject([]byte(`[1, 2]`))
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "array", typeErr.Got)
}

func TestMarshalIndent_Layout(t *testing.T) {
	src := `{"b":[],"a":{},"text":"café <x> & y","n":1.50,"list":[1,{"k":true}]}`
	v, err := Decode([]byte(src))
	require.NoError(t, err)

	out, err := MarshalIndent(v)
	require.NoError(t, err)

	want := "{\n" +
		"  \"b\": [],\n" +
		"  \"a\": {},\n" +
		"  \"text\": \"café <x> & y\",\n" +
		"  \"n\": 1.50,\n" +
		"  \"list\": [\n" +
		"    1,\n" +
		"    {\n" +
		"      \"k\": true\n" +
		"    }\n" +
		"  ]\n" +
		"}\n"
	assert.Equal(t, want, string(out))
}

func TestSet_KeepsPositionOfExistingKey(t *testing.T) {
	obj, err := DecodeObject([]byte(`{"a": 1, "b": 2, "c": 3}`))
	require.NoError(t, err)

	obj.Set("b", Int(20))
	obj.Set("d", "new")
	assert.True(t, obj.Delete("a"))
	assert.False(t, obj.Delete("missing"))

	out, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"b":20,"c":3,"d":"new"}`, string(out))
}

func TestTypeName(t *testing.T) {
	cases := map[string]any{
		"null":    nil,
		"boolean": true,
		"string":  "s",
		"integer": json.Number("12"),
		"number":  json.Number("1.5"),
		"array":   []any{},
		"object":  NewObject(),
	}
	for want, v := range cases {
		assert.Equal(t, want, TypeName(v))
	}
	assert.Equal(t, "number", TypeName(json.Number("1e3")))
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.json")
	obj := NewObject()
	obj.Set("subject_id", "123")
	obj.Set("pipeline", []any{"a"})
	require.NoError(t, WriteFile(path, obj))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"subject_id\": \"123\",\n  \"pipeline\": [\n    \"a\"\n  ]\n}\n", string(data))

	back, err := ReadObjectFile(path)
	require.NoError(t, err)
	assert.Equal(t, obj.Keys(), back.Keys())
}

func TestObject_JSONInterop(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`{"y": 1, "x": 2}`), &obj))
	assert.Equal(t, []string{"y", "x"}, obj.Keys())

	out, err := json.Marshal(map[string]any{"doc": &obj})
	require.NoError(t, err)
	assert.JSONEq(t, `{"doc": {"y": 1, "x": 2}}`, string(out))
}
