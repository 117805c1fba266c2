package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	raw := `{"tag":"A-101","weight":612.5,"active":true,"notes":null,"tags":["north","creek"],"owner":{"name":"J. Ruiz"}}`

	var v Value
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	assert.Equal(t, KindObject, v.Kind())

	obj, ok := v.AsObject()
	require.True(t, ok)

	tag, ok := obj["tag"].AsString()
	require.True(t, ok)
	assert.Equal(t, "A-101", tag)

	weight, ok := obj["weight"].AsNumber()
	require.True(t, ok)
	assert.Equal(t, 612.5, weight)

	assert.True(t, obj["notes"].IsNull())

	tags, ok := obj["tags"].AsArray()
	require.True(t, ok)
	require.Len(t, tags, 2)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	var back Value
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, v.Equal(back))
}

func TestAccessorsRejectWrongKind(t *testing.T) {
	v := String("hello")
	_, ok := v.AsNumber()
	assert.False(t, ok)
	_, ok = v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsArray()
	assert.False(t, ok)
	_, ok = Null().AsString()
	assert.False(t, ok)
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"string passes through", String("A-101"), "A-101"},
		{"integer number", Number(42), "42"},
		{"fractional number", Number(612.5), "612.5"},
		{"bool true", Bool(true), "true"},
		{"null is empty", Null(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.CoerceString())
		})
	}
}

func TestCoerceNumber(t *testing.T) {
	n, ok := Number(283).CoerceNumber()
	require.True(t, ok)
	assert.Equal(t, float64(283), n)

	n, ok = String("612.5").CoerceNumber()
	require.True(t, ok)
	assert.Equal(t, 612.5, n)

	_, ok = String("twelve").CoerceNumber()
	assert.False(t, ok)

	_, ok = Bool(true).CoerceNumber()
	assert.False(t, ok)

	_, ok = Null().CoerceNumber()
	assert.False(t, ok)
}

func TestEqualIgnoresObjectKeyOrder(t *testing.T) {
	a := Object(map[string]Value{"x": Number(1), "y": String("two")})
	b := Object(map[string]Value{"y": String("two"), "x": Number(1)})
	assert.True(t, a.Equal(b))

	c := Object(map[string]Value{"x": Number(1)})
	assert.False(t, a.Equal(c))
	assert.False(t, Array(Number(1)).Equal(Array(Number(2))))
	assert.False(t, Null().Equal(String("")))
}

func TestMarshalSortsObjectKeys(t *testing.T) {
	v := Object(map[string]Value{"zebra": Number(1), "alpha": Number(2)})
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"zebra":1}`, string(out))
}

func TestUnmarshalScalars(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.True(t, v.IsNull())

	require.NoError(t, json.Unmarshal([]byte(`false`), &v))
	b, ok := v.AsBool()
	require.True(t, ok)
	assert.False(t, b)

	require.NoError(t, json.Unmarshal([]byte(`"2024-01-02"`), &v))
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", s)
}
