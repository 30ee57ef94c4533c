package lut

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostobj/hostobj"
)

const shapeYAML = `
schema: "1.2.0"
classes:
  - name: Shape
    properties:
      - key: area
        function: shapeArea
        attributes: DontEnum
      - key: scaleBy
        function: shapeScaleBy
        length: 1
        required: 1
        intrinsic: scaleIntrinsic
      - key: width
        get: shapeWidth
        put: shapeSetWidth
        attributes: DontDelete
      - key: kind
        constant: shapeKind
      - key: bounds
        getter: shapeBounds
        setter: shapeSetBounds
      - key: origin
        getter: shapeOrigin
  - name: Square
    parent: Shape
    properties:
      - key: side
        get: squareSide
`

func TestLoadYAML(t *testing.T) {
	tables, err := LoadYAML(strings.NewReader(shapeYAML), shapeBindings())
	require.NoError(t, err)
	require.Len(t, tables, 2)

	shape := tables[0]
	assert.Equal(t, "Shape", shape.Name)
	require.Len(t, shape.Values, 6)
	assert.Equal(t, hostobj.DontEnum|hostobj.Function, shape.Values[0].Attributes)

	scaleBy := shape.Values[1]
	assert.Equal(t, 1, scaleBy.Payload.(hostobj.NativeFunction).Length)
	assert.Equal(t, 1, scaleBy.Payload.(hostobj.NativeFunction).RequiredArgs)
	assert.Equal(t, hostobj.Intrinsic(9), scaleBy.Intrinsic)

	assert.Equal(t, hostobj.DontDelete, shape.Values[2].Attributes)
	assert.NotNil(t, shape.Values[2].Payload.(hostobj.NativeValue).Put)
	assert.IsType(t, hostobj.ConstantValue{}, shape.Values[3].Payload)
	assert.Equal(t, hostobj.Accessor, shape.Values[4].Attributes)
	assert.Nil(t, shape.Values[5].Payload.(hostobj.NativeAccessor).Setter)

	assert.Equal(t, "Shape", tables[1].Parent)

	classes, err := Classes(tables)
	require.NoError(t, err)
	square := classes[1]
	assert.Same(t, classes[0], square.Parent)

	r := hostobj.New()
	o := r.NewHostObject(square, nil)
	require.NoError(t, o.Set("width", 12))
	assert.Equal(t, int64(12), o.Get("width").ToInteger())
	assert.Equal(t, []string{"side", "area", "scaleBy", "width", "kind", "bounds", "origin"},
		keyStrings(r.OwnPropertyKeys(o, hostobj.PropertyNameModeStrings, hostobj.EnumerationModeIncludeDontEnum)))
}

func keyStrings(keys []hostobj.Value) []string {
	res := make([]string, 0, len(keys))
	for _, k := range keys {
		res = append(res, k.String())
	}
	return res
}

func TestLoadYAMLSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		err    string
	}{
		{"missing", "", "lut: missing schema version"},
		{"invalid", `schema: "one"`, `lut: invalid schema version "one"`},
		{"too new", `schema: "2.0.0"`, "lut: unsupported schema version 2.0.0, want ^1.0"},
		{"too old", `schema: "0.9"`, "lut: unsupported schema version 0.9.0, want ^1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.schema+"\nclasses: []\n"), &Bindings{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}

	tables, err := LoadYAML(strings.NewReader("schema: \"1.0\"\nclasses: []\n"), &Bindings{})
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  string
	}{
		{"empty document", "", "lut: empty document"},
		{"unknown field", "schema: \"1.0\"\nclasses:\n  - name: A\n    bogus: 1\n", "field bogus not found"},
		{"class without name", "schema: \"1.0\"\nclasses:\n  - properties: []\n", "lut: class without a name"},
		{"empty key", "schema: \"1.0\"\nclasses:\n  - name: A\n    properties:\n      - key: \" \"\n        constant: shapeKind\n", "lut: class A, property 0: empty key"},
		{"two kinds", "schema: \"1.0\"\nclasses:\n  - name: A\n    properties:\n      - key: a\n        constant: shapeKind\n        function: shapeArea\n", "exactly one of function, getter/setter, get or constant must be set"},
		{"no kind", "schema: \"1.0\"\nclasses:\n  - name: A\n    properties:\n      - key: a\n", "exactly one of"},
		{"intrinsic on constant", "schema: \"1.0\"\nclasses:\n  - name: A\n    properties:\n      - key: a\n        constant: shapeKind\n        intrinsic: scaleIntrinsic\n", "only functions can have an intrinsic"},
		{"bad attributes", "schema: \"1.0\"\nclasses:\n  - name: A\n    properties:\n      - key: a\n        constant: shapeKind\n        attributes: Sticky\n", `unknown property attribute "Sticky"`},
		{"unbound", "schema: \"1.0\"\nclasses:\n  - name: A\n    properties:\n      - key: a\n        function: nothing\n", `lut: class A, property a: unbound function "nothing"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.doc), shapeBindings())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}
