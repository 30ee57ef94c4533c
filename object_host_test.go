package hostobj

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shape struct {
	w, h  int64
	scale int64
}

func thisShape(this Value) *shape {
	if o, ok := this.(*Object); ok {
		if s, ok := o.HostData().(*shape); ok {
			return s
		}
	}
	return nil
}

var shapeClass = MustNewClass("Shape", nil, []HashTableValue{
	{Key: "area", Payload: NativeFunction{Call: func(call FunctionCall) Value {
		s := thisShape(call.This)
		return intToValue(s.w * s.h)
	}}},
	{Key: "width", Attributes: DontDelete, Payload: NativeValue{
		Get: func(this *Object) Value { return intToValue(thisShape(this).w) },
		Put: func(this *Object, v Value) { thisShape(this).w = v.ToInteger() },
	}},
	{Key: "kind", Attributes: DontEnum, Payload: ConstantValue{Value: newStringValue("shape")}},
	{Key: "height", Payload: NativeValue{
		Get: func(this *Object) Value { return intToValue(thisShape(this).h) },
	}},
	{Key: "scale", Payload: NativeAccessor{
		Getter: func(call FunctionCall) Value {
			if s := thisShape(call.This); s != nil {
				return intToValue(s.scale)
			}
			return _undefined
		},
		Setter: func(call FunctionCall) Value {
			if s := thisShape(call.This); s != nil {
				s.scale = call.Argument(0).ToInteger()
			}
			return _undefined
		},
	}},
	{Key: "describe", Attributes: DontEnum | DontDelete, Intrinsic: 3, Payload: NativeFunction{
		Call: func(call FunctionCall) Value {
			return newStringValue("a shape")
		},
		Length:       1,
		RequiredArgs: 1,
	}},
})

var squareClass = MustNewClass("Square", shapeClass, []HashTableValue{
	{Key: "side", Payload: NativeValue{
		Get: func(this *Object) Value { return intToValue(thisShape(this).w) },
	}},
	{Key: "area", Payload: NativeFunction{Call: func(call FunctionCall) Value {
		s := thisShape(call.This)
		return intToValue(s.w * s.w)
	}}},
})

func newShape(r *Runtime) (*Object, *shape) {
	s := &shape{w: 2, h: 3}
	return r.NewHostObject(shapeClass, s), s
}

func keyStrings(keys []Value) []string {
	res := make([]string, 0, len(keys))
	for _, k := range keys {
		res = append(res, k.String())
	}
	return res
}

func TestHostObjectShadowing(t *testing.T) {
	r := New()
	o, _ := newShape(r)

	require.NoError(t, o.Set("area", 5))
	assert.Equal(t, int64(5), o.Get("area").Export())

	require.NoError(t, o.DefineDataProperty("kind", newStringValue("own"), FLAG_TRUE, FLAG_TRUE, FLAG_TRUE))
	assert.Equal(t, "own", o.Get("kind").String())

	sq := r.NewHostObject(squareClass, &shape{w: 4})
	require.NoError(t, sq.DefineDataProperty("side", valueInt(100), FLAG_TRUE, FLAG_TRUE, FLAG_TRUE))
	assert.Equal(t, int64(100), sq.Get("side").ToInteger())
}

func TestHostObjectFunctionSelfCaching(t *testing.T) {
	r := New()
	o, _ := newShape(r)

	assert.False(t, o.self.(*hostObject).baseObject.hasOwnPropertyStr("area"))
	f1 := o.Get("area")
	call, ok := AssertFunction(f1)
	require.True(t, ok)
	res, err := call(o)
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.ToInteger())

	f2 := o.Get("area")
	assert.Same(t, f1.(*Object), f2.(*Object))

	prop, ok := o.self.(*hostObject).values["area"].(*valueProperty)
	require.True(t, ok)
	assert.True(t, prop.enumerable)
	assert.True(t, prop.writable)
	assert.True(t, prop.configurable)
	assert.Same(t, f1.(*Object), prop.value.(*Object))

	assert.Equal(t, "area", f1.(*Object).Get("name").String())
	assert.Equal(t, int64(0), f1.(*Object).Get("length").ToInteger())
}

func TestHostObjectNativeValues(t *testing.T) {
	r := New()
	o, s := newShape(r)

	assert.Equal(t, int64(2), o.Get("width").ToInteger())
	require.NoError(t, o.Set("width", 10))
	assert.Equal(t, int64(10), s.w)
	assert.Equal(t, int64(10), o.Get("width").ToInteger())
	assert.False(t, o.self.(*hostObject).baseObject.hasOwnPropertyStr("width"))
	assert.True(t, o.HasOwnProperty("width"))

	assert.Equal(t, "shape", o.Get("kind").String())
}

func TestHostObjectReadOnly(t *testing.T) {
	r := New()
	o, s := newShape(r)

	err := o.Set("height", 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteRejected))
	var ex *Exception
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, WriteRejected, ex.Kind())
	assert.Equal(t, strictModeReadonlyPropertyWriteError, ex.Message())

	require.NoError(t, o.Put(newStringValue("height"), valueInt(7), false))
	assert.Equal(t, int64(3), s.h)

	err = o.Set("kind", "circle")
	assert.ErrorIs(t, err, ErrWriteRejected)
	assert.Equal(t, "shape", o.Get("kind").String())
}

func TestHostObjectAccessor(t *testing.T) {
	r := New()
	o, s := newShape(r)

	require.NoError(t, o.Set("scale", 4))
	assert.Equal(t, int64(4), s.scale)
	assert.Equal(t, int64(4), o.Get("scale").ToInteger())

	desc, ok, err := r.GetOwnPropertyDescriptor(o, newStringValue("scale"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, desc.IsAccessorDescriptor())
	getter, ok := AssertFunction(desc.Getter)
	require.True(t, ok)
	v, err := getter(o)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.ToInteger())
	assert.Equal(t, "get scale", desc.Getter.(*Object).Get("name").String())
}

func TestHostObjectDescriptors(t *testing.T) {
	r := New()
	o, _ := newShape(r)

	desc, ok, err := r.GetOwnPropertyDescriptor(o, newStringValue("width"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), desc.Value.ToInteger())
	assert.Equal(t, FLAG_TRUE, desc.Writable)
	assert.Equal(t, FLAG_TRUE, desc.Enumerable)
	assert.Equal(t, FLAG_FALSE, desc.Configurable)

	desc, _, _ = r.GetOwnPropertyDescriptor(o, newStringValue("height"))
	assert.Equal(t, FLAG_FALSE, desc.Writable)

	desc, _, _ = r.GetOwnPropertyDescriptor(o, newStringValue("kind"))
	assert.Equal(t, FLAG_FALSE, desc.Writable)
	assert.Equal(t, FLAG_FALSE, desc.Enumerable)
	assert.Equal(t, FLAG_TRUE, desc.Configurable)

	desc, _, _ = r.GetOwnPropertyDescriptor(o, newStringValue("area"))
	assert.Same(t, o.Get("area").(*Object), desc.Value.(*Object))

	_, ok, err = r.GetOwnPropertyDescriptor(o, newStringValue("nothing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHostObjectDelete(t *testing.T) {
	r := New()
	o, _ := newShape(r)

	assert.ErrorIs(t, o.Delete("width"), ErrWriteRejected)
	assert.ErrorIs(t, o.Delete("describe"), ErrWriteRejected)
	assert.True(t, o.HasOwnProperty("width"))

	require.NoError(t, o.Delete("height"))
	assert.False(t, o.HasOwnProperty("height"))
	assert.Nil(t, o.Get("height"))

	o.Get("area")
	require.NoError(t, o.Delete("area"))
	assert.False(t, o.HasOwnProperty("area"))
	assert.Nil(t, o.Get("area"))

	// deleted static entries stay deleted, also for enumeration
	assert.Equal(t, []string{"width", "scale"}, o.Keys())

	require.NoError(t, o.Set("height", 1))
	assert.Equal(t, int64(1), o.Get("height").ToInteger())
}

func TestHostObjectEnumeration(t *testing.T) {
	r := New()
	o, _ := newShape(r)

	assert.Equal(t, []string{"area", "width", "height", "scale"}, o.Keys())
	require.NoError(t, o.Set("extra", 1))
	assert.Equal(t, []string{"area", "width", "height", "scale", "extra"}, o.Keys())

	all := keyStrings(r.OwnPropertyKeys(o, PropertyNameModeStrings, EnumerationModeIncludeDontEnum))
	assert.Equal(t, []string{"area", "width", "kind", "height", "scale", "describe", "extra"}, all)

	// reifying a function keeps its position
	o.Get("area")
	assert.Equal(t, []string{"area", "width", "height", "scale", "extra"}, o.Keys())

	require.NoError(t, o.DefineDataProperty("kind", newStringValue("k"), FLAG_TRUE, FLAG_NOT_SET, FLAG_TRUE))
	assert.Equal(t, []string{"area", "width", "kind", "height", "scale", "extra"}, o.Keys())

	sq := r.NewHostObject(squareClass, &shape{w: 3})
	assert.Equal(t, []string{"side", "area", "width", "height", "scale"}, sq.Keys())
}

func TestHostObjectReAddedKeyOrder(t *testing.T) {
	r := New()
	o, _ := newShape(r)
	require.NoError(t, o.Set("extra", 1))

	require.NoError(t, o.Delete("height"))
	require.NoError(t, o.Set("height", 5))
	assert.Equal(t, []string{"area", "width", "scale", "extra", "height"}, o.Keys())

	// a reified entry keeps its table position until it is deleted
	o.Get("area")
	assert.Equal(t, []string{"area", "width", "scale", "extra", "height"}, o.Keys())
	require.NoError(t, o.Delete("area"))
	require.NoError(t, o.Set("area", 1))
	assert.Equal(t, []string{"width", "scale", "extra", "height", "area"}, o.Keys())

	all := keyStrings(r.OwnPropertyKeys(o, PropertyNameModeStrings, EnumerationModeIncludeDontEnum))
	assert.Equal(t, []string{"width", "kind", "scale", "describe", "extra", "height", "area"}, all)

	sq := r.NewHostObject(squareClass, &shape{w: 3})
	require.NoError(t, sq.Delete("area"))
	assert.Equal(t, []string{"side", "width", "height", "scale"}, sq.Keys())
	require.NoError(t, sq.Set("area", 2))
	assert.Equal(t, []string{"side", "width", "height", "scale", "area"}, sq.Keys())
}

func TestHostObjectParentClass(t *testing.T) {
	r := New()
	sq := r.NewHostObject(squareClass, &shape{w: 3, h: 100})

	call, ok := AssertFunction(sq.Get("area"))
	require.True(t, ok)
	res, err := call(sq)
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.ToInteger())

	assert.Equal(t, int64(3), sq.Get("width").ToInteger())
	assert.Equal(t, "shape", sq.Get("kind").String())
	assert.Equal(t, Intrinsic(3), squareClass.Intrinsic("describe"))
}

func TestHostObjectRequiredArgs(t *testing.T) {
	r := New()
	o, _ := newShape(r)

	describe, ok := AssertFunction(o.Get("describe"))
	require.True(t, ok)
	_, err := describe(o)
	assert.ErrorIs(t, err, ErrInsufficientArguments)

	res, err := describe(o, valueInt(1))
	require.NoError(t, err)
	assert.Equal(t, "a shape", res.String())
}

func TestHostObjectAsPrototype(t *testing.T) {
	r := New()
	o, s := newShape(r)

	child := r.NewObject()
	require.NoError(t, child.SetPrototype(o))

	area := o.Get("area")
	assert.Same(t, area.(*Object), child.Get("area").(*Object))

	require.NoError(t, child.Set("area", 1))
	assert.Equal(t, int64(1), child.Get("area").ToInteger())
	assert.Same(t, area.(*Object), o.Get("area").(*Object))

	require.NoError(t, child.Set("width", 20))
	assert.Equal(t, int64(20), s.w)
	assert.False(t, child.HasOwnProperty("width"))

	assert.ErrorIs(t, child.Set("height", 1), ErrWriteRejected)
	assert.False(t, child.HasOwnProperty("height"))
}

func TestHostObjectFreeze(t *testing.T) {
	r := New()
	o, s := newShape(r)

	_, err := r.Freeze(o)
	require.NoError(t, err)
	assert.True(t, r.IsFrozen(o))
	assert.True(t, r.IsSealed(o))
	assert.False(t, r.IsExtensible(o))

	assert.ErrorIs(t, o.Set("width", 9), ErrWriteRejected)
	assert.Equal(t, int64(2), s.w)
	assert.Equal(t, int64(2), o.Get("width").ToInteger())
	assert.ErrorIs(t, o.Set("area", 9), ErrWriteRejected)
	assert.ErrorIs(t, o.Set("fresh", 9), ErrWriteRejected)

	for _, key := range r.OwnPropertyKeys(o, PropertyNameModeStringsAndSymbols, EnumerationModeIncludeDontEnum) {
		desc, ok, err := r.GetOwnPropertyDescriptor(o, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, FLAG_FALSE, desc.Configurable, key.String())
		if !desc.IsAccessorDescriptor() {
			assert.Equal(t, FLAG_FALSE, desc.Writable, key.String())
		}
	}
}

func TestHostObjectExport(t *testing.T) {
	r := New()
	o, s := newShape(r)
	assert.Same(t, s, o.Export().(*shape))
	assert.Same(t, shapeClass, o.ClassInfo())
	assert.Equal(t, "Shape", o.ClassName())
	assert.Nil(t, r.NewObject().HostData())
}

func BenchmarkHostObjectGetFunction(b *testing.B) {
	r := New()
	o, _ := newShape(r)
	for i := 0; i < b.N; i++ {
		o.Get("area")
	}
}

func BenchmarkHostObjectGetValue(b *testing.B) {
	r := New()
	o, _ := newShape(r)
	for i := 0; i < b.N; i++ {
		o.Get("width")
	}
}
