package hostobj

import (
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/hostobj/hostobj/unistring"
)

type global struct {
	ObjectPrototype   *Object
	FunctionPrototype *Object
	ArrayPrototype    *Object

	Object *Object
}

// Runtime owns an object graph. It is not goroutine-safe; only the static
// tables it reads may be shared with other runtimes.
type Runtime struct {
	global global

	registry     *TableRegistry
	accessPolicy AccessPolicy
}

// New creates a runtime with Object and Object.prototype set up.
func New(opts ...Option) *Runtime {
	o := defaultOptions
	for _, opt := range opts {
		opt.apply(&o)
	}
	r := &Runtime{
		registry:     o.registry,
		accessPolicy: o.accessPolicy,
	}
	if r.registry == nil {
		r.registry = defaultTableRegistry
	}
	r.init()
	return r
}

func (r *Runtime) init() {
	r.global.ObjectPrototype = r.newHostObject(objectProtoClass, nil, nil).val
	r.global.FunctionPrototype = r.newNativeFunc(func(FunctionCall) Value {
		return _undefined
	}, nil, "", 0, 0)
	r.global.FunctionPrototype.self.(*nativeFuncObject).prototype = r.global.ObjectPrototype
	r.global.ArrayPrototype = r.newBaseObject(r.global.ObjectPrototype, classArray).val
	r.initObject()
}

func (r *Runtime) Registry() *TableRegistry {
	return r.registry
}

func (r *Runtime) ObjectPrototype() *Object {
	return r.global.ObjectPrototype
}

// Object returns the Object constructor.
func (r *Runtime) Object() *Object {
	return r.global.Object
}

func (r *Runtime) newBaseObject(proto *Object, class string) (o *baseObject) {
	v := &Object{runtime: r}

	o = &baseObject{}
	o.class = class
	o.val = v
	o.extensible = true
	v.self = o
	o.prototype = proto
	o.init()
	return
}

// NewObject creates an empty object with Object.prototype as its prototype.
func (r *Runtime) NewObject() (v *Object) {
	return r.newBaseObject(r.global.ObjectPrototype, classObject).val
}

func (r *Runtime) newPrimitiveObject(value Value, class string) *Object {
	v := &Object{runtime: r}
	o := &primitiveValueObject{}
	o.class = class
	o.val = v
	o.extensible = true
	v.self = o
	o.prototype = r.global.ObjectPrototype
	o.pValue = value
	o.init()
	return v
}

// PrimitiveValue returns the wrapped primitive of a Number, String, Boolean
// or Symbol object, nil for other objects.
func (o *Object) PrimitiveValue() Value {
	if p, ok := o.self.(*primitiveValueObject); ok {
		return p.pValue
	}
	return nil
}

func (r *Runtime) newArrayValues(values []Value) *Object {
	a := r.newBaseObject(r.global.ArrayPrototype, classArray)
	for i, v := range values {
		a._put(unistring.String(strconv.Itoa(i)), v)
	}
	a._putProp("length", intToValue(int64(len(values))), true, false, false)
	return a.val
}

func (r *Runtime) toBoolean(b bool) Value {
	if b {
		return valueTrue
	}
	return valueFalse
}

func (r *Runtime) checkObjectCoercible(v Value) {
	switch v.(type) {
	case valueUndefined, valueNull:
		r.typeErrorResult(true, "Value is not object coercible")
	}
}

// ToValue converts a Go value into a Value. Supported are nil, Value, bool,
// integer and float kinds, string, NativeFunc, []Value, []interface{} and
// map[string]interface{} (keys in sorted order). Anything else fails with TypeMismatch.
func (r *Runtime) ToValue(i interface{}) Value {
	switch i := i.(type) {
	case nil:
		return _null
	case *Object:
		if i == nil {
			return _null
		}
		return i
	case Value:
		return i
	case string:
		return newStringValue(i)
	case bool:
		return r.toBoolean(i)
	case NativeFunc:
		return r.NewFunction("", 0, i)
	case func(FunctionCall) Value:
		return r.NewFunction("", 0, i)
	case int:
		return intToValue(int64(i))
	case int8:
		return intToValue(int64(i))
	case int16:
		return intToValue(int64(i))
	case int32:
		return intToValue(int64(i))
	case int64:
		return intToValue(i)
	case uint:
		if uint64(i) <= math.MaxInt64 {
			return intToValue(int64(i))
		}
		return floatToValue(float64(i))
	case uint8:
		return intToValue(int64(i))
	case uint16:
		return intToValue(int64(i))
	case uint32:
		return intToValue(int64(i))
	case uint64:
		if i <= math.MaxInt64 {
			return intToValue(int64(i))
		}
		return floatToValue(float64(i))
	case float32:
		return floatToValue(float64(i))
	case float64:
		return floatToValue(i)
	case []Value:
		return r.newArrayValues(i)
	case []interface{}:
		values := make([]Value, len(i))
		for idx, item := range i {
			values[idx] = r.ToValue(item)
		}
		return r.newArrayValues(values)
	case map[string]interface{}:
		obj := r.NewObject()
		keys := make([]string, 0, len(i))
		for k := range i {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			obj.self._putProp(unistring.NewFromString(k), r.ToValue(i[k]), true, true, true)
		}
		return obj
	}
	panic(typeMismatchf("Cannot convert %s to a value", reflect.TypeOf(i)))
}
