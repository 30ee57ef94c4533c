package hostobj

import (
	"fmt"
)

// PropertyNameMode selects which kinds of keys OwnPropertyKeys returns.
type PropertyNameMode int

const (
	PropertyNameModeStrings PropertyNameMode = 1 << iota
	PropertyNameModeSymbols

	PropertyNameModeStringsAndSymbols = PropertyNameModeStrings | PropertyNameModeSymbols
)

// EnumerationMode selects whether DontEnum properties are returned.
type EnumerationMode int

const (
	EnumerationModeExcludeDontEnum EnumerationMode = iota
	EnumerationModeIncludeDontEnum
)

const __proto__ = "__proto__"

var (
	stringObjectNull      = newStringValue("[object Null]")
	stringObjectUndefined = newStringValue("[object Undefined]")
)

var (
	objectProtoClass       *ClassInfo
	objectConstructorClass *ClassInfo
)

func runtimeFunc(f func(*Runtime, FunctionCall) Value) NativeFunc {
	return func(call FunctionCall) Value {
		return f(call.runtime, call)
	}
}

func init() {
	objectProtoClass = MustNewClass(classObject, nil, []HashTableValue{
		{Key: "toString", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).objectproto_toString)}},
		{Key: "toLocaleString", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).objectproto_toLocaleString)}},
		{Key: "valueOf", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).objectproto_valueOf)}},
		{Key: "hasOwnProperty", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).objectproto_hasOwnProperty), Length: 1}},
		{Key: "isPrototypeOf", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).objectproto_isPrototypeOf), Length: 1}},
		{Key: "propertyIsEnumerable", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).objectproto_propertyIsEnumerable), Length: 1}},
		{Key: __proto__, Attributes: DontEnum | Accessor, Payload: NativeAccessor{
			Getter: runtimeFunc((*Runtime).objectproto_getProto),
			Setter: runtimeFunc((*Runtime).objectproto_setProto),
		}},
	})

	objectConstructorClass = MustNewClass(classFunction, nil, []HashTableValue{
		{Key: "getPrototypeOf", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_getPrototypeOf), Length: 1}},
		{Key: "setPrototypeOf", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_setPrototypeOf), Length: 2, RequiredArgs: 2}},
		{Key: "getOwnPropertyDescriptor", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_getOwnPropertyDescriptor), Length: 2}},
		{Key: "getOwnPropertyDescriptors", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_getOwnPropertyDescriptors), Length: 1}},
		{Key: "getOwnPropertyNames", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_getOwnPropertyNames), Length: 1}},
		{Key: "getOwnPropertySymbols", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_getOwnPropertySymbols), Length: 1}},
		{Key: "keys", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_keys), Length: 1}},
		{Key: "defineProperty", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_defineProperty), Length: 3}},
		{Key: "defineProperties", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_defineProperties), Length: 2}},
		{Key: "create", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_create), Length: 2}},
		{Key: "seal", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_seal), Length: 1}},
		{Key: "freeze", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_freeze), Length: 1}},
		{Key: "preventExtensions", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_preventExtensions), Length: 1}},
		{Key: "isSealed", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_isSealed), Length: 1}},
		{Key: "isFrozen", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_isFrozen), Length: 1}},
		{Key: "isExtensible", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_isExtensible), Length: 1}},
		{Key: "is", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_is), Length: 2}},
		{Key: "assign", Attributes: DontEnum, Payload: NativeFunction{Call: runtimeFunc((*Runtime).object_assign), Length: 2}},
	})
}

func (r *Runtime) builtin_Object(args []Value, proto *Object) *Object {
	if len(args) > 0 {
		arg := args[0]
		if arg != _undefined && arg != _null {
			return arg.ToObject(r)
		}
	}
	return r.newBaseObject(proto, classObject).val
}

func (r *Runtime) ownPropertyKeys(obj *Object, mode PropertyNameMode, enumMode EnumerationMode) []Value {
	all := enumMode == EnumerationModeIncludeDontEnum
	var keys []Value
	if mode&PropertyNameModeStrings != 0 {
		keys = obj.self.ownKeys(all, keys)
	}
	if mode&PropertyNameModeSymbols != 0 {
		for _, s := range obj.self.ownSymbols(all, nil) {
			if !isPrivateKey(s) {
				keys = append(keys, s)
			}
		}
	}
	return keys
}

func (r *Runtime) getOwnPropertyDescriptor(obj *Object, key Value) (desc PropertyDescriptor, ok bool) {
	prop := obj.getOwnProp(key)
	if prop == nil {
		return
	}
	ok = true
	if v, isProp := prop.(*valueProperty); isProp {
		desc.Enumerable = ToFlag(v.enumerable)
		desc.Configurable = ToFlag(v.configurable)
		if v.accessor {
			desc.Getter, desc.Setter = _undefined, _undefined
			if v.getterFunc != nil {
				desc.Getter = v.getterFunc
			}
			if v.setterFunc != nil {
				desc.Setter = v.setterFunc
			}
		} else {
			desc.Value = v.get(obj)
			desc.Writable = ToFlag(v.writable)
		}
		return
	}
	desc.Value = prop
	desc.Writable = FLAG_TRUE
	desc.Enumerable = FLAG_TRUE
	desc.Configurable = FLAG_TRUE
	return
}

func (r *Runtime) getOwnPropertyDescriptors(obj *Object) *Object {
	ret := r.NewObject()
	for _, key := range r.ownPropertyKeys(obj, PropertyNameModeStringsAndSymbols, EnumerationModeIncludeDontEnum) {
		if desc, ok := r.getOwnPropertyDescriptor(obj, key); ok {
			ret.defineOwnProperty(key, PropertyDescriptor{
				Value:        desc.toValue(r),
				Writable:     FLAG_TRUE,
				Enumerable:   FLAG_TRUE,
				Configurable: FLAG_TRUE,
			}, true)
		}
	}
	return ret
}

func (r *Runtime) toPropertyDescriptor(v Value) (ret PropertyDescriptor) {
	o, ok := v.(*Object)
	if !ok {
		r.typeErrorResult(true, "Property description must be an object: %s", v.String())
	}
	field := func(name string) Value {
		key := newStringValue(name)
		if o.hasProperty(key) {
			return o.get(key, nil)
		}
		return nil
	}

	if p := field("enumerable"); p != nil {
		ret.Enumerable = ToFlag(p.ToBoolean())
	}
	if p := field("configurable"); p != nil {
		ret.Configurable = ToFlag(p.ToBoolean())
	}

	ret.Value = field("value")

	if p := field("writable"); p != nil {
		ret.Writable = ToFlag(p.ToBoolean())
	}

	ret.Getter = field("get")
	ret.Setter = field("set")

	if ret.Getter != nil && ret.Getter != _undefined {
		if obj, ok := ret.Getter.(*Object); !ok {
			r.typeErrorResult(true, "Getter must be a function: %s", ret.Getter.String())
		} else if _, ok := obj.self.assertCallable(); !ok {
			r.typeErrorResult(true, "Getter must be a function: %s", obj.self.className())
		}
	}

	if ret.Setter != nil && ret.Setter != _undefined {
		if obj, ok := ret.Setter.(*Object); !ok {
			r.typeErrorResult(true, "Setter must be a function: %s", ret.Setter.String())
		} else if _, ok := obj.self.assertCallable(); !ok {
			r.typeErrorResult(true, "Setter must be a function: %s", obj.self.className())
		}
	}

	if (ret.Getter != nil || ret.Setter != nil) && (ret.Value != nil || ret.Writable != FLAG_NOT_SET) {
		r.typeErrorResult(true, "Invalid property descriptor. Cannot both specify accessors and a value or writable attribute")
	}

	return
}

// _defineProperties converts every descriptor before defining any of them,
// so a malformed descriptor leaves o untouched.
func (r *Runtime) _defineProperties(o *Object, p Value) {
	type propItem struct {
		name Value
		prop PropertyDescriptor
	}
	props := p.ToObject(r)
	names := r.ownPropertyKeys(props, PropertyNameModeStringsAndSymbols, EnumerationModeExcludeDontEnum)
	list := make([]propItem, 0, len(names))
	for _, itemName := range names {
		list = append(list, propItem{
			name: itemName,
			prop: r.toPropertyDescriptor(props.get(itemName, nil)),
		})
	}
	for _, prop := range list {
		if isPrivateKey(prop.name) {
			continue
		}
		o.defineOwnProperty(prop.name, prop.prop, true)
	}
}

func (r *Runtime) create(proto Value, props Value) *Object {
	var protoObj *Object
	if proto != _null {
		if obj, ok := proto.(*Object); ok {
			protoObj = obj
		} else {
			r.typeErrorResult(true, "Object prototype may only be an Object or null: %s", proto.String())
		}
	}
	o := r.newBaseObject(protoObj, classObject).val

	if props != nil && props != _undefined {
		r._defineProperties(o, props)
	}

	return o
}

func (r *Runtime) seal(obj *Object) {
	descr := PropertyDescriptor{
		Configurable: FLAG_FALSE,
	}
	for _, key := range r.ownPropertyKeys(obj, PropertyNameModeStringsAndSymbols, EnumerationModeIncludeDontEnum) {
		obj.defineOwnProperty(key, descr, true)
	}
	obj.self.preventExtensions(true)
}

func (r *Runtime) freeze(obj *Object) {
	if obj.self.bulkFreeze() {
		return
	}
	r.freezeKeys(obj)
}

func (r *Runtime) freezeKeys(obj *Object) {
	for _, key := range r.ownPropertyKeys(obj, PropertyNameModeStringsAndSymbols, EnumerationModeIncludeDontEnum) {
		descr := PropertyDescriptor{
			Configurable: FLAG_FALSE,
		}
		if prop, ok := obj.getOwnProp(key).(*valueProperty); !ok || !prop.accessor {
			descr.Writable = FLAG_FALSE
		}
		obj.defineOwnProperty(key, descr, true)
	}
	obj.self.preventExtensions(true)
}

func (r *Runtime) testIntegrity(obj *Object, frozen bool) bool {
	if obj.self.isExtensible() {
		return false
	}
	for _, key := range r.ownPropertyKeys(obj, PropertyNameModeStringsAndSymbols, EnumerationModeIncludeDontEnum) {
		prop, ok := obj.getOwnProp(key).(*valueProperty)
		if !ok {
			// a plain value is writable and configurable
			return false
		}
		if prop.configurable {
			return false
		}
		if frozen && !prop.accessor && prop.writable {
			return false
		}
	}
	return true
}

func (r *Runtime) toProto(proto Value) *Object {
	if proto != _null {
		if obj, ok := proto.(*Object); ok {
			return obj
		}
		panic(r.NewTypeError("Object prototype may only be an Object or null: %s", proto.String()))
	}
	return nil
}

func (r *Runtime) getPrototypeOf(caller CallerContext, v Value) Value {
	o := v.ToObject(r)
	if !r.accessPolicy(caller, o) {
		return _undefined
	}
	if p := o.self.proto(); p != nil {
		return p
	}
	return _null
}

func (r *Runtime) object_getPrototypeOf(call FunctionCall) Value {
	return r.getPrototypeOf(call.Caller, call.Argument(0))
}

// setPrototypeOf leaves v unchanged if the access policy denies caller.
func (r *Runtime) setPrototypeOf(caller CallerContext, v, proto Value) Value {
	r.checkObjectCoercible(v)
	p := r.toProto(proto)
	if o, ok := v.(*Object); ok && r.accessPolicy(caller, o) {
		o.self.setProto(p, true)
	}
	return v
}

func (r *Runtime) object_setPrototypeOf(call FunctionCall) Value {
	return r.setPrototypeOf(call.Caller, call.Argument(0), call.Argument(1))
}

func (r *Runtime) object_getOwnPropertyDescriptor(call FunctionCall) Value {
	o := call.Argument(0).ToObject(r)
	desc, ok := r.getOwnPropertyDescriptor(o, toPropertyKey(call.Argument(1)))
	if !ok {
		return _undefined
	}
	return desc.toValue(r)
}

func (r *Runtime) object_getOwnPropertyDescriptors(call FunctionCall) Value {
	return r.getOwnPropertyDescriptors(call.Argument(0).ToObject(r))
}

func (r *Runtime) object_getOwnPropertyNames(call FunctionCall) Value {
	obj := call.Argument(0).ToObject(r)
	return r.newArrayValues(r.ownPropertyKeys(obj, PropertyNameModeStrings, EnumerationModeIncludeDontEnum))
}

func (r *Runtime) object_getOwnPropertySymbols(call FunctionCall) Value {
	obj := call.Argument(0).ToObject(r)
	return r.newArrayValues(r.ownPropertyKeys(obj, PropertyNameModeSymbols, EnumerationModeIncludeDontEnum))
}

func (r *Runtime) object_keys(call FunctionCall) Value {
	obj := call.Argument(0).ToObject(r)
	return r.newArrayValues(r.ownPropertyKeys(obj, PropertyNameModeStrings, EnumerationModeExcludeDontEnum))
}

func (r *Runtime) object_defineProperty(call FunctionCall) (ret Value) {
	if obj, ok := call.Argument(0).(*Object); ok {
		descr := r.toPropertyDescriptor(call.Argument(2))
		obj.defineOwnProperty(toPropertyKey(call.Argument(1)), descr, true)
		ret = call.Argument(0)
	} else {
		r.typeErrorResult(true, "Object.defineProperty called on non-object")
	}
	return
}

func (r *Runtime) object_defineProperties(call FunctionCall) Value {
	obj, ok := call.Argument(0).(*Object)
	if !ok {
		r.typeErrorResult(true, "Object.defineProperties called on non-object")
	}
	r._defineProperties(obj, call.Argument(1))
	return obj
}

func (r *Runtime) object_create(call FunctionCall) Value {
	return r.create(call.Argument(0), call.Argument(1))
}

func (r *Runtime) object_seal(call FunctionCall) Value {
	arg := call.Argument(0)
	if obj, ok := arg.(*Object); ok {
		r.seal(obj)
		return obj
	}
	return arg
}

func (r *Runtime) object_freeze(call FunctionCall) Value {
	arg := call.Argument(0)
	if obj, ok := arg.(*Object); ok {
		r.freeze(obj)
		return obj
	}
	return arg
}

func (r *Runtime) object_preventExtensions(call FunctionCall) Value {
	arg := call.Argument(0)
	if obj, ok := arg.(*Object); ok {
		obj.self.preventExtensions(true)
		return obj
	}
	return arg
}

func (r *Runtime) object_isSealed(call FunctionCall) Value {
	if obj, ok := call.Argument(0).(*Object); ok {
		return r.toBoolean(r.testIntegrity(obj, false))
	}
	return valueTrue
}

func (r *Runtime) object_isFrozen(call FunctionCall) Value {
	if obj, ok := call.Argument(0).(*Object); ok {
		return r.toBoolean(r.testIntegrity(obj, true))
	}
	return valueTrue
}

func (r *Runtime) object_isExtensible(call FunctionCall) Value {
	if obj, ok := call.Argument(0).(*Object); ok {
		return r.toBoolean(obj.self.isExtensible())
	}
	return valueFalse
}

func (r *Runtime) object_is(call FunctionCall) Value {
	return r.toBoolean(call.Argument(0).SameAs(call.Argument(1)))
}

func (r *Runtime) object_assign(call FunctionCall) Value {
	to := call.Argument(0).ToObject(r)
	if len(call.Arguments) > 1 {
		for _, arg := range call.Arguments[1:] {
			if arg != _undefined && arg != _null {
				source := arg.ToObject(r)
				for _, key := range r.ownPropertyKeys(source, PropertyNameModeStringsAndSymbols, EnumerationModeIncludeDontEnum) {
					p := source.getOwnProp(key)
					if p == nil {
						continue
					}
					if v, ok := p.(*valueProperty); ok {
						if !v.enumerable {
							continue
						}
						p = v.get(source)
					}
					to.setOwn(key, p, true)
				}
			}
		}
	}

	return to
}

func (r *Runtime) objectproto_hasOwnProperty(call FunctionCall) Value {
	p := toPropertyKey(call.Argument(0))
	o := call.This.ToObject(r)
	return r.toBoolean(o.hasOwnProperty(p))
}

func (r *Runtime) objectproto_isPrototypeOf(call FunctionCall) Value {
	if v, ok := call.Argument(0).(*Object); ok {
		o := call.This.ToObject(r)
		for {
			v = v.self.proto()
			if v == nil {
				break
			}
			if v == o {
				return valueTrue
			}
		}
	}
	return valueFalse
}

func (r *Runtime) objectproto_propertyIsEnumerable(call FunctionCall) Value {
	p := toPropertyKey(call.Argument(0))
	o := call.This.ToObject(r)
	pv := o.getOwnProp(p)
	if pv == nil {
		return valueFalse
	}
	return r.toBoolean(isEnumerable(pv))
}

func (r *Runtime) objectproto_toString(call FunctionCall) Value {
	switch o := call.This.(type) {
	case valueNull:
		return stringObjectNull
	case valueUndefined:
		return stringObjectUndefined
	default:
		obj := o.ToObject(r)
		clsName := obj.self.className()
		if tag := obj.self.getSym(symToStringTag, nil); tag != nil {
			if str, ok := tag.(valueString); ok {
				clsName = str.String()
			}
		}
		return newStringValue(fmt.Sprintf("[object %s]", clsName))
	}
}

func (r *Runtime) objectproto_toLocaleString(call FunctionCall) Value {
	toString := toMethod(call.This.ToObject(r).self.getStr("toString", call.This))
	return toString(FunctionCall{This: call.This})
}

func (r *Runtime) objectproto_valueOf(call FunctionCall) Value {
	return call.This.ToObject(r)
}

func (r *Runtime) objectproto_getProto(call FunctionCall) Value {
	proto := call.This.ToObject(r).self.proto()
	if proto != nil {
		return proto
	}
	return _null
}

func (r *Runtime) objectproto_setProto(call FunctionCall) Value {
	o := call.This
	r.checkObjectCoercible(o)
	proto := call.Argument(0)
	if proto != _null {
		if _, ok := proto.(*Object); !ok {
			return _undefined
		}
	}
	if o, ok := o.(*Object); ok && r.accessPolicy(call.Caller, o) {
		o.self.setProto(r.toProto(proto), true)
	}

	return _undefined
}

func (r *Runtime) initObject() {
	o := r.newHostObject(objectConstructorClass, r.global.FunctionPrototype, nil)
	o.call = func(call FunctionCall) Value {
		return r.builtin_Object(call.Arguments, r.global.ObjectPrototype)
	}
	o.construct = func(args []Value) *Object {
		return r.builtin_Object(args, r.global.ObjectPrototype)
	}
	o._putProp("name", newStringValue(classObject), false, false, true)
	o._putProp("length", intToValue(1), false, false, true)
	o._putProp("prototype", r.global.ObjectPrototype, false, false, false)
	r.global.Object = o.val

	r.global.ObjectPrototype.self._putProp("constructor", r.global.Object, true, false, true)
}

// OwnPropertyKeys returns the own keys of obj: strings in enumeration order,
// then symbols in insertion order. Private symbols are never returned.
func (r *Runtime) OwnPropertyKeys(obj *Object, mode PropertyNameMode, enumMode EnumerationMode) []Value {
	return r.ownPropertyKeys(obj, mode, enumMode)
}

// GetOwnPropertyDescriptor reports ok == false if obj has no own property key.
func (r *Runtime) GetOwnPropertyDescriptor(obj *Object, key Value) (desc PropertyDescriptor, ok bool, err error) {
	err = r.try(func() {
		desc, ok = r.getOwnPropertyDescriptor(obj, toPropertyKey(key))
	})
	return
}

// GetOwnPropertyDescriptors returns an object mapping every own key of obj to
// its descriptor object. The first failing getter aborts the operation.
func (r *Runtime) GetOwnPropertyDescriptors(obj *Object) (ret *Object, err error) {
	err = r.try(func() {
		ret = r.getOwnPropertyDescriptors(obj)
	})
	return
}

func (r *Runtime) ToPropertyDescriptor(v Value) (desc PropertyDescriptor, err error) {
	err = r.try(func() {
		desc = r.toPropertyDescriptor(v)
	})
	return
}

func (r *Runtime) DefineProperty(obj *Object, key Value, desc PropertyDescriptor) error {
	return r.try(func() {
		obj.defineOwnProperty(toPropertyKey(key), desc, true)
	})
}

// DefineProperties validates every descriptor of props before defining any.
// A failure while defining leaves the earlier definitions in place.
func (r *Runtime) DefineProperties(obj *Object, props Value) error {
	return r.try(func() {
		r._defineProperties(obj, props)
	})
}

// Create returns a new object with the given prototype (nil means null).
// props, if not nil or undefined, is applied as with DefineProperties.
func (r *Runtime) Create(proto *Object, props Value) (ret *Object, err error) {
	var p Value = _null
	if proto != nil {
		p = proto
	}
	err = r.try(func() {
		ret = r.create(p, props)
	})
	return
}

// Seal returns v unchanged if it is not an object.
func (r *Runtime) Seal(v Value) (Value, error) {
	return v, r.try(func() {
		if obj, ok := v.(*Object); ok {
			r.seal(obj)
		}
	})
}

// Freeze returns v unchanged if it is not an object.
func (r *Runtime) Freeze(v Value) (Value, error) {
	return v, r.try(func() {
		if obj, ok := v.(*Object); ok {
			r.freeze(obj)
		}
	})
}

func (r *Runtime) PreventExtensions(v Value) (Value, error) {
	return v, r.try(func() {
		if obj, ok := v.(*Object); ok {
			obj.self.preventExtensions(true)
		}
	})
}

// IsSealed reports true for primitives.
func (r *Runtime) IsSealed(v Value) bool {
	if obj, ok := v.(*Object); ok {
		return r.testIntegrity(obj, false)
	}
	return true
}

// IsFrozen reports true for primitives.
func (r *Runtime) IsFrozen(v Value) bool {
	if obj, ok := v.(*Object); ok {
		return r.testIntegrity(obj, true)
	}
	return true
}

// IsExtensible reports false for primitives.
func (r *Runtime) IsExtensible(v Value) bool {
	if obj, ok := v.(*Object); ok {
		return obj.self.isExtensible()
	}
	return false
}

// SetPrototypeOf relinks the prototype of v on behalf of caller. proto must
// be an object or null. A caller denied by the access policy is ignored.
func (r *Runtime) SetPrototypeOf(caller CallerContext, v Value, proto Value) error {
	return r.try(func() {
		r.setPrototypeOf(caller, v, proto)
	})
}

// GetPrototypeOf returns the prototype of v, null if it has none, or
// undefined if the access policy denies caller.
func (r *Runtime) GetPrototypeOf(caller CallerContext, v Value) (ret Value, err error) {
	err = r.try(func() {
		ret = r.getPrototypeOf(caller, v)
	})
	return
}
