package hostobj

import (
	"fmt"
	"reflect"

	"github.com/hostobj/hostobj/unistring"
)

const (
	classObject   = "Object"
	classArray    = "Array"
	classFunction = "Function"
	classNumber   = "Number"
	classString   = "String"
	classBoolean  = "Boolean"
	classSymbol   = "Symbol"
)

type Object struct {
	runtime *Runtime
	self    objectImpl
}

type Flag int

const (
	FLAG_NOT_SET Flag = iota
	FLAG_FALSE
	FLAG_TRUE
)

func (f Flag) Bool() bool {
	return f == FLAG_TRUE
}

func ToFlag(b bool) Flag {
	if b {
		return FLAG_TRUE
	}
	return FLAG_FALSE
}

// PropertyDescriptor describes a property for reflection and definition.
// Nil Value, Getter and Setter, and FLAG_NOT_SET flags, mean "absent".
type PropertyDescriptor struct {
	Value Value

	Writable, Configurable, Enumerable Flag

	Getter, Setter Value
}

func (p PropertyDescriptor) IsAccessorDescriptor() bool {
	return p.Getter != nil || p.Setter != nil
}

func (p PropertyDescriptor) IsDataDescriptor() bool {
	return p.Value != nil || p.Writable != FLAG_NOT_SET
}

func (p PropertyDescriptor) IsGenericDescriptor() bool {
	return !p.IsAccessorDescriptor() && !p.IsDataDescriptor()
}

func (p PropertyDescriptor) toValue(r *Runtime) Value {
	o := r.NewObject()
	s := o.self

	if p.IsAccessorDescriptor() {
		getter, setter := p.Getter, p.Setter
		if getter == nil {
			getter = _undefined
		}
		if setter == nil {
			setter = _undefined
		}
		s._putProp("get", getter, true, true, true)
		s._putProp("set", setter, true, true, true)
	} else {
		value := p.Value
		if value == nil {
			value = _undefined
		}
		s._putProp("value", value, true, true, true)
		s._putProp("writable", valueBool(p.Writable.Bool()), true, true, true)
	}
	s._putProp("enumerable", valueBool(p.Enumerable.Bool()), true, true, true)
	s._putProp("configurable", valueBool(p.Configurable.Bool()), true, true, true)

	return o
}

// objectImpl is the method table every object kind implements.
type objectImpl interface {
	className() string
	getStr(p unistring.String, receiver Value) Value
	getSym(p *Symbol, receiver Value) Value
	getOwnPropStr(unistring.String) Value
	getOwnPropSym(*Symbol) Value
	setOwnStr(p unistring.String, v Value, throw bool)
	setForeignStr(p unistring.String, v, receiver Value, throw bool) bool
	setOwnSym(p *Symbol, v Value, throw bool)
	setForeignSym(p *Symbol, v, receiver Value, throw bool) bool
	hasPropertyStr(unistring.String) bool
	hasPropertySym(*Symbol) bool
	hasOwnPropertyStr(unistring.String) bool
	hasOwnPropertySym(*Symbol) bool
	defineOwnPropertyStr(name unistring.String, desc PropertyDescriptor, throw bool) bool
	defineOwnPropertySym(name *Symbol, desc PropertyDescriptor, throw bool) bool
	deleteStr(name unistring.String, throw bool) bool
	deleteSym(name *Symbol, throw bool) bool
	_putProp(name unistring.String, value Value, writable, enumerable, configurable bool) Value
	_putSym(s *Symbol, prop Value)
	toPrimitiveNumber() Value
	toPrimitiveString() Value
	assertCallable() (call func(FunctionCall) Value, ok bool)
	assertConstructor() func(args []Value) *Object
	proto() *Object
	setProto(proto *Object, throw bool) bool
	isExtensible() bool
	preventExtensions(throw bool) bool
	bulkFreeze() bool
	ownKeys(all bool, accum []Value) []Value
	ownSymbols(all bool, accum []Value) []Value
	export() interface{}
	exportType() reflect.Type
}

type baseObject struct {
	class      string
	val        *Object
	prototype  *Object
	extensible bool

	values    map[unistring.String]Value
	propNames []unistring.String

	symValues map[*Symbol]Value
	symNames  []*Symbol
}

type primitiveValueObject struct {
	baseObject
	pValue Value
}

func (o *primitiveValueObject) toPrimitiveNumber() Value {
	return o.pValue
}

func (o *primitiveValueObject) toPrimitiveString() Value {
	return o.pValue
}

func (o *primitiveValueObject) export() interface{} {
	return o.pValue.Export()
}

func (o *primitiveValueObject) exportType() reflect.Type {
	return o.pValue.ExportType()
}

func (o *baseObject) init() {
	o.values = make(map[unistring.String]Value)
}

func (o *baseObject) className() string {
	return o.class
}

func (o *baseObject) hasPropertyStr(name unistring.String) bool {
	if o.val.self.hasOwnPropertyStr(name) {
		return true
	}
	if o.prototype != nil {
		return o.prototype.self.hasPropertyStr(name)
	}
	return false
}

func (o *baseObject) hasPropertySym(s *Symbol) bool {
	if o.hasOwnPropertySym(s) {
		return true
	}
	if o.prototype != nil {
		return o.prototype.self.hasPropertySym(s)
	}
	return false
}

func (o *baseObject) getWithOwnProp(prop Value, p *Symbol, receiver Value) Value {
	if prop == nil && o.prototype != nil {
		if receiver == nil {
			return o.prototype.self.getSym(p, o.val)
		}
		return o.prototype.self.getSym(p, receiver)
	}
	if prop, ok := prop.(*valueProperty); ok {
		if receiver == nil {
			return prop.get(o.val)
		}
		return prop.get(receiver)
	}
	return prop
}

func (o *baseObject) getStrWithOwnProp(prop Value, name unistring.String, receiver Value) Value {
	if prop == nil && o.prototype != nil {
		if receiver == nil {
			return o.prototype.self.getStr(name, o.val)
		}
		return o.prototype.self.getStr(name, receiver)
	}
	if prop, ok := prop.(*valueProperty); ok {
		if receiver == nil {
			return prop.get(o.val)
		}
		return prop.get(receiver)
	}
	return prop
}

func (o *baseObject) getSym(s *Symbol, receiver Value) Value {
	return o.getWithOwnProp(o.symValues[s], s, receiver)
}

func (o *baseObject) getStr(name unistring.String, receiver Value) Value {
	return o.getStrWithOwnProp(o.values[name], name, receiver)
}

func (o *baseObject) getOwnPropStr(name unistring.String) Value {
	return o.values[name]
}

func (o *baseObject) getOwnPropSym(s *Symbol) Value {
	return o.symValues[s]
}

func (o *baseObject) checkDeleteProp(name string, prop *valueProperty, throw bool) bool {
	if !prop.configurable {
		o.val.runtime.writeRejected(throw, "Cannot delete property '%s' of #<%s>", name, o.val.self.className())
		return false
	}
	return true
}

func (o *baseObject) checkDelete(name string, val Value, throw bool) bool {
	if val, ok := val.(*valueProperty); ok {
		return o.checkDeleteProp(name, val, throw)
	}
	return true
}

func (o *baseObject) _delete(name unistring.String) {
	delete(o.values, name)
	for i, n := range o.propNames {
		if n == name {
			copy(o.propNames[i:], o.propNames[i+1:])
			o.propNames = o.propNames[:len(o.propNames)-1]
			break
		}
	}
}

func (o *baseObject) _deleteSym(s *Symbol) {
	delete(o.symValues, s)
	for i, n := range o.symNames {
		if n == s {
			copy(o.symNames[i:], o.symNames[i+1:])
			o.symNames = o.symNames[:len(o.symNames)-1]
			break
		}
	}
}

func (o *baseObject) deleteStr(name unistring.String, throw bool) bool {
	if val, exists := o.values[name]; exists {
		if !o.checkDelete(name.String(), val, throw) {
			return false
		}
		o._delete(name)
	}
	return true
}

func (o *baseObject) deleteSym(s *Symbol, throw bool) bool {
	if val, exists := o.symValues[s]; exists {
		if !o.checkDelete(s.String(), val, throw) {
			return false
		}
		o._deleteSym(s)
	}
	return true
}

func (o *baseObject) setProto(proto *Object, throw bool) bool {
	if o.prototype == proto {
		return true
	}
	if !o.extensible {
		o.val.runtime.writeRejected(throw, "#<%s> is not extensible", o.val.self.className())
		return false
	}
	for p := proto; p != nil; p = p.self.proto() {
		if p == o.val {
			if throw {
				panic(newException(CyclicStructure, "Cyclic __proto__ value"))
			}
			return false
		}
	}
	o.prototype = proto
	return true
}

func (o *baseObject) setOwnStr(name unistring.String, val Value, throw bool) {
	ownDesc := o.values[name]
	if ownDesc == nil {
		if proto := o.prototype; proto != nil {
			// we know it's foreign because prototype loops are not allowed
			if proto.self.setForeignStr(name, val, o.val, throw) {
				return
			}
		}
		// new property
		if !o.extensible {
			o.val.runtime.writeRejected(throw, "Cannot add property %s, object is not extensible", name)
		} else {
			o.values[name] = val
			o.propNames = append(o.propNames, name)
		}
		return
	}
	if prop, ok := ownDesc.(*valueProperty); ok {
		if !prop.isWritable() {
			o.val.runtime.writeRejected(throw, "Cannot assign to read only property '%s'", name)
			return
		}
		prop.set(o.val, val)
	} else {
		o.values[name] = val
	}
}

func (o *baseObject) setOwnSym(name *Symbol, val Value, throw bool) {
	ownDesc := o.symValues[name]
	if ownDesc == nil {
		if proto := o.prototype; proto != nil {
			// we know it's foreign because prototype loops are not allowed
			if proto.self.setForeignSym(name, val, o.val, throw) {
				return
			}
		}
		// new property
		if !o.extensible {
			o.val.runtime.writeRejected(throw, "Cannot add property %s, object is not extensible", name)
		} else {
			o._putSym(name, val)
		}
		return
	}
	if prop, ok := ownDesc.(*valueProperty); ok {
		if !prop.isWritable() {
			o.val.runtime.writeRejected(throw, "Cannot assign to read only property '%s'", name)
			return
		}
		prop.set(o.val, val)
	} else {
		o.symValues[name] = val
	}
}

// _setForeign handles a write that reached this object through the
// receiver's prototype chain. It reports whether the write was consumed.
func (o *baseObject) _setForeign(name fmt.Stringer, prop, val, receiver Value, throw bool, up func(proto *Object) bool) bool {
	if prop != nil {
		if prop, ok := prop.(*valueProperty); ok {
			if !prop.isWritable() {
				o.val.runtime.writeRejected(throw, "Cannot assign to read only property '%s'", name)
				return true
			}
			if prop.setterFunc != nil {
				prop.set(receiver, val)
				return true
			}
		}
		return false
	}
	if proto := o.prototype; proto != nil {
		return up(proto)
	}
	return false
}

func (o *baseObject) _setForeignStr(name unistring.String, prop, val, receiver Value, throw bool) bool {
	return o._setForeign(name, prop, val, receiver, throw, func(proto *Object) bool {
		return proto.self.setForeignStr(name, val, receiver, throw)
	})
}

func (o *baseObject) setForeignStr(name unistring.String, val, receiver Value, throw bool) bool {
	return o._setForeignStr(name, o.values[name], val, receiver, throw)
}

func (o *baseObject) setForeignSym(name *Symbol, val, receiver Value, throw bool) bool {
	return o._setForeign(name, o.symValues[name], val, receiver, throw, func(proto *Object) bool {
		return proto.self.setForeignSym(name, val, receiver, throw)
	})
}

func (o *baseObject) hasOwnPropertySym(s *Symbol) bool {
	_, exists := o.symValues[s]
	return exists
}

func (o *baseObject) hasOwnPropertyStr(name unistring.String) bool {
	_, exists := o.values[name]
	return exists
}

func (o *baseObject) _defineOwnProperty(name string, existingValue Value, descr PropertyDescriptor, throw bool) (val Value, ok bool) {

	getterObj, _ := descr.Getter.(*Object)
	setterObj, _ := descr.Setter.(*Object)

	var existing *valueProperty

	if existingValue == nil {
		if !o.extensible {
			o.val.runtime.writeRejected(throw, "Cannot define property %s, object is not extensible", name)
			return nil, false
		}
		existing = &valueProperty{}
	} else {
		if existing, ok = existingValue.(*valueProperty); !ok {
			existing = &valueProperty{
				writable:     true,
				enumerable:   true,
				configurable: true,
				value:        existingValue,
			}
		}

		if !existing.configurable {
			if descr.Configurable == FLAG_TRUE {
				goto Reject
			}
			if descr.Enumerable != FLAG_NOT_SET && descr.Enumerable.Bool() != existing.enumerable {
				goto Reject
			}
		}
		if existing.accessor && descr.IsDataDescriptor() || !existing.accessor && descr.IsAccessorDescriptor() {
			if !existing.configurable {
				goto Reject
			}
		} else if !existing.accessor {
			if !existing.configurable {
				if !existing.writable {
					if descr.Writable == FLAG_TRUE {
						goto Reject
					}
					if descr.Value != nil && !descr.Value.SameAs(existing.get(o.val)) {
						goto Reject
					}
				}
			}
		} else {
			if !existing.configurable {
				if descr.Getter != nil && existing.getterFunc != getterObj || descr.Setter != nil && existing.setterFunc != setterObj {
					goto Reject
				}
			}
		}
	}

	if descr.Writable == FLAG_TRUE && descr.Enumerable == FLAG_TRUE && descr.Configurable == FLAG_TRUE && descr.Value != nil {
		return descr.Value, true
	}

	if descr.Writable != FLAG_NOT_SET {
		existing.writable = descr.Writable.Bool()
	}
	if descr.Enumerable != FLAG_NOT_SET {
		existing.enumerable = descr.Enumerable.Bool()
	}
	if descr.Configurable != FLAG_NOT_SET {
		existing.configurable = descr.Configurable.Bool()
	}

	if descr.Value != nil {
		existing.value = descr.Value
		existing.getterFunc = nil
		existing.setterFunc = nil
		existing.custom = nil
	}

	if descr.Value != nil || descr.Writable != FLAG_NOT_SET {
		existing.accessor = false
	}

	if descr.Getter != nil {
		existing.getterFunc = propGetter(descr.Getter, o.val.runtime)
		existing.value = nil
		existing.custom = nil
		existing.accessor = true
	}

	if descr.Setter != nil {
		existing.setterFunc = propSetter(descr.Setter, o.val.runtime)
		existing.value = nil
		existing.custom = nil
		existing.accessor = true
	}

	if !existing.accessor {
		existing.getterFunc = nil
		existing.setterFunc = nil
		if existing.value == nil && existing.custom == nil {
			existing.value = _undefined
		}
	}

	return existing, true

Reject:
	o.val.runtime.writeRejected(throw, "Cannot redefine property: %s", name)
	return nil, false

}

func (o *baseObject) defineOwnPropertyStr(name unistring.String, descr PropertyDescriptor, throw bool) bool {
	existingVal := o.values[name]
	if v, ok := o._defineOwnProperty(name.String(), existingVal, descr, throw); ok {
		o.values[name] = v
		if existingVal == nil {
			o.propNames = append(o.propNames, name)
		}
		return true
	}
	return false
}

func (o *baseObject) defineOwnPropertySym(s *Symbol, descr PropertyDescriptor, throw bool) bool {
	existingVal := o.symValues[s]
	if v, ok := o._defineOwnProperty(s.String(), existingVal, descr, throw); ok {
		o._putSym(s, v)
		return true
	}
	return false
}

func (o *baseObject) _put(name unistring.String, v Value) {
	if _, exists := o.values[name]; !exists {
		o.propNames = append(o.propNames, name)
	}

	o.values[name] = v
}

func valueProp(value Value, writable, enumerable, configurable bool) Value {
	if writable && enumerable && configurable {
		return value
	}
	return &valueProperty{
		value:        value,
		writable:     writable,
		enumerable:   enumerable,
		configurable: configurable,
	}
}

func (o *baseObject) _putProp(name unistring.String, value Value, writable, enumerable, configurable bool) Value {
	prop := valueProp(value, writable, enumerable, configurable)
	o._put(name, prop)
	return prop
}

func (o *baseObject) _putSym(s *Symbol, prop Value) {
	if o.symValues == nil {
		o.symValues = make(map[*Symbol]Value, 1)
	}
	if _, exists := o.symValues[s]; !exists {
		o.symNames = append(o.symNames, s)
	}
	o.symValues[s] = prop
}

func (o *baseObject) tryExoticToPrimitive(hint string) Value {
	exoticToPrimitive := toMethod(o.getSym(symToPrimitive, nil))
	if exoticToPrimitive != nil {
		return exoticToPrimitive(FunctionCall{
			This:      o.val,
			Arguments: []Value{newStringValue(hint)},
		})
	}
	return nil
}

func (o *baseObject) tryPrimitive(methodName unistring.String) Value {
	if method, ok := o.val.self.getStr(methodName, nil).(*Object); ok {
		if call, ok := method.self.assertCallable(); ok {
			v := call(FunctionCall{
				This: o.val,
			})
			if _, fail := v.(*Object); !fail {
				return v
			}
		}
	}
	return nil
}

func (o *baseObject) toPrimitiveNumber() Value {
	if v := o.tryExoticToPrimitive("number"); v != nil {
		return v
	}

	if v := o.tryPrimitive("valueOf"); v != nil {
		return v
	}

	if v := o.tryPrimitive("toString"); v != nil {
		return v
	}

	o.val.runtime.typeErrorResult(true, "Could not convert #<%s> to primitive", o.val.self.className())
	return nil
}

func (o *baseObject) toPrimitiveString() Value {
	if v := o.tryExoticToPrimitive("string"); v != nil {
		return v
	}

	if v := o.tryPrimitive("toString"); v != nil {
		return v
	}

	if v := o.tryPrimitive("valueOf"); v != nil {
		return v
	}

	o.val.runtime.typeErrorResult(true, "Could not convert #<%s> to primitive", o.val.self.className())
	return nil
}

func (o *baseObject) assertCallable() (func(FunctionCall) Value, bool) {
	return nil, false
}

func (o *baseObject) assertConstructor() func(args []Value) *Object {
	return nil
}

func (o *baseObject) proto() *Object {
	return o.prototype
}

func (o *baseObject) isExtensible() bool {
	return o.extensible
}

func (o *baseObject) preventExtensions(bool) bool {
	o.extensible = false
	return true
}

func frozenProp(v Value) Value {
	if prop, ok := v.(*valueProperty); ok {
		prop.configurable = false
		if !prop.accessor {
			prop.writable = false
		}
		return prop
	}
	return &valueProperty{
		value:      v,
		enumerable: true,
	}
}

// bulkFreeze freezes the whole store in one pass. The result is the same as
// redefining every non-private key as non-configurable (and non-writable for
// data properties) and then preventing extensions.
func (o *baseObject) bulkFreeze() bool {
	for _, name := range o.propNames {
		o.values[name] = frozenProp(o.values[name])
	}
	for _, s := range o.symNames {
		if !s.private {
			o.symValues[s] = frozenProp(o.symValues[s])
		}
	}
	o.extensible = false
	return true
}

func (o *baseObject) export() interface{} {
	m := make(map[string]interface{})
	for _, itemName := range o.val.self.ownKeys(false, nil) {
		itemNameStr := itemName.String()
		v := o.val.self.getStr(unistring.String(itemNameStr), nil)
		if v != nil {
			m[itemNameStr] = v.Export()
		} else {
			m[itemNameStr] = nil
		}
	}

	return m
}

func (o *baseObject) exportType() reflect.Type {
	return reflectTypeMap
}

func isEnumerable(prop Value) bool {
	if prop, ok := prop.(*valueProperty); ok {
		return prop.enumerable
	}
	return true
}

func (o *baseObject) ownKeys(all bool, keys []Value) []Value {
	for _, k := range o.propNames {
		if !all && !isEnumerable(o.values[k]) {
			continue
		}
		keys = append(keys, newStringValue(k.String()))
	}
	return keys
}

func (o *baseObject) ownSymbols(all bool, accum []Value) []Value {
	for _, s := range o.symNames {
		if !all && !isEnumerable(o.symValues[s]) {
			continue
		}
		accum = append(accum, s)
	}
	return accum
}

func toMethod(v Value) func(FunctionCall) Value {
	if v == nil || IsUndefined(v) || IsNull(v) {
		return nil
	}
	if obj, ok := v.(*Object); ok {
		if call, ok := obj.self.assertCallable(); ok {
			return call
		}
	}
	panic(typeMismatchf("%s is not a method", v.String()))
}

func toPropertyKey(key Value) Value {
	switch key := key.(type) {
	case *Symbol, valueString:
		return key
	}
	return newStringValue(key.String())
}

func (o *Object) get(p Value, receiver Value) Value {
	if s, ok := p.(*Symbol); ok {
		return o.self.getSym(s, receiver)
	}
	return o.self.getStr(unistring.String(p.String()), receiver)
}

func (o *Object) getOwnProp(p Value) Value {
	if s, ok := p.(*Symbol); ok {
		return o.self.getOwnPropSym(s)
	}
	return o.self.getOwnPropStr(unistring.String(p.String()))
}

func (o *Object) setOwn(p Value, v Value, throw bool) {
	if s, ok := p.(*Symbol); ok {
		o.self.setOwnSym(s, v, throw)
		return
	}
	o.self.setOwnStr(unistring.String(p.String()), v, throw)
}

func (o *Object) defineOwnProperty(p Value, descr PropertyDescriptor, throw bool) bool {
	if s, ok := p.(*Symbol); ok {
		return o.self.defineOwnPropertySym(s, descr, throw)
	}
	return o.self.defineOwnPropertyStr(unistring.String(p.String()), descr, throw)
}

func (o *Object) delete(p Value, throw bool) bool {
	if s, ok := p.(*Symbol); ok {
		return o.self.deleteSym(s, throw)
	}
	return o.self.deleteStr(unistring.String(p.String()), throw)
}

func (o *Object) hasOwnProperty(p Value) bool {
	if s, ok := p.(*Symbol); ok {
		return o.self.hasOwnPropertySym(s)
	}
	return o.self.hasOwnPropertyStr(unistring.String(p.String()))
}

func (o *Object) hasProperty(p Value) bool {
	if s, ok := p.(*Symbol); ok {
		return o.self.hasPropertySym(s)
	}
	return o.self.hasPropertyStr(unistring.String(p.String()))
}

func (o *Object) Runtime() *Runtime {
	return o.runtime
}

func (o *Object) ClassName() string {
	return o.self.className()
}

// Get returns the value of the property, or nil if it does not exist.
func (o *Object) Get(name string) Value {
	return o.self.getStr(unistring.NewFromString(name), nil)
}

func (o *Object) GetSymbol(sym *Symbol) Value {
	return o.self.getSym(sym, nil)
}

// Set assigns a property the way strict mode code would: rejected writes
// are reported.
func (o *Object) Set(name string, value interface{}) error {
	return o.runtime.try(func() {
		o.self.setOwnStr(unistring.NewFromString(name), o.runtime.ToValue(value), true)
	})
}

// Put assigns a property. In non-strict mode writes to read-only properties
// are ignored silently.
func (o *Object) Put(key Value, value Value, strict bool) error {
	return o.runtime.try(func() {
		o.setOwn(toPropertyKey(key), value, strict)
	})
}

func (o *Object) Delete(name string) error {
	return o.runtime.try(func() {
		o.self.deleteStr(unistring.NewFromString(name), true)
	})
}

func (o *Object) DeleteSymbol(sym *Symbol) error {
	return o.runtime.try(func() {
		o.self.deleteSym(sym, true)
	})
}

func (o *Object) HasOwnProperty(name string) bool {
	return o.self.hasOwnPropertyStr(unistring.NewFromString(name))
}

func (o *Object) DefineDataProperty(name string, value Value, writable, configurable, enumerable Flag) error {
	return o.runtime.try(func() {
		o.self.defineOwnPropertyStr(unistring.NewFromString(name), PropertyDescriptor{
			Value:        value,
			Writable:     writable,
			Configurable: configurable,
			Enumerable:   enumerable,
		}, true)
	})
}

func (o *Object) DefineAccessorProperty(name string, getter, setter Value, configurable, enumerable Flag) error {
	return o.runtime.try(func() {
		o.self.defineOwnPropertyStr(unistring.NewFromString(name), PropertyDescriptor{
			Getter:       getter,
			Setter:       setter,
			Configurable: configurable,
			Enumerable:   enumerable,
		}, true)
	})
}

func (o *Object) DefineDataPropertySymbol(name *Symbol, value Value, writable, configurable, enumerable Flag) error {
	return o.runtime.try(func() {
		o.self.defineOwnPropertySym(name, PropertyDescriptor{
			Value:        value,
			Writable:     writable,
			Configurable: configurable,
			Enumerable:   enumerable,
		}, true)
	})
}

// Keys returns the enumerable own string keys in enumeration order.
func (o *Object) Keys() (keys []string) {
	for _, k := range o.self.ownKeys(false, nil) {
		keys = append(keys, k.String())
	}
	return
}

// Symbols returns the enumerable own non-private symbol keys in insertion order.
func (o *Object) Symbols() []*Symbol {
	var res []*Symbol
	for _, s := range o.self.ownSymbols(false, nil) {
		if sym := s.(*Symbol); !sym.private {
			res = append(res, sym)
		}
	}
	return res
}

func (o *Object) Prototype() *Object {
	return o.self.proto()
}

func (o *Object) SetPrototype(proto *Object) error {
	return o.runtime.try(func() {
		o.self.setProto(proto, true)
	})
}
