package hostobj

import (
	"reflect"

	"github.com/hostobj/hostobj/unistring"
)

// hostObject resolves properties against the static tables of its class
// chain. Own properties always shadow the tables.
type hostObject struct {
	baseObject

	classInfo *ClassInfo

	// static names whose own slot is authoritative: reified into the own
	// store, or deleted from this object
	reified map[unistring.String]struct{}
	// static names deleted from this object; a re-added name is ordered
	// like any other own property
	deleted map[unistring.String]struct{}

	call      NativeFunc
	construct func(args []Value) *Object
	data      interface{}
}

func (o *hostObject) staticEntry(name unistring.String) *HashEntry {
	if _, exists := o.reified[name]; exists {
		return nil
	}
	return o.val.runtime.registry.entry(o.classInfo, name)
}

func (o *hostObject) markReified(name unistring.String) {
	if o.reified == nil {
		o.reified = make(map[unistring.String]struct{})
	}
	o.reified[name] = struct{}{}
}

func (o *hostObject) markDeleted(name unistring.String) {
	if o.deleted == nil {
		o.deleted = make(map[unistring.String]struct{})
	}
	o.deleted[name] = struct{}{}
}

func (o *hostObject) getStatic(e *HashEntry, name unistring.String, receiver Value) Value {
	switch p := e.payload.(type) {
	case NativeFunction:
		return o.reifyStatic(name, e).(*valueProperty).get(o.val)
	case NativeAccessor:
		if p.Getter == nil {
			return _undefined
		}
		if receiver == nil {
			receiver = o.val
		}
		return o.val.runtime.callNative(p.Getter, receiver)
	case NativeValue:
		return p.Get(o.val)
	case ConstantValue:
		return p.Value
	}
	return nil
}

// reifyStatic materializes a static entry into the own store with the
// entry's attributes. Later lookups of the name never reach the table.
func (o *hostObject) reifyStatic(name unistring.String, e *HashEntry) Value {
	r := o.val.runtime
	attrs := e.attributes
	prop := &valueProperty{
		writable:     attrs.writable(),
		enumerable:   attrs.enumerable(),
		configurable: attrs.configurable(),
	}
	switch p := e.payload.(type) {
	case NativeFunction:
		prop.value = r.newNativeFunc(p.Call, nil, name, p.Length, p.RequiredArgs)
	case NativeAccessor:
		prop.accessor = true
		prop.writable = false
		if p.Getter != nil {
			prop.getterFunc = r.newNativeFunc(p.Getter, nil, "get "+name, 0, 0)
		}
		if p.Setter != nil {
			prop.setterFunc = r.newNativeFunc(p.Setter, nil, "set "+name, 1, 0)
		}
	case NativeValue:
		prop.custom = &customValue{
			get:    p.Get,
			put:    p.Put,
			holder: o.val,
		}
	case ConstantValue:
		prop.value = p.Value
	}
	o._put(name, prop)
	o.markReified(name)
	return prop
}

// staticProp describes a value or constant entry without reifying it.
func (o *hostObject) staticProp(e *HashEntry) *valueProperty {
	attrs := e.attributes
	prop := &valueProperty{
		writable:     attrs.writable(),
		enumerable:   attrs.enumerable(),
		configurable: attrs.configurable(),
	}
	switch p := e.payload.(type) {
	case NativeValue:
		prop.custom = &customValue{
			get:    p.Get,
			put:    p.Put,
			holder: o.val,
		}
	case ConstantValue:
		prop.value = p.Value
	}
	return prop
}

func (o *hostObject) getStr(name unistring.String, receiver Value) Value {
	if prop := o.values[name]; prop != nil {
		return o.getStrWithOwnProp(prop, name, receiver)
	}
	if e := o.staticEntry(name); e != nil {
		return o.getStatic(e, name, receiver)
	}
	return o.getStrWithOwnProp(nil, name, receiver)
}

func (o *hostObject) getOwnPropStr(name unistring.String) Value {
	if prop := o.values[name]; prop != nil {
		return prop
	}
	if e := o.staticEntry(name); e != nil {
		switch e.payload.(type) {
		case NativeFunction, NativeAccessor:
			return o.reifyStatic(name, e)
		}
		return o.staticProp(e)
	}
	return nil
}

func (o *hostObject) hasOwnPropertyStr(name unistring.String) bool {
	if _, exists := o.values[name]; exists {
		return true
	}
	return o.staticEntry(name) != nil
}

// putEntry writes through a static entry of the object itself.
func (o *hostObject) putEntry(name unistring.String, e *HashEntry, val Value, throw bool) {
	switch p := e.payload.(type) {
	case NativeFunction:
		// assigning over a method shadows it
		o._put(name, val)
		o.markReified(name)
		return
	case NativeAccessor:
		if p.Setter != nil {
			o.val.runtime.callNative(p.Setter, o.val, val)
			return
		}
	case NativeValue:
		if e.attributes.writable() && p.Put != nil {
			p.Put(o.val, val)
			return
		}
	}
	o.val.runtime.writeRejected(throw, strictModeReadonlyPropertyWriteError)
}

func (o *hostObject) setOwnStr(name unistring.String, val Value, throw bool) {
	if _, exists := o.values[name]; !exists {
		if e := o.staticEntry(name); e != nil {
			o.putEntry(name, e, val, throw)
			return
		}
	}
	o.baseObject.setOwnStr(name, val, throw)
}

func (o *hostObject) setForeignStr(name unistring.String, val, receiver Value, throw bool) bool {
	if prop, exists := o.values[name]; exists {
		return o._setForeignStr(name, prop, val, receiver, throw)
	}
	if e := o.staticEntry(name); e != nil {
		switch p := e.payload.(type) {
		case NativeFunction:
			return false
		case NativeAccessor:
			if p.Setter != nil {
				o.val.runtime.callNative(p.Setter, receiver, val)
				return true
			}
		case NativeValue:
			if e.attributes.writable() && p.Put != nil {
				p.Put(o.val, val)
				return true
			}
		}
		o.val.runtime.writeRejected(throw, strictModeReadonlyPropertyWriteError)
		return true
	}
	return o._setForeignStr(name, nil, val, receiver, throw)
}

func (o *hostObject) defineOwnPropertyStr(name unistring.String, descr PropertyDescriptor, throw bool) bool {
	if _, exists := o.values[name]; !exists {
		if e := o.staticEntry(name); e != nil {
			o.reifyStatic(name, e)
		}
	}
	return o.baseObject.defineOwnPropertyStr(name, descr, throw)
}

func (o *hostObject) deleteStr(name unistring.String, throw bool) bool {
	if _, exists := o.values[name]; exists {
		if !o.baseObject.deleteStr(name, throw) {
			return false
		}
		if _, static := o.reified[name]; static {
			o.markDeleted(name)
		}
		return true
	}
	if e := o.staticEntry(name); e != nil {
		if !e.attributes.configurable() {
			o.val.runtime.writeRejected(throw, "Cannot delete property '%s' of #<%s>", name, o.classInfo.Name)
			return false
		}
		o.markReified(name)
		o.markDeleted(name)
	}
	return true
}

// ownKeys emits the static entries first, in declaration order from the
// most derived class up, followed by the own store in insertion order.
// Deleted static names are left to the own store.
func (o *hostObject) ownKeys(all bool, accum []Value) []Value {
	emitted := make(map[unistring.String]struct{})
	registry := o.val.runtime.registry
	for ci := o.classInfo; ci != nil; ci = ci.Parent {
		t := registry.Table(ci)
		if t == nil {
			continue
		}
		t.forEach(func(e *HashEntry) bool {
			name := e.key.String()
			if _, exists := emitted[name]; exists {
				return true
			}
			if _, deleted := o.deleted[name]; deleted {
				return true
			}
			emitted[name] = struct{}{}
			if prop, exists := o.values[name]; exists {
				if all || isEnumerable(prop) {
					accum = append(accum, newStringValue(name.String()))
				}
				return true
			}
			if all || e.attributes.enumerable() {
				accum = append(accum, newStringValue(name.String()))
			}
			return true
		})
	}
	for _, name := range o.propNames {
		if _, exists := emitted[name]; exists {
			continue
		}
		if all || isEnumerable(o.values[name]) {
			accum = append(accum, newStringValue(name.String()))
		}
	}
	return accum
}

// bulkFreeze is not available: static entries have to be reified one by one.
func (o *hostObject) bulkFreeze() bool {
	return false
}

func (o *hostObject) assertCallable() (func(FunctionCall) Value, bool) {
	if o.call == nil {
		return nil, false
	}
	return func(call FunctionCall) Value {
		call.runtime = o.val.runtime
		if call.This == nil {
			call.This = _undefined
		}
		return o.call(call)
	}, true
}

func (o *hostObject) assertConstructor() func(args []Value) *Object {
	return o.construct
}

func (o *hostObject) export() interface{} {
	if o.data != nil {
		return o.data
	}
	return o.baseObject.export()
}

func (o *hostObject) exportType() reflect.Type {
	if o.data != nil {
		return reflect.TypeOf(o.data)
	}
	return o.baseObject.exportType()
}

func (r *Runtime) newHostObject(class *ClassInfo, proto *Object, data interface{}) *hostObject {
	v := &Object{runtime: r}
	o := &hostObject{
		baseObject: baseObject{
			class:      class.Name,
			val:        v,
			extensible: true,
			prototype:  proto,
		},
		classInfo: class,
		data:      data,
	}
	v.self = o
	o.init()
	return o
}

// NewHostObject creates an object of the given class with Object.prototype
// as its prototype. data is returned by Export and HostData.
func (r *Runtime) NewHostObject(class *ClassInfo, data interface{}) *Object {
	return r.newHostObject(class, r.global.ObjectPrototype, data).val
}

func (r *Runtime) NewHostObjectWithProto(class *ClassInfo, proto *Object, data interface{}) *Object {
	return r.newHostObject(class, proto, data).val
}

// HostData returns the data the object was created with, or nil if it is not
// a host object.
func (o *Object) HostData() interface{} {
	if h, ok := o.self.(*hostObject); ok {
		return h.data
	}
	return nil
}

func (o *Object) ClassInfo() *ClassInfo {
	if h, ok := o.self.(*hostObject); ok {
		return h.classInfo
	}
	return nil
}
