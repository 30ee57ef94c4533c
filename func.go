package hostobj

import (
	"reflect"

	"github.com/hostobj/hostobj/unistring"
)

// NativeFunc is the calling convention of every function the engine knows.
type NativeFunc func(FunctionCall) Value

// CallerContext identifies who is performing an operation. It is passed to
// the AccessPolicy of the runtime.
type CallerContext struct {
	Origin string
}

type FunctionCall struct {
	This      Value
	Arguments []Value
	Caller    CallerContext

	runtime *Runtime
}

func (f FunctionCall) Argument(idx int) Value {
	if idx < len(f.Arguments) {
		return f.Arguments[idx]
	}
	return _undefined
}

func (f FunctionCall) Runtime() *Runtime {
	return f.runtime
}

// Require fails with InsufficientArguments if fewer than n arguments were passed.
func (f FunctionCall) Require(n int) {
	if len(f.Arguments) < n {
		panic(newException(InsufficientArguments, "Not enough arguments: expected %d, got %d", n, len(f.Arguments)))
	}
}

// Callable is a function exported to Go. Failures are returned as *Exception.
type Callable func(this Value, args ...Value) (Value, error)

type baseFuncObject struct {
	baseObject

	nameProp, lenProp valueProperty
}

type nativeFuncObject struct {
	baseFuncObject

	f         NativeFunc
	construct func(args []Value) *Object
	required  int
}

func (f *baseFuncObject) init(name unistring.String, length int) {
	f.baseObject.init()

	f.nameProp.configurable = true
	f.nameProp.value = newStringValue(name.String())
	f._put("name", &f.nameProp)

	f.lenProp.configurable = true
	f.lenProp.value = valueInt(length)
	f._put("length", &f.lenProp)
}

func (f *nativeFuncObject) call(call FunctionCall) Value {
	call.runtime = f.val.runtime
	if call.This == nil {
		call.This = _undefined
	}
	if f.required > 0 {
		call.Require(f.required)
	}
	return f.f(call)
}

func (f *nativeFuncObject) export() interface{} {
	return f.f
}

func (f *nativeFuncObject) exportType() reflect.Type {
	return reflect.TypeOf(f.f)
}

func (f *nativeFuncObject) assertCallable() (func(FunctionCall) Value, bool) {
	if f.f != nil {
		return f.call, true
	}
	return nil, false
}

func (f *nativeFuncObject) assertConstructor() func(args []Value) *Object {
	return f.construct
}

func (r *Runtime) newNativeFuncObj(f NativeFunc, construct func(args []Value) *Object, name unistring.String, length, required int) *nativeFuncObject {
	v := &Object{runtime: r}
	fn := &nativeFuncObject{
		baseFuncObject: baseFuncObject{
			baseObject: baseObject{
				class:      classFunction,
				val:        v,
				extensible: true,
				prototype:  r.global.FunctionPrototype,
			},
		},
		f:         f,
		construct: construct,
		required:  required,
	}
	v.self = fn
	fn.init(name, length)
	return fn
}

func (r *Runtime) newNativeFunc(f NativeFunc, construct func(args []Value) *Object, name unistring.String, length, required int) *Object {
	return r.newNativeFuncObj(f, construct, name, length, required).val
}

// NewFunction wraps a NativeFunc into a function object.
func (r *Runtime) NewFunction(name string, length int, f NativeFunc) *Object {
	return r.newNativeFunc(f, nil, unistring.NewFromString(name), length, 0)
}

// callNative invokes a native function that is not wrapped in a function
// object, e.g. a static accessor half.
func (r *Runtime) callNative(f NativeFunc, this Value, args ...Value) Value {
	return f(FunctionCall{
		This:      this,
		Arguments: args,
		runtime:   r,
	})
}

func (r *Runtime) wrapCallable(call func(FunctionCall) Value, caller CallerContext) Callable {
	return func(this Value, args ...Value) (ret Value, err error) {
		err = r.try(func() {
			if this == nil {
				this = _undefined
			}
			ret = call(FunctionCall{
				This:      this,
				Arguments: args,
				Caller:    caller,
				runtime:   r,
			})
		})
		return
	}
}

// AssertFunction checks if the Value is a function and returns a Callable.
func AssertFunction(v Value) (Callable, bool) {
	if obj, ok := v.(*Object); ok {
		if f, ok := obj.self.assertCallable(); ok {
			return obj.runtime.wrapCallable(f, CallerContext{}), true
		}
	}
	return nil, false
}

// CallAs calls the object as a function on behalf of caller.
func (o *Object) CallAs(caller CallerContext, this Value, args ...Value) (Value, error) {
	f, ok := o.self.assertCallable()
	if !ok {
		return nil, typeMismatchf("%s is not a function", o.self.className())
	}
	return o.runtime.wrapCallable(f, caller)(this, args...)
}

// Construct calls the object as a constructor.
func (o *Object) Construct(args ...Value) (ret *Object, err error) {
	c := o.self.assertConstructor()
	if c == nil {
		return nil, typeMismatchf("%s is not a constructor", o.self.className())
	}
	err = o.runtime.try(func() {
		ret = c(args)
	})
	return
}
