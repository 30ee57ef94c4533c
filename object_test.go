package hostobj

import (
	"errors"
	"testing"
)

func TestDefineProperty(t *testing.T) {
	r := New()
	o := r.NewObject()

	err := o.DefineDataProperty("data", valueInt(42), FLAG_TRUE, FLAG_TRUE, FLAG_TRUE)
	if err != nil {
		t.Fatal(err)
	}

	err = o.DefineAccessorProperty("accessor_ok", r.NewFunction("get", 0, func(FunctionCall) Value {
		return valueInt(5)
	}), nil, FLAG_TRUE, FLAG_TRUE)
	if err != nil {
		t.Fatal(err)
	}

	err = o.DefineAccessorProperty("accessor_ok", nil, r.NewFunction("set", 1, nopFunc), FLAG_TRUE, FLAG_TRUE)
	if err != nil {
		t.Fatal(err)
	}

	if v := o.Get("accessor_ok"); v.ToInteger() != 5 {
		t.Fatalf("Unexpected value: %v", v)
	}

	err = o.DefineDataProperty("data", valueInt(43), FLAG_FALSE, FLAG_FALSE, FLAG_FALSE)
	if err != nil {
		t.Fatal(err)
	}

	err = o.DefineDataProperty("data", valueInt(44), FLAG_NOT_SET, FLAG_NOT_SET, FLAG_NOT_SET)
	var ex *Exception
	if !errors.As(err, &ex) || ex.Kind() != WriteRejected {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ex.Message() != "Cannot redefine property: data" {
		t.Fatal(ex.Message())
	}
	if v := o.Get("data"); v.ToInteger() != 43 {
		t.Fatalf("Unexpected value: %v", v)
	}
}

func TestDefinePropertyExtensibility(t *testing.T) {
	r := New()
	o := r.NewObject()
	o.self.preventExtensions(true)
	err := o.DefineDataProperty("x", valueInt(1), FLAG_TRUE, FLAG_TRUE, FLAG_TRUE)
	if !errors.Is(err, ErrWriteRejected) {
		t.Fatalf("Unexpected error: %v", err)
	}
	if o.HasOwnProperty("x") {
		t.Fatal("property was added")
	}
}

func TestPropertyOrder(t *testing.T) {
	r := New()
	o := r.NewObject()
	sym := NewSymbol("s")
	for _, k := range []string{"b", "a", "1", "c"} {
		if err := o.Set(k, true); err != nil {
			t.Fatal(err)
		}
	}
	if err := o.DefineDataPropertySymbol(sym, valueTrue, FLAG_TRUE, FLAG_TRUE, FLAG_TRUE); err != nil {
		t.Fatal(err)
	}
	if err := o.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if err := o.Set("a", false); err != nil {
		t.Fatal(err)
	}
	keys := o.Keys()
	expected := []string{"b", "1", "c", "a"}
	if len(keys) != len(expected) {
		t.Fatal(keys)
	}
	for i, k := range expected {
		if keys[i] != k {
			t.Fatalf("%d: %s != %s", i, keys[i], k)
		}
	}
	if syms := o.Symbols(); len(syms) != 1 || syms[0] != sym {
		t.Fatal(syms)
	}
}

func TestSetThroughPrototype(t *testing.T) {
	r := New()
	proto := r.NewObject()
	var setterThis Value
	err := proto.DefineAccessorProperty("acc", nil, r.NewFunction("set", 1, func(call FunctionCall) Value {
		setterThis = call.This
		return _undefined
	}), FLAG_TRUE, FLAG_TRUE)
	if err != nil {
		t.Fatal(err)
	}
	if err := proto.DefineDataProperty("ro", valueInt(1), FLAG_FALSE, FLAG_TRUE, FLAG_TRUE); err != nil {
		t.Fatal(err)
	}
	if err := proto.Set("plain", 1); err != nil {
		t.Fatal(err)
	}

	o := r.NewObject()
	if err := o.SetPrototype(proto); err != nil {
		t.Fatal(err)
	}
	if err := o.Set("acc", 1); err != nil {
		t.Fatal(err)
	}
	if setterThis != o {
		t.Fatal("setter called with the wrong receiver")
	}
	if o.HasOwnProperty("acc") {
		t.Fatal("accessor write created an own property")
	}

	if err := o.Set("ro", 2); !errors.Is(err, ErrWriteRejected) {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := o.Put(newStringValue("ro"), valueInt(2), false); err != nil {
		t.Fatal(err)
	}
	if o.HasOwnProperty("ro") {
		t.Fatal("read-only inherited property was shadowed")
	}

	if err := o.Set("plain", 2); err != nil {
		t.Fatal(err)
	}
	if !o.HasOwnProperty("plain") || proto.Get("plain").ToInteger() != 1 {
		t.Fatal("plain inherited property was not shadowed")
	}
}

func TestExport(t *testing.T) {
	r := New()
	o := r.NewObject()
	_ = o.Set("a", 1)
	_ = o.Set("b", "x")
	_ = o.DefineDataProperty("hidden", valueInt(1), FLAG_TRUE, FLAG_TRUE, FLAG_FALSE)
	m, ok := o.Export().(map[string]interface{})
	if !ok {
		t.Fatalf("Unexpected export: %T", o.Export())
	}
	if len(m) != 2 || m["a"] != int64(1) || m["b"] != "x" {
		t.Fatal(m)
	}
}

func TestToPrimitive(t *testing.T) {
	r := New()
	o := r.NewObject()
	_ = o.Set("valueOf", r.NewFunction("valueOf", 0, func(FunctionCall) Value {
		return valueInt(10)
	}))
	if n := o.ToInteger(); n != 10 {
		t.Fatalf("Unexpected number: %d", n)
	}
	if s := o.String(); s != "[object Object]" {
		t.Fatal(s)
	}

	bare, err := r.Create(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	func() {
		defer func() {
			if ex, ok := recover().(*Exception); !ok || ex.Kind() != TypeMismatch {
				t.Fatal("expected a type mismatch")
			}
		}()
		_ = bare.String()
	}()
}

func BenchmarkPut(b *testing.B) {
	r := New()
	o := r.NewObject()

	var key Value = newStringValue("test")
	var val Value = valueInt(123)

	for i := 0; i < b.N; i++ {
		o.setOwn(key, val, false)
	}
}

func BenchmarkGet(b *testing.B) {
	r := New()
	o := r.NewObject()
	o.setOwn(newStringValue("test"), valueInt(123), false)

	for i := 0; i < b.N; i++ {
		o.Get("test")
	}
}

func BenchmarkGetInherited(b *testing.B) {
	r := New()
	o := r.NewObject()

	for i := 0; i < b.N; i++ {
		o.Get("hasOwnProperty")
	}
}

func BenchmarkFreeze(b *testing.B) {
	r := New()
	for i := 0; i < b.N; i++ {
		o := r.NewObject()
		o.setOwn(newStringValue("a"), valueInt(1), false)
		o.setOwn(newStringValue("b"), valueInt(2), false)
		r.freeze(o)
	}
}
