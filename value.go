package hostobj

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

var (
	valueFalse    Value = valueBool(false)
	valueTrue     Value = valueBool(true)
	_null         Value = valueNull{}
	_NaN          Value = valueFloat(math.NaN())
	_positiveInf  Value = valueFloat(math.Inf(+1))
	_negativeInf  Value = valueFloat(math.Inf(-1))
	_positiveZero Value = valueInt(0)
	negativeZero        = math.Float64frombits(0 | (1 << 63))
	_negativeZero Value = valueFloat(negativeZero)
	_undefined    Value = valueUndefined{}
)

var (
	reflectTypeInt    = reflect.TypeOf(int64(0))
	reflectTypeBool   = reflect.TypeOf(false)
	reflectTypeNil    = reflect.TypeOf(nil)
	reflectTypeFloat  = reflect.TypeOf(float64(0))
	reflectTypeMap    = reflect.TypeOf(map[string]interface{}{})
	reflectTypeString = reflect.TypeOf("")
)

type Value interface {
	ToInteger() int64
	String() string
	ToFloat() float64
	ToNumber() Value
	ToBoolean() bool
	ToObject(*Runtime) *Object
	SameAs(Value) bool
	StrictEquals(Value) bool
	Export() interface{}
	ExportType() reflect.Type
}

type valueInt int64
type valueFloat float64
type valueBool bool
type valueString string
type valueNull struct{}
type valueUndefined struct{}

// customValue is a data property read and written through native functions
// of a static table entry. holder is the object the entry belongs to.
type customValue struct {
	get    GetFunction
	put    PutFunction
	holder *Object
}

// valueProperty is an own property that is not a plain
// writable+enumerable+configurable data value.
type valueProperty struct {
	value        Value
	writable     bool
	configurable bool
	enumerable   bool
	accessor     bool
	getterFunc   *Object
	setterFunc   *Object
	custom       *customValue
}

func Undefined() Value {
	return _undefined
}

func Null() Value {
	return _null
}

func IsUndefined(v Value) bool {
	return v == _undefined
}

func IsNull(v Value) bool {
	return v == _null
}

func IsNaN(v Value) bool {
	f, ok := v.(valueFloat)
	return ok && math.IsNaN(float64(f))
}

func NaN() Value {
	return _NaN
}

func NegativeZero() Value {
	return _negativeZero
}

func propGetter(v Value, r *Runtime) *Object {
	if v == _undefined {
		return nil
	}
	if obj, ok := v.(*Object); ok {
		if _, ok := obj.self.assertCallable(); ok {
			return obj
		}
	}
	r.typeErrorResult(true, "Getter must be a function: %s", v.String())
	return nil
}

func propSetter(v Value, r *Runtime) *Object {
	if v == _undefined {
		return nil
	}
	if obj, ok := v.(*Object); ok {
		if _, ok := obj.self.assertCallable(); ok {
			return obj
		}
	}
	r.typeErrorResult(true, "Setter must be a function: %s", v.String())
	return nil
}

func intToValue(i int64) Value {
	return valueInt(i)
}

func floatToValue(f float64) Value {
	if i := int64(f); float64(i) == f && (i != 0 || !math.Signbit(f)) {
		return valueInt(i)
	}
	return valueFloat(f)
}

func newStringValue(s string) Value {
	return valueString(s)
}

func (i valueInt) ToInteger() int64 {
	return int64(i)
}

func (i valueInt) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i valueInt) ToFloat() float64 {
	return float64(int64(i))
}

func (i valueInt) ToBoolean() bool {
	return i != 0
}

func (i valueInt) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(i, classNumber)
}

func (i valueInt) ToNumber() Value {
	return i
}

func (i valueInt) SameAs(other Value) bool {
	switch o := other.(type) {
	case valueInt:
		return i == o
	case valueFloat:
		return float64(i) == float64(o) && !math.Signbit(float64(o))
	}
	return false
}

func (i valueInt) StrictEquals(other Value) bool {
	switch o := other.(type) {
	case valueInt:
		return i == o
	case valueFloat:
		return float64(i) == float64(o)
	}
	return false
}

func (i valueInt) Export() interface{} {
	return int64(i)
}

func (i valueInt) ExportType() reflect.Type {
	return reflectTypeInt
}

func (f valueFloat) ToInteger() int64 {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case math.IsInf(float64(f), 1):
		return math.MaxInt64
	case math.IsInf(float64(f), -1):
		return math.MinInt64
	}
	return int64(f)
}

func (f valueFloat) String() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f valueFloat) ToFloat() float64 {
	return float64(f)
}

func (f valueFloat) ToBoolean() bool {
	return float64(f) != 0.0 && !math.IsNaN(float64(f))
}

func (f valueFloat) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(f, classNumber)
}

func (f valueFloat) ToNumber() Value {
	return f
}

// SameAs distinguishes +0 from -0 and treats NaN as equal to itself.
func (f valueFloat) SameAs(other Value) bool {
	switch o := other.(type) {
	case valueFloat:
		this := float64(f)
		o1 := float64(o)
		if math.IsNaN(this) && math.IsNaN(o1) {
			return true
		}
		if this == o1 {
			if this == 0 {
				return math.Signbit(this) == math.Signbit(o1)
			}
			return true
		}
	case valueInt:
		this := float64(f)
		if this == 0 && math.Signbit(this) {
			return false
		}
		return this == float64(o)
	}
	return false
}

func (f valueFloat) StrictEquals(other Value) bool {
	switch o := other.(type) {
	case valueFloat:
		return f == o
	case valueInt:
		return float64(f) == float64(o)
	}
	return false
}

func (f valueFloat) Export() interface{} {
	return float64(f)
}

func (f valueFloat) ExportType() reflect.Type {
	return reflectTypeFloat
}

func (b valueBool) ToInteger() int64 {
	if b {
		return 1
	}
	return 0
}

func (b valueBool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b valueBool) ToFloat() float64 {
	if b {
		return 1.0
	}
	return 0
}

func (b valueBool) ToBoolean() bool {
	return bool(b)
}

func (b valueBool) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(b, classBoolean)
}

func (b valueBool) ToNumber() Value {
	if b {
		return valueInt(1)
	}
	return valueInt(0)
}

func (b valueBool) SameAs(other Value) bool {
	if other, ok := other.(valueBool); ok {
		return b == other
	}
	return false
}

func (b valueBool) StrictEquals(other Value) bool {
	return b.SameAs(other)
}

func (b valueBool) Export() interface{} {
	return bool(b)
}

func (b valueBool) ExportType() reflect.Type {
	return reflectTypeBool
}

func (s valueString) ToInteger() int64 {
	return s.ToNumber().ToInteger()
}

func (s valueString) String() string {
	return string(s)
}

func (s valueString) ToFloat() float64 {
	return s.ToNumber().ToFloat()
}

func (s valueString) ToBoolean() bool {
	return len(s) > 0
}

func (s valueString) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(s, classString)
}

func (s valueString) ToNumber() Value {
	str := strings.TrimSpace(string(s))
	switch str {
	case "":
		return _positiveZero
	case "Infinity", "+Infinity":
		return _positiveInf
	case "-Infinity":
		return _negativeInf
	}
	if i, err := strconv.ParseInt(str, 10, 64); err == nil {
		return intToValue(i)
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsInf(f, 0) {
		return _NaN
	}
	return floatToValue(f)
}

func (s valueString) SameAs(other Value) bool {
	if other, ok := other.(valueString); ok {
		return s == other
	}
	return false
}

func (s valueString) StrictEquals(other Value) bool {
	return s.SameAs(other)
}

func (s valueString) Export() interface{} {
	return string(s)
}

func (s valueString) ExportType() reflect.Type {
	return reflectTypeString
}

func (n valueNull) ToInteger() int64 {
	return 0
}

func (n valueNull) String() string {
	return "null"
}

func (n valueNull) ToFloat() float64 {
	return 0
}

func (n valueNull) ToBoolean() bool {
	return false
}

func (n valueNull) ToObject(r *Runtime) *Object {
	r.typeErrorResult(true, "Cannot convert undefined or null to object")
	return nil
}

func (n valueNull) ToNumber() Value {
	return _positiveZero
}

func (n valueNull) SameAs(other Value) bool {
	_, ok := other.(valueNull)
	return ok
}

func (n valueNull) StrictEquals(other Value) bool {
	return n.SameAs(other)
}

func (n valueNull) Export() interface{} {
	return nil
}

func (n valueNull) ExportType() reflect.Type {
	return reflectTypeNil
}

func (u valueUndefined) ToInteger() int64 {
	return 0
}

func (u valueUndefined) String() string {
	return "undefined"
}

func (u valueUndefined) ToFloat() float64 {
	return math.NaN()
}

func (u valueUndefined) ToBoolean() bool {
	return false
}

func (u valueUndefined) ToObject(r *Runtime) *Object {
	r.typeErrorResult(true, "Cannot convert undefined or null to object")
	return nil
}

func (u valueUndefined) ToNumber() Value {
	return _NaN
}

func (u valueUndefined) SameAs(other Value) bool {
	_, ok := other.(valueUndefined)
	return ok
}

func (u valueUndefined) StrictEquals(other Value) bool {
	return u.SameAs(other)
}

func (u valueUndefined) Export() interface{} {
	return nil
}

func (u valueUndefined) ExportType() reflect.Type {
	return reflectTypeNil
}

func (p *valueProperty) ToInteger() int64 {
	return 0
}

func (p *valueProperty) String() string {
	return ""
}

func (p *valueProperty) ToFloat() float64 {
	return math.NaN()
}

func (p *valueProperty) ToBoolean() bool {
	return false
}

func (p *valueProperty) ToObject(*Runtime) *Object {
	return nil
}

func (p *valueProperty) ToNumber() Value {
	return nil
}

func (p *valueProperty) isWritable() bool {
	return p.writable || p.setterFunc != nil
}

func (p *valueProperty) get(this Value) Value {
	if p.custom != nil {
		return p.custom.get(p.custom.holder)
	}
	if p.getterFunc == nil {
		if p.value != nil {
			return p.value
		}
		return _undefined
	}
	call, _ := p.getterFunc.self.assertCallable()
	return call(FunctionCall{
		This: this,
	})
}

func (p *valueProperty) set(this, v Value) {
	if p.custom != nil {
		if p.custom.put != nil {
			p.custom.put(p.custom.holder, v)
		}
		return
	}
	if p.setterFunc == nil {
		p.value = v
		return
	}
	call, _ := p.setterFunc.self.assertCallable()
	call(FunctionCall{
		This:      this,
		Arguments: []Value{v},
	})
}

func (p *valueProperty) SameAs(other Value) bool {
	if otherProp, ok := other.(*valueProperty); ok {
		return p == otherProp
	}
	return false
}

func (p *valueProperty) StrictEquals(Value) bool {
	return false
}

func (p *valueProperty) Export() interface{} {
	panic("Cannot export valueProperty")
}

func (p *valueProperty) ExportType() reflect.Type {
	panic("Cannot export valueProperty")
}

func (o *Object) ToInteger() int64 {
	return o.self.toPrimitiveNumber().ToNumber().ToInteger()
}

func (o *Object) String() string {
	return o.self.toPrimitiveString().String()
}

func (o *Object) ToFloat() float64 {
	return o.self.toPrimitiveNumber().ToFloat()
}

func (o *Object) ToBoolean() bool {
	return true
}

func (o *Object) ToObject(*Runtime) *Object {
	return o
}

func (o *Object) ToNumber() Value {
	return o.self.toPrimitiveNumber().ToNumber()
}

func (o *Object) SameAs(other Value) bool {
	if other, ok := other.(*Object); ok {
		return o == other
	}
	return false
}

func (o *Object) StrictEquals(other Value) bool {
	return o.SameAs(other)
}

func (o *Object) Export() interface{} {
	return o.self.export()
}

func (o *Object) ExportType() reflect.Type {
	return o.self.exportType()
}

// SameValue reports whether a and b are the same value: +0 and -0 differ,
// NaN equals NaN.
func SameValue(a, b Value) bool {
	return a.SameAs(b)
}
