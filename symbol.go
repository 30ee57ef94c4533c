package hostobj

import "reflect"

// Symbol is a unique property key. Private symbols are internal markers:
// they never appear in key enumeration and are skipped by bulk operations.
type Symbol struct {
	desc    string
	private bool
}

var (
	symToPrimitive = &Symbol{desc: "Symbol.toPrimitive"}
	symToStringTag = &Symbol{desc: "Symbol.toStringTag"}
)

var reflectTypeSymbol = reflect.TypeOf((*Symbol)(nil))

func NewSymbol(description string) *Symbol {
	return &Symbol{
		desc: description,
	}
}

func NewPrivateSymbol(description string) *Symbol {
	return &Symbol{
		desc:    description,
		private: true,
	}
}

// SymToStringTag is the well-known Symbol.toStringTag.
func SymToStringTag() *Symbol {
	return symToStringTag
}

func (s *Symbol) Description() string {
	return s.desc
}

func (s *Symbol) IsPrivate() bool {
	return s.private
}

func (s *Symbol) ToInteger() int64 {
	panic(typeMismatchf("Cannot convert a Symbol value to a number"))
}

func (s *Symbol) String() string {
	return "Symbol(" + s.desc + ")"
}

func (s *Symbol) ToFloat() float64 {
	panic(typeMismatchf("Cannot convert a Symbol value to a number"))
}

func (s *Symbol) ToNumber() Value {
	panic(typeMismatchf("Cannot convert a Symbol value to a number"))
}

func (s *Symbol) ToBoolean() bool {
	return true
}

func (s *Symbol) ToObject(r *Runtime) *Object {
	return r.newPrimitiveObject(s, classSymbol)
}

func (s *Symbol) SameAs(other Value) bool {
	if s1, ok := other.(*Symbol); ok {
		return s == s1
	}
	return false
}

func (s *Symbol) StrictEquals(o Value) bool {
	return s.SameAs(o)
}

func (s *Symbol) Export() interface{} {
	return s.String()
}

func (s *Symbol) ExportType() reflect.Type {
	return reflectTypeSymbol
}

func isPrivateKey(key Value) bool {
	s, ok := key.(*Symbol)
	return ok && s.private
}
