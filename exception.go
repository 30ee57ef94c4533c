package hostobj

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures raised by the object model.
type ErrorKind int

const (
	// TypeMismatch: an operand was expected to be an object or a callable.
	TypeMismatch ErrorKind = iota + 1
	// WriteRejected: a write to a read-only, non-configurable or
	// non-extensible target was refused in a context that reports it.
	WriteRejected
	// CyclicStructure: a prototype relink would create a cycle.
	CyclicStructure
	// InsufficientArguments: a native function got fewer arguments than it requires.
	InsufficientArguments
	// Thrown: a value raised by native code with Runtime.Throw.
	Thrown
)

var (
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrWriteRejected         = errors.New("write rejected")
	ErrCyclicStructure       = errors.New("cyclic structure")
	ErrInsufficientArguments = errors.New("insufficient arguments")
	ErrThrown                = errors.New("thrown value")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case TypeMismatch:
		return ErrTypeMismatch
	case WriteRejected:
		return ErrWriteRejected
	case CyclicStructure:
		return ErrCyclicStructure
	case InsufficientArguments:
		return ErrInsufficientArguments
	}
	return ErrThrown
}

// errorName is the name of the script-level error class the kind maps to.
func (k ErrorKind) errorName() string {
	switch k {
	case TypeMismatch, WriteRejected, InsufficientArguments:
		return "TypeError"
	case CyclicStructure:
		return "Error"
	}
	return "Uncaught"
}

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case WriteRejected:
		return "WriteRejected"
	case CyclicStructure:
		return "CyclicStructure"
	case InsufficientArguments:
		return "InsufficientArguments"
	case Thrown:
		return "Thrown"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Exception is a failure raised inside the object model. Native code raises
// it with panic; exported methods return it as an error.
type Exception struct {
	kind ErrorKind
	msg  string
	val  Value
}

func newException(kind ErrorKind, format string, args ...interface{}) *Exception {
	return &Exception{
		kind: kind,
		msg:  fmt.Sprintf(format, args...),
	}
}

func typeMismatchf(format string, args ...interface{}) *Exception {
	return newException(TypeMismatch, format, args...)
}

func (e *Exception) Kind() ErrorKind {
	return e.kind
}

func (e *Exception) Message() string {
	return e.msg
}

// Value returns the thrown value for Thrown exceptions, nil otherwise.
func (e *Exception) Value() Value {
	return e.val
}

func (e *Exception) Error() string {
	if e.kind == Thrown && e.val != nil {
		return e.val.String()
	}
	return e.kind.errorName() + ": " + e.msg
}

func (e *Exception) Unwrap() error {
	return e.kind.sentinel()
}

func (r *Runtime) NewTypeError(format string, args ...interface{}) *Exception {
	return newException(TypeMismatch, format, args...)
}

// Throw raises v from native code.
func (r *Runtime) Throw(v Value) {
	panic(&Exception{
		kind: Thrown,
		msg:  v.String(),
		val:  v,
	})
}

func (r *Runtime) typeErrorResult(throw bool, format string, args ...interface{}) {
	if throw {
		panic(newException(TypeMismatch, format, args...))
	}
}

func (r *Runtime) writeRejected(throw bool, format string, args ...interface{}) {
	if throw {
		panic(newException(WriteRejected, format, args...))
	}
}

const strictModeReadonlyPropertyWriteError = "Attempted to assign to readonly property."

// try runs f and converts a raised *Exception into an error.
func (r *Runtime) try(f func()) (err error) {
	defer func() {
		if x := recover(); x != nil {
			if ex, ok := x.(*Exception); ok {
				err = ex
				return
			}
			panic(x)
		}
	}()
	f()
	return nil
}
