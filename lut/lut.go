// Package lut loads static property tables from their textual sources.
//
// Two formats are supported. ParseSource reads the "@begin name ... @end"
// blocks found in native class sources, one row per property:
//
//	@begin shapeTable
//	  area     shapeArea       DontEnum|Function 0
//	  width    shapeWidth      DontDelete         shapeSetWidth
//	  kind     shapeKind       ReadOnly
//	  bounds   shapeBounds     Accessor           shapeSetBounds
//	@end
//
// LoadYAML reads class definitions from a versioned YAML document. Both
// resolve the symbols they mention through Bindings.
package lut

import (
	"fmt"

	"github.com/hostobj/hostobj"
)

// Bindings maps the symbol names used by table sources to implementations.
type Bindings struct {
	// Functions backs function rows and both halves of accessor rows.
	Functions map[string]hostobj.NativeFunc
	// Getters and Putters back native value rows.
	Getters map[string]hostobj.GetFunction
	Putters map[string]hostobj.PutFunction
	// Constants back value rows whose symbol has no getter.
	Constants map[string]hostobj.Value
	// Intrinsics names the optional intrinsic column.
	Intrinsics map[string]hostobj.Intrinsic

	// AllowUnbound binds unknown symbols to placeholders: functions that
	// fail with a type error and values that read as undefined.
	AllowUnbound bool
}

func (b *Bindings) function(name string) (hostobj.NativeFunc, bool) {
	if f, ok := b.Functions[name]; ok {
		return f, true
	}
	if b.AllowUnbound {
		return func(call hostobj.FunctionCall) hostobj.Value {
			panic(call.Runtime().NewTypeError("%s is not bound", name))
		}, true
	}
	return nil, false
}

// Table is one parsed table, ready for hostobj.NewHashTable.
type Table struct {
	Name   string
	Parent string
	Values []hostobj.HashTableValue
}

// noSymbol stands for an absent getter or setter.
const noSymbol = "-"

type rowDef struct {
	key       string
	symbol    string
	attrs     hostobj.PropertyAttributes
	arity     int
	required  int
	extra     string
	intrinsic string
}

func (b *Bindings) resolve(row rowDef) (hostobj.HashTableValue, error) {
	v := hostobj.HashTableValue{
		Key:        row.key,
		Attributes: row.attrs,
	}
	if row.intrinsic != "" {
		in, ok := b.Intrinsics[row.intrinsic]
		if !ok && !b.AllowUnbound {
			return v, fmt.Errorf("unknown intrinsic %q", row.intrinsic)
		}
		v.Intrinsic = in
	}
	switch {
	case row.attrs.Has(hostobj.Function):
		f, ok := b.function(row.symbol)
		if !ok {
			return v, fmt.Errorf("unbound function %q", row.symbol)
		}
		v.Payload = hostobj.NativeFunction{
			Call:         f,
			Length:       row.arity,
			RequiredArgs: row.required,
		}
	case row.attrs.Has(hostobj.Accessor):
		var p hostobj.NativeAccessor
		if row.symbol != noSymbol {
			f, ok := b.function(row.symbol)
			if !ok {
				return v, fmt.Errorf("unbound getter %q", row.symbol)
			}
			p.Getter = f
		}
		if row.extra != "" && row.extra != noSymbol {
			f, ok := b.function(row.extra)
			if !ok {
				return v, fmt.Errorf("unbound setter %q", row.extra)
			}
			p.Setter = f
		}
		v.Payload = p
	default:
		get, isGetter := b.Getters[row.symbol]
		c, isConstant := b.Constants[row.symbol]
		if !isGetter && !isConstant && b.AllowUnbound {
			get, isGetter = undefinedGetter, true
		}
		if isGetter {
			p := hostobj.NativeValue{Get: get}
			if row.extra != "" && row.extra != noSymbol {
				put, ok := b.Putters[row.extra]
				if !ok && b.AllowUnbound {
					put, ok = discardPutter, true
				}
				if !ok {
					return v, fmt.Errorf("unbound put function %q", row.extra)
				}
				p.Put = put
			}
			v.Payload = p
		} else if isConstant {
			if row.extra != "" {
				return v, fmt.Errorf("constant %q cannot have a put function", row.symbol)
			}
			v.Payload = hostobj.ConstantValue{Value: c}
		} else {
			return v, fmt.Errorf("unbound value %q", row.symbol)
		}
	}
	return v, nil
}

func undefinedGetter(*hostobj.Object) hostobj.Value {
	return hostobj.Undefined()
}

func discardPutter(*hostobj.Object, hostobj.Value) {}

// Classes creates a class per table. A table's Parent must name a table
// that precedes it.
func Classes(tables []Table) ([]*hostobj.ClassInfo, error) {
	res := make([]*hostobj.ClassInfo, 0, len(tables))
	byName := make(map[string]*hostobj.ClassInfo, len(tables))
	for _, t := range tables {
		var parent *hostobj.ClassInfo
		if t.Parent != "" {
			parent = byName[t.Parent]
			if parent == nil {
				return nil, fmt.Errorf("lut: class %s: unknown parent %s", t.Name, t.Parent)
			}
		}
		c, err := hostobj.NewClass(t.Name, parent, t.Values)
		if err != nil {
			return nil, err
		}
		byName[t.Name] = c
		res = append(res, c)
	}
	return res, nil
}
