package lut

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/hostobj/hostobj"
)

// SchemaConstraint is the range of schema versions LoadYAML understands.
const SchemaConstraint = "^1.0"

var schemaConstraint = mustConstraint(SchemaConstraint)

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

type yamlDocument struct {
	Schema  string      `yaml:"schema"`
	Classes []yamlClass `yaml:"classes"`
}

type yamlClass struct {
	Name       string         `yaml:"name"`
	Parent     string         `yaml:"parent"`
	Properties []yamlProperty `yaml:"properties"`
}

type yamlProperty struct {
	Key        string `yaml:"key"`
	Attributes string `yaml:"attributes"`
	Intrinsic  string `yaml:"intrinsic"`

	Function string `yaml:"function"`
	Length   int    `yaml:"length"`
	Required int    `yaml:"required"`

	Getter string `yaml:"getter"`
	Setter string `yaml:"setter"`

	Get      string `yaml:"get"`
	Put      string `yaml:"put"`
	Constant string `yaml:"constant"`
}

func (p *yamlProperty) row() (rowDef, error) {
	row := rowDef{
		key:       p.Key,
		intrinsic: p.Intrinsic,
	}
	var err error
	if row.attrs, err = hostobj.ParsePropertyAttributes(p.Attributes); err != nil {
		return row, err
	}
	kinds := 0
	for _, s := range []string{p.Function, p.Getter + p.Setter, p.Get, p.Constant} {
		if s != "" {
			kinds++
		}
	}
	if kinds != 1 {
		return row, errors.New("exactly one of function, getter/setter, get or constant must be set")
	}
	switch {
	case p.Function != "":
		row.attrs |= hostobj.Function
		row.symbol = p.Function
		row.arity = p.Length
		row.required = p.Required
	case p.Getter != "" || p.Setter != "":
		row.attrs |= hostobj.Accessor
		row.symbol = orNoSymbol(p.Getter)
		row.extra = orNoSymbol(p.Setter)
	case p.Get != "":
		row.symbol = p.Get
		row.extra = p.Put
	default:
		row.symbol = p.Constant
	}
	if row.intrinsic != "" && p.Function == "" {
		return row, errors.New("only functions can have an intrinsic")
	}
	if p.Put != "" && p.Get == "" {
		return row, errors.New("put requires get")
	}
	return row, nil
}

func orNoSymbol(s string) string {
	if s == "" {
		return noSymbol
	}
	return s
}

// LoadYAML reads class definitions from r. The document must declare a
// schema version matching SchemaConstraint. Unknown fields are rejected.
func LoadYAML(r io.Reader, b *Bindings) ([]Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc yamlDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("lut: empty document")
		}
		return nil, fmt.Errorf("lut: %w", err)
	}
	if err := checkSchema(doc.Schema); err != nil {
		return nil, err
	}
	tables := make([]Table, 0, len(doc.Classes))
	for _, c := range doc.Classes {
		if c.Name == "" {
			return nil, errors.New("lut: class without a name")
		}
		t := Table{
			Name:   c.Name,
			Parent: c.Parent,
		}
		for i := range c.Properties {
			p := &c.Properties[i]
			if strings.TrimSpace(p.Key) == "" {
				return nil, fmt.Errorf("lut: class %s, property %d: empty key", c.Name, i)
			}
			row, err := p.row()
			if err == nil {
				var v hostobj.HashTableValue
				if v, err = b.resolve(row); err == nil {
					t.Values = append(t.Values, v)
					continue
				}
			}
			return nil, fmt.Errorf("lut: class %s, property %s: %w", c.Name, p.Key, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func checkSchema(s string) error {
	if s == "" {
		return errors.New("lut: missing schema version")
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return fmt.Errorf("lut: invalid schema version %q: %w", s, err)
	}
	if !schemaConstraint.Check(v) {
		return fmt.Errorf("lut: unsupported schema version %s, want %s", v, SchemaConstraint)
	}
	return nil
}
