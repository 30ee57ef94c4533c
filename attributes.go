package hostobj

import (
	"fmt"
	"strings"
)

// PropertyAttributes are the per-entry flags of a static table row.
type PropertyAttributes uint8

const (
	ReadOnly PropertyAttributes = 1 << iota
	DontEnum
	DontDelete
	Accessor
	Function
)

var attributeNames = [...]struct {
	attr PropertyAttributes
	name string
}{
	{ReadOnly, "ReadOnly"},
	{DontEnum, "DontEnum"},
	{DontDelete, "DontDelete"},
	{Accessor, "Accessor"},
	{Function, "Function"},
}

func (a PropertyAttributes) Has(f PropertyAttributes) bool {
	return a&f == f
}

func (a PropertyAttributes) writable() bool {
	return a&ReadOnly == 0
}

func (a PropertyAttributes) enumerable() bool {
	return a&DontEnum == 0
}

func (a PropertyAttributes) configurable() bool {
	return a&DontDelete == 0
}

func (a PropertyAttributes) String() string {
	if a == 0 {
		return "None"
	}
	var b strings.Builder
	for _, n := range attributeNames {
		if a&n.attr != 0 {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(n.name)
		}
	}
	return b.String()
}

// ParsePropertyAttributes parses a '|' separated list of attribute names,
// e.g. "DontEnum|Function". "None" and "0" denote the empty set.
func ParsePropertyAttributes(s string) (PropertyAttributes, error) {
	var res PropertyAttributes
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" || part == "None" || part == "0" {
			continue
		}
		found := false
		for _, n := range attributeNames {
			if n.name == part {
				res |= n.attr
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown property attribute %q", part)
		}
	}
	return res, nil
}

// Intrinsic tags a function entry for optimizing call sites. It is carried
// through the tables unchanged.
type Intrinsic uint16

const NoIntrinsic Intrinsic = 0
