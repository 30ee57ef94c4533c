package lut

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/hostobj/hostobj"
)

var (
	blockRe = regexp2.MustCompile(`^[ \t]*@begin[ \t]+(?<name>\w+)[ \t]*$(?<body>.*?)^[ \t]*@end[ \t]*$`,
		regexp2.Multiline|regexp2.Singleline)
	rowRe = regexp2.MustCompile(`^(?<key>\S+)\s+(?<symbol>\S+)\s+(?<attrs>[\w|]+)(?:\s+(?<extra>\S+))?(?:\s+(?<intrinsic>\S+))?$`,
		regexp2.None)
)

// SyntaxError reports a malformed line of a table source.
type SyntaxError struct {
	Table string
	Line  int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("lut: table %s, line %d: %s", e.Table, e.Line, e.Msg)
}

// lineOf converts a rune offset, as reported by regexp2, to a line number.
func lineOf(src []rune, offset int) int {
	return strings.Count(string(src[:offset]), "\n") + 1
}

// ParseSource extracts every @begin/@end block of src. Blank lines and
// lines starting with # or // are ignored. For function rows the fourth
// column is the arity, optionally written as "length/required"; for value
// and accessor rows it names the put function or setter.
func ParseSource(src string, b *Bindings) ([]Table, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	runes := []rune(src)
	var tables []Table
	m, err := blockRe.FindStringMatch(src)
	for ; m != nil && err == nil; m, err = blockRe.FindNextMatch(m) {
		name := m.GroupByName("name").String()
		body := m.GroupByName("body")
		t := Table{Name: name}
		firstLine := lineOf(runes, body.Index)
		for i, line := range strings.Split(body.String(), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
				continue
			}
			lineNo := firstLine + i
			row, perr := parseRow(line)
			if perr != nil {
				return nil, &SyntaxError{Table: name, Line: lineNo, Msg: perr.Error()}
			}
			v, rerr := b.resolve(row)
			if rerr != nil {
				return nil, &SyntaxError{Table: name, Line: lineNo, Msg: rerr.Error()}
			}
			t.Values = append(t.Values, v)
		}
		tables = append(tables, t)
	}
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func parseRow(line string) (row rowDef, err error) {
	m, err := rowRe.FindStringMatch(line)
	if err != nil {
		return row, err
	}
	if m == nil {
		return row, fmt.Errorf("malformed row %q", line)
	}
	row.key = m.GroupByName("key").String()
	row.symbol = m.GroupByName("symbol").String()
	row.attrs, err = hostobj.ParsePropertyAttributes(m.GroupByName("attrs").String())
	if err != nil {
		return row, err
	}
	extra := m.GroupByName("extra").String()
	row.intrinsic = m.GroupByName("intrinsic").String()
	if row.attrs.Has(hostobj.Function) {
		if extra == "" {
			return row, fmt.Errorf("function %q has no arity", row.key)
		}
		row.arity, row.required, err = parseArity(extra)
		return row, err
	}
	if row.intrinsic != "" {
		return row, fmt.Errorf("only functions can have an intrinsic, %q is not one", row.key)
	}
	row.extra = extra
	return row, nil
}

func parseArity(s string) (length, required int, err error) {
	l, r, hasRequired := strings.Cut(s, "/")
	if length, err = strconv.Atoi(l); err != nil {
		return 0, 0, fmt.Errorf("invalid arity %q", s)
	}
	if hasRequired {
		if required, err = strconv.Atoi(r); err != nil {
			return 0, 0, fmt.Errorf("invalid required argument count %q", s)
		}
	}
	return length, required, nil
}
