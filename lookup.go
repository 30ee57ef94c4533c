package hostobj

import (
	"fmt"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/hostobj/hostobj/unistring"
)

// GetFunction reads a native data property. this is the object holding the entry.
type GetFunction func(this *Object) Value

// PutFunction writes a native data property. this is the object holding the entry.
type PutFunction func(this *Object, value Value)

// EntryPayload is the payload of a static table row. It is one of
// NativeFunction, NativeAccessor, NativeValue or ConstantValue.
type EntryPayload interface {
	kindAttributes() PropertyAttributes
}

// NativeFunction is a method. It is materialized as a function object on
// first access and cached on the object.
type NativeFunction struct {
	Call   NativeFunc
	Length int

	// RequiredArgs, if positive, is the minimum number of arguments the
	// function accepts. Calls with fewer fail with InsufficientArguments.
	RequiredArgs int
}

// NativeAccessor is a getter/setter pair. Either may be nil.
type NativeAccessor struct {
	Getter NativeFunc
	Setter NativeFunc
}

// NativeValue is a data property backed by native get/put functions.
// A nil Put makes the entry read-only.
type NativeValue struct {
	Get GetFunction
	Put PutFunction
}

// ConstantValue is a read-only data property with a fixed value.
type ConstantValue struct {
	Value Value
}

func (NativeFunction) kindAttributes() PropertyAttributes { return Function }
func (NativeAccessor) kindAttributes() PropertyAttributes { return Accessor }
func (NativeValue) kindAttributes() PropertyAttributes    { return 0 }
func (ConstantValue) kindAttributes() PropertyAttributes  { return 0 }

// HashTableValue is a row of the compact source array a HashTable is built from.
// A row with an empty Key terminates the array.
type HashTableValue struct {
	Key        string
	Attributes PropertyAttributes
	Payload    EntryPayload
	Intrinsic  Intrinsic
}

// HashEntry is a materialized table entry. Entries are never mutated once
// the table is built.
type HashEntry struct {
	key        *unistring.Atom
	attributes PropertyAttributes
	payload    EntryPayload
	intrinsic  Intrinsic
	next       int32
}

func (e *HashEntry) Key() *unistring.Atom {
	return e.key
}

func (e *HashEntry) Attributes() PropertyAttributes {
	return e.attributes
}

func (e *HashEntry) Payload() EntryPayload {
	return e.payload
}

func (e *HashEntry) Intrinsic() Intrinsic {
	return e.intrinsic
}

func (e *HashEntry) isFunction() bool {
	return e.attributes&Function != 0
}

type builtTable struct {
	entries []HashEntry
	order   []int32 // entry indices in source order
}

// HashTable maps interned keys to static entries. The runtime structure is
// built lazily on first use and is read-only afterwards.
type HashTable struct {
	compactSize         int
	compactHashSizeMask int

	values []HashTableValue

	mu    sync.Mutex
	table atomic.Pointer[builtTable]
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// NewHashTable validates the source rows and returns an unbuilt table.
// The Function and Accessor bits are derived from the payload; explicitly
// set bits must agree with it. Value entries without a put function are
// marked ReadOnly.
func NewHashTable(values []HashTableValue) (*HashTable, error) {
	rows := make([]HashTableValue, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v.Key == "" {
			break
		}
		if _, exists := seen[v.Key]; exists {
			return nil, fmt.Errorf("duplicate static property %q", v.Key)
		}
		seen[v.Key] = struct{}{}
		if v.Payload == nil {
			return nil, fmt.Errorf("static property %q has no payload", v.Key)
		}
		kind := v.Payload.kindAttributes()
		if explicit := v.Attributes & (Function | Accessor); explicit != 0 && explicit != kind {
			return nil, fmt.Errorf("static property %q: attributes %s do not match payload %T", v.Key, v.Attributes, v.Payload)
		}
		v.Attributes |= kind
		switch p := v.Payload.(type) {
		case NativeFunction:
			if p.Call == nil {
				return nil, fmt.Errorf("static function %q has no implementation", v.Key)
			}
			if p.Length < 0 || p.RequiredArgs < 0 {
				return nil, fmt.Errorf("static function %q has a negative arity", v.Key)
			}
		case NativeAccessor:
			if p.Getter == nil && p.Setter == nil {
				return nil, fmt.Errorf("static accessor %q has neither getter nor setter", v.Key)
			}
		case NativeValue:
			if p.Get == nil {
				return nil, fmt.Errorf("static value %q has no get function", v.Key)
			}
			if p.Put == nil {
				v.Attributes |= ReadOnly
			}
		case ConstantValue:
			if p.Value == nil {
				return nil, fmt.Errorf("static constant %q has no value", v.Key)
			}
			v.Attributes |= ReadOnly
		default:
			return nil, fmt.Errorf("static property %q has unsupported payload %T", v.Key, v.Payload)
		}
		rows = append(rows, v)
	}
	buckets := nextPowerOfTwo(len(rows))
	return &HashTable{
		compactSize:         buckets + len(rows),
		compactHashSizeMask: buckets - 1,
		values:              rows,
	}, nil
}

func MustNewHashTable(values []HashTableValue) *HashTable {
	t, err := NewHashTable(values)
	if err != nil {
		panic(err)
	}
	return t
}

// Copy returns a table sharing the source rows but not the built structure.
func (t *HashTable) Copy() *HashTable {
	return &HashTable{
		compactSize:         t.compactSize,
		compactHashSizeMask: t.compactHashSizeMask,
		values:              t.values,
	}
}

func (t *HashTable) Len() int {
	return len(t.values)
}

func (t *HashTable) CompactSize() int {
	return t.compactSize
}

func (t *HashTable) CompactHashSizeMask() int {
	return t.compactHashSizeMask
}

func (t *HashTable) Built() bool {
	return t.table.Load() != nil
}

func (t *HashTable) initializeIfNeeded() *builtTable {
	if b := t.table.Load(); b != nil {
		return b
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if b := t.table.Load(); b != nil {
		return b
	}
	b := t.createTable()
	t.table.Store(b)
	return b
}

func (t *HashTable) createTable() *builtTable {
	entries := make([]HashEntry, t.compactSize)
	for i := range entries {
		entries[i].next = -1
	}
	order := make([]int32, 0, len(t.values))
	linkIndex := int32(t.compactHashSizeMask + 1)
	for _, v := range t.values {
		key := unistring.Intern(unistring.NewFromString(v.Key))
		idx := int32(key.Hash() & uint32(t.compactHashSizeMask))
		if entries[idx].key != nil {
			for entries[idx].next >= 0 {
				idx = entries[idx].next
			}
			entries[idx].next = linkIndex
			idx = linkIndex
			linkIndex++
		}
		entries[idx] = HashEntry{
			key:        key,
			attributes: v.Attributes,
			payload:    v.Payload,
			intrinsic:  v.Intrinsic,
			next:       -1,
		}
		order = append(order, idx)
	}
	return &builtTable{
		entries: entries,
		order:   order,
	}
}

func (t *HashTable) entry(key *unistring.Atom) *HashEntry {
	b := t.initializeIfNeeded()
	if key == nil {
		return nil
	}
	e := &b.entries[key.Hash()&uint32(t.compactHashSizeMask)]
	if e.key == nil {
		return nil
	}
	for {
		if e.key == key {
			return e
		}
		if e.next < 0 {
			return nil
		}
		e = &b.entries[e.next]
	}
}

func (t *HashTable) entryStr(name unistring.String) *HashEntry {
	// keys are interned by the build, so build before looking the name up
	t.initializeIfNeeded()
	return t.entry(unistring.Lookup(name))
}

// Entry finds the entry for name, building the table if needed.
func (t *HashTable) Entry(name string) *HashEntry {
	return t.entryStr(unistring.NewFromString(name))
}

// Entries returns the entries in slot order.
func (t *HashTable) Entries() []*HashEntry {
	b := t.initializeIfNeeded()
	res := make([]*HashEntry, 0, len(t.values))
	for i := range b.entries {
		if b.entries[i].key != nil {
			res = append(res, &b.entries[i])
		}
	}
	return res
}

func (t *HashTable) forEach(f func(e *HashEntry) bool) {
	b := t.initializeIfNeeded()
	for _, idx := range b.order {
		if !f(&b.entries[idx]) {
			return
		}
	}
}

// TableStats describes the shape of a built table.
type TableStats struct {
	Entries     int
	Buckets     int
	UsedBuckets int
	Collisions  int
	MaxChain    int
}

func (t *HashTable) Stats() TableStats {
	b := t.initializeIfNeeded()
	s := TableStats{
		Entries: len(t.values),
		Buckets: t.compactHashSizeMask + 1,
	}
	for i := 0; i < s.Buckets; i++ {
		if b.entries[i].key == nil {
			continue
		}
		s.UsedBuckets++
		chain := 1
		for e := &b.entries[i]; e.next >= 0; e = &b.entries[e.next] {
			chain++
		}
		s.Collisions += chain - 1
		if chain > s.MaxChain {
			s.MaxChain = chain
		}
	}
	return s
}

// ClassInfo describes a host class: its name, its parent and the static
// properties it declares.
type ClassInfo struct {
	Name   string
	Parent *ClassInfo

	table *HashTable
}

// NewClass creates a class. values may be nil for classes without a static table.
func NewClass(name string, parent *ClassInfo, values []HashTableValue) (*ClassInfo, error) {
	c := &ClassInfo{
		Name:   name,
		Parent: parent,
	}
	if len(values) > 0 {
		t, err := NewHashTable(values)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
		c.table = t
	}
	return c, nil
}

func MustNewClass(name string, parent *ClassInfo, values []HashTableValue) *ClassInfo {
	c, err := NewClass(name, parent, values)
	if err != nil {
		panic(err)
	}
	return c
}

// StaticTable returns the class' own table template, or nil.
func (c *ClassInfo) StaticTable() *HashTable {
	return c.table
}

// Intrinsic returns the intrinsic tag of the static function name declared by
// c or one of its parents.
func (c *ClassInfo) Intrinsic(name string) Intrinsic {
	return defaultTableRegistry.Intrinsic(c, name)
}

func (c *ClassInfo) IsSubclassOf(other *ClassInfo) bool {
	for ci := c; ci != nil; ci = ci.Parent {
		if ci == other {
			return true
		}
	}
	return false
}

// TableRegistry hands out one lazily built table per class. Runtimes sharing
// a registry share the built tables.
type TableRegistry struct {
	tables sync.Map // *ClassInfo -> *HashTable
}

var defaultTableRegistry = NewTableRegistry()

func NewTableRegistry() *TableRegistry {
	return &TableRegistry{}
}

// DefaultTableRegistry is the process-wide registry used unless a Runtime is
// created with WithTableRegistry.
func DefaultTableRegistry() *TableRegistry {
	return defaultTableRegistry
}

// Table returns the registry's table for c, or nil if c declares none.
func (tr *TableRegistry) Table(c *ClassInfo) *HashTable {
	if c.table == nil {
		return nil
	}
	if t, ok := tr.tables.Load(c); ok {
		return t.(*HashTable)
	}
	t, _ := tr.tables.LoadOrStore(c, c.table.Copy())
	return t.(*HashTable)
}

func (tr *TableRegistry) entry(c *ClassInfo, name unistring.String) *HashEntry {
	for ci := c; ci != nil; ci = ci.Parent {
		if t := tr.Table(ci); t != nil {
			if e := t.entryStr(name); e != nil {
				return e
			}
		}
	}
	return nil
}

func (tr *TableRegistry) Intrinsic(c *ClassInfo, name string) Intrinsic {
	if e := tr.entry(c, unistring.NewFromString(name)); e != nil {
		return e.intrinsic
	}
	return NoIntrinsic
}
