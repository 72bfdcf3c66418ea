// Package field describes database columns of a mapped model.
package field

import (
	"fmt"
	"sort"
)

// Kind is the column type of a field descriptor.
type Kind int

const (
	KindString Kind = iota + 1
	KindInt
	KindFloat
	KindDouble
	KindList
	KindBinary
	KindTime
	KindDateTime
	KindBoolean
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindDouble:   "double",
	KindList:     "list",
	KindBinary:   "binary",
	KindTime:     "time",
	KindDateTime: "datetime",
	KindBoolean:  "boolean",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field is a column descriptor. The set of implementations is closed.
type Field interface {
	// Kind returns the column type.
	Kind() Kind
	// DefaultValue returns the value used when a model leaves the field unset.
	DefaultValue() any
	// IsMandatory reports whether the column must carry a value.
	IsMandatory() bool

	isField()
}

// Base holds the attributes common to every descriptor.
type Base struct {
	Default   any
	Mandatory bool
}

func (b Base) DefaultValue() any { return b.Default }
func (b Base) IsMandatory() bool { return b.Mandatory }
func (Base) isField()            {}

// String is a text column.
type String struct {
	Base
	MinLength int
	MaxLength int
	Choices   []string
}

func (String) Kind() Kind { return KindString }

// Int is an integer column. Nil bounds are open.
type Int struct {
	Base
	Min *int64
	Max *int64
}

func (Int) Kind() Kind { return KindInt }

// Float is a single precision column.
type Float struct {
	Base
	Min       *float64
	Max       *float64
	Precision int
}

func (Float) Kind() Kind { return KindFloat }

// Double is a double precision column.
type Double struct {
	Base
	Min       *float64
	Max       *float64
	Precision int
}

func (Double) Kind() Kind { return KindDouble }

// List is a repeated column of Element values.
type List struct {
	Base
	Element  Kind
	MaxItems int
}

func (List) Kind() Kind { return KindList }

// Binary is a byte column. Length 0 means unbounded.
type Binary struct {
	Base
	Length int
}

func (Binary) Kind() Kind { return KindBinary }

// Time is a time-of-day column.
type Time struct {
	Base
	Layout string
}

func (Time) Kind() Kind { return KindTime }

// DateTime is a timestamp column.
type DateTime struct {
	Base
	Layout string
}

func (DateTime) Kind() Kind { return KindDateTime }

// Boolean is a true/false column.
type Boolean struct {
	Base
}

func (Boolean) Kind() Kind { return KindBoolean }

// Fields maps field names to their descriptors.
type Fields map[string]Field

// Names returns the field names in sorted order.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the mapping.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for name, fd := range f {
		out[name] = fd
	}
	return out
}

// Int64 returns a pointer to v, for Int bounds.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to v, for Float and Double bounds.
func Float64(v float64) *float64 { return &v }

var (
	_ Field = String{}
	_ Field = Int{}
	_ Field = Float{}
	_ Field = Double{}
	_ Field = List{}
	_ Field = Binary{}
	_ Field = Time{}
	_ Field = DateTime{}
	_ Field = Boolean{}
)
