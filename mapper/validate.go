package mapper

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/satishbabariya/datamapper/errs"
	"github.com/satishbabariya/datamapper/field"
	"github.com/satishbabariya/datamapper/model"
)

var fieldType = reflect.TypeOf((*field.Field)(nil)).Elem()

// ValidateModel checks that t is a concrete struct type implementing model.Model.
// A pointer to a struct is accepted. Failures are reported as kind with codes 1 to 3.
func ValidateModel(t reflect.Type, kind errs.Kind) (reflect.Type, error) {
	if t == nil {
		return nil, kind.New(1, "No model given.")
	}

	elem := t
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil, kind.New(2, "The given model '%s' is not a concrete type.", t)
	}
	if !model.Implements(elem) {
		return nil, kind.New(3, "The given model '%s' does not implement Model.", t)
	}
	return t, nil
}

// ValidateFields checks a field mapping. fields may be any map; keys must be
// non-blank strings and values field descriptors. Failures are reported as kind:
// code 3 nil, 4 not a map, 5 empty, 6 key not a string, 7 blank key, 8 value not a
// field descriptor. Each rule is checked over every entry before the next rule.
func ValidateFields(fields any, kind errs.Kind) (field.Fields, error) {
	if fields == nil {
		return nil, kind.New(3, "No database fields given.")
	}
	if typed, ok := fields.(field.Fields); ok {
		return validateTypedFields(typed, kind)
	}

	v := reflect.ValueOf(fields)
	if v.Kind() != reflect.Map {
		return nil, kind.New(4, "The database fields must be given as a map.")
	}
	if v.IsNil() {
		return nil, kind.New(3, "No database fields given.")
	}
	if v.Len() == 0 {
		return nil, kind.New(5, "No database fields given.")
	}

	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	for _, key := range keys {
		if _, ok := key.Interface().(string); !ok {
			return nil, kind.New(6, "The database field name '%v' must be a string.", key.Interface())
		}
	}
	for _, key := range keys {
		if name := key.Interface().(string); strings.TrimSpace(name) == "" {
			return nil, kind.New(7, "The database field name '%s' must not be empty.", name)
		}
	}

	out := make(field.Fields, len(keys))
	for _, key := range keys {
		name := key.Interface().(string)
		fd, ok := asField(v.MapIndex(key))
		if !ok {
			return nil, kind.New(8, "The field '%s' is not a database field.", name)
		}
		out[name] = fd
	}
	return out, nil
}

func validateTypedFields(fields field.Fields, kind errs.Kind) (field.Fields, error) {
	if fields == nil {
		return nil, kind.New(3, "No database fields given.")
	}
	if len(fields) == 0 {
		return nil, kind.New(5, "No database fields given.")
	}
	names := fields.Names()
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, kind.New(7, "The database field name '%s' must not be empty.", name)
		}
	}
	for _, name := range names {
		if isNil(fields[name]) {
			return nil, kind.New(8, "The field '%s' is not a database field.", name)
		}
	}
	return fields, nil
}

func asField(v reflect.Value) (field.Field, bool) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if !v.Type().Implements(fieldType) {
		return nil, false
	}
	fd, _ := v.Interface().(field.Field)
	if isNil(fd) {
		return nil, false
	}
	return fd, true
}

func isNil(fd field.Field) bool {
	if fd == nil {
		return true
	}
	v := reflect.ValueOf(fd)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
