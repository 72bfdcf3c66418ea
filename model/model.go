// Package model defines the Model capability that mapped types declare.
package model

import "reflect"

// Model is a marker satisfied by every type embedding Base.
type Model interface {
	isModel()
}

// Base is embedded by model structs.
//
//	type Team struct {
//		model.Base
//		Name  string
//		Token string
//	}
type Base struct{}

func (Base) isModel() {}

var modelType = reflect.TypeOf((*Model)(nil)).Elem()

// TypeOf returns the reflect.Type of T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Implements reports whether t, or a pointer to t, satisfies Model.
func Implements(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Implements(modelType) {
		return true
	}
	return t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(modelType)
}

// Name returns the bare type name used for tables, e.g. "Team" for *pkg.Team.
func Name(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}
