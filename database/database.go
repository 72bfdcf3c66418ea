package database

import (
	"context"
	"errors"
	"reflect"

	"github.com/satishbabariya/datamapper/field"
	"github.com/satishbabariya/datamapper/model"
)

// ErrNotImplemented is returned by persistence operations that no driver implements yet.
var ErrNotImplemented = errors.New("datamapper: operation not implemented")

// Database is the capability every driver instance provides.
type Database interface {
	// System returns the database system of the driver.
	System() System

	// Profile returns the profile the instance was created from.
	Profile() *Profile

	// Save writes the given model instance to the database.
	Save(ctx context.Context, instance model.Model) error

	// ExistsTable reports whether a table for the model type exists.
	ExistsTable(ctx context.Context, model reflect.Type) (bool, error)

	// CreateTable creates a table for the model type with the given columns.
	CreateTable(ctx context.Context, model reflect.Type, fields field.Fields) error
}

// Connector is implemented by drivers that can describe how they would connect.
// No connection is opened.
type Connector interface {
	// DriverName returns the name the driver library registers, e.g. "mysql".
	DriverName() string

	// ConnectionString returns the DSN or URI derived from the profile.
	ConnectionString() (string, error)
}

// Driver describes one database driver implementation.
type Driver struct {
	// System is the database system the driver serves.
	System System

	// Name is a human-readable driver name.
	Name string

	// New constructs a driver instance for the given profile.
	New func(profile *Profile) Database
}

// Unimplemented is embedded by drivers. It stores the profile and stubs out persistence.
type Unimplemented struct {
	profile *Profile
}

// NewUnimplemented returns an Unimplemented holding a copy of profile.
func NewUnimplemented(profile *Profile) Unimplemented {
	return Unimplemented{profile: profile.Clone()}
}

// Profile returns a copy of the stored profile.
func (u Unimplemented) Profile() *Profile {
	return u.profile.Clone()
}

// Save returns ErrNotImplemented.
func (Unimplemented) Save(context.Context, model.Model) error {
	return ErrNotImplemented
}

// ExistsTable returns ErrNotImplemented.
func (Unimplemented) ExistsTable(context.Context, reflect.Type) (bool, error) {
	return false, ErrNotImplemented
}

// CreateTable returns ErrNotImplemented.
func (Unimplemented) CreateTable(context.Context, reflect.Type, field.Fields) error {
	return ErrNotImplemented
}

// ProfileOrEmpty returns p, or a zero profile when p is nil.
func ProfileOrEmpty(p *Profile) Profile {
	if p == nil {
		return Profile{}
	}
	return *p
}
