// Package mapper binds model types to a database driver and a field mapping.
package mapper

import (
	"context"
	"reflect"

	"github.com/satishbabariya/datamapper/database"
	"github.com/satishbabariya/datamapper/field"
	"github.com/satishbabariya/datamapper/model"
)

// Mapper pairs the driver instance of one model type with its field mapping.
// A Mapper is immutable.
type Mapper struct {
	database database.Database
	model    reflect.Type
	fields   field.Fields
}

func newMapper(db database.Database, modelType reflect.Type, fields field.Fields) *Mapper {
	return &Mapper{database: db, model: modelType, fields: fields.Clone()}
}

// Database returns the driver instance owned by the mapper.
func (m *Mapper) Database() database.Database {
	return m.database
}

// Model returns the mapped model type.
func (m *Mapper) Model() reflect.Type {
	return m.model
}

// Fields returns a copy of the field mapping.
func (m *Mapper) Fields() field.Fields {
	return m.fields.Clone()
}

// CreateTable creates the model's table.
func (m *Mapper) CreateTable(ctx context.Context) error {
	return m.database.CreateTable(ctx, m.model, m.fields.Clone())
}

// ExistsTable reports whether the model's table exists.
func (m *Mapper) ExistsTable(ctx context.Context) (bool, error) {
	return m.database.ExistsTable(ctx, m.model)
}

// Save writes instance to the database.
func (m *Mapper) Save(ctx context.Context, instance model.Model) error {
	return m.database.Save(ctx, instance)
}
