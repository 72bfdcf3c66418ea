package mapper

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/satishbabariya/datamapper/errs"
	"github.com/satishbabariya/datamapper/field"
	"github.com/satishbabariya/datamapper/internal/debug"
	"github.com/satishbabariya/datamapper/internal/ordered"
	"github.com/satishbabariya/datamapper/model"
	"github.com/satishbabariya/datamapper/registry"
)

// Mapping describes how a model type is mapped: its fields and the profile its
// driver is resolved from.
type Mapping struct {
	Fields  field.Fields
	Resolve []registry.ResolveOption
}

// Describe captures fields and profile selection for a later Register.
func Describe(fields field.Fields, opts ...registry.ResolveOption) Mapping {
	return Mapping{Fields: fields, Resolve: opts}
}

// Binder registers a mapper for the given model type and returns the type unchanged.
type Binder func(model reflect.Type) (reflect.Type, error)

// Registry holds one Mapper per model type. A Registry is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	mappers     *ordered.Map[reflect.Type, *Mapper]
	initialized bool

	databases *registry.Registry
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry creates an empty mapper registry resolving drivers from databases.
func NewRegistry(databases *registry.Registry, opts ...Option) *Registry {
	r := &Registry{
		mappers:   ordered.New[reflect.Type, *Mapper](),
		databases: databases,
		logger:    debug.Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clear removes every mapper and marks the registry uninitialized.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappers.Clear()
	r.initialized = false
}

// Initialize clears the registry and marks it initialized.
func (r *Registry) Initialize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappers.Clear()
	r.initialized = true
}

// IsInitialized reports whether Initialize was called since the last Clear.
func (r *Registry) IsInitialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// Register validates the model type and the mapping, resolves a driver through the
// database registry and stores a new Mapper for the type, replacing any previous
// one. Database registry errors are returned unchanged. The model type is returned
// as given.
func (r *Registry) Register(modelType reflect.Type, mapping Mapping) (reflect.Type, error) {
	if _, err := ValidateModel(modelType, errs.KindRegisterMapper); err != nil {
		return modelType, err
	}
	fields, err := ValidateFields(mapping.Fields, errs.KindRegisterMapper)
	if err != nil {
		return modelType, err
	}

	db, err := r.databases.GetDatabase(mapping.Resolve...)
	if err != nil {
		return modelType, err
	}

	key := keyOf(modelType)
	m := newMapper(db, key, fields)

	r.mu.Lock()
	r.mappers.Set(key, m)
	r.mu.Unlock()

	r.logger.Debug("registered mapper",
		"model", key.String(), "system", db.System(), "fields", len(fields))
	return modelType, nil
}

// Binder returns the deferred form of Register for mapping.
func (r *Registry) Binder(mapping Mapping) Binder {
	return func(modelType reflect.Type) (reflect.Type, error) {
		return r.Register(modelType, mapping)
	}
}

// BindType registers a mapper for T.
func BindType[T model.Model](r *Registry, mapping Mapping) (reflect.Type, error) {
	return r.Register(model.TypeOf[T](), mapping)
}

// GetMapper returns the mapper registered for exactly the given model type.
func (r *Registry) GetMapper(modelType reflect.Type) (*Mapper, error) {
	if _, err := ValidateModel(modelType, errs.KindGetMapper); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mappers.Get(keyOf(modelType))
	if !ok {
		return nil, errs.KindGetMapper.New(4, "There is no registered mapper for the model '%s'.", modelType)
	}
	return m, nil
}

// Models returns the mapped model types in registration order.
func (r *Registry) Models() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mappers.Keys()
}

// Len returns the number of registered mappers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mappers.Len()
}

// keyOf maps *T and T to the same key.
func keyOf(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
