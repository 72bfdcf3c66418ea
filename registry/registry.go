// Package registry manages database drivers and database profiles and resolves
// driver instances for a profile.
package registry

import (
	"log/slog"
	"sync"

	"github.com/spf13/afero"

	"github.com/satishbabariya/datamapper/database"
	"github.com/satishbabariya/datamapper/database/mongodb"
	"github.com/satishbabariya/datamapper/database/mysql"
	"github.com/satishbabariya/datamapper/database/postgres"
	"github.com/satishbabariya/datamapper/database/sqlite"
	"github.com/satishbabariya/datamapper/errs"
	"github.com/satishbabariya/datamapper/internal/debug"
	"github.com/satishbabariya/datamapper/internal/ordered"
)

// Builtins returns the drivers registered by Initialize.
func Builtins() []database.Driver {
	return []database.Driver{mysql.Driver, sqlite.Driver, postgres.Driver, mongodb.Driver}
}

// Registry holds the registered drivers, keyed by lowercased system, and the
// registered profiles, keyed by name. Both keep insertion order.
// A Registry is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	drivers     *ordered.Map[string, database.Driver]
	profiles    *ordered.Map[string, *database.Profile]
	initialized bool

	fs       afero.Fs
	logger   *slog.Logger
	builtins []database.Driver
}

// Option configures a Registry.
type Option func(*Registry)

// WithFs sets the filesystem profile sources are read from.
func WithFs(fs afero.Fs) Option {
	return func(r *Registry) { r.fs = fs }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithBuiltins replaces the drivers registered by Initialize.
func WithBuiltins(drivers ...database.Driver) Option {
	return func(r *Registry) { r.builtins = drivers }
}

// New creates an empty, uninitialized registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		drivers:  ordered.New[string, database.Driver](),
		profiles: ordered.New[string, *database.Profile](),
		fs:       afero.NewOsFs(),
		logger:   debug.Logger(),
		builtins: Builtins(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InitOption configures Initialize.
type InitOption func(*initConfig)

type initConfig struct {
	profilesFile string
	hasFile      bool
}

// FromFile makes Initialize read and register the profiles defined in path.
// An empty path is read like any other and fails as missing.
func FromFile(path string) InitOption {
	return func(c *initConfig) {
		c.profilesFile = path
		c.hasFile = true
	}
}

// Clear removes every driver and profile and marks the registry uninitialized.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

func (r *Registry) clearLocked() {
	r.drivers.Clear()
	r.profiles.Clear()
	r.initialized = false
}

// Initialize clears the registry, registers the built-in drivers and, if a profile
// source is given, registers its profiles in file order. Registration stops at the
// first invalid profile and the registry stays uninitialized.
func (r *Registry) Initialize(opts ...InitOption) error {
	var cfg initConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearLocked()
	for i := range r.builtins {
		if err := r.registerDatabaseLocked(&r.builtins[i]); err != nil {
			return err
		}
	}

	if cfg.hasFile {
		profiles, err := ReadProfilesFromFile(r.fs, cfg.profilesFile)
		if err != nil {
			return err
		}
		for _, p := range profiles {
			if err := r.registerProfileLocked(p); err != nil {
				return err
			}
		}
	}

	r.initialized = true
	r.logger.Debug("database registry initialized",
		"drivers", r.drivers.Len(), "profiles", r.profiles.Len(), "source", cfg.profilesFile)
	return nil
}

// IsInitialized reports whether Initialize completed since the last Clear.
func (r *Registry) IsInitialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// RegisterDatabase validates the driver and registers it under its lowercased
// system, replacing any driver registered for the same system.
func (r *Registry) RegisterDatabase(driver *database.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerDatabaseLocked(driver)
}

func (r *Registry) registerDatabaseLocked(driver *database.Driver) error {
	d, err := ValidateDatabase(driver, errs.KindRegisterDatabase)
	if err != nil {
		return err
	}

	key := database.Normalize(string(d.System))
	r.drivers.Set(key, *d)
	r.logger.Debug("registered database", "system", key, "driver", d.Name)
	return nil
}

// RegisterProfile validates the profile and registers a copy under its name.
// Re-registering a name replaces the profile but keeps its original position.
func (r *Registry) RegisterProfile(profile *database.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerProfileLocked(profile)
}

func (r *Registry) registerProfileLocked(profile *database.Profile) error {
	p, err := r.validateProfileLocked(profile, errs.KindRegisterProfile)
	if err != nil {
		return err
	}

	r.profiles.Set(p.Name, p.Clone())
	r.logger.Debug("registered profile", "profile", p)
	return nil
}

// Drivers returns the registered drivers in registration order.
func (r *Registry) Drivers() []database.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.drivers.Values()
}

// HasDriver reports whether a driver is registered for the raw, case-insensitive system.
func (r *Registry) HasDriver(system string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.drivers.Has(database.Normalize(system))
}

// Profiles returns copies of the registered profiles in registration order.
func (r *Registry) Profiles() []*database.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*database.Profile, 0, r.profiles.Len())
	for _, p := range r.profiles.Values() {
		out = append(out, p.Clone())
	}
	return out
}

// ReadProfiles reads a profile source from the registry filesystem without registering it.
func (r *Registry) ReadProfiles(path string) ([]*database.Profile, error) {
	return ReadProfilesFromFile(r.fs, path)
}

// Fs returns the filesystem profile sources are read from.
func (r *Registry) Fs() afero.Fs {
	return r.fs
}
