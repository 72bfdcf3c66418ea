package registry

import (
	"github.com/satishbabariya/datamapper/database"
	"github.com/satishbabariya/datamapper/errs"
)

// ResolveOption selects the profile GetDatabase resolves.
type ResolveOption func(*resolveRequest)

type resolveRequest struct {
	name    string
	hasName bool
	profile *database.Profile
}

// WithProfileName resolves the registered profile with the given name. Once given,
// even as an empty string, the name is used exclusively and WithProfile is ignored.
func WithProfileName(name string) ResolveOption {
	return func(req *resolveRequest) {
		req.name = name
		req.hasName = true
	}
}

// WithProfile resolves the given profile when no profile name is given.
// A nil profile is the same as no profile.
func WithProfile(profile *database.Profile) ResolveOption {
	return func(req *resolveRequest) { req.profile = profile }
}

// GetDatabase returns a new driver instance for the selected profile. The profile
// is chosen by name, else the explicit profile, else the last registered profile.
func (r *Registry) GetDatabase(opts ...ResolveOption) (database.Database, error) {
	var req resolveRequest
	for _, opt := range opts {
		opt(&req)
	}

	r.mu.RLock()
	driver, profile, err := r.resolveLocked(req)
	r.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	db := driver.New(profile)
	r.logger.Debug("resolved database", "system", driver.System, "profile", profile)
	return db, nil
}

func (r *Registry) resolveLocked(req resolveRequest) (database.Driver, *database.Profile, error) {
	profile := req.profile
	if req.hasName {
		p, err := r.getProfileLocked(req.name)
		if err != nil {
			return database.Driver{}, nil, err
		}
		profile = p
	}

	if profile == nil {
		p, err := r.lastProfileLocked()
		if err != nil {
			return database.Driver{}, nil, err
		}
		profile = p
	}

	p, err := r.validateProfileLocked(profile, errs.KindGetDatabase)
	if err != nil {
		return database.Driver{}, nil, err
	}

	driver, _ := r.drivers.Get(database.Normalize(p.System))
	return driver, p.Clone(), nil
}

// GetProfile returns a copy of the profile registered under name.
func (r *Registry) GetProfile(name string) (*database.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, err := r.getProfileLocked(name)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (r *Registry) getProfileLocked(name string) (*database.Profile, error) {
	if _, err := r.validateProfileNameLocked(name, errs.KindGetProfile); err != nil {
		return nil, err
	}
	p, _ := r.profiles.Get(name)
	return p, nil
}

// GetFirstRegisteredProfile returns a copy of the oldest registered profile.
func (r *Registry) GetFirstRegisteredProfile() (*database.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles.First()
	if !ok {
		return nil, errNoProfiles()
	}
	return p.Clone(), nil
}

// GetLastRegisteredProfile returns a copy of the newest registered profile.
func (r *Registry) GetLastRegisteredProfile() (*database.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, err := r.lastProfileLocked()
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (r *Registry) lastProfileLocked() (*database.Profile, error) {
	p, ok := r.profiles.Last()
	if !ok {
		return nil, errNoProfiles()
	}
	return p, nil
}

func errNoProfiles() error {
	return errs.KindGetProfile.New(3, "There are no registered profiles.")
}
