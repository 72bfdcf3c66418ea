package registry

import (
	"strings"

	"github.com/satishbabariya/datamapper/database"
	"github.com/satishbabariya/datamapper/errs"
)

// ValidateDatabase checks that v is a driver descriptor with a constructor and a
// recognized system. Failures are reported as kind with codes 1 to 3.
func ValidateDatabase(v any, kind errs.Kind) (*database.Driver, error) {
	var d *database.Driver
	switch t := v.(type) {
	case nil:
		return nil, kind.New(1, "No database given.")
	case *database.Driver:
		if t == nil {
			return nil, kind.New(1, "No database given.")
		}
		d = t
	case database.Driver:
		d = &t
	default:
		return nil, kind.New(2, "The given database '%T' is not a database driver.", v)
	}

	if d.New == nil {
		return nil, kind.New(2, "The given database '%s' does not implement Database.", d.Name)
	}
	if !d.System.Valid() {
		return nil, kind.New(3, "The system '%s' of database '%s' is not valid.", d.System, d.Name)
	}
	return d, nil
}

// ValidateProfile checks v against the drivers registered in r. Failures are
// reported as kind with codes 1 to 5.
func (r *Registry) ValidateProfile(v any, kind errs.Kind) (*database.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.validateProfileLocked(v, kind)
}

func (r *Registry) validateProfileLocked(v any, kind errs.Kind) (*database.Profile, error) {
	var p *database.Profile
	switch t := v.(type) {
	case nil:
		return nil, kind.New(1, "No profile given.")
	case *database.Profile:
		if t == nil {
			return nil, kind.New(1, "No profile given.")
		}
		p = t
	case database.Profile:
		p = &t
	default:
		return nil, kind.New(2, "The profile '%v' is not an instance of Profile.", v)
	}

	if strings.TrimSpace(p.Name) == "" {
		return nil, kind.New(3, "There is no name given for the profile '%s'.", p)
	}
	if strings.TrimSpace(p.System) == "" {
		return nil, kind.New(4, "The profile '%s' does not provide a database system.", p.Name)
	}
	if !r.drivers.Has(database.Normalize(p.System)) {
		return nil, kind.New(5, "The db system '%s' in profile '%s' is not supported.", p.System, p.Name)
	}
	return p, nil
}

// ValidateProfileName checks that name is non-blank and registered. Failures are
// reported as kind with codes 1 and 2.
func (r *Registry) ValidateProfileName(name string, kind errs.Kind) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.validateProfileNameLocked(name, kind)
}

func (r *Registry) validateProfileNameLocked(name string, kind errs.Kind) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", kind.New(1, "No profile name given.")
	}
	if !r.profiles.Has(name) {
		return "", kind.New(2, "There is no registered profile for the name '%s'.", name)
	}
	return name, nil
}
