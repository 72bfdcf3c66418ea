package registry

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/afero"

	"github.com/satishbabariya/datamapper/database"
	"github.com/satishbabariya/datamapper/errs"
)

// Keys recognized in a profile section. Other keys are ignored.
const (
	keySystem   = "system"
	keyHost     = "host"
	keyPort     = "port"
	keyUser     = "user"
	keyPassword = "password"
	keyDB       = "db"
)

// ReservedProfileName is the INI section holding keys shared by every profile.
// It can not name a profile.
var ReservedProfileName = ini.DefaultSection

// ErrReservedProfileName is returned when a profile would be written as the shared section.
var ErrReservedProfileName = fmt.Errorf("the profile name %q is reserved", ReservedProfileName)

var loadOptions = ini.LoadOptions{
	// Duplicate headers are reported instead of being merged.
	AllowNonUniqueSections: true,
	InsensitiveKeys:        true,
	// Values are taken verbatim; a '#' may be part of a password.
	IgnoreInlineComment: true,
}

// ReadProfilesFromFile reads the profiles defined in the INI file at path.
// It fails with ParseProfileConfigFile code 1 if the file does not exist, code 2
// if it cannot be read and code 3 if it is malformed.
func ReadProfilesFromFile(fsys afero.Fs, path string) ([]*database.Profile, error) {
	kind := errs.KindParseProfileConfigFile

	if path == "" {
		return nil, kind.Wrap(fs.ErrNotExist, 1, "The profile config file '%s' does not exist.", path)
	}

	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, kind.Wrap(err, 1, "The profile config file '%s' does not exist.", path)
		}
		return nil, kind.Wrap(err, 2, "The profile config file '%s' can not be read.", path)
	}
	if info.IsDir() {
		return nil, kind.New(2, "The profile config file '%s' can not be read.", path)
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, kind.Wrap(err, 2, "The profile config file '%s' can not be read.", path)
	}

	profiles, err := ParseProfiles(data)
	if err != nil {
		return nil, kind.Wrap(err, 3, "The profile config file '%s' is malformed: %v", path, err)
	}
	return profiles, nil
}

// ParseProfiles parses INI content into profiles, one per section, in section order.
// Keys of the [DEFAULT] section are inherited by every profile that does not set them.
func ParseProfiles(data []byte) ([]*database.Profile, error) {
	if keysBeforeHeader(data) {
		return nil, errors.New("keys outside of a section")
	}

	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, err
	}

	shared := cfg.Section(ini.DefaultSection)
	lookup := func(sec *ini.Section, key string) string {
		if sec.HasKey(key) {
			return sec.Key(key).String()
		}
		return shared.Key(key).String()
	}

	seen := make(map[string]bool)
	var profiles []*database.Profile
	for _, sec := range cfg.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("section '%s' already exists", name)
		}
		seen[name] = true

		profiles = append(profiles, &database.Profile{
			Name:     name,
			System:   lookup(sec, keySystem),
			Host:     lookup(sec, keyHost),
			Port:     lookup(sec, keyPort),
			User:     lookup(sec, keyUser),
			Password: lookup(sec, keyPassword),
			DB:       lookup(sec, keyDB),
		})
	}

	if len(profiles) == 0 {
		return nil, errors.New("file contains no section headers")
	}
	return profiles, nil
}

// keysBeforeHeader reports whether a non-comment line precedes the first section header.
// go-ini files such keys under DEFAULT, which would make them shared.
func keysBeforeHeader(data []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		return line[0] != '['
	}
	return false
}

// FormatProfiles renders profiles in the INI format ParseProfiles reads.
// Empty attributes are omitted. A profile named ReservedProfileName is rejected.
func FormatProfiles(profiles []*database.Profile) ([]byte, error) {
	cfg := ini.Empty()
	for _, p := range profiles {
		if p.Name == ReservedProfileName {
			return nil, ErrReservedProfileName
		}
		sec, err := cfg.NewSection(p.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to add section %q: %w", p.Name, err)
		}
		for _, kv := range [][2]string{
			{keySystem, p.System},
			{keyHost, p.Host},
			{keyPort, p.Port},
			{keyUser, p.User},
			{keyPassword, p.Password},
			{keyDB, p.DB},
		} {
			if kv[1] == "" {
				continue
			}
			if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
				return nil, fmt.Errorf("failed to add key %q to %q: %w", kv[0], p.Name, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render profiles: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteProfilesFile writes profiles to path, replacing its content.
func WriteProfilesFile(fsys afero.Fs, path string, profiles []*database.Profile) error {
	data, err := FormatProfiles(profiles)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}
	return nil
}
