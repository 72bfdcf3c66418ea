package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (afero.Fs, string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true

	prev := AppFs
	AppFs = afero.NewMemMapFs()
	t.Cleanup(func() {
		AppFs = prev
		homedir.DisableCache = false
	})

	cwd, err := os.Getwd()
	require.NoError(t, err)
	return AppFs, cwd
}

func TestLoad_Defaults(t *testing.T) {
	setup(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultProfilesFile, cfg.ProfilesFile)
	assert.Empty(t, cfg.DefaultProfile)
	assert.False(t, cfg.Debug)
}

func TestLoad_ConfigFile(t *testing.T) {
	fsys, cwd := setup(t)
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(cwd, ".datamapper.yaml"),
		[]byte("profiles_file: conf/db.ini\ndefault_profile: main\ndebug: true\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "conf/db.ini", cfg.ProfilesFile)
	assert.Equal(t, "main", cfg.DefaultProfile)
	assert.True(t, cfg.Debug)
}

func TestLoad_Environment(t *testing.T) {
	fsys, cwd := setup(t)
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(cwd, ".datamapper.yaml"),
		[]byte("profiles_file: conf/db.ini\n"), 0o644))
	t.Setenv("DATAMAPPER_PROFILES_FILE", "env.ini")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env.ini", cfg.ProfilesFile)
}

func TestLoad_DotEnv(t *testing.T) {
	fsys, _ := setup(t)
	t.Setenv("DATAMAPPER_DEFAULT_PROFILE", "")
	t.Setenv("DATAMAPPER_DEBUG", "")
	os.Unsetenv("DATAMAPPER_DEFAULT_PROFILE")
	os.Unsetenv("DATAMAPPER_DEBUG")

	require.NoError(t, afero.WriteFile(fsys, ".env",
		[]byte("DATAMAPPER_DEFAULT_PROFILE=from-env\nDATAMAPPER_DEBUG=true\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, ".env.local",
		[]byte("DATAMAPPER_DEFAULT_PROFILE=from-local\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-local", cfg.DefaultProfile)
	assert.True(t, cfg.Debug)
}

func TestLoad_DotEnvKeepsEnvironment(t *testing.T) {
	fsys, _ := setup(t)
	t.Setenv("DATAMAPPER_DEFAULT_PROFILE", "from-shell")

	require.NoError(t, afero.WriteFile(fsys, ".env",
		[]byte("DATAMAPPER_DEFAULT_PROFILE=from-env\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-shell", cfg.DefaultProfile)
}

func TestLoad_MalformedConfig(t *testing.T) {
	fsys, cwd := setup(t)
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(cwd, ".datamapper.yaml"),
		[]byte("profiles_file: [unterminated\n"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	fsys, _ := setup(t)

	path, err := Save(&Config{ProfilesFile: "db.ini", DefaultProfile: "p1"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".config", "datamapper", ".datamapper.yaml"), path)

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "profiles_file: db.ini")
	assert.Contains(t, string(data), "default_profile: p1")
}
