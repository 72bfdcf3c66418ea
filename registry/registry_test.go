package registry

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/satishbabariya/datamapper/database"
	"github.com/satishbabariya/datamapper/database/mysql"
	"github.com/satishbabariya/datamapper/database/sqlite"
	"github.com/satishbabariya/datamapper/errs"
)

func newTestRegistry(t *testing.T, files map[string]string) *Registry {
	t.Helper()
	return New(WithFs(memFs(t, files)))
}

func initialized(t *testing.T) *Registry {
	t.Helper()
	r := newTestRegistry(t, nil)
	require.NoError(t, r.Initialize())
	return r
}

func requireCode(t *testing.T, err error, kind errs.Kind, code int) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, kind, code), "want %s code %d, got %v", kind, code, err)
}

func TestRegistry_Clear(t *testing.T) {
	t.Run("uninitialized", func(t *testing.T) {
		r := newTestRegistry(t, nil)
		r.Clear()

		assert.Empty(t, r.Drivers())
		assert.Empty(t, r.Profiles())
		assert.False(t, r.IsInitialized())
	})

	t.Run("initialized", func(t *testing.T) {
		r := newTestRegistry(t, map[string]string{"db.conf": singleProfile})
		require.NoError(t, r.Initialize(FromFile("db.conf")))
		require.NotEmpty(t, r.Drivers())
		require.NotEmpty(t, r.Profiles())
		require.True(t, r.IsInitialized())

		r.Clear()

		assert.Empty(t, r.Drivers())
		assert.Empty(t, r.Profiles())
		assert.False(t, r.IsInitialized())
	})
}

func TestRegistry_Initialize(t *testing.T) {
	t.Run("without profile file", func(t *testing.T) {
		r := initialized(t)

		assert.Len(t, r.Drivers(), len(Builtins()))
		assert.Empty(t, r.Profiles())
		assert.True(t, r.IsInitialized())
		assert.True(t, r.HasDriver("MySQL"))
		assert.True(t, r.HasDriver("sqlite"))
		assert.False(t, r.HasDriver("couchdb"))
	})

	t.Run("empty profile file path", func(t *testing.T) {
		r := newTestRegistry(t, nil)

		err := r.Initialize(FromFile(""))
		requireCode(t, err, errs.KindParseProfileConfigFile, 1)
		assert.False(t, r.IsInitialized())
	})

	t.Run("with single profile", func(t *testing.T) {
		r := newTestRegistry(t, map[string]string{"db.conf": singleProfile})
		require.NoError(t, r.Initialize(FromFile("db.conf")))

		assert.Len(t, r.Profiles(), 1)
		assert.True(t, r.IsInitialized())
	})

	t.Run("with two profiles", func(t *testing.T) {
		r := newTestRegistry(t, map[string]string{"db.conf": twoProfiles})
		require.NoError(t, r.Initialize(FromFile("db.conf")))

		profiles := r.Profiles()
		require.Len(t, profiles, 2)
		assert.Equal(t, "p1", profiles[0].Name)
		assert.Equal(t, "p2", profiles[1].Name)
	})

	t.Run("re-initialize drops previous profiles", func(t *testing.T) {
		r := newTestRegistry(t, map[string]string{"db.conf": twoProfiles})
		require.NoError(t, r.Initialize(FromFile("db.conf")))
		require.NoError(t, r.Initialize())

		assert.Empty(t, r.Profiles())
		assert.True(t, r.IsInitialized())
	})

	failures := []struct {
		name string
		file string
		kind errs.Kind
		code int
	}{
		{"not existing", "", errs.KindParseProfileConfigFile, 1},
		{"malformed", malformedProfile, errs.KindParseProfileConfigFile, 3},
		{"no db system", noSystemProfile, errs.KindRegisterProfile, 4},
		{"invalid db system", invalidSystemProfile, errs.KindRegisterProfile, 5},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			if tt.file != "" {
				files["db.conf"] = tt.file
			}
			r := newTestRegistry(t, files)

			err := r.Initialize(FromFile("db.conf"))
			requireCode(t, err, tt.kind, tt.code)
			assert.False(t, r.IsInitialized())
		})
	}

	t.Run("stops at first invalid profile", func(t *testing.T) {
		r := newTestRegistry(t, map[string]string{"db.conf": "[ok]\nsystem = sqlite\n[bad]\n[later]\nsystem = mysql\n"})

		err := r.Initialize(FromFile("db.conf"))
		requireCode(t, err, errs.KindRegisterProfile, 4)

		profiles := r.Profiles()
		require.Len(t, profiles, 1)
		assert.Equal(t, "ok", profiles[0].Name)
	})
}

func TestRegistry_RegisterDatabase(t *testing.T) {
	t.Run("no database", func(t *testing.T) {
		r := New()
		requireCode(t, r.RegisterDatabase(nil), errs.KindRegisterDatabase, 1)
	})

	t.Run("not implementing Database", func(t *testing.T) {
		r := New()
		err := r.RegisterDatabase(&database.Driver{System: database.MySQL, Name: "Dummy"})
		requireCode(t, err, errs.KindRegisterDatabase, 2)
	})

	t.Run("invalid system", func(t *testing.T) {
		r := New()
		d := mysql.Driver
		d.System = "DummySystem"
		requireCode(t, r.RegisterDatabase(&d), errs.KindRegisterDatabase, 3)
	})

	t.Run("valid database", func(t *testing.T) {
		r := New()
		d := mysql.Driver
		require.NoError(t, r.RegisterDatabase(&d))

		drivers := r.Drivers()
		require.Len(t, drivers, 1)
		assert.Equal(t, database.MySQL, drivers[0].System)
	})

	t.Run("same system replaces the driver", func(t *testing.T) {
		r := New()
		first := mysql.Driver
		second := mysql.Driver
		second.Name = "Replacement"
		require.NoError(t, r.RegisterDatabase(&first))
		require.NoError(t, r.RegisterDatabase(&second))

		drivers := r.Drivers()
		require.Len(t, drivers, 1)
		assert.Equal(t, "Replacement", drivers[0].Name)
	})

	t.Run("custom driver for a recognized system", func(t *testing.T) {
		r := New()
		couch := &database.Driver{
			System: database.CouchDB,
			Name:   "CouchDB",
			New: func(p *database.Profile) database.Database {
				return &fakeDatabase{Unimplemented: database.NewUnimplemented(p), system: database.CouchDB}
			},
		}
		require.NoError(t, r.RegisterDatabase(couch))

		profile := &database.Profile{Name: "couch", System: "CouchDB"}
		db, err := r.GetDatabase(WithProfile(profile))
		require.NoError(t, err)
		require.IsType(t, &fakeDatabase{}, db)
		assert.Equal(t, database.CouchDB, db.System())
		assert.Equal(t, profile, db.Profile())
	})
}

type fakeDatabase struct {
	database.Unimplemented
	system database.System
}

func (f *fakeDatabase) System() database.System { return f.system }

func TestValidateDatabase(t *testing.T) {
	tests := []struct {
		name string
		in   any
		code int
	}{
		{"nil", nil, 1},
		{"typed nil", (*database.Driver)(nil), 1},
		{"not a driver", "mysql", 2},
		{"no constructor", database.Driver{System: database.SQLite}, 2},
		{"invalid system", database.Driver{System: "sybase", New: sqlite.Driver.New}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateDatabase(tt.in, errs.KindGeneric)
			requireCode(t, err, errs.KindGeneric, tt.code)
			assert.NotContains(t, err.Error(), "An error occurred")
		})
	}

	d, err := ValidateDatabase(sqlite.Driver, errs.KindGeneric)
	require.NoError(t, err)
	assert.Equal(t, database.SQLite, d.System)
}

func TestRegistry_RegisterProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *database.Profile
		code    int
	}{
		{"no profile", nil, 1},
		{"no name", &database.Profile{System: "mysql"}, 3},
		{"blank name", &database.Profile{Name: "   ", System: "mysql"}, 3},
		{"no system", &database.Profile{Name: "p"}, 4},
		{"blank system", &database.Profile{Name: "p", System: " \t"}, 4},
		{"unsupported system", &database.Profile{Name: "p", System: "oracle"}, 5},
		{"recognized system without driver", &database.Profile{Name: "p", System: "couchdb"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := initialized(t)
			requireCode(t, r.RegisterProfile(tt.profile), errs.KindRegisterProfile, tt.code)
			assert.Empty(t, r.Profiles())
		})
	}

	t.Run("not a profile", func(t *testing.T) {
		r := initialized(t)
		_, err := r.ValidateProfile(struct{ Name string }{"p"}, errs.KindGeneric)
		requireCode(t, err, errs.KindGeneric, 2)
	})

	t.Run("system matching is case-insensitive", func(t *testing.T) {
		r := initialized(t)
		for i, system := range []string{"mysql", "MYSQL", "mYsQl", " MySql "} {
			name := strings.Repeat("p", i+1)
			require.NoError(t, r.RegisterProfile(&database.Profile{Name: name, System: system}))
		}
		assert.Len(t, r.Profiles(), 4)
	})

	t.Run("re-registering keeps the original slot", func(t *testing.T) {
		r := initialized(t)
		require.NoError(t, r.RegisterProfile(&database.Profile{Name: "a", System: "mysql", User: "first"}))
		require.NoError(t, r.RegisterProfile(&database.Profile{Name: "b", System: "sqlite"}))
		require.NoError(t, r.RegisterProfile(&database.Profile{Name: "a", System: "sqlite", User: "second"}))

		got, err := r.GetProfile("a")
		require.NoError(t, err)
		assert.Equal(t, "second", got.User)

		first, err := r.GetFirstRegisteredProfile()
		require.NoError(t, err)
		assert.Equal(t, "a", first.Name)
		assert.Equal(t, "second", first.User)

		last, err := r.GetLastRegisteredProfile()
		require.NoError(t, err)
		assert.Equal(t, "b", last.Name)
	})

	t.Run("stores a copy", func(t *testing.T) {
		r := initialized(t)
		p := &database.Profile{Name: "a", System: "mysql"}
		require.NoError(t, r.RegisterProfile(p))
		p.System = "oracle"

		got, err := r.GetProfile("a")
		require.NoError(t, err)
		assert.Equal(t, "mysql", got.System)

		got.User = "mutated"
		again, err := r.GetProfile("a")
		require.NoError(t, err)
		assert.Empty(t, again.User)
	})
}

func TestRegistry_GetProfile(t *testing.T) {
	r := initialized(t)
	require.NoError(t, r.RegisterProfile(&database.Profile{Name: "main", System: "sqlite"}))

	_, err := r.GetProfile("")
	requireCode(t, err, errs.KindGetProfile, 1)

	_, err = r.GetProfile("  ")
	requireCode(t, err, errs.KindGetProfile, 1)

	_, err = r.GetProfile("other")
	requireCode(t, err, errs.KindGetProfile, 2)

	p, err := r.GetProfile("main")
	require.NoError(t, err)
	assert.Equal(t, "main", p.Name)

	_, err = r.ValidateProfileName("other", errs.KindGeneric)
	requireCode(t, err, errs.KindGeneric, 2)
}

func TestRegistry_FirstAndLastProfile(t *testing.T) {
	r := initialized(t)

	_, err := r.GetFirstRegisteredProfile()
	requireCode(t, err, errs.KindGetProfile, 3)
	_, err = r.GetLastRegisteredProfile()
	requireCode(t, err, errs.KindGetProfile, 3)

	for _, name := range []string{"p1", "p2", "p3"} {
		require.NoError(t, r.RegisterProfile(&database.Profile{Name: name, System: "sqlite"}))
	}

	first, err := r.GetFirstRegisteredProfile()
	require.NoError(t, err)
	assert.Equal(t, "p1", first.Name)

	last, err := r.GetLastRegisteredProfile()
	require.NoError(t, err)
	assert.Equal(t, "p3", last.Name)
}

func TestRegistry_GetDatabase(t *testing.T) {
	setup := func(t *testing.T) *Registry {
		r := initialized(t)
		require.NoError(t, r.RegisterProfile(&database.Profile{Name: "lite", System: "sqlite", DB: "app.db"}))
		require.NoError(t, r.RegisterProfile(&database.Profile{Name: "main", System: "MySQL", User: "root"}))
		return r
	}
	explicit := &database.Profile{Name: "explicit", System: "sqlite"}

	t.Run("no arguments resolves the last registered profile", func(t *testing.T) {
		db, err := setup(t).GetDatabase()
		require.NoError(t, err)
		require.IsType(t, &mysql.Database{}, db)
		assert.Equal(t, database.MySQL, db.System())
		assert.Equal(t, "main", db.Profile().Name)
	})

	t.Run("by profile name", func(t *testing.T) {
		db, err := setup(t).GetDatabase(WithProfileName("lite"))
		require.NoError(t, err)
		assert.Equal(t, database.SQLite, db.System())
		assert.Equal(t, "app.db", db.Profile().DB)
	})

	t.Run("by explicit profile", func(t *testing.T) {
		db, err := setup(t).GetDatabase(WithProfile(explicit))
		require.NoError(t, err)
		assert.Equal(t, "explicit", db.Profile().Name)
	})

	t.Run("nil profile falls back to the last registered profile", func(t *testing.T) {
		db, err := setup(t).GetDatabase(WithProfile(nil))
		require.NoError(t, err)
		assert.Equal(t, "main", db.Profile().Name)
	})

	t.Run("name wins over profile", func(t *testing.T) {
		db, err := setup(t).GetDatabase(WithProfile(explicit), WithProfileName("lite"))
		require.NoError(t, err)
		assert.Equal(t, "lite", db.Profile().Name)
	})

	t.Run("unknown name fails even with a valid profile", func(t *testing.T) {
		_, err := setup(t).GetDatabase(WithProfileName("x"), WithProfile(explicit))
		requireCode(t, err, errs.KindGetProfile, 2)
	})

	t.Run("empty name fails even with a valid profile", func(t *testing.T) {
		_, err := setup(t).GetDatabase(WithProfileName(""), WithProfile(explicit))
		requireCode(t, err, errs.KindGetProfile, 1)
	})

	t.Run("no profiles registered", func(t *testing.T) {
		_, err := initialized(t).GetDatabase()
		requireCode(t, err, errs.KindGetProfile, 3)
	})

	invalid := []struct {
		name    string
		profile *database.Profile
		code    int
	}{
		{"no name", &database.Profile{System: "sqlite"}, 3},
		{"no system", &database.Profile{Name: "x"}, 4},
		{"unsupported system", &database.Profile{Name: "x", System: "oracle"}, 5},
	}
	for _, tt := range invalid {
		t.Run("invalid profile: "+tt.name, func(t *testing.T) {
			_, err := setup(t).GetDatabase(WithProfile(tt.profile))
			requireCode(t, err, errs.KindGetDatabase, tt.code)
		})
	}

	t.Run("fresh instance per call", func(t *testing.T) {
		r := setup(t)
		a, err := r.GetDatabase()
		require.NoError(t, err)
		b, err := r.GetDatabase()
		require.NoError(t, err)
		assert.NotSame(t, a, b)
	})
}

func TestRegistry_ProfileFileScenario(t *testing.T) {
	r := New(WithFs(memFs(t, map[string]string{"db.conf": "[p1]\nsystem=sqlite\nuser=a\n[p2]\nsystem=mysql\nuser=b\n"})))
	require.NoError(t, r.Initialize(FromFile("db.conf")))

	first, err := r.GetFirstRegisteredProfile()
	require.NoError(t, err)
	assert.Equal(t, "p1", first.Name)

	last, err := r.GetLastRegisteredProfile()
	require.NoError(t, err)
	assert.Equal(t, "p2", last.Name)

	db, err := r.GetDatabase()
	require.NoError(t, err)
	assert.Equal(t, database.MySQL, db.System())
	assert.Equal(t, "b", db.Profile().User)
}

func TestRegistry_CaseInsensitiveSystem(t *testing.T) {
	r := initialized(t)

	rapid.Check(t, func(t *rapid.T) {
		system := rapid.SampledFrom([]string{"mysql", "sqlite", "postgresql", "mongodb"}).Draw(t, "system")
		upper := rapid.SliceOfN(rapid.Bool(), len(system), len(system)).Draw(t, "upper")

		var b strings.Builder
		for i, c := range system {
			if upper[i] {
				b.WriteString(strings.ToUpper(string(c)))
			} else {
				b.WriteRune(c)
			}
		}

		p := &database.Profile{Name: "p", System: b.String()}
		if _, err := r.ValidateProfile(p, errs.KindGeneric); err != nil {
			t.Fatalf("system %q rejected: %v", p.System, err)
		}

		db, err := r.GetDatabase(WithProfile(p))
		if err != nil {
			t.Fatalf("system %q not resolved: %v", p.System, err)
		}
		if string(db.System()) != system {
			t.Fatalf("resolved %q for %q", db.System(), p.System)
		}
	})
}

func TestRegistry_InsertionOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := New(WithFs(afero.NewMemMapFs()))
		if err := r.Initialize(); err != nil {
			t.Fatal(err)
		}

		names := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c", "d"}), 1, 12).Draw(t, "names")
		var order []string
		seen := map[string]bool{}
		for _, name := range names {
			if err := r.RegisterProfile(&database.Profile{Name: name, System: "sqlite"}); err != nil {
				t.Fatal(err)
			}
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
			}
		}

		var got []string
		for _, p := range r.Profiles() {
			got = append(got, p.Name)
		}
		assert.Equal(t, order, got)

		db, err := r.GetDatabase()
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, order[len(order)-1], db.Profile().Name)
	})
}
