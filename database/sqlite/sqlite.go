// Package sqlite implements the SQLite database driver.
package sqlite

import (
	"net/url"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/satishbabariya/datamapper/database"
)

// Driver is the descriptor registered with the database registry.
var Driver = database.Driver{
	System: database.SQLite,
	Name:   "SQLite",
	New:    func(p *database.Profile) database.Database { return New(p) },
}

// Database is an interface to one SQLite database file.
type Database struct {
	database.Unimplemented
}

// New creates a SQLite driver instance for the given profile.
func New(profile *database.Profile) *Database {
	return &Database{Unimplemented: database.NewUnimplemented(profile)}
}

// System returns database.SQLite.
func (d *Database) System() database.System {
	return database.SQLite
}

// DriverName returns the name go-sqlite3 registers with database/sql.
func (d *Database) DriverName() string {
	return "sqlite3"
}

// ConnectionString returns a go-sqlite3 file URI. The profile's db is the file path;
// an empty db selects a shared in-memory database.
func (d *Database) ConnectionString() (string, error) {
	p := database.ProfileOrEmpty(d.Profile())

	q := url.Values{}
	// Foreign keys are disabled by default in SQLite
	q.Set("_foreign_keys", "on")
	if p.DB == "" {
		q.Set("cache", "shared")
		q.Set("mode", "memory")
		return "file::memory:?" + q.Encode(), nil
	}
	return "file:" + p.DB + "?" + q.Encode(), nil
}

var (
	_ database.Database  = (*Database)(nil)
	_ database.Connector = (*Database)(nil)
)
