// Package postgres implements the PostgreSQL database driver.
package postgres

import (
	"fmt"
	"net"
	"net/url"

	"github.com/lib/pq"

	"github.com/satishbabariya/datamapper/database"
)

const (
	defaultHost = "localhost"
	defaultPort = "5432"
)

// Driver is the descriptor registered with the database registry.
var Driver = database.Driver{
	System: database.PostgreSQL,
	Name:   "PostgreSQL",
	New:    func(p *database.Profile) database.Database { return New(p) },
}

// Database is an interface to one PostgreSQL database.
type Database struct {
	database.Unimplemented
}

// New creates a PostgreSQL driver instance for the given profile.
func New(profile *database.Profile) *Database {
	return &Database{Unimplemented: database.NewUnimplemented(profile)}
}

// System returns database.PostgreSQL.
func (d *Database) System() database.System {
	return database.PostgreSQL
}

// DriverName returns the name lib/pq registers with database/sql.
func (d *Database) DriverName() string {
	return "postgres"
}

// URL returns the postgres:// URL for the profile.
func (d *Database) URL() *url.URL {
	p := database.ProfileOrEmpty(d.Profile())

	host, port := p.Host, p.Port
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}

	u := &url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + p.DB,
		RawQuery: url.Values{"sslmode": {"disable"}}.Encode(),
	}
	switch {
	case p.User != "" && p.Password != "":
		u.User = url.UserPassword(p.User, p.Password)
	case p.User != "":
		u.User = url.User(p.User)
	}
	return u
}

// ConnectionString returns the lib/pq key/value connection string for the profile.
func (d *Database) ConnectionString() (string, error) {
	conn, err := pq.ParseURL(d.URL().String())
	if err != nil {
		return "", fmt.Errorf("failed to build connection string: %w", err)
	}
	return conn, nil
}

var (
	_ database.Database  = (*Database)(nil)
	_ database.Connector = (*Database)(nil)
)
