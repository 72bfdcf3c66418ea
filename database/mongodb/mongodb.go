// Package mongodb implements the MongoDB database driver.
package mongodb

import (
	"fmt"
	"net"
	"net/url"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satishbabariya/datamapper/database"
)

const (
	defaultHost = "localhost"
	defaultPort = "27017"
)

// Driver is the descriptor registered with the database registry.
var Driver = database.Driver{
	System: database.MongoDB,
	Name:   "MongoDB",
	New:    func(p *database.Profile) database.Database { return New(p) },
}

// Database is an interface to one MongoDB database.
type Database struct {
	database.Unimplemented
}

// New creates a MongoDB driver instance for the given profile.
func New(profile *database.Profile) *Database {
	return &Database{Unimplemented: database.NewUnimplemented(profile)}
}

// System returns database.MongoDB.
func (d *Database) System() database.System {
	return database.MongoDB
}

// DriverName returns "mongodb".
func (d *Database) DriverName() string {
	return "mongodb"
}

// ConnectionString returns the mongodb:// URI for the profile.
func (d *Database) ConnectionString() (string, error) {
	p := database.ProfileOrEmpty(d.Profile())

	host, port := p.Host, p.Port
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}

	u := &url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + p.DB,
	}
	switch {
	case p.User != "" && p.Password != "":
		u.User = url.UserPassword(p.User, p.Password)
	case p.User != "":
		u.User = url.User(p.User)
	}
	return u.String(), nil
}

// ClientOptions returns validated mongo client options for the profile.
// Nothing is dialed.
func (d *Database) ClientOptions() (*options.ClientOptions, error) {
	uri, err := d.ConnectionString()
	if err != nil {
		return nil, err
	}

	p := database.ProfileOrEmpty(d.Profile())
	opts := options.Client().ApplyURI(uri).SetAppName("datamapper/" + p.Name)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mongodb options: %w", err)
	}
	return opts, nil
}

var (
	_ database.Database  = (*Database)(nil)
	_ database.Connector = (*Database)(nil)
)
