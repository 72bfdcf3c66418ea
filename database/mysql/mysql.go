// Package mysql implements the MySQL database driver.
package mysql

import (
	"net"

	"github.com/go-sql-driver/mysql"

	"github.com/satishbabariya/datamapper/database"
)

const (
	defaultHost = "127.0.0.1"
	defaultPort = "3306"
)

// Driver is the descriptor registered with the database registry.
var Driver = database.Driver{
	System: database.MySQL,
	Name:   "MySQL",
	New:    func(p *database.Profile) database.Database { return New(p) },
}

// Database is an interface to one MySQL database instance.
type Database struct {
	database.Unimplemented
}

// New creates a MySQL driver instance for the given profile.
func New(profile *database.Profile) *Database {
	return &Database{Unimplemented: database.NewUnimplemented(profile)}
}

// System returns database.MySQL.
func (d *Database) System() database.System {
	return database.MySQL
}

// DriverName returns the database/sql driver name.
func (d *Database) DriverName() string {
	return "mysql"
}

// ConnectionString returns the go-sql-driver DSN for the profile.
// Host and port default to 127.0.0.1:3306.
func (d *Database) ConnectionString() (string, error) {
	p := database.ProfileOrEmpty(d.Profile())

	host, port := p.Host, p.Port
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}

	cfg := mysql.NewConfig()
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = p.DB
	cfg.ParseTime = true

	return cfg.FormatDSN(), nil
}

var (
	_ database.Database  = (*Database)(nil)
	_ database.Connector = (*Database)(nil)
)
