// Package database defines database systems, connection profiles and the driver capability.
package database

import "strings"

// System identifies a database system.
type System string

const (
	MySQL      System = "mysql"
	PostgreSQL System = "postgresql"
	SQLite     System = "sqlite"
	MongoDB    System = "mongodb"
	CouchDB    System = "couchdb"
)

// Systems lists every recognized system.
var Systems = []System{MySQL, PostgreSQL, SQLite, MongoDB, CouchDB}

// Valid reports whether s is one of the recognized systems.
func (s System) Valid() bool {
	for _, known := range Systems {
		if s == known {
			return true
		}
	}
	return false
}

func (s System) String() string {
	return string(s)
}

// Normalize trims and lowercases a raw system string.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseSystem parses a raw, case-insensitive system string.
func ParseSystem(raw string) (System, bool) {
	s := System(Normalize(raw))
	return s, s.Valid()
}
