package database

import (
	"fmt"
	"log/slog"
)

const maskedPassword = "****"

// Profile holds the metadata and credentials of one concrete database instance.
type Profile struct {
	Name     string `yaml:"name"`
	System   string `yaml:"system"`
	Host     string `yaml:"host,omitempty"`
	Port     string `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       string `yaml:"db,omitempty"`
}

// Clone returns a copy of p, or nil.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Masked returns a copy of p with the password replaced.
func (p *Profile) Masked() *Profile {
	c := p.Clone()
	if c != nil && c.Password != "" {
		c.Password = maskedPassword
	}
	return c
}

func (p *Profile) String() string {
	if p == nil {
		return "Profile(<nil>)"
	}
	m := p.Masked()
	return fmt.Sprintf("Profile(name=%q system=%q host=%q port=%q user=%q password=%q db=%q)",
		m.Name, m.System, m.Host, m.Port, m.User, m.Password, m.DB)
}

// LogValue implements slog.LogValuer. Credentials never reach the log.
func (p *Profile) LogValue() slog.Value {
	if p == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.String("name", p.Name),
		slog.String("system", p.System),
		slog.String("host", p.Host),
		slog.String("db", p.DB),
	)
}
