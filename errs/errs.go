// Package errs defines the error taxonomy shared by the database and mapper registries.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies an error family. Every family carries a fixed message prefix.
type Kind int

const (
	// KindGeneric is the base family. It is used by standalone validation calls.
	KindGeneric Kind = iota
	// KindRegisterDatabase is raised on registering a database driver.
	KindRegisterDatabase
	// KindRegisterProfile is raised on registering a database profile.
	KindRegisterProfile
	// KindGetDatabase is raised on resolving a database driver instance.
	KindGetDatabase
	// KindGetProfile is raised on looking up a database profile.
	KindGetProfile
	// KindParseProfileConfigFile is raised on reading a profile configuration source.
	KindParseProfileConfigFile
	// KindRegisterMapper is raised on registering a mapper.
	KindRegisterMapper
	// KindGetMapper is raised on looking up a mapper.
	KindGetMapper
)

var kindNames = map[Kind]string{
	KindGeneric:                "DataMapperError",
	KindRegisterDatabase:       "RegisterDatabaseError",
	KindRegisterProfile:        "RegisterProfileError",
	KindGetDatabase:            "GetDatabaseError",
	KindGetProfile:             "GetProfileError",
	KindParseProfileConfigFile: "ParseProfileConfigFileError",
	KindRegisterMapper:         "RegisterMapperError",
	KindGetMapper:              "GetMapperError",
}

var kindPrefixes = map[Kind]string{
	KindRegisterDatabase:       "An error occurred on registering a database: ",
	KindRegisterProfile:        "An error occurred on registering a profile: ",
	KindGetDatabase:            "An error occurred on getting a database: ",
	KindGetProfile:             "An error occurred on getting a profile: ",
	KindParseProfileConfigFile: "An error occurred on parsing a profile config file: ",
	KindRegisterMapper:         "An error occurred on registering a mapper: ",
	KindGetMapper:              "An error occurred on getting a mapper: ",
}

// String returns the family name, e.g. "GetProfileError".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Prefix returns the fixed message prefix of the family. The generic family has none.
func (k Kind) Prefix() string {
	return kindPrefixes[k]
}

// New creates an error of this family. The message is formatted with args when any are given.
func (k Kind) New(code int, msg string, args ...any) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &Error{Kind: k, Code: code, Message: msg}
}

// Wrap creates an error of this family with an underlying cause.
func (k Kind) Wrap(cause error, code int, msg string, args ...any) *Error {
	err := k.New(code, msg, args...)
	err.Cause = cause
	return err
}

// Sentinels matching any error of a family through errors.Is.
var (
	ErrDataMapper             = &Error{Kind: KindGeneric}
	ErrRegisterDatabase       = &Error{Kind: KindRegisterDatabase}
	ErrRegisterProfile        = &Error{Kind: KindRegisterProfile}
	ErrGetDatabase            = &Error{Kind: KindGetDatabase}
	ErrGetProfile             = &Error{Kind: KindGetProfile}
	ErrParseProfileConfigFile = &Error{Kind: KindParseProfileConfigFile}
	ErrRegisterMapper         = &Error{Kind: KindRegisterMapper}
	ErrGetMapper              = &Error{Kind: KindGetMapper}
)

// Error is the single error type of the module. Code is scoped per operation and starts at 1.
type Error struct {
	// Kind is the error family.
	Kind Kind

	// Code is the stable reason code within the family.
	Code int

	// Message is the human-readable reason, without the family prefix.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Kind.Prefix() + e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same family. A target with a zero code
// matches every code of the family. ErrDataMapper matches every *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == KindGeneric && t.Code == 0 {
		return true
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == 0 || t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or 0.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// KindOf returns the family of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindGeneric, false
}

// IsKind reports whether err carries an *Error of the given family and code.
// A zero code matches any code.
func IsKind(err error, kind Kind, code int) bool {
	return errors.Is(err, &Error{Kind: kind, Code: code})
}
