package profile

import "errors"

var (
	// ErrNoSourceData indicates the profile file was empty
	ErrNoSourceData = errors.New("no profile data")

	// ErrParseToml indicates the profile file is not valid TOML
	ErrParseToml = errors.New("failed to parse TOML profile")

	// ErrUnsupportedVersion indicates a profile written for a different schema version
	ErrUnsupportedVersion = errors.New("unsupported profile version")

	// ErrInvalidProfile indicates the profile failed validation
	ErrInvalidProfile = errors.New("invalid profile")
)
