package doctor

import "errors"

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrAccessDenied is returned for any token that does not resolve to a
	// doctor. Deliberately carries no detail about why.
	ErrAccessDenied = errors.New("access denied")
)
