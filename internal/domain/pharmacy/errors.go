package pharmacy

import "errors"

var (
	ErrPharmacyNotFound = errors.New("pharmacy not found")
	ErrMissingName      = errors.New("pharmacy requires a name")
)
