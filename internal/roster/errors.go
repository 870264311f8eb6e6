package roster

import "errors"

var (
	// ErrInvalidSource is returned when the fetch URL is malformed.
	ErrInvalidSource = errors.New("invalid roster source")
	// ErrNetwork is returned on transport failures and non-2xx responses.
	ErrNetwork = errors.New("roster request failed")
	// ErrDecode is returned when the payload does not match the player schema.
	ErrDecode = errors.New("malformed roster payload")
)
