package yard

import "errors"

var (
	// ErrUnknownDock is returned when a dock id does not exist.
	ErrUnknownDock = errors.New("unknown dock")
	// ErrUnknownStatus is returned for a status key outside the status table.
	ErrUnknownStatus = errors.New("unknown status")
	// ErrUnknownPool is returned for a pool key outside the known pools.
	ErrUnknownPool = errors.New("unknown pool")
)
