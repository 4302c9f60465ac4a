package netcfg

import "errors"

var (
	ErrLinkNotFound = errors.New("link not found")
	ErrNotSupported = errors.New("not supported")
)

// Link is a read-only view of a network interface.
type Link struct {
	Name      string
	Index     int
	MTU       int
	Type      string
	Up        bool
	OperState string
}
