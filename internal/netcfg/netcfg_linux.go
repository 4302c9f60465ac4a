//go:build linux

package netcfg

import (
	"errors"
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// LinkInfo looks the interface up over netlink.
func LinkInfo(name string) (Link, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return Link{}, fmt.Errorf("link %s: %w", name, ErrLinkNotFound)
		}
		return Link{}, fmt.Errorf("link %s: %w", name, err)
	}
	attrs := link.Attrs()
	return Link{
		Name:      attrs.Name,
		Index:     attrs.Index,
		MTU:       attrs.MTU,
		Type:      link.Type(),
		Up:        attrs.Flags&net.FlagUp != 0,
		OperState: attrs.OperState.String(),
	}, nil
}
