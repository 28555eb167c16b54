//go:build linux

package ifconfig

import (
	"errors"
	"fmt"

	"github.com/vishvananda/netlink"

	pkgerrors "mtuwatcher/pkg/errors"
)

// netlinkConfigurator changes the MTU over its own rtnetlink socket.
type netlinkConfigurator struct {
	iface  Handle
	handle *netlink.Handle
}

func platformResolve(name string) (Handle, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return Handle{}, &pkgerrors.InterfaceError{Name: name, Op: "resolve", Err: linkError(err)}
	}
	return Handle{Name: name, Index: link.Attrs().Index}, nil
}

func platformOpen(h Handle) (Configurator, error) {
	handle, err := netlink.NewHandle()
	if err != nil {
		return nil, fmt.Errorf("failed to open netlink handle: %w", err)
	}
	return &netlinkConfigurator{iface: h, handle: handle}, nil
}

func (c *netlinkConfigurator) link(op string) (netlink.Link, error) {
	link, err := c.handle.LinkByIndex(c.iface.Index)
	if err != nil {
		return nil, &pkgerrors.InterfaceError{Name: c.iface.Name, Op: op, Err: linkError(err)}
	}
	return link, nil
}

func (c *netlinkConfigurator) MTU() (uint32, error) {
	link, err := c.link("get mtu")
	if err != nil {
		return 0, err
	}
	return uint32(link.Attrs().MTU), nil
}

func (c *netlinkConfigurator) SetMTU(mtu uint32) error {
	link, err := c.link("set mtu")
	if err != nil {
		return err
	}
	if err := c.handle.LinkSetMTU(link, int(mtu)); err != nil {
		return &pkgerrors.InterfaceError{Name: c.iface.Name, Op: "set mtu", Err: err}
	}
	return nil
}

func (c *netlinkConfigurator) Close() error {
	c.handle.Close()
	return nil
}

// linkError maps netlink's not-found error onto ErrInterfaceNotFound.
func linkError(err error) error {
	var notFound netlink.LinkNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", pkgerrors.ErrInterfaceNotFound, err)
	}
	return err
}
