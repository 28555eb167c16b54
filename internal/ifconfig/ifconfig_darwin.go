//go:build darwin

package ifconfig

import (
	"errors"
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	pkgerrors "mtuwatcher/pkg/errors"
)

// ioctlConfigurator issues SIOCGIFMTU/SIOCSIFMTU on an AF_INET socket.
type ioctlConfigurator struct {
	iface Handle
	fd    int
}

func platformResolve(name string) (Handle, error) {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return Handle{}, &pkgerrors.InterfaceError{
			Name: name,
			Op:   "resolve",
			Err:  fmt.Errorf("%w: %v", pkgerrors.ErrInterfaceNotFound, err),
		}
	}
	return Handle{Name: name, Index: ifi.Index}, nil
}

func platformOpen(h Handle) (Configurator, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create AF_INET socket: %w", err)
	}
	unix.CloseOnExec(fd)
	return &ioctlConfigurator{iface: h, fd: fd}, nil
}

func (c *ioctlConfigurator) MTU() (uint32, error) {
	ifr, err := unix.IoctlGetIfreqMTU(c.fd, c.iface.Name)
	if err != nil {
		return 0, &pkgerrors.InterfaceError{Name: c.iface.Name, Op: "get mtu", Err: ioctlError(err)}
	}
	return uint32(ifr.MTU), nil
}

func (c *ioctlConfigurator) SetMTU(mtu uint32) error {
	ifr := &unix.IfreqMTU{MTU: int32(mtu)}
	copy(ifr.Name[:], c.iface.Name)
	if err := unix.IoctlSetIfreqMTU(c.fd, ifr); err != nil {
		return &pkgerrors.InterfaceError{Name: c.iface.Name, Op: "set mtu", Err: ioctlError(err)}
	}
	return nil
}

func (c *ioctlConfigurator) Close() error {
	return unix.Close(c.fd)
}

// ioctlError maps ENXIO, returned for a vanished interface, onto
// ErrInterfaceNotFound.
func ioctlError(err error) error {
	if errors.Is(err, unix.ENXIO) {
		return fmt.Errorf("%w: %v", pkgerrors.ErrInterfaceNotFound, err)
	}
	return err
}
