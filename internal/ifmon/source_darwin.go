//go:build darwin

package ifmon

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// routeReadSize fits one routing message; the kernel writes whole messages
// per read on a route socket.
const routeReadSize = 2048

// routeSource reads RTM_IFINFO messages from a non-blocking AF_ROUTE socket.
type routeSource struct {
	fd int
}

func platformOpen() (Source, error) {
	fd, err := unix.Socket(unix.AF_ROUTE, unix.SOCK_RAW, unix.AF_UNSPEC)
	if err != nil {
		return nil, fmt.Errorf("failed to create AF_ROUTE socket: %w", err)
	}
	unix.CloseOnExec(fd)
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to set nonblock on AF_ROUTE socket: %w", err)
	}
	return &routeSource{fd: fd}, nil
}

func (s *routeSource) Wait() error {
	return pollReadable(s.fd)
}

func (s *routeSource) Next() (Record, error) {
	buf := make([]byte, routeReadSize)
	n, err := unix.Read(s.fd, buf)
	if err != nil {
		return Record{}, err
	}
	return decodeRoute(buf[:n])
}

func (s *routeSource) Close() error {
	return unix.Close(s.fd)
}

// decodeRoute decodes one routing message. Only RTM_IFINFO carries
// interface state; other message types are KindOther.
func decodeRoute(b []byte) (Record, error) {
	// rtm_msglen(2) rtm_version(1) rtm_type(1)
	if len(b) < 4 {
		return Record{}, fmt.Errorf("short routing message: %d bytes", len(b))
	}
	if b[3] != unix.RTM_IFINFO {
		return Record{Kind: KindOther}, nil
	}
	if len(b) < unix.SizeofIfMsghdr {
		return Record{}, fmt.Errorf("short if_msghdr: %d bytes", len(b))
	}

	hdr := (*unix.IfMsghdr)(unsafe.Pointer(&b[0]))
	return Record{
		Kind:  KindInfoChanged,
		Index: int(hdr.Index),
		MTU:   hdr.Data.Mtu,
	}, nil
}
