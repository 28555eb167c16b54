//go:build linux

package ifmon

import (
	"fmt"
	"syscall"

	"github.com/vishvananda/netlink/nl"
	"golang.org/x/sys/unix"
)

// netlinkReadSize bounds one datagram from the link multicast group. Link
// messages with VF and stats attributes stay well below it.
const netlinkReadSize = 64 * 1024

// netlinkSource receives RTNLGRP_LINK notifications on a non-blocking
// NETLINK_ROUTE socket.
type netlinkSource struct {
	fd int

	// pending holds records decoded from a datagram that carried more than
	// one message, in delivery order.
	pending []Record
}

func platformOpen() (Source, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC|unix.SOCK_NONBLOCK, unix.NETLINK_ROUTE)
	if err != nil {
		return nil, fmt.Errorf("failed to create netlink socket: %w", err)
	}

	addr := &unix.SockaddrNetlink{
		Family: unix.AF_NETLINK,
		Groups: unix.RTMGRP_LINK,
	}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to subscribe to link notifications: %w", err)
	}

	return &netlinkSource{fd: fd}, nil
}

func (s *netlinkSource) Wait() error {
	if len(s.pending) > 0 {
		return nil
	}
	return pollReadable(s.fd)
}

func (s *netlinkSource) Next() (Record, error) {
	for len(s.pending) == 0 {
		buf := make([]byte, netlinkReadSize)
		n, _, err := unix.Recvfrom(s.fd, buf, 0)
		if err != nil {
			return Record{}, err
		}
		records, err := decodeNetlink(buf[:n])
		if err != nil {
			return Record{}, err
		}
		s.pending = records
	}

	rec := s.pending[0]
	s.pending = s.pending[1:]
	return rec, nil
}

func (s *netlinkSource) Close() error {
	return unix.Close(s.fd)
}

// decodeNetlink turns one netlink datagram into records. RTM_NEWLINK is the
// info-changed kind; everything else, including RTM_DELLINK, is KindOther.
func decodeNetlink(b []byte) ([]Record, error) {
	if len(b) < unix.NLMSG_HDRLEN {
		return nil, fmt.Errorf("short netlink datagram: %d bytes", len(b))
	}
	msgs, err := syscall.ParseNetlinkMessage(b)
	if err != nil {
		return nil, fmt.Errorf("malformed netlink message: %w", err)
	}

	records := make([]Record, 0, len(msgs))
	for _, m := range msgs {
		if m.Header.Type != unix.RTM_NEWLINK {
			records = append(records, Record{Kind: KindOther})
			continue
		}
		rec, err := decodeLink(m.Data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeLink(data []byte) (Record, error) {
	if len(data) < unix.SizeofIfInfomsg {
		return Record{}, fmt.Errorf("short ifinfomsg: %d bytes", len(data))
	}
	ifi := nl.DeserializeIfInfomsg(data)

	attrs, err := nl.ParseRouteAttr(data[unix.SizeofIfInfomsg:])
	if err != nil {
		return Record{}, fmt.Errorf("malformed link attributes: %w", err)
	}

	rec := Record{Kind: KindInfoChanged, Index: int(ifi.Index)}
	found := false
	for _, attr := range attrs {
		if attr.Attr.Type == unix.IFLA_MTU && len(attr.Value) >= 4 {
			rec.MTU = nl.NativeEndian().Uint32(attr.Value[:4])
			found = true
		}
	}
	if !found {
		// A link message without IFLA_MTU says nothing about the MTU.
		return Record{Kind: KindOther, Index: rec.Index}, nil
	}
	return rec, nil
}
