package target

import (
	"fmt"
	"strconv"
	"strings"

	pkgerrors "mtuwatcher/pkg/errors"
)

// MTU bounds accepted on the command line (inclusive).
const (
	MinMTU = 72
	MaxMTU = 65535
)

// Target is the interface and MTU the daemon enforces. It is built once at
// startup and never modified.
type Target struct {
	Interface string
	MTU       uint32
}

func (t Target) String() string {
	return fmt.Sprintf("%s mtu %d", t.Interface, t.MTU)
}

// New validates the command line arguments and returns the target.
func New(iface, mtu string) (Target, error) {
	if strings.TrimSpace(iface) == "" {
		return Target{}, fmt.Errorf("empty interface name: %w", pkgerrors.ErrUsage)
	}

	value, err := ParseMTU(mtu)
	if err != nil {
		return Target{}, err
	}

	return Target{Interface: iface, MTU: value}, nil
}

// ParseMTU parses an unsigned decimal MTU and checks it against MinMTU and MaxMTU.
func ParseMTU(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: not an unsigned integer", pkgerrors.ErrMTUInvalid, s)
	}

	switch {
	case v < MinMTU:
		return 0, fmt.Errorf("%w: minimum MTU is %d", pkgerrors.ErrMTUOutOfRange, MinMTU)
	case v > MaxMTU:
		return 0, fmt.Errorf("%w: maximum MTU is %d", pkgerrors.ErrMTUOutOfRange, MaxMTU)
	}

	return uint32(v), nil
}
