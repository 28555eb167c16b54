// Package privilege makes sure the process runs as root before it touches
// interface configuration.
package privilege

import (
	"fmt"

	"golang.org/x/sys/unix"

	pkgerrors "mtuwatcher/pkg/errors"
)

var (
	getuid = unix.Getuid
	setuid = unix.Setuid
)

// Ensure returns nil when the real user is root. Otherwise it tries a
// one-time setuid(0), which succeeds for a setuid-root binary.
func Ensure() error {
	if getuid() == 0 {
		return nil
	}
	if err := setuid(0); err != nil {
		return fmt.Errorf("%w\n  setuid: %v", pkgerrors.ErrElevation, err)
	}
	return nil
}
