//go:build !linux && !darwin

package ifmon

import (
	"fmt"
	"runtime"

	pkgerrors "mtuwatcher/pkg/errors"
)

func platformOpen() (Source, error) {
	return nil, fmt.Errorf("interface notifications on %s: %w", runtime.GOOS, pkgerrors.ErrUnsupportedPlatform)
}
