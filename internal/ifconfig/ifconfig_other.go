//go:build !linux && !darwin

package ifconfig

import (
	"fmt"
	"runtime"

	pkgerrors "mtuwatcher/pkg/errors"
)

func platformResolve(name string) (Handle, error) {
	return Handle{}, fmt.Errorf("interface configuration on %s: %w", runtime.GOOS, pkgerrors.ErrUnsupportedPlatform)
}

func platformOpen(h Handle) (Configurator, error) {
	return nil, fmt.Errorf("interface configuration on %s: %w", runtime.GOOS, pkgerrors.ErrUnsupportedPlatform)
}
