package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// Usage errors
	ErrUsage         = errors.New("usage: mtuwatcher <interface-name> <target-mtu>")
	ErrMTUInvalid    = errors.New("invalid MTU")
	ErrMTUOutOfRange = errors.New("MTU out of range")

	// Privilege errors
	ErrElevation = errors.New(
		"error escalating permission to root.\n" +
			"  Either run mtuwatcher as root or set the setuid bit with root ownership:\n" +
			"  sudo chown root mtuwatcher && sudo chmod u+s mtuwatcher",
	)

	// Interface errors
	ErrInterfaceNotFound = errors.New("interface not found")

	// Platform errors
	ErrUnsupportedPlatform = errors.New("platform not supported")
)

// InterfaceError represents a failed configuration call on an interface
type InterfaceError struct {
	Name string
	Op   string
	Err  error
}

func (e *InterfaceError) Error() string {
	return fmt.Sprintf("interface '%s': %s: %v", e.Name, e.Op, e.Err)
}

func (e *InterfaceError) Unwrap() error {
	return e.Err
}

// ChannelError represents a failure of the interface notification channel
type ChannelError struct {
	Op  string
	Err error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("notification channel %s: %v", e.Op, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
