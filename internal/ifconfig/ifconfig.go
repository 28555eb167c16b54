// Package ifconfig reads and writes the MTU of a single network interface.
package ifconfig

// Handle is a resolved interface: its name and the stable kernel index used
// to match notifications.
type Handle struct {
	Name  string
	Index int
}

// Configurator reads and writes the live MTU of one interface. Nothing is
// cached: every call queries or changes the kernel state.
type Configurator interface {
	MTU() (uint32, error)
	SetMTU(mtu uint32) error
	Close() error
}

// Resolve looks up the interface index for name.
func Resolve(name string) (Handle, error) {
	return platformResolve(name)
}

// Open returns a Configurator for the resolved interface.
func Open(h Handle) (Configurator, error) {
	return platformOpen(h)
}
