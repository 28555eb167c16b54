// Package ifmon reads network interface change notifications from the
// kernel and reduces them to the latest MTU of one interface.
package ifmon

import "fmt"

// Kind classifies a notification record.
type Kind int

const (
	// KindOther is any notification other than an interface info change.
	KindOther Kind = iota
	// KindInfoChanged reports new interface state, including its MTU.
	KindInfoChanged
)

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindInfoChanged:
		return "info-changed"
	}
	return fmt.Sprintf("{Kind %d}", int(k))
}

// Record is one decoded notification. MTU is only meaningful for
// KindInfoChanged.
type Record struct {
	Kind  Kind
	Index int
	MTU   uint32
}

// Source is a subscription to the kernel's interface notification stream.
//
// Wait blocks, without a timeout, until at least one notification is pending.
// Next never blocks: it returns the next pending record or fails with EAGAIN
// once the backlog is empty. Both may fail with EINTR, which the caller
// retries.
type Source interface {
	Wait() error
	Next() (Record, error)
	Close() error
}

// Open subscribes to interface notifications on the current platform.
func Open() (Source, error) {
	return platformOpen()
}
