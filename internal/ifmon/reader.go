package ifmon

import (
	"errors"

	"golang.org/x/sys/unix"

	pkgerrors "mtuwatcher/pkg/errors"
)

// Reader drains a Source and keeps only the notifications of one interface.
type Reader struct {
	src   Source
	index int
}

// NewReader returns a Reader for the interface with the given index.
func NewReader(src Source, index int) *Reader {
	return &Reader{
		src:   src,
		index: index,
	}
}

// Drain consumes every pending notification without blocking. It returns
// the MTU carried by the last info-changed record of the watched interface,
// with ok set to false when no such record was pending. Records are not
// replayed. Any failure other than EINTR or an empty backlog is returned as
// a *errors.ChannelError.
func (r *Reader) Drain() (mtu uint32, ok bool, err error) {
	for {
		rec, err := r.src.Next()
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				return mtu, ok, nil
			}
			return 0, false, &pkgerrors.ChannelError{Op: "read", Err: err}
		}

		if rec.Kind != KindInfoChanged {
			continue
		}
		if rec.Index != r.index {
			continue
		}

		mtu, ok = rec.MTU, true
	}
}
