//go:build linux || darwin

package ifmon

import "golang.org/x/sys/unix"

// pollReadable blocks with no timeout until fd is readable.
func pollReadable(fd int) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	if _, err := unix.Poll(fds, -1); err != nil {
		return err
	}
	if fds[0].Revents&unix.POLLNVAL != 0 {
		return unix.EBADF
	}
	return nil
}
