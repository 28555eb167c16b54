package paths

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"golang.org/x/sys/unix"
)

var (
	getuid  = unix.Getuid
	geteuid = unix.Geteuid
)

// Setuid reports whether the process runs with an effective uid other than
// the invoking user's, as a setuid-root install does.
func Setuid() bool {
	return getuid() != geteuid()
}

// HomeDir returns the real user's home directory, even when running under sudo.
// SUDO_USER names the invoking user; under sudo, os.UserHomeDir() would return
// root's home instead.
func HomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		if u, err := user.Lookup(sudoUser); err == nil {
			return u.HomeDir, nil
		}
	}
	return os.UserHomeDir()
}

// EnvFiles returns the env files read at startup, lowest precedence last:
// ./.env, then ~/.config/mtuwatcher/env. Missing files and anything that is
// not a regular file, symlinks included, are omitted. A setuid run reads no
// env files at all, and the environment is not consulted to find them.
func EnvFiles() []string {
	if Setuid() {
		return nil
	}

	candidates := []string{".env"}
	if home, err := HomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "mtuwatcher", "env"))
	}

	var files []string
	for _, path := range candidates {
		if fi, err := os.Lstat(path); err == nil && fi.Mode().IsRegular() {
			files = append(files, path)
		}
	}
	return files
}

// OpenEnvFile opens an env file without following symlinks. The file must be
// a regular file owned by the invoking user or by root.
func OpenEnvFile(path string) (*os.File, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOFOLLOW|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		unix.Close(fd)
		return nil, fmt.Errorf("%s: not a regular file", path)
	}
	if uid := getuid(); st.Uid != 0 && int(st.Uid) != uid {
		unix.Close(fd)
		return nil, fmt.Errorf("%s: not owned by uid %d or root", path, uid)
	}

	return os.NewFile(uintptr(fd), path), nil
}
