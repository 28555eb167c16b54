package privilege

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	pkgerrors "mtuwatcher/pkg/errors"
)

func stubIDs(t *testing.T, uid int, setuidErr error) *[]int {
	t.Helper()
	var calls []int
	oldGet, oldSet := getuid, setuid
	getuid = func() int { return uid }
	setuid = func(id int) error {
		calls = append(calls, id)
		return setuidErr
	}
	t.Cleanup(func() { getuid, setuid = oldGet, oldSet })
	return &calls
}

func TestEnsureAlreadyRoot(t *testing.T) {
	calls := stubIDs(t, 0, nil)
	assert.NoError(t, Ensure())
	assert.Empty(t, *calls)
}

func TestEnsureElevates(t *testing.T) {
	calls := stubIDs(t, 501, nil)
	assert.NoError(t, Ensure())
	assert.Equal(t, []int{0}, *calls)
}

func TestEnsureElevationFails(t *testing.T) {
	calls := stubIDs(t, 501, unix.EPERM)
	err := Ensure()
	assert.ErrorIs(t, err, pkgerrors.ErrElevation)
	assert.ErrorContains(t, err, "setuid bit")
	assert.Equal(t, []int{0}, *calls)
}
