package ifmon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	pkgerrors "mtuwatcher/pkg/errors"
)

const eth0 = 2

// step is one scripted result of Source.Next.
type step struct {
	rec Record
	err error
}

// scriptSource replays steps and reports EAGAIN once they run out.
type scriptSource struct {
	steps []step
	reads int
}

func (s *scriptSource) Wait() error { return nil }

func (s *scriptSource) Next() (Record, error) {
	s.reads++
	if len(s.steps) == 0 {
		return Record{}, unix.EAGAIN
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	return st.rec, st.err
}

func (s *scriptSource) Close() error { return nil }

func info(index int, mtu uint32) step {
	return step{rec: Record{Kind: KindInfoChanged, Index: index, MTU: mtu}}
}

func other(index int) step {
	return step{rec: Record{Kind: KindOther, Index: index}}
}

func fail(err error) step {
	return step{err: err}
}

func TestDrainLastRelevantRecordWins(t *testing.T) {
	tests := []struct {
		name   string
		steps  []step
		want   uint32
		wantOK bool
	}{
		{
			name: "empty backlog",
		},
		{
			name:   "single record",
			steps:  []step{info(eth0, 1500)},
			want:   1500,
			wantOK: true,
		},
		{
			name: "interleaved with unrelated interface",
			steps: []step{
				info(eth0, 9000),
				info(eth0, 1500),
				info(7, 1280),
				info(eth0, 9000),
			},
			want:   9000,
			wantOK: true,
		},
		{
			name: "later record supersedes earlier",
			steps: []step{
				info(eth0, 9000),
				info(eth0, 1500),
			},
			want:   1500,
			wantOK: true,
		},
		{
			name: "other kinds for the same interface are ignored",
			steps: []step{
				info(eth0, 1400),
				other(eth0),
				other(eth0),
			},
			want:   1400,
			wantOK: true,
		},
		{
			name: "only irrelevant records",
			steps: []step{
				other(eth0),
				info(3, 1500),
				info(4, 9000),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptSource{steps: tt.steps}
			r := NewReader(src, eth0)

			mtu, ok, err := r.Drain()
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, mtu)
			assert.Equal(t, len(tt.steps)+1, src.reads, "drain must consume the whole backlog")
		})
	}
}

func TestDrainRetriesInterruptedReads(t *testing.T) {
	src := &scriptSource{steps: []step{
		fail(unix.EINTR),
		fail(unix.EINTR),
		info(eth0, 9000),
	}}

	mtu, ok, err := NewReader(src, eth0).Drain()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint32(9000), mtu)
}

func TestDrainStopsOnWouldBlock(t *testing.T) {
	src := &scriptSource{steps: []step{
		info(eth0, 1500),
		fail(unix.EWOULDBLOCK),
		info(eth0, 9000),
	}}
	r := NewReader(src, eth0)

	mtu, ok, err := r.Drain()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint32(1500), mtu)

	// The next cycle picks up what arrived afterwards.
	mtu, ok, err = r.Drain()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint32(9000), mtu)
}

func TestDrainFatalReadError(t *testing.T) {
	src := &scriptSource{steps: []step{
		info(eth0, 1500),
		fail(unix.ENOBUFS),
		info(eth0, 9000),
	}}

	mtu, ok, err := NewReader(src, eth0).Drain()
	require.Error(t, err)
	assert.False(t, ok)
	assert.Zero(t, mtu)

	var chErr *pkgerrors.ChannelError
	require.True(t, errors.As(err, &chErr))
	assert.Equal(t, "read", chErr.Op)
	assert.ErrorIs(t, err, unix.ENOBUFS)
	assert.Len(t, src.steps, 1, "nothing is read after a fatal error")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "other", KindOther.String())
	assert.Equal(t, "info-changed", KindInfoChanged.String())
	assert.Equal(t, "{Kind 9}", Kind(9).String())
}
