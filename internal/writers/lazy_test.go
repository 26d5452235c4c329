package writers

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func TestLazyWriteCloser(t *testing.T) {
	calls := 0
	buf := &bufferCloser{}
	w := NewLazyWriteCloser(func() (io.WriteCloser, error) {
		calls++
		return buf, nil
	})

	assert.False(t, w.Opened())
	require.NoError(t, w.Close(), "closing an unopened writer is a no-op")
	assert.Equal(t, 0, calls)

	_, err := w.Write([]byte("score,"))
	require.NoError(t, err)
	_, err = w.Write([]byte("Straight_Decider\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.True(t, w.Opened())
	require.NoError(t, w.Close())
	assert.True(t, buf.closed)
	assert.Equal(t, "score,Straight_Decider\n", buf.String())
}

func TestLazyWriteCloser_InitError(t *testing.T) {
	w := NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return nil, errors.New("disk full")
	})

	_, err := w.Write([]byte("x"))
	assert.EqualError(t, err, "disk full")
	assert.False(t, w.Opened())
}

func TestNewLazyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewLazyFile(path)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file is not created before the first write")

	_, err = w.Write([]byte("0\n1\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n", string(data))
}
