package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datallboy/otmget/internal/domain"
)

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otm-alps.zip")
	fw := NewFileWriter()

	require.NoError(t, fw.Create(path))
	require.NoError(t, fw.Write(path, []byte("abc")))
	require.NoError(t, fw.Write(path, []byte("def")))
	assert.Equal(t, 1, fw.Open())
	require.NoError(t, fw.CloseFile(path))
	assert.Equal(t, 0, fw.Open())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(data))

	// closing twice is harmless
	require.NoError(t, fw.CloseFile(path))
}

func TestFileWriterWriteWithoutCreate(t *testing.T) {
	err := NewFileWriter().Write(filepath.Join(t.TempDir(), "x"), []byte("x"))
	require.ErrorIs(t, err, domain.ErrFileSystem)
}

func TestFileWriterCreateWaitsForRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otm-alps.zip")
	fw := NewFileWriter()
	require.NoError(t, fw.Create(path))

	created := make(chan error, 1)
	go func() { created <- fw.Create(path) }()

	select {
	case <-created:
		t.Fatal("second Create returned while the file was still open")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, fw.CloseFile(path))
	require.NoError(t, <-created)
	fw.CloseAll()
	assert.Equal(t, 0, fw.Open())
}
