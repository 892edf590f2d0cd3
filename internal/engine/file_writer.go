package engine

import (
	"fmt"
	"os"
	"sync"

	"github.com/datallboy/otmget/internal/domain"
)

type fileHandle struct {
	file     *os.File
	released chan struct{}
}

// FileWriter owns the output files of a batch. A path is open for at most
// one download at a time: when the same archive is selected twice, the
// second download waits for the first to close the file, then truncates it.
type FileWriter struct {
	mu      sync.Mutex
	handles map[string]*fileHandle
}

func NewFileWriter() *FileWriter {
	return &FileWriter{
		handles: make(map[string]*fileHandle),
	}
}

// Create opens path for writing, truncating any previous content.
func (fw *FileWriter) Create(path string) error {
	for {
		fw.mu.Lock()
		h, busy := fw.handles[path]
		if !busy {
			break
		}
		fw.mu.Unlock()
		<-h.released
	}
	defer fw.mu.Unlock()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: could not open %s: %w", domain.ErrFileSystem, path, err)
	}

	fw.handles[path] = &fileHandle{
		file:     f,
		released: make(chan struct{}),
	}
	return nil
}

// Write appends data to the open file at path.
func (fw *FileWriter) Write(path string, data []byte) error {
	fw.mu.Lock()
	h, ok := fw.handles[path]
	fw.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s is not open", domain.ErrFileSystem, path)
	}

	// Only the download that created the handle writes to it
	if _, err := h.file.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrFileSystem, path, err)
	}
	return nil
}

func (fw *FileWriter) CloseFile(path string) error {
	fw.mu.Lock()
	h, ok := fw.handles[path]
	if !ok {
		fw.mu.Unlock()
		return nil // Already closed: defer will handle it
	}
	// Remove from our map so we don't try to use a closed handle later
	delete(fw.handles, path)
	fw.mu.Unlock()

	defer close(h.released)

	if err := h.file.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrFileSystem, path, err)
	}
	return nil
}

func (fw *FileWriter) CloseAll() {
	fw.mu.Lock()
	// Collect keys first because CloseFile modifies the map
	paths := make([]string, 0, len(fw.handles))
	for path := range fw.handles {
		paths = append(paths, path)
	}
	fw.mu.Unlock()

	for _, path := range paths {
		_ = fw.CloseFile(path) // Ignore error on global cleanup
	}
}

// Open reports how many files are currently open.
func (fw *FileWriter) Open() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return len(fw.handles)
}
