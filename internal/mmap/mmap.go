package mmap

import (
	"fmt"
	"os"
)

// File is a read-only view of a whole file.
type File struct {
	Data []byte
	Size int

	f     *os.File
	unmap func([]byte) error
}

// Open maps the file at path into memory. Empty files yield an empty
// Data slice and no mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get file info for %q: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%q is not a regular file", path)
	}

	size := int(fi.Size())
	if size == 0 {
		return &File{Data: []byte{}, f: f}, nil
	}

	data, unmap, err := mapFile(f, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file %q with length %d: %w", path, size, err)
	}

	return &File{
		Data:  data,
		Size:  size,
		f:     f,
		unmap: unmap,
	}, nil
}

// Close unmaps the memory region and closes the underlying file.
func (m *File) Close() error {
	var err error
	if m.Data != nil && m.unmap != nil {
		if err = m.unmap(m.Data); err != nil {
			err = fmt.Errorf("failed to munmap: %w", err)
		}
	}
	m.Data = nil

	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
		m.f = nil
	}
	return err
}
