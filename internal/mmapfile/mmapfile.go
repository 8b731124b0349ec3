// Package mmapfile loads a whole file as one read-only byte slice, mapping it into memory
// where the platform allows so the tokenizer can view it without a copy.
package mmapfile

import (
	"errors"
	"io"
	"os"
)

// ErrTooLarge is returned for files that cannot be indexed as a []byte.
var ErrTooLarge = errors.New("mmapfile: file too large to map")

// File holds the contents of an opened file.
type File struct {
	// Data is the file contents. It must not be modified and is invalid after Close.
	Data    []byte
	mmapped bool
}

// Mapped reports whether Data is backed by a memory mapping.
func (f *File) Mapped() bool {
	return f != nil && f.mmapped
}

// Close releases the mapping, if any.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unmap(f.Data)
	}
	f.Data = nil
	f.mmapped = false
	return err
}

// Open maps path read-only. If mapping is unavailable or the file is empty it falls back
// to reading the file. The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, ErrTooLarge
	}
	size := int(size64)
	if size == 0 {
		return &File{Data: []byte{}}, nil
	}

	if data, err := mapFile(f, size); err == nil {
		return &File{Data: data, mmapped: true}, nil
	}

	data, err := readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return &File{Data: data}, nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	data := make([]byte, size)
	n, err := r.ReadAt(data, 0)
	if err != nil && !(errors.Is(err, io.EOF) && n == size) {
		return nil, err
	}
	return data, nil
}
