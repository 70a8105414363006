package blake2b

import (
	"bufio"
	"fmt"
	"os"
)

const fileBufferSize = 32 * 1024

// File is an open file used as a Source. Its length is taken from Stat when
// it is opened.
type File struct {
	f    *os.File
	r    *bufio.Reader
	size uint64
}

var _ Source = (*File)(nil)

// OpenFile opens path for hashing.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("open %s: not a regular file", path)
	}
	adviseSequential(f)

	return &File{
		f:    f,
		r:    bufio.NewReaderSize(f, fileBufferSize),
		size: uint64(fi.Size()),
	}, nil
}

func (f *File) Read(p []byte) (int, error) { return f.r.Read(p) }

// Len returns the file size observed at open time.
func (f *File) Len() uint64 { return f.size }

// Close closes the underlying file.
func (f *File) Close() error { return f.f.Close() }

// SumFile returns the size-byte BLAKE2b digest of the file at path.
func SumFile(path string, size int) (Digest, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	f, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := SumSource(f, size)
	if err != nil {
		return nil, fmt.Errorf("hash %s: %w", path, err)
	}
	return d, nil
}
