package blake2b

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrShortSource is returned when a Source ends before Len bytes were read.
var ErrShortSource = errors.New("blake2b: source shorter than its declared length")

// Source is a sequential byte source whose total length is known before
// hashing starts.
type Source interface {
	io.Reader
	// Len returns the number of bytes the source will deliver.
	Len() uint64
}

type sizedSource struct {
	io.Reader
	n uint64
}

func (s sizedSource) Len() uint64 { return s.n }

// NewSource returns a Source that reads n bytes from r.
func NewSource(r io.Reader, n uint64) Source {
	return sizedSource{Reader: r, n: n}
}

// BytesSource returns a Source over b.
func BytesSource(b []byte) Source {
	return sizedSource{Reader: bytes.NewReader(b), n: uint64(len(b))}
}

// Digest is a finished BLAKE2b digest.
type Digest []byte

// String returns the digest as lowercase hex with no separators.
func (d Digest) String() string {
	return hex.EncodeToString(d)
}

// Words returns the digest as lowercase hex with a space after every 8 bytes,
// one group per state word. Only String is the portable form.
func (d Digest) Words() string {
	var sb strings.Builder
	for i := 0; i < len(d); i += 8 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(hex.EncodeToString(d[i:min(i+8, len(d))]))
	}
	return sb.String()
}

// SumSource hashes exactly src.Len() bytes of src and returns the size-byte
// digest. The source is read once, front to back. A read error or a source
// that ends early fails the whole computation; no partial digest is returned.
func SumSource(src Source, size int) (Digest, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	total := src.Len()
	h := initState(size)
	var (
		t     uint64
		block [BlockSize]byte
	)

	for total > BlockSize && t < total-BlockSize {
		if err := readBlock(src, block[:], t, total); err != nil {
			return nil, err
		}
		t += BlockSize
		compress(&h, &block, t, false)
	}

	// The final block is zero-padded and always flagged, even when the
	// input is empty or a multiple of BlockSize.
	block = [BlockSize]byte{}
	if err := readBlock(src, block[:total-t], t, total); err != nil {
		return nil, err
	}
	compress(&h, &block, total, true)

	return Digest(appendDigest(nil, &h, size)), nil
}

func readBlock(src io.Reader, p []byte, off, total uint64) error {
	n, err := io.ReadFull(src, p)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: got %d of %d bytes", ErrShortSource, off+uint64(n), total)
	}
	return fmt.Errorf("blake2b: read at offset %d: %w", off, err)
}
