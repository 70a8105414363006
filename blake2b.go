// Package blake2b computes unkeyed BLAKE2b digests (RFC 7693) of 1 to 64
// bytes over in-memory data, streams, and files.
//
// SumSource and SumFile hash a source whose total length is known up front,
// which is how file checksums are usually taken. Sum512, Sum256 and Sum hash
// a byte slice, and Hasher is a streaming hash.Hash for data of unknown
// length. All of them produce the same digest for the same input.
//
// Keys, salts and personalization strings are not supported. Use
// golang.org/x/crypto/blake2b when a MAC is needed.
package blake2b

import (
	"encoding/binary"
	"errors"
	"hash"
)

const (
	// BlockSize is the BLAKE2b block size in bytes.
	BlockSize = 128
	// Size is the size of a BLAKE2b-512 digest in bytes, the largest allowed.
	Size = 64
	// Size384 is the size of a BLAKE2b-384 digest in bytes.
	Size384 = 48
	// Size256 is the size of a BLAKE2b-256 digest in bytes.
	Size256 = 32

	// paramBlock is the first word of the parameter block with the digest
	// length cleared: key length 0, fanout 1, depth 1.
	paramBlock = 0x01010000
)

var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// ErrSize is returned when a digest length outside 1..Size is requested.
var ErrSize = errors.New("blake2b: digest size must be between 1 and 64 bytes")

func checkSize(size int) error {
	if size < 1 || size > Size {
		return ErrSize
	}
	return nil
}

// initState returns the chaining value for an unkeyed digest of size bytes.
func initState(size int) [8]uint64 {
	h := iv
	h[0] ^= paramBlock ^ uint64(size)
	return h
}

// appendDigest appends the first size bytes of h, little-endian per word.
func appendDigest(b []byte, h *[8]uint64, size int) []byte {
	var out [Size]byte
	for i, w := range h {
		binary.LittleEndian.PutUint64(out[8*i:], w)
	}
	return append(b, out[:size]...)
}

// Sum512 returns the BLAKE2b-512 digest of data. Zero heap allocations.
func Sum512(data []byte) [Size]byte {
	var sum [Size]byte
	checkSum(&sum, Size, data)
	return sum
}

// Sum256 returns the BLAKE2b-256 digest of data.
func Sum256(data []byte) [Size256]byte {
	var sum [Size]byte
	checkSum(&sum, Size256, data)
	return [Size256]byte(sum[:Size256])
}

// Sum returns the size-byte BLAKE2b digest of data.
func Sum(data []byte, size int) (Digest, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	var sum [Size]byte
	checkSum(&sum, size, data)
	return Digest(append([]byte(nil), sum[:size]...)), nil
}

func checkSum(sum *[Size]byte, size int, data []byte) {
	h := initState(size)
	var t uint64

	// Compress full blocks, holding back the last one even when it is full.
	for len(data) > BlockSize {
		t += BlockSize
		compress(&h, (*[BlockSize]byte)(data[:BlockSize]), t, false)
		data = data[BlockSize:]
	}

	var block [BlockSize]byte
	copy(block[:], data)
	t += uint64(len(data))
	compress(&h, &block, t, true)

	appendDigest(sum[:0], &h, Size)
}

// Hasher is a streaming BLAKE2b hasher. The zero value is not usable; create
// one with New.
type Hasher struct {
	h    [8]uint64
	t    uint64
	buf  [BlockSize]byte
	n    int
	size int
}

var _ hash.Hash = (*Hasher)(nil)

// New returns a Hasher producing size-byte digests.
func New(size int) (*Hasher, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	d := &Hasher{size: size}
	d.Reset()
	return d, nil
}

// Reset resets the hasher to its initial state.
func (d *Hasher) Reset() {
	d.h = initState(d.size)
	d.t = 0
	d.buf = [BlockSize]byte{}
	d.n = 0
}

// Size returns the digest length in bytes.
func (d *Hasher) Size() int { return d.size }

// BlockSize returns the BLAKE2b block size.
func (d *Hasher) BlockSize() int { return BlockSize }

// Write absorbs p. It never returns an error.
//
// A full buffered block is only compressed once more input arrives, since
// the last block must be compressed with the final flag set.
func (d *Hasher) Write(p []byte) (int, error) {
	written := len(p)

	if d.n > 0 {
		k := copy(d.buf[d.n:], p)
		d.n += k
		p = p[k:]
		if len(p) == 0 {
			return written, nil
		}
		d.t += BlockSize
		compress(&d.h, &d.buf, d.t, false)
		d.n = 0
	}

	for len(p) > BlockSize {
		d.t += BlockSize
		compress(&d.h, (*[BlockSize]byte)(p[:BlockSize]), d.t, false)
		p = p[BlockSize:]
	}

	if len(p) > 0 {
		d.n = copy(d.buf[:], p)
	}
	return written, nil
}

// Sum appends the digest of the data written so far to b.
// Does not modify the hasher state.
func (d *Hasher) Sum(b []byte) []byte {
	h := d.h
	var block [BlockSize]byte
	copy(block[:], d.buf[:d.n])
	compress(&h, &block, d.t+uint64(d.n), true)
	return appendDigest(b, &h, d.size)
}
