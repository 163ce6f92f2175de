package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxStringLength bounds the byte length of a single string on the wire.
// Longer lengths are treated as corruption rather than allocated.
const MaxStringLength = 1 << 20

// maxVIntBytes is the longest legal vint encoding.
const maxVIntBytes = 5

// Reader decodes primitives written by a peer at a fixed protocol version.
//
// Reader is NOT thread-safe.
type Reader struct {
	r       io.Reader
	version Version
	scratch [8]byte
}

// NewReader returns a Reader that decodes from r, written by a peer at version.
func NewReader(r io.Reader, version Version) *Reader {
	return &Reader{r: r, version: version}
}

// Version returns the negotiated protocol version of the peer.
func (r *Reader) Version() Version { return r.version }

func (r *Reader) readFull(buf []byte) error {
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return nil
}

// ReadLong reads 8 big-endian bytes.
func (r *Reader) ReadLong() (int64, error) {
	if err := r.readFull(r.scratch[:8]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(r.scratch[:8])), nil
}

// ReadVInt reads a 1-5 byte variable-length int.
func (r *Reader) ReadVInt() (int32, error) {
	var v uint32
	for i := 0; i < maxVIntBytes; i++ {
		if err := r.readFull(r.scratch[:1]); err != nil {
			return 0, err
		}
		b := r.scratch[0]
		if i == maxVIntBytes-1 && b&0xF0 != 0 {
			return 0, fmt.Errorf("%w: vint overflows 32 bits", ErrMalformedInput)
		}
		v |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int32(v), nil
		}
	}
	return 0, fmt.Errorf("%w: vint longer than %d bytes", ErrMalformedInput, maxVIntBytes)
}

// ReadBool reads a single byte that must be 0x00 or 0x01.
func (r *Reader) ReadBool() (bool, error) {
	if err := r.readFull(r.scratch[:1]); err != nil {
		return false, err
	}
	switch r.scratch[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid bool byte 0x%02x", ErrMalformedInput, r.scratch[0])
	}
}

// ReadString reads a vint byte length followed by that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadVInt()
	if err != nil {
		return "", err
	}
	if n < 0 || n > MaxStringLength {
		return "", fmt.Errorf("%w: string length %d", ErrMalformedInput, n)
	}
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", ErrMalformedInput)
	}
	return string(buf), nil
}

// ReadOptionalString reads a presence flag and, when set, a string.
func (r *Reader) ReadOptionalString() (string, bool, error) {
	ok, err := r.ReadBool()
	if err != nil || !ok {
		return "", false, err
	}
	s, err := r.ReadString()
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}
