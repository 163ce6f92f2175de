package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"
)

// Writer encodes primitives for a peer speaking a fixed protocol version.
//
// Writer is NOT thread-safe.
type Writer struct {
	w       io.Writer
	version Version
	scratch [binary.MaxVarintLen64]byte
}

// NewWriter returns a Writer that encodes to w for a peer at version.
func NewWriter(w io.Writer, version Version) *Writer {
	return &Writer{w: w, version: version}
}

// Version returns the negotiated protocol version of the peer.
func (w *Writer) Version() Version { return w.version }

// WriteLong writes v as 8 big-endian bytes.
func (w *Writer) WriteLong(v int64) error {
	binary.BigEndian.PutUint64(w.scratch[:8], uint64(v))
	_, err := w.w.Write(w.scratch[:8])
	return err
}

// WriteVInt writes v using 1-5 bytes. Negative values always take 5 bytes.
func (w *Writer) WriteVInt(v int32) error {
	u := uint32(v)
	n := 0
	for u >= 0x80 {
		w.scratch[n] = byte(u) | 0x80
		u >>= 7
		n++
	}
	w.scratch[n] = byte(u)
	_, err := w.w.Write(w.scratch[:n+1])
	return err
}

// WriteBool writes a single 0x00 or 0x01 byte.
func (w *Writer) WriteBool(b bool) error {
	w.scratch[0] = 0
	if b {
		w.scratch[0] = 1
	}
	_, err := w.w.Write(w.scratch[:1])
	return err
}

// CheckString reports whether s can be written by WriteString and read back
// by Reader.ReadString.
func CheckString(s string) error {
	if len(s) > MaxStringLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInvalidString, len(s), MaxStringLength)
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidString)
	}
	return nil
}

// WriteString writes the byte length of s as a vint followed by its bytes.
// Strings rejected by CheckString are not written.
func (w *Writer) WriteString(s string) error {
	if err := CheckString(s); err != nil {
		return err
	}
	if err := w.WriteVInt(int32(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	_, err := io.WriteString(w.w, s)
	return err
}

// WriteOptionalString writes a presence flag followed by s when ok is true.
func (w *Writer) WriteOptionalString(s string, ok bool) error {
	if ok {
		if err := CheckString(s); err != nil {
			return err
		}
	}
	if err := w.WriteBool(ok); err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return w.WriteString(s)
}
