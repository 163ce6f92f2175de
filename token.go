package searchctx

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/searchctx/internal/hash"
	"github.com/hupe1980/searchctx/wire"
)

// MinTokenVersion is the oldest protocol version a token may be written at.
const MinTokenVersion = wire.V7_0_0

const checksumSize = 4

// EncodeToken renders id as an opaque, URL-safe token using DefaultCodec.
func EncodeToken(id *ContextID, version wire.Version) (string, error) {
	return DefaultCodec.EncodeToken(id, version)
}

// DecodeToken parses a token produced by EncodeToken using DefaultCodec.
func DecodeToken(token string) (*ContextID, wire.Version, error) {
	return DefaultCodec.DecodeToken(token)
}

// EncodeToken renders id as an opaque, URL-safe token.
//
// Layout before base64 (raw URL alphabet):
//
//	Version (vint)
//	ContextID encoded at Version
//	Checksum (4 bytes, little-endian) - CRC32C of everything before it
//
// The token is self-describing, so it can be decoded without knowing the
// version it was written at.
func (c *Codec) EncodeToken(id *ContextID, version wire.Version) (string, error) {
	if version.Before(MinTokenVersion) {
		return "", &ErrUnsupportedVersion{Version: version}
	}

	var buf bytes.Buffer
	w := wire.NewWriter(&buf, version)
	if err := w.WriteVInt(int32(version)); err != nil {
		return "", err
	}
	if err := c.Encode(w, id); err != nil {
		return "", err
	}

	raw := binary.LittleEndian.AppendUint32(buf.Bytes(), hash.CRC32C(buf.Bytes()))
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeToken parses a token produced by EncodeToken and returns the identity
// together with the protocol version it was written at.
func (c *Codec) DecodeToken(token string) (*ContextID, wire.Version, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: token: %w", ErrMalformedInput, err)
	}
	if len(raw) <= checksumSize {
		return nil, 0, fmt.Errorf("%w: token too short", ErrMalformedInput)
	}

	body, trailer := raw[:len(raw)-checksumSize], raw[len(raw)-checksumSize:]
	if hash.CRC32C(body) != binary.LittleEndian.Uint32(trailer) {
		return nil, 0, fmt.Errorf("%w: token checksum mismatch", ErrMalformedInput)
	}

	br := bytes.NewReader(body)
	v, err := wire.NewReader(br, 0).ReadVInt()
	if err != nil {
		return nil, 0, fmt.Errorf("token version: %w", err)
	}
	version := wire.Version(v)
	if version.Before(MinTokenVersion) {
		return nil, version, &ErrUnsupportedVersion{Version: version}
	}

	id, err := c.Decode(wire.NewReader(br, version))
	if err != nil {
		return nil, version, err
	}
	if br.Len() != 0 {
		return nil, version, fmt.Errorf("%w: %d trailing bytes in token", ErrMalformedInput, br.Len())
	}
	return id, version, nil
}
