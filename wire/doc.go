// Package wire provides the versioned stream primitives used to exchange
// search context identities between nodes.
//
// # Protocol Versions
//
// Every Writer and Reader is bound to the negotiated protocol Version of the
// peer on the other end. Encoders consult that version to decide which fields
// are present on the wire; decoders must make the same decision so they never
// read bytes an older peer did not write.
//
//	w := wire.NewWriter(&buf, wire.V7_7_0)
//	_ = w.WriteLong(42)
//	_ = w.WriteString("sessA")
//	_ = w.WriteOptionalString("trace-123", true)
//
// # Encoding
//
//	Primitive         Layout
//	long              8 bytes, big-endian two's complement
//	vint              1-5 bytes, 7 bits per byte, low groups first, high bit = more
//	bool              1 byte, 0x00 or 0x01
//	string            vint byte length, then UTF-8 bytes
//	optional string   bool presence flag, then string when present
//
// Any truncation or structurally invalid input surfaces as an error wrapping
// ErrMalformedInput.
package wire
