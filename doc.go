// Package searchctx provides the identity of a per-shard search context.
//
// A search context is the resource a data node keeps alive so a query,
// scroll or point-in-time cursor can continue across round trips. Its
// ContextID is exchanged between nodes that may run different protocol
// versions, and is used as a key for routing and cache lookups.
//
// # Identity
//
// A ContextID is the pair (session id, id) plus an optional distributed trace
// id. Only the pair takes part in identity:
//
//	a := searchctx.NewWithTraceID("sessA", 42, "trace-123")
//	b := searchctx.New("sessA", 42)
//	a.Equal(b)            // true
//	a.Hash() == b.Hash()  // true
//	a.Key() == b.Key()    // true, use Key as a map key
//
// # Wire Format
//
// Fields are written in a fixed order:
//
//	id          long            always
//	session id  string          only for peers on or after wire.V7_7_0
//	trace id    optional string always
//
// Encoding for an older peer drops the session id; decoding from one yields
// an empty session id. The threshold is configurable with WithSessionIDSince.
//
//	var buf bytes.Buffer
//	_ = a.EncodeTo(wire.NewWriter(&buf, wire.Current))
//	got, err := searchctx.Decode(wire.NewReader(&buf, wire.Current))
//
// # Tokens and JSON
//
// EncodeToken produces a self-describing, checksummed, URL-safe string for
// handing a ContextID to clients or tools. ContextID also implements
// json.Marshaler and json.Unmarshaler.
//
// # Generating IDs
//
// A Generator mints ContextIDs for one session, attaching the OpenTelemetry
// trace id found in the caller's context.
package searchctx
