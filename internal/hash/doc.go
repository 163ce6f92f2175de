// Package hash provides the hashing utilities behind context identities and
// opaque tokens.
//
// # Identity Hashing
//
// Key64 hashes a (sessionID, id) pair with xxHash64. It is a pure function of
// its inputs and is stable across processes, so it can be used to shard or
// bucket identities.
//
//	h := hash.Key64("sessA", 42)
//
// # CRC32-Castagnoli (CRC32C)
//
// Opaque context tokens carry a CRC32C trailer so corrupted or hand-edited
// tokens are rejected before decoding:
//
//	checksum := hash.CRC32C(data)
//
// Go's crc32 package uses hardware instructions (SSE4.2, ARM CRC) when
// available.
package hash
