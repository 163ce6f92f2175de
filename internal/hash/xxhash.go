package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Key64 hashes a (sessionID, id) pair with xxHash64.
// The id is appended as 8 fixed bytes, so distinct pairs never share an input.
func Key64(sessionID string, id int64) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(sessionID)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(id))
	_, _ = d.Write(b[:])
	return d.Sum64()
}
