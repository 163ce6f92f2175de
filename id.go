package searchctx

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/searchctx/internal/hash"
)

// Key is the identity-bearing part of a ContextID.
//
// Key is comparable and is the type to use for map keys and set membership:
// two ContextIDs are equal exactly when their Keys are equal.
type Key struct {
	SessionID string
	ID        int64
}

// Hash returns an xxHash64 of the key. Equal keys hash identically.
func (k Key) Hash() uint64 { return hash.Key64(k.SessionID, k.ID) }

// String renders the key as "[sessionID][id]".
func (k Key) String() string {
	return "[" + k.SessionID + "][" + strconv.FormatInt(k.ID, 10) + "]"
}

// traceCell holds the only mutable state of a ContextID.
type traceCell struct {
	value string
	set   bool
}

// sameTraceID compares two optional trace ids. Two absent ids are the same;
// exactly one absent id is not.
func sameTraceID(a, b traceCell) bool {
	if a.set != b.set {
		return false
	}
	return !a.set || a.value == b.value
}

// ContextID identifies a search context allocated on a data node.
//
// The session id and id are fixed at construction. The distributed trace id
// is observational metadata: it can be set, replaced or cleared at any time
// and never takes part in Equal, Hash or Key.
//
// ContextID does no internal locking. Callers that mutate the trace id while
// other goroutines read it must synchronize; Key, Hash, Equal and String only
// read immutable fields.
type ContextID struct {
	key   Key
	trace traceCell
}

// New returns a ContextID without a distributed trace id.
// An empty sessionID is the legacy default for peers that predate sessions.
func New(sessionID string, id int64) *ContextID {
	return &ContextID{key: Key{SessionID: sessionID, ID: id}}
}

// NewWithTraceID returns a ContextID carrying traceID.
func NewWithTraceID(sessionID string, id int64, traceID string) *ContextID {
	c := New(sessionID, id)
	c.SetDistributedTraceID(traceID)
	return c
}

// FromParts builds a ContextID from optional parts. A nil sessionID violates
// the identity invariant and yields ErrInvariantViolation; a nil traceID
// leaves the trace id unset.
func FromParts(sessionID *string, id int64, traceID *string) (*ContextID, error) {
	if sessionID == nil {
		return nil, fmt.Errorf("%w: session id is required", ErrInvariantViolation)
	}
	c := New(*sessionID, id)
	if traceID != nil {
		c.SetDistributedTraceID(*traceID)
	}
	return c, nil
}

// SessionID returns the id of the owning search session.
func (c *ContextID) SessionID() string { return c.key.SessionID }

// ID returns the per-session context id.
func (c *ContextID) ID() int64 { return c.key.ID }

// Key returns the comparable identity of c.
func (c *ContextID) Key() Key { return c.key }

// DistributedTraceID returns the trace id and whether one is set.
func (c *ContextID) DistributedTraceID() (string, bool) {
	return c.trace.value, c.trace.set
}

// SetDistributedTraceID sets or replaces the trace id.
func (c *ContextID) SetDistributedTraceID(traceID string) {
	c.trace = traceCell{value: traceID, set: true}
}

// ClearDistributedTraceID removes the trace id.
func (c *ContextID) ClearDistributedTraceID() {
	c.trace = traceCell{}
}

// Equal reports whether c and other name the same search context.
// Trace ids are ignored.
func (c *ContextID) Equal(other *ContextID) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	return c.key == other.key
}

// Hash returns a hash of (sessionID, id), consistent with Equal.
func (c *ContextID) Hash() uint64 { return c.key.Hash() }

// SameTrace reports whether c and other carry the same distributed trace id.
// It is a diagnostic for trace correlation and says nothing about identity.
func (c *ContextID) SameTrace(other *ContextID) bool {
	if c == nil || other == nil {
		return c == other
	}
	return sameTraceID(c.trace, other.trace)
}

// String renders c as "[sessionID][id]". It is meant for debugging only.
func (c *ContextID) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.key.String()
}
